package domain

import "fmt"

// Resolver turns the cards on the table into intents for the phase the
// machine is in. It reads the table only through the View it is given.
type Resolver struct {
	rules Rules
}

// NewResolver returns a resolver using rules.
func NewResolver(rules Rules) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve runs the effects of the machine's current phase for the active
// player. Bank and effect changes are applied to m directly; everything the
// presentation layer must do is returned as ordered intents. Input phases
// resolve to nothing.
func (r *Resolver) Resolve(m *Machine, view View) ([]Intent, error) {
	switch m.Phase() {
	case PhasePrepare, PhasePlaceCardsOnTable:
		return nil, nil
	case PhaseDrawEventCard:
		return r.drawEvent(m, view), nil
	case PhaseApplyEventCard:
		return r.applyEvent(m)
	case PhaseApplyProductionCards:
		return r.production(m, view), nil
	case PhaseApplyTransportationCards:
		return r.transport(m, view), nil
	case PhaseApplySalesCards:
		return r.sales(m, view)
	case PhaseEnd:
		return r.end(m), nil
	}
	return nil, fmt.Errorf("%w: cannot resolve %s", ErrInvalidPhaseTransition, m.Phase())
}

func (r *Resolver) drawEvent(m *Machine, view View) []Intent {
	player := m.ActivePlayer()
	if _, ok := m.ActiveEvent(player); ok || len(view.EventPile) == 0 {
		return nil
	}

	top := view.EventPile[0]
	for _, c := range view.EventPile[1:] {
		if c.SortKey > top.SortKey {
			top = c
		}
	}
	m.SetActiveEvent(player, ActiveEvent{Card: top.ID, Kind: top.Kind})
	return []Intent{DrawEventCard{Card: top.ID, Kind: top.Kind, Player: player, Slot: EventSlot}}
}

func (r *Resolver) applyEvent(m *Machine) ([]Intent, error) {
	player := m.ActivePlayer()
	ev, ok := m.ActiveEvent(player)
	if !ok {
		return nil, nil
	}
	kind, ok := ev.Kind.Effect()
	if !ok {
		return nil, nil
	}

	effect := m.AddEffect(kind, player, r.rules.Duration(kind))
	out := []Intent{EffectApplied{Effect: effect}}

	if kind == EffectPoliceBribe {
		balance, err := m.Balance(player)
		if err != nil {
			return nil, err
		}
		amount := min(r.rules.PoliceBribe, balance)
		if amount > 0 {
			if err := m.Debit(player, amount); err != nil {
				return nil, err
			}
			out = append(out, BankChanged{Player: player, Delta: -amount, Balance: balance - amount})
		}
	}
	return out, nil
}

func (r *Resolver) production(m *Machine, view View) []Intent {
	player, turn := m.ActivePlayer(), m.Turn()
	blocked := m.HasEffect(EffectDrought, player)

	var out []Intent
	for _, card := range cardsInCategory(view.Cards, player, CategoryProduction) {
		if chip, ok := card.Kind.Chip(); ok && !blocked {
			out = append(out, DropChip{Type: chip, Area: AreaProduction, Player: player, Turn: turn})
		}
		out = append(out, RetireCard{Card: card.ID, Pile: PileDiscard})
	}
	return out
}

func (r *Resolver) transport(m *Machine, view View) []Intent {
	player, turn := m.ActivePlayer(), m.Turn()
	queue := pickOrder(transportCandidates(view.Chips, player, turn), false)

	var out []Intent
	for _, card := range cardsInCategory(view.Cards, player, CategoryTransport) {
		n := min(r.rules.ChipsPerCard(card.Kind), len(queue))
		for _, chip := range queue[:n] {
			out = append(out, MoveChip{Chip: chip.ID, Area: AreaSales, Player: player, Turn: turn})
		}
		queue = queue[n:]
		out = append(out, RetireCard{Card: card.ID, Pile: PileDiscard})
	}
	return out
}

func (r *Resolver) sales(m *Machine, view View) ([]Intent, error) {
	player, turn := m.ActivePlayer(), m.Turn()
	queue := pickOrder(salesCandidates(view.Chips, player, turn), true)

	var out []Intent
	for _, card := range cardsInCategory(view.Cards, player, CategorySales) {
		n := min(r.rules.ChipsPerCard(card.Kind), len(queue))
		for _, chip := range queue[:n] {
			if err := m.Credit(player, r.rules.SalePrice); err != nil {
				return nil, err
			}
			balance, _ := m.Balance(player)
			out = append(out,
				DiscardChip{Chip: chip.ID},
				BankChanged{Player: player, Delta: r.rules.SalePrice, Balance: balance},
			)
		}
		queue = queue[n:]
		out = append(out, RetireCard{Card: card.ID, Pile: PileDiscard})
	}
	return out, nil
}

// end retires every drawn event card once the last player closes the rotation.
func (r *Resolver) end(m *Machine) []Intent {
	if !m.IsLastPlayer() {
		return nil
	}
	var out []Intent
	for _, ev := range m.ClearActiveEvents() {
		out = append(out, RetireCard{Card: ev.Card, Pile: PileEventDiscard})
	}
	return out
}
