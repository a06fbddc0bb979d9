package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPhaseTransition reports a phase value outside the turn cycle.
var ErrInvalidPhaseTransition = errors.New("invalid phase transition")

// Phase is one step of a player's turn cycle.
// The zero value is not a phase; machines never hold it.
type Phase uint8

const (
	// PhasePrepare lets the active player shuffle and draw a hand.
	PhasePrepare Phase = iota + 1
	// PhasePlaceCardsOnTable lets the active player commit cards to table slots.
	PhasePlaceCardsOnTable
	// PhaseDrawEventCard draws the top event card for the active player.
	PhaseDrawEventCard
	// PhaseApplyEventCard applies the active player's event card.
	PhaseApplyEventCard
	// PhaseApplyProductionCards drops chips for production cards.
	PhaseApplyProductionCards
	// PhaseApplyTransportationCards moves chips from production to sales.
	PhaseApplyTransportationCards
	// PhaseApplySalesCards sells chips from the sales area into the bank.
	PhaseApplySalesCards
	// PhaseEnd closes the player's turn.
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhasePrepare:                  "prepare",
	PhasePlaceCardsOnTable:        "place_cards_on_table",
	PhaseDrawEventCard:            "draw_event_card",
	PhaseApplyEventCard:           "apply_event_card",
	PhaseApplyProductionCards:     "apply_production_cards",
	PhaseApplyTransportationCards: "apply_transportation_cards",
	PhaseApplySalesCards:          "apply_sales_cards",
	PhaseEnd:                      "end",
}

var phaseDescriptions = map[Phase]string{
	PhasePrepare:                  "You may shuffle the deck and draw 5 cards",
	PhasePlaceCardsOnTable:        "You may play cards from your hand or draw",
	PhaseDrawEventCard:            "Drawing event card",
	PhaseApplyEventCard:           "Applying event card effects",
	PhaseApplyProductionCards:     "Applying Production Cards",
	PhaseApplyTransportationCards: "Applying Transportation Cards",
	PhaseApplySalesCards:          "Applying Sales Cards",
	PhaseEnd:                      "Update your counters and pass turn",
}

// Phases returns the turn cycle in advancing order.
func Phases() []Phase {
	return []Phase{
		PhasePrepare,
		PhasePlaceCardsOnTable,
		PhaseDrawEventCard,
		PhaseApplyEventCard,
		PhaseApplyProductionCards,
		PhaseApplyTransportationCards,
		PhaseApplySalesCards,
		PhaseEnd,
	}
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Description is the player-facing hint shown while the phase is current.
func (p Phase) Description() string {
	return phaseDescriptions[p]
}

// Valid reports whether p is part of the turn cycle.
func (p Phase) Valid() bool {
	_, ok := phaseNames[p]
	return ok
}

// Next returns the phase that follows p in the cycle. End wraps to Prepare.
func (p Phase) Next() (Phase, error) {
	switch p {
	case PhasePrepare:
		return PhasePlaceCardsOnTable, nil
	case PhasePlaceCardsOnTable:
		return PhaseDrawEventCard, nil
	case PhaseDrawEventCard:
		return PhaseApplyEventCard, nil
	case PhaseApplyEventCard:
		return PhaseApplyProductionCards, nil
	case PhaseApplyProductionCards:
		return PhaseApplyTransportationCards, nil
	case PhaseApplyTransportationCards:
		return PhaseApplySalesCards, nil
	case PhaseApplySalesCards:
		return PhaseEnd, nil
	case PhaseEnd:
		return PhasePrepare, nil
	}
	return 0, fmt.Errorf("%w: no successor for %s", ErrInvalidPhaseTransition, p)
}

// RequiresInput reports whether the cycle waits for the active player in p.
func (p Phase) RequiresInput() bool {
	return p == PhasePrepare || p == PhasePlaceCardsOnTable
}

// Resolves reports whether the card-effect resolver runs when p is entered.
func (p Phase) Resolves() bool {
	return p.Valid() && !p.RequiresInput()
}

// ParsePhase maps a wire name back to a Phase.
func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown phase %q", ErrInvalidPhaseTransition, name)
}

// MarshalText encodes p by its wire name.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPhaseTransition, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
