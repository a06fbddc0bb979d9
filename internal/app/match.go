package app

import (
	"errors"
	"fmt"
	"math/rand"

	"narcos/internal/domain"
	"narcos/internal/table"
)

var (
	ErrNotStarted    = errors.New("game not started")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrWrongPhase    = errors.New("action not allowed in this phase")
	ErrTooFewPlayers = errors.New("not enough players to start")
)

// Match binds a Service to the table it drives. Player commands are
// validated against the turn state, and every tick feeds a fresh table
// snapshot to the Service and realizes the resulting intents on the table.
type Match struct {
	rules      domain.Rules
	numPlayers int
	rng        *rand.Rand

	svc     *Service
	table   *table.Table
	started bool

	// Dropped counts intents the table could not realize.
	Dropped  int
	reported int
}

// NewMatch constructs an unstarted match.
func NewMatch(rules domain.Rules, numPlayers int, clock Clock, rng *rand.Rand) (*Match, error) {
	if numPlayers < MinPlayersToStartGame {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPlayers, numPlayers)
	}
	svc, err := NewService(rules, numPlayers, clock)
	if err != nil {
		return nil, err
	}
	return &Match{rules: rules, numPlayers: numPlayers, rng: rng, svc: svc}, nil
}

// Start deals a fresh table and restarts the turn cycle.
func (m *Match) Start() []Event {
	m.svc.Reset()
	m.table = table.New(m.numPlayers, m.rules, m.rng)
	m.started = true
	m.Dropped = 0
	m.reported = 0

	st := m.svc.State()
	return []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			NumPlayers: m.numPlayers,
			Phase:      st.Phase,
			Player:     st.ActivePlayer,
			Turn:       st.Turn,
		},
	}}
}

// Started reports whether Start has been called.
func (m *Match) Started() bool { return m.started }

// DrawHand deals the active player's hand during Prepare.
func (m *Match) DrawHand(player int) ([]Event, error) {
	if err := m.checkActor(player, domain.PhasePrepare); err != nil {
		return nil, err
	}
	if _, err := m.table.DrawHand(player); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:       EventHandDealt,
		Payload:    HandDealtPayload{Player: player, Cards: m.table.Hand(player)},
		Recipients: []int{player},
	}}, nil
}

// PlaceCard commits a hand card to a table slot during PlaceCardsOnTable.
func (m *Match) PlaceCard(player int, card domain.CardID, slot int) ([]Event, error) {
	if err := m.checkActor(player, domain.PhasePlaceCardsOnTable); err != nil {
		return nil, err
	}
	placed, err := m.table.PlaceCard(player, card, slot)
	if err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventCardPlaced,
		Payload: CardPlacedPayload{Player: player, Card: placed},
	}}, nil
}

// Advance forwards the active player's advance request to the Service.
func (m *Match) Advance(player int) ([]Event, error) {
	if !m.started {
		return nil, ErrNotStarted
	}
	if player != m.svc.ActivePlayer() {
		return nil, fmt.Errorf("%w: player %d", ErrNotYourTurn, player)
	}
	return m.svc.RequestAdvance()
}

// Step runs one tick of the Service and realizes its intents on the table.
func (m *Match) Step() ([]Event, error) {
	if !m.started {
		return nil, nil
	}
	events, err := m.svc.Tick(m.table.View())
	if err != nil {
		return nil, err
	}
	for i, ev := range events {
		switch p := ev.Payload.(type) {
		case domain.DropChip:
			chip, ok := m.table.Drop(p)
			if !ok {
				m.Dropped++
				continue
			}
			events[i].Payload = ChipDroppedPayload{Chip: chip}
		case domain.Intent:
			if !m.table.Apply(p) {
				m.Dropped++
			}
		}
	}
	return events, nil
}

// TakeDropped returns how many intents were dropped since the last call.
func (m *Match) TakeDropped() int {
	n := m.Dropped - m.reported
	m.reported = m.Dropped
	return n
}

func (m *Match) checkActor(player int, phase domain.Phase) error {
	if !m.started {
		return ErrNotStarted
	}
	if player != m.svc.ActivePlayer() {
		return fmt.Errorf("%w: player %d", ErrNotYourTurn, player)
	}
	if m.svc.Phase() != phase {
		return fmt.Errorf("%w: %s", ErrWrongPhase, m.svc.Phase())
	}
	return nil
}

// State returns a copy of the turn state.
func (m *Match) State() domain.TurnState { return m.svc.State() }

// Rules returns the rules the match is played with.
func (m *Match) Rules() domain.Rules { return m.rules }

// NumPlayers returns the seat count.
func (m *Match) NumPlayers() int { return m.numPlayers }

// Hand returns the player's hand, or nil before Start.
func (m *Match) Hand(player int) []table.Card {
	if m.table == nil {
		return nil
	}
	return m.table.Hand(player)
}

// View returns the current table snapshot.
func (m *Match) View() domain.View {
	if m.table == nil {
		return domain.View{}
	}
	return m.table.View()
}
