package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidPlayerCount reports a machine built for fewer than one player.
var ErrInvalidPlayerCount = errors.New("invalid player count")

// ActiveEvent is the event card a player drew and has not retired yet.
type ActiveEvent struct {
	Card CardID   `json:"card"`
	Kind CardKind `json:"kind"`
}

// TurnState is a point-in-time copy of the session state.
type TurnState struct {
	Turn         int                 `json:"turn"`
	Phase        Phase               `json:"phase"`
	ActivePlayer int                 `json:"active_player"`
	NumPlayers   int                 `json:"num_players"`
	Bank         []int64             `json:"bank"`
	Effects      []Effect            `json:"effects"`
	ActiveEvents map[int]ActiveEvent `json:"active_events"`
}

// Transition describes one step of the turn cycle.
type Transition struct {
	From           Phase
	To             Phase
	Turn           int
	Player         int
	PlayerSwitched bool
	// Expired is the number of effects the post-transition sweep removed.
	Expired int
}

// Machine is the turn/phase state machine. It owns the bank ledger, the
// effect registry and the active event cards; other components reach them
// only through its methods.
type Machine struct {
	numPlayers int

	turn   int
	phase  Phase
	player int

	ledger  *Ledger
	effects *EffectRegistry
	events  map[int]ActiveEvent
}

// NewMachine returns a machine at turn 1, phase Prepare, player 1.
func NewMachine(numPlayers int) (*Machine, error) {
	if numPlayers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayerCount, numPlayers)
	}
	m := &Machine{
		numPlayers: numPlayers,
		ledger:     NewLedger(numPlayers),
		effects:    NewEffectRegistry(),
	}
	m.Reset()
	return m, nil
}

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.turn = 1
	m.phase = PhasePrepare
	m.player = 1
	m.ledger.ResetAll()
	m.effects.Reset()
	m.events = make(map[int]ActiveEvent)
}

// Advance moves exactly one phase forward. Leaving End hands the turn to the
// next player, and after the last player increments the turn number. The
// effect registry is swept after every transition.
func (m *Machine) Advance() (Transition, error) {
	next, err := m.phase.Next()
	if err != nil {
		return Transition{}, err
	}

	tr := Transition{From: m.phase, To: next}
	if m.phase == PhaseEnd {
		prev := m.player
		if m.player == m.numPlayers {
			m.turn++
			m.player = 1
		} else {
			m.player++
		}
		tr.PlayerSwitched = prev != m.player
	}
	m.phase = next

	tr.Turn = m.turn
	tr.Player = m.player
	tr.Expired = m.effects.Sweep(m.turn)
	return tr, nil
}

func (m *Machine) Phase() Phase      { return m.phase }
func (m *Machine) Turn() int         { return m.turn }
func (m *Machine) ActivePlayer() int { return m.player }
func (m *Machine) NumPlayers() int   { return m.numPlayers }

// IsLastPlayer reports whether the active player closes the rotation.
func (m *Machine) IsLastPlayer() bool {
	return m.player == m.numPlayers
}

// Credit adds to a player's bank.
func (m *Machine) Credit(player int, amount int64) error {
	return m.ledger.Credit(player, amount)
}

// Debit takes from a player's bank, failing instead of going negative.
func (m *Machine) Debit(player int, amount int64) error {
	return m.ledger.Debit(player, amount)
}

// Balance returns a player's bank.
func (m *Machine) Balance(player int) (int64, error) {
	return m.ledger.Balance(player)
}

// AddEffect attaches an effect to a player starting at the current turn.
func (m *Machine) AddEffect(kind EffectKind, owner, duration int) Effect {
	return m.effects.Add(kind, owner, m.turn, duration)
}

// ActiveEffects returns the effects covering the player at the current turn.
func (m *Machine) ActiveEffects(player int) []Effect {
	return m.effects.ActiveFor(player, m.turn)
}

// HasEffect reports whether the player is under an effect of the given kind.
func (m *Machine) HasEffect(kind EffectKind, player int) bool {
	return m.effects.Has(kind, player, m.turn)
}

// ActiveEvent returns the event card the player currently holds on the table.
func (m *Machine) ActiveEvent(player int) (ActiveEvent, bool) {
	ev, ok := m.events[player]
	return ev, ok
}

// SetActiveEvent marks an event card as drawn by the player.
func (m *Machine) SetActiveEvent(player int, ev ActiveEvent) {
	m.events[player] = ev
}

// ClearActiveEvents retires every active event card and returns them in player order.
func (m *Machine) ClearActiveEvents() []ActiveEvent {
	players := make([]int, 0, len(m.events))
	for p := range m.events {
		players = append(players, p)
	}
	sort.Ints(players)

	out := make([]ActiveEvent, 0, len(players))
	for _, p := range players {
		out = append(out, m.events[p])
	}
	m.events = make(map[int]ActiveEvent)
	return out
}

// Snapshot returns a copy of the session state.
func (m *Machine) Snapshot() TurnState {
	events := make(map[int]ActiveEvent, len(m.events))
	for p, ev := range m.events {
		events[p] = ev
	}
	return TurnState{
		Turn:         m.turn,
		Phase:        m.phase,
		ActivePlayer: m.player,
		NumPlayers:   m.numPlayers,
		Bank:         m.ledger.Balances(),
		Effects:      m.effects.All(),
		ActiveEvents: events,
	}
}
