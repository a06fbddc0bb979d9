package app

import (
	"errors"
	"fmt"
	"time"

	"narcos/internal/domain"
)

var ErrPhaseNotInteractive = errors.New("phase does not accept advance requests")

// Clock abstracts wall time so the dwell window can be tested.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Debouncer enforces a minimum dwell between two transitions. It is not armed
// until the first Mark.
type Debouncer struct {
	window time.Duration
	last   time.Time
	armed  bool
}

// Ready reports whether a transition may happen at now.
func (d *Debouncer) Ready(now time.Time) bool {
	return !d.armed || now.Sub(d.last) >= d.window
}

// Mark records a transition at now.
func (d *Debouncer) Mark(now time.Time) {
	d.last = now
	d.armed = true
}

// Service drives the turn cycle: it owns the machine, runs the resolver once
// per entry into a resolving phase and performs the automatic advance once
// the dwell window elapsed. It is not safe for concurrent use.
type Service struct {
	rules    domain.Rules
	clock    Clock
	machine  *domain.Machine
	resolver *domain.Resolver
	debounce Debouncer

	// resolved is set once the resolver ran for the current phase entry.
	resolved bool
	// pending is set when the current phase finished and waits for its dwell.
	pending bool
}

// NewService constructs a Service for numPlayers. A nil clock uses wall time.
func NewService(rules domain.Rules, numPlayers int, clock Clock) (*Service, error) {
	m, err := domain.NewMachine(numPlayers)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Service{
		rules:    rules,
		clock:    clock,
		machine:  m,
		resolver: domain.NewResolver(rules),
		debounce: Debouncer{window: rules.MinDwell},
	}, nil
}

// RequestAdvance is the external advance signal. It is honoured only in
// phases that wait for input; requests inside the dwell window are dropped
// and return no events.
func (s *Service) RequestAdvance() ([]Event, error) {
	phase := s.machine.Phase()
	if !phase.RequiresInput() {
		return nil, fmt.Errorf("%w: %s", ErrPhaseNotInteractive, phase)
	}
	if !s.debounce.Ready(s.clock.Now()) {
		return nil, nil
	}
	return s.advance()
}

// Tick runs one step of the cycle against a fresh snapshot of the table.
// On the first tick of a resolving phase the resolver runs and its intents
// are returned; the automatic advance happens on a later tick so the caller
// can realize those intents before the next phase resolves.
func (s *Service) Tick(view domain.View) ([]Event, error) {
	phase := s.machine.Phase()
	if phase.Resolves() && !s.resolved {
		s.resolved = true
		s.pending = true
		intents, err := s.resolver.Resolve(s.machine, view)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", phase, err)
		}
		events := make([]Event, 0, len(intents))
		for _, in := range intents {
			if ev, ok := intentEvent(in); ok {
				events = append(events, ev)
			}
		}
		return events, nil
	}

	if s.pending && s.debounce.Ready(s.clock.Now()) {
		return s.advance()
	}
	return nil, nil
}

func (s *Service) advance() ([]Event, error) {
	tr, err := s.machine.Advance()
	if err != nil {
		return nil, err
	}
	s.debounce.Mark(s.clock.Now())
	s.resolved = false
	s.pending = false

	events := []Event{{
		Kind:    EventPhaseChanged,
		Payload: PhaseChangedPayload{From: tr.From, To: tr.To, Player: tr.Player, Turn: tr.Turn},
	}}
	if tr.PlayerSwitched {
		events = append(events, Event{
			Kind:    EventPlayerSwitched,
			Payload: PlayerSwitchedPayload{Player: tr.Player, Turn: tr.Turn},
		})
	}
	return events, nil
}

// State returns a copy of the session state.
func (s *Service) State() domain.TurnState {
	return s.machine.Snapshot()
}

// Phase returns the current phase.
func (s *Service) Phase() domain.Phase {
	return s.machine.Phase()
}

// ActivePlayer returns the player whose turn it is.
func (s *Service) ActivePlayer() int {
	return s.machine.ActivePlayer()
}

// Reset restores the initial state and disarms the dwell window.
func (s *Service) Reset() {
	s.machine.Reset()
	s.debounce = Debouncer{window: s.rules.MinDwell}
	s.resolved = false
	s.pending = false
}
