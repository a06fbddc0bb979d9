package domain

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestNewMachine(t *testing.T) {
	tests := []struct {
		name       string
		numPlayers int
		wantErr    bool
	}{
		{name: "single player", numPlayers: 1},
		{name: "two players", numPlayers: 2},
		{name: "zero players", numPlayers: 0, wantErr: true},
		{name: "negative players", numPlayers: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMachine(tt.numPlayers)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPlayerCount) {
					t.Fatalf("expected ErrInvalidPlayerCount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Turn() != 1 || m.Phase() != PhasePrepare || m.ActivePlayer() != 1 {
				t.Fatalf("unexpected initial state: turn=%d phase=%s player=%d", m.Turn(), m.Phase(), m.ActivePlayer())
			}
		})
	}
}

func TestMachineCanonicalCycle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "players")
		m, err := NewMachine(n)
		if err != nil {
			t.Fatalf("NewMachine: %v", err)
		}

		cycle := Phases()
		for player := 1; player <= n; player++ {
			for i, want := range cycle {
				if m.Phase() != want {
					t.Fatalf("player %d step %d: phase %s, want %s", player, i, m.Phase(), want)
				}
				if m.ActivePlayer() != player {
					t.Fatalf("step %d: player %d, want %d", i, m.ActivePlayer(), player)
				}
				if _, err := m.Advance(); err != nil {
					t.Fatalf("Advance: %v", err)
				}
			}
		}
		if m.Turn() != 2 || m.ActivePlayer() != 1 || m.Phase() != PhasePrepare {
			t.Fatalf("after one rotation: turn=%d player=%d phase=%s", m.Turn(), m.ActivePlayer(), m.Phase())
		}
	})
}

func TestMachineTurnIncrementsOncePerRotation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "players")
		rotations := rapid.IntRange(1, 4).Draw(t, "rotations")
		m, _ := NewMachine(n)

		switches := 0
		for i := 0; i < rotations*n*len(Phases()); i++ {
			tr, err := m.Advance()
			if err != nil {
				t.Fatalf("Advance: %v", err)
			}
			if tr.PlayerSwitched {
				switches++
			}
		}
		if m.Turn() != 1+rotations {
			t.Fatalf("turn %d, want %d", m.Turn(), 1+rotations)
		}
		wantSwitches := rotations * n
		if n == 1 {
			wantSwitches = 0
		}
		if switches != wantSwitches {
			t.Fatalf("player switches %d, want %d", switches, wantSwitches)
		}
	})
}

func TestMachineAdvanceRejectsInvalidPhase(t *testing.T) {
	m, _ := NewMachine(2)
	m.phase = Phase(42)

	if _, err := m.Advance(); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("expected ErrInvalidPhaseTransition, got %v", err)
	}
	if m.Phase() != Phase(42) {
		t.Fatalf("phase changed on failed advance")
	}
}

func TestMachineSweepsAfterTransition(t *testing.T) {
	m, _ := NewMachine(1)
	m.AddEffect(EffectAttack, 1, 1)

	expired := 0
	for i := 0; i < len(Phases()); i++ {
		tr, err := m.Advance()
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		expired += tr.Expired
	}
	if expired != 1 {
		t.Fatalf("expected the attack effect to expire once, got %d", expired)
	}
	if len(m.Snapshot().Effects) != 0 {
		t.Fatalf("effect still registered after its window")
	}
}

func TestMachineReset(t *testing.T) {
	m, _ := NewMachine(2)
	for i := 0; i < 11; i++ {
		m.Advance()
	}
	m.Credit(2, 300)
	m.AddEffect(EffectDrought, 2, 3)
	m.SetActiveEvent(1, ActiveEvent{Card: "ev-1", Kind: CardDrought})

	m.Reset()

	s := m.Snapshot()
	if s.Turn != 1 || s.Phase != PhasePrepare || s.ActivePlayer != 1 {
		t.Fatalf("unexpected state after reset: %+v", s)
	}
	for p, b := range s.Bank {
		if b != 0 {
			t.Fatalf("player %d bank %d after reset", p+1, b)
		}
	}
	if len(s.Effects) != 0 || len(s.ActiveEvents) != 0 {
		t.Fatalf("effects or events survived reset: %+v", s)
	}
}

func TestClearActiveEventsPlayerOrder(t *testing.T) {
	m, _ := NewMachine(3)
	m.SetActiveEvent(3, ActiveEvent{Card: "c3"})
	m.SetActiveEvent(1, ActiveEvent{Card: "c1"})
	m.SetActiveEvent(2, ActiveEvent{Card: "c2"})

	got := m.ClearActiveEvents()
	want := []CardID{"c1", "c2", "c3"}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Card != want[i] {
			t.Fatalf("event %d: %s, want %s", i, got[i].Card, want[i])
		}
	}
	if _, ok := m.ActiveEvent(1); ok {
		t.Fatalf("events not cleared")
	}
}
