package app

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"narcos/internal/domain"
	"narcos/internal/table"
)

const dwell = 300 * time.Millisecond

func newTestMatch(t *testing.T, players int, seed int64) (*Match, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	m, err := NewMatch(domain.DefaultRules(), players, clock, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return m, clock
}

// stepInto ticks the match until it enters phase and returns the events of
// that phase's resolver pass.
func stepInto(t *testing.T, m *Match, clock *fakeClock, phase domain.Phase) []Event {
	t.Helper()
	for i := 0; i < 50 && m.State().Phase != phase; i++ {
		clock.advance(dwell)
		if _, err := m.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if m.State().Phase != phase {
		t.Fatalf("never reached %s, stuck at %s", phase, m.State().Phase)
	}
	evs, err := m.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return evs
}

func findCard(hand []table.Card, kind domain.CardKind) (table.Card, bool) {
	for _, c := range hand {
		if c.Kind == kind {
			return c, true
		}
	}
	return table.Card{}, false
}

func topEvent(v domain.View) domain.CardKind {
	var top domain.PileCard
	for i, c := range v.EventPile {
		if i == 0 || c.SortKey > top.SortKey {
			top = c
		}
	}
	return top.Kind
}

func TestMatchCommandsRequireTurnAndPhase(t *testing.T) {
	m, _ := newTestMatch(t, 2, 1)

	if _, err := m.DrawHand(1); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	m.Start()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{name: "draw out of turn", run: func() error { _, err := m.DrawHand(2); return err }, wantErr: ErrNotYourTurn},
		{name: "place in prepare", run: func() error { _, err := m.PlaceCard(1, "x", 0); return err }, wantErr: ErrWrongPhase},
		{name: "advance out of turn", run: func() error { _, err := m.Advance(2); return err }, wantErr: ErrNotYourTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	evs, err := m.DrawHand(1)
	if err != nil {
		t.Fatalf("DrawHand: %v", err)
	}
	if len(evs) != 1 || evs[0].Kind != EventHandDealt || len(evs[0].Recipients) != 1 || evs[0].Recipients[0] != 1 {
		t.Fatalf("unexpected hand events %+v", evs)
	}
}

func TestMatchTwoPlayerProductionScenario(t *testing.T) {
	var (
		m     *Match
		clock *fakeClock
		coke  table.Card
	)
	for seed := int64(1); seed < 200; seed++ {
		m, clock = newTestMatch(t, 2, seed)
		m.Start()
		m.DrawHand(1)
		c, ok := findCard(m.Hand(1), domain.CardCocaine)
		if ok && topEvent(m.View()) != domain.CardDrought {
			coke = c
			break
		}
		m = nil
	}
	if m == nil {
		t.Fatal("no seed dealt a cocaine card without a drought on top")
	}

	if _, err := m.Advance(1); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := m.PlaceCard(1, coke.ID, 0); err != nil {
		t.Fatalf("PlaceCard: %v", err)
	}
	clock.advance(dwell)
	if _, err := m.Advance(1); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	evs := stepInto(t, m, clock, domain.PhaseApplyProductionCards)
	if countKind(evs, EventChipDropped) != 1 || countKind(evs, EventBankChanged) != 0 {
		t.Fatalf("production events %+v", evs)
	}
	drop := evs[0].Payload.(ChipDroppedPayload)
	if drop.Chip.Type != domain.ChipCocaine || drop.Chip.Area != domain.AreaProduction || drop.Chip.Owner != 1 || drop.Chip.ID == "" {
		t.Fatalf("unexpected chip %+v", drop.Chip)
	}

	evs = stepInto(t, m, clock, domain.PhaseApplyTransportationCards)
	if countKind(evs, EventChipMoved) != 0 {
		t.Fatalf("fresh chip was transported: %+v", evs)
	}
	if bank := m.State().Bank; bank[0] != 0 || bank[1] != 0 {
		t.Fatalf("banks changed: %v", bank)
	}
	if m.Dropped != 0 {
		t.Fatalf("%d intents were not realized", m.Dropped)
	}
}

func TestMatchRetiresPlacedCards(t *testing.T) {
	m, clock := newTestMatch(t, 1, 5)
	m.Start()
	m.DrawHand(1)
	m.Advance(1)
	for _, c := range m.Hand(1) {
		if _, err := m.PlaceCard(1, c.ID, 0); err != nil {
			t.Fatalf("PlaceCard: %v", err)
		}
	}
	clock.advance(dwell)
	m.Advance(1)

	stepInto(t, m, clock, domain.PhaseEnd)
	for _, c := range m.View().Cards {
		if c.Slot != domain.EventSlot {
			t.Fatalf("card %s still on slot %d after the turn", c.Kind, c.Slot)
		}
	}
	if m.Dropped != 0 {
		t.Fatalf("%d intents were not realized", m.Dropped)
	}
}

func TestMatchTakeDropped(t *testing.T) {
	m, _ := newTestMatch(t, 1, 5)
	m.Start()

	m.Dropped += 2
	if got := m.TakeDropped(); got != 2 {
		t.Fatalf("TakeDropped = %d, want 2", got)
	}
	if got := m.TakeDropped(); got != 0 {
		t.Fatalf("second TakeDropped = %d, want 0", got)
	}
	m.Dropped++
	if got := m.TakeDropped(); got != 1 {
		t.Fatalf("TakeDropped after one more = %d, want 1", got)
	}

	m.Start()
	if m.Dropped != 0 || m.TakeDropped() != 0 {
		t.Fatalf("Start kept the dropped count")
	}
}
