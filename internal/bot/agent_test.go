package bot

import (
	"math/rand"
	"testing"
	"time"

	"narcos/internal/app"
	"narcos/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestAgentsPlayFullTurns(t *testing.T) {
	rules := domain.DefaultRules()
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	m, err := app.NewMatch(rules, 2, clock, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	m.Start()

	agents := make([]*Agent, 2)
	for i := range agents {
		if agents[i], err = NewAgent(i); err != nil {
			t.Fatalf("NewAgent: %v", err)
		}
	}

	sold := 0
	var credited int64
	for i := 0; i < 5000 && m.State().Turn <= 6; i++ {
		clock.now = clock.now.Add(100 * time.Millisecond)
		player := m.State().ActivePlayer
		if _, err := agents[player-1].TakeTurn(m, player); err != nil {
			t.Fatalf("TakeTurn: %v", err)
		}
		evs, err := m.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		for _, ev := range evs {
			switch ev.Kind {
			case app.EventChipDiscarded:
				sold++
			case app.EventBankChanged:
				if p := ev.Payload.(domain.BankChanged); p.Delta > 0 {
					credited += p.Delta
				}
			}
		}
	}

	st := m.State()
	if st.Turn <= 6 {
		t.Fatalf("bots stalled at turn %d phase %s", st.Turn, st.Phase)
	}
	for _, b := range st.Bank {
		if b < 0 {
			t.Fatalf("negative bank %v", st.Bank)
		}
	}
	if m.Dropped != 0 {
		t.Fatalf("%d intents were not realized", m.Dropped)
	}
	if credited != int64(sold)*rules.SalePrice {
		t.Fatalf("sold %d chips but credited %d", sold, credited)
	}
}

func TestAgentIgnoresOtherPlayersTurn(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	m, _ := app.NewMatch(domain.DefaultRules(), 2, clock, rand.New(rand.NewSource(1)))
	m.Start()

	agent, _ := NewAgent(0)
	evs, err := agent.TakeTurn(m, 2)
	if err != nil || len(evs) != 0 {
		t.Fatalf("acted out of turn: %v %v", evs, err)
	}
}
