package bot

import (
	"narcos/internal/app"
	"narcos/internal/domain"
)

type step struct {
	turn  int
	phase domain.Phase
}

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain

	last step
}

// TakeTurn acts for player when it holds an input phase: it draws a hand in
// Prepare, places cards in PlaceCardsOnTable, then asks to advance. The
// advance request is repeated on every call until the dwell window lets it
// through; drawing and placing happen once per phase.
func (a *Agent) TakeTurn(m *app.Match, player int) ([]app.Event, error) {
	st := m.State()
	if st.ActivePlayer != player || !st.Phase.RequiresInput() {
		return nil, nil
	}

	var events []app.Event
	cur := step{turn: st.Turn, phase: st.Phase}
	if a.last != cur {
		a.last = cur
		evs, err := a.act(m, player, st)
		if err != nil {
			return events, err
		}
		events = append(events, evs...)
	}

	evs, err := m.Advance(player)
	if err != nil {
		return events, err
	}
	return append(events, evs...), nil
}

func (a *Agent) act(m *app.Match, player int, st domain.TurnState) ([]app.Event, error) {
	switch st.Phase {
	case domain.PhasePrepare:
		return m.DrawHand(player)
	case domain.PhasePlaceCardsOnTable:
		move, err := a.Strategy.PlaceCards(Situation{
			Player: player,
			Turn:   st.Turn,
			Hand:   m.Hand(player),
			View:   m.View(),
			Rules:  m.Rules(),
		})
		if err != nil {
			return nil, err
		}
		var events []app.Event
		for _, id := range move.Cards {
			evs, err := m.PlaceCard(player, id, 0)
			if err != nil {
				return events, err
			}
			events = append(events, evs...)
		}
		return events, nil
	}
	return nil, nil
}

// Reset forgets what the agent did so a restarted match is played from scratch.
func (a *Agent) Reset() {
	a.last = step{}
}
