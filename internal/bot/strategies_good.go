package bot

import "narcos/internal/table"

// GoodBot places every card it holds, production first, until the table is full.
type GoodBot struct{}

func (b *GoodBot) PlaceCards(s Situation) (Move, error) {
	free := table.TableSlots - ownCards(s)
	var move Move
	for _, c := range byCategory(s.Hand, s.Rules) {
		if len(move.Cards) >= free {
			break
		}
		move.Cards = append(move.Cards, c.ID)
	}
	return move, nil
}
