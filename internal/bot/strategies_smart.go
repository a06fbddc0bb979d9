package bot

import (
	"sort"

	"narcos/internal/domain"
	"narcos/internal/table"
)

// SmartBot always places production cards but only spends transport and
// sales cards when chips exist that they can act on this turn.
type SmartBot struct{}

func (b *SmartBot) PlaceCards(s Situation) (Move, error) {
	free := table.TableSlots - ownCards(s)
	toMove, toSell := 0, 0
	for _, c := range s.View.Chips {
		if c.Owner != s.Player {
			continue
		}
		switch {
		case c.Area == domain.AreaProduction && c.ProductionTurn < s.Turn:
			toMove++
		case c.Area == domain.AreaSales && c.SalesTurn != 0 && c.SalesTurn < s.Turn:
			toSell++
		}
	}

	var move Move
	for _, c := range byCategory(s.Hand, s.Rules) {
		if len(move.Cards) >= free {
			break
		}
		switch c.Kind.Category() {
		case domain.CategoryProduction:
		case domain.CategoryTransport:
			if toMove <= 0 {
				continue
			}
			toMove -= s.Rules.ChipsPerCard(c.Kind)
		case domain.CategorySales:
			if toSell <= 0 {
				continue
			}
			toSell -= s.Rules.ChipsPerCard(c.Kind)
		default:
			continue
		}
		move.Cards = append(move.Cards, c.ID)
	}
	return move, nil
}

// byCategory orders a hand production, transport, sales, biggest capacity
// first within a category. Event cards are dropped.
func byCategory(hand []table.Card, rules domain.Rules) []table.Card {
	out := make([]table.Card, 0, len(hand))
	for _, c := range hand {
		if c.Kind.Category() != domain.CategoryEvent {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := out[i].Kind.Category(), out[j].Kind.Category()
		if ci != cj {
			return ci < cj
		}
		return rules.Capacity(out[i].Kind) > rules.Capacity(out[j].Kind)
	})
	return out
}

func ownCards(s Situation) int {
	n := 0
	for _, c := range s.View.Cards {
		if c.Owner == s.Player && c.Slot != domain.EventSlot {
			n++
		}
	}
	return n
}
