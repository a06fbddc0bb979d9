package domain

import "sort"

// transportCandidates returns the player's production chips that entered
// production before turn.
func transportCandidates(chips []TableChip, player, turn int) []TableChip {
	var out []TableChip
	for _, c := range chips {
		if c.Owner == player && c.Area == AreaProduction && c.ProductionTurn < turn {
			out = append(out, c)
		}
	}
	return out
}

// salesCandidates returns the player's sales chips that entered sales on an
// earlier turn. A zero SalesTurn means the chip never went through transport.
func salesCandidates(chips []TableChip, player, turn int) []TableChip {
	var out []TableChip
	for _, c := range chips {
		if c.Owner == player && c.Area == AreaSales && c.SalesTurn != 0 && c.SalesTurn < turn {
			out = append(out, c)
		}
	}
	return out
}

// pickOrder sorts each chip type by SortKey and interleaves them one for one,
// cocaine first, then drains whichever type is left.
func pickOrder(chips []TableChip, descending bool) []TableChip {
	var a, b []TableChip
	for _, c := range chips {
		if c.Type == ChipCocaine {
			a = append(a, c)
		} else {
			b = append(b, c)
		}
	}
	sortByKey(a, descending)
	sortByKey(b, descending)
	return interleave(a, b)
}

func sortByKey(chips []TableChip, descending bool) {
	sort.SliceStable(chips, func(i, j int) bool {
		if descending {
			return chips[i].SortKey > chips[j].SortKey
		}
		return chips[i].SortKey < chips[j].SortKey
	})
}

func interleave(a, b []TableChip) []TableChip {
	out := make([]TableChip, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		out = append(out, a[i], b[j])
		i++
		j++
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// cardsInCategory returns the player's table cards of one category in slot order.
func cardsInCategory(cards []TableCard, player int, cat Category) []TableCard {
	var out []TableCard
	for _, c := range cards {
		if c.Owner == player && c.Kind.Category() == cat {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}
