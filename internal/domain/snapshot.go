package domain

// CardID identifies a card entity owned by the presentation layer.
type CardID string

// ChipID identifies a chip entity owned by the presentation layer.
type ChipID string

// TableCard is a card committed to a table slot.
type TableCard struct {
	ID    CardID   `json:"id"`
	Kind  CardKind `json:"kind"`
	Owner int      `json:"owner"`
	Slot  int      `json:"slot"`
}

// TableChip is a chip sitting in one of a player's areas.
type TableChip struct {
	ID    ChipID   `json:"id"`
	Type  ChipType `json:"type"`
	Area  Area     `json:"area"`
	Owner int      `json:"owner"`

	// ProductionTurn and SalesTurn record the turn the chip entered each area.
	// SalesTurn is 0 until the chip has been moved to sales.
	ProductionTurn int `json:"production_turn"`
	SalesTurn      int `json:"sales_turn"`

	// SortKey is the chip position along the area's stacking axis.
	SortKey float64 `json:"sort_key"`
}

// PileCard is an undrawn card of the event pile.
type PileCard struct {
	ID      CardID   `json:"id"`
	Kind    CardKind `json:"kind"`
	SortKey float64  `json:"sort_key"`
}

// View is the read-only snapshot the resolver works on for one pass.
type View struct {
	Cards     []TableCard `json:"cards"`
	Chips     []TableChip `json:"chips"`
	EventPile []PileCard  `json:"event_pile"`
}
