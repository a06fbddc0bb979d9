package domain

// Intent is an instruction the resolver emits for the presentation layer.
type Intent interface {
	intent()
}

// DropChip asks for a new chip in one of the player's areas.
type DropChip struct {
	Type   ChipType `json:"type"`
	Area   Area     `json:"area"`
	Player int      `json:"player"`
	Turn   int      `json:"turn"`
}

// MoveChip asks for an existing chip to be reassigned to another area.
type MoveChip struct {
	Chip   ChipID `json:"chip"`
	Area   Area   `json:"area"`
	Player int    `json:"player"`
	Turn   int    `json:"turn"`
}

// DiscardChip asks for a chip to leave the table.
type DiscardChip struct {
	Chip ChipID `json:"chip"`
}

// RetireCard asks for a card to leave the table for a pile.
type RetireCard struct {
	Card CardID `json:"card"`
	Pile Pile   `json:"pile"`
}

// DrawEventCard asks for an event card to move from the pile onto the event slot.
type DrawEventCard struct {
	Card   CardID   `json:"card"`
	Kind   CardKind `json:"kind"`
	Player int      `json:"player"`
	Slot   int      `json:"slot"`
}

// BankChanged reports a bank credit (positive delta) or debit (negative delta).
type BankChanged struct {
	Player  int   `json:"player"`
	Delta   int64 `json:"delta"`
	Balance int64 `json:"balance"`
}

// EffectApplied reports a status effect attached to a player.
type EffectApplied struct {
	Effect Effect `json:"effect"`
}

func (DropChip) intent()      {}
func (MoveChip) intent()      {}
func (DiscardChip) intent()   {}
func (RetireCard) intent()    {}
func (DrawEventCard) intent() {}
func (BankChanged) intent()   {}
func (EffectApplied) intent() {}
