package domain

import "time"

// Rules holds the tunable constants of the game.
type Rules struct {
	NumPlayers int
	HandSize   int

	// CapacityUnit is the capacity a transport or sales card spends per chip.
	CapacityUnit int
	Capacities   map[CardKind]int

	// SalePrice is credited to the bank for every chip sold.
	SalePrice int64
	// PoliceBribe is the most a police bribe event takes from the bank.
	PoliceBribe int64

	EffectDurations map[EffectKind]int

	// MinDwell is the minimum real time between two phase transitions.
	MinDwell time.Duration
}

// DefaultRules returns the rules of a standard two player game.
func DefaultRules() Rules {
	return Rules{
		NumPlayers:   2,
		HandSize:     5,
		CapacityUnit: 10,
		Capacities: map[CardKind]int{
			CardTruck:       20,
			CardTrain:       50,
			CardExport:      50,
			CardLocalMarket: 10,
		},
		SalePrice:   100,
		PoliceBribe: 100,
		EffectDurations: map[EffectKind]int{
			EffectDrought:     3,
			EffectAttack:      1,
			EffectEspionage:   1,
			EffectPoliceBribe: 1,
			EffectBigDeal:     1,
		},
		MinDwell: 300 * time.Millisecond,
	}
}

// Capacity returns the capacity of a transport or sales card, 0 for any other kind.
func (r Rules) Capacity(kind CardKind) int {
	return r.Capacities[kind]
}

// ChipsPerCard is how many chips a card of the given kind can act on.
func (r Rules) ChipsPerCard(kind CardKind) int {
	if r.CapacityUnit <= 0 {
		return 0
	}
	return max(0, r.Capacity(kind)/r.CapacityUnit)
}

// Duration returns how many turns an effect of the given kind lasts.
func (r Rules) Duration(kind EffectKind) int {
	if d, ok := r.EffectDurations[kind]; ok && d > 0 {
		return d
	}
	return 1
}
