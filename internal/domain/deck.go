package domain

import "math/rand"

// MainDeckComposition lists the main deck cards contributed by each player.
var MainDeckComposition = []CardKind{
	CardCocaine, CardCocaine,
	CardMarijuana, CardMarijuana,
	CardTruck, CardTruck,
	CardTrain,
	CardLocalMarket, CardLocalMarket,
	CardExport,
}

// EventDeckComposition lists the event pile cards contributed by each player.
var EventDeckComposition = []CardKind{
	CardEspionage,
	CardAttack,
	CardPoliceBribe,
	CardDrought,
	CardBigDeal,
}

// NewDeck returns the ordered main deck for numPlayers.
func NewDeck(numPlayers int) []CardKind {
	return repeatComposition(MainDeckComposition, numPlayers)
}

// NewEventDeck returns the ordered event pile for numPlayers.
func NewEventDeck(numPlayers int) []CardKind {
	return repeatComposition(EventDeckComposition, numPlayers)
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []CardKind, rng *rand.Rand) []CardKind {
	out := make([]CardKind, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func repeatComposition(kinds []CardKind, n int) []CardKind {
	out := make([]CardKind, 0, len(kinds)*max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, kinds...)
	}
	return out
}
