package bot

import (
	"testing"

	"narcos/internal/domain"
	"narcos/internal/table"
)

func hand(kinds ...domain.CardKind) []table.Card {
	out := make([]table.Card, len(kinds))
	for i, k := range kinds {
		out[i] = table.Card{ID: domain.CardID(string(k) + "-" + string(rune('a'+i))), Kind: k, Location: table.LocationHand, Owner: 1}
	}
	return out
}

func placedKinds(s Situation, move Move) []domain.CardKind {
	byID := make(map[domain.CardID]domain.CardKind)
	for _, c := range s.Hand {
		byID[c.ID] = c.Kind
	}
	out := make([]domain.CardKind, 0, len(move.Cards))
	for _, id := range move.Cards {
		out = append(out, byID[id])
	}
	return out
}

func TestBrainPlaceCards(t *testing.T) {
	rules := domain.DefaultRules()
	oldChips := domain.View{Chips: []domain.TableChip{
		{ID: "p1", Type: domain.ChipCocaine, Area: domain.AreaProduction, Owner: 1, ProductionTurn: 1},
		{ID: "s1", Type: domain.ChipCannabis, Area: domain.AreaSales, Owner: 1, ProductionTurn: 1, SalesTurn: 1},
	}}
	full := domain.View{Cards: []domain.TableCard{
		{ID: "t1", Kind: domain.CardTruck, Owner: 1, Slot: 1},
		{ID: "t2", Kind: domain.CardTruck, Owner: 1, Slot: 2},
		{ID: "t3", Kind: domain.CardTruck, Owner: 1, Slot: 3},
		{ID: "t4", Kind: domain.CardTruck, Owner: 1, Slot: 4},
		{ID: "ev", Kind: domain.CardAttack, Owner: 1, Slot: domain.EventSlot},
	}}

	tests := []struct {
		name  string
		level BotLevel
		hand  []table.Card
		view  domain.View
		want  []domain.CardKind
	}{
		{
			name:  "good places everything production first",
			level: BotLevelGood,
			hand:  hand(domain.CardExport, domain.CardTruck, domain.CardCocaine),
			want:  []domain.CardKind{domain.CardCocaine, domain.CardTruck, domain.CardExport},
		},
		{
			name:  "good respects free slots",
			level: BotLevelGood,
			hand:  hand(domain.CardTrain, domain.CardMarijuana),
			view:  full,
			want:  []domain.CardKind{domain.CardMarijuana},
		},
		{
			name:  "smart skips transport and sales on an empty board",
			level: BotLevelSmart,
			hand:  hand(domain.CardTruck, domain.CardLocalMarket, domain.CardCocaine),
			want:  []domain.CardKind{domain.CardCocaine},
		},
		{
			name:  "smart spends one card per pending chip group",
			level: BotLevelSmart,
			hand:  hand(domain.CardTruck, domain.CardTrain, domain.CardLocalMarket, domain.CardExport),
			view:  oldChips,
			want:  []domain.CardKind{domain.CardTrain, domain.CardExport},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brain, err := NewBrain(tt.level)
			if err != nil {
				t.Fatalf("NewBrain: %v", err)
			}
			s := Situation{Player: 1, Turn: 2, Hand: tt.hand, View: tt.view, Rules: rules}
			move, err := brain.PlaceCards(s)
			if err != nil {
				t.Fatalf("PlaceCards: %v", err)
			}
			got := placedKinds(s, move)
			if len(got) != len(tt.want) {
				t.Fatalf("placed %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("placed %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestNewBrainUnknownLevel(t *testing.T) {
	if _, err := NewBrain(BotLevel(99)); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]BotLevel{
		"smart":  BotLevelSmart,
		"Hard":   BotLevelSmart,
		"good":   BotLevelGood,
		"":       BotLevelGood,
		"insane": BotLevelGood,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
