package bot

import (
	"narcos/internal/domain"
	"narcos/internal/table"
)

// Situation is what a bot sees when it has to place cards.
type Situation struct {
	Player int
	Turn   int
	Hand   []table.Card
	View   domain.View
	Rules  domain.Rules
}

// Move represents the decision made by the AI.
type Move struct {
	Cards []domain.CardID
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	PlaceCards(s Situation) (Move, error)
}
