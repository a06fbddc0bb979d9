package bot

import (
	"fmt"
	"strings"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelGood BotLevel = iota + 1
	BotLevelSmart
)

// ParseLevel maps an identity difficulty to a level. Unknown values are Good.
func ParseLevel(difficulty string) BotLevel {
	switch strings.ToLower(difficulty) {
	case "smart", "hard", "medium":
		return BotLevelSmart
	default:
		return BotLevelGood
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return &SmartBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
