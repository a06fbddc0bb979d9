package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"narcos/internal/domain"
)

// Capacity overrides the capacity of one transport or sales card kind.
type Capacity struct {
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
}

// EffectDuration overrides how many turns one effect kind lasts.
type EffectDuration struct {
	Kind  string `json:"kind"`
	Turns int    `json:"turns"`
}

type GameConfig struct {
	NumPlayers      int              `json:"num_players"`
	HandSize        int              `json:"hand_size"`
	CapacityUnit    int              `json:"capacity_unit"`
	Capacities      []Capacity       `json:"capacities"`
	SalePrice       int64            `json:"sale_price"`
	PoliceBribe     int64            `json:"police_bribe"`
	EffectDurations []EffectDuration `json:"effect_durations"`
	MinDwellMillis  int              `json:"min_dwell_millis"`
	TickRate        int              `json:"tick_rate"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before filling empty seats with bots.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

const (
	defaultTickRate         = 10
	defaultBotAutoFillDelay = 5
)

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ParseGameConfig decodes and validates a configuration document.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.CapacityUnit < 0 {
		return nil, fmt.Errorf("capacity_unit %d: must not be negative", c.CapacityUnit)
	}
	for _, cp := range c.Capacities {
		if domain.CardKind(cp.Kind).Category() != domain.CategoryTransport && domain.CardKind(cp.Kind).Category() != domain.CategorySales {
			return nil, fmt.Errorf("capacity for %q: not a transport or sales card", cp.Kind)
		}
		if cp.Capacity < 0 {
			return nil, fmt.Errorf("capacity for %q: %d must not be negative", cp.Kind, cp.Capacity)
		}
	}
	for _, d := range c.EffectDurations {
		if _, ok := domain.CardKind(d.Kind).Effect(); !ok {
			return nil, fmt.Errorf("duration for %q: not an effect", d.Kind)
		}
		if d.Turns < 0 {
			return nil, fmt.Errorf("duration for %q: %d must not be negative", d.Kind, d.Turns)
		}
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration, nil before LoadGameConfig.
func GetGameConfig() *GameConfig {
	return cfg
}

// Rules returns the domain rules with every configured value applied over the defaults.
func (c *GameConfig) Rules() domain.Rules {
	r := domain.DefaultRules()
	if c == nil {
		return r
	}
	if c.NumPlayers > 0 {
		r.NumPlayers = c.NumPlayers
	}
	if c.HandSize > 0 {
		r.HandSize = c.HandSize
	}
	if c.CapacityUnit > 0 {
		r.CapacityUnit = c.CapacityUnit
	}
	for _, cp := range c.Capacities {
		r.Capacities[domain.CardKind(cp.Kind)] = cp.Capacity
	}
	if c.SalePrice > 0 {
		r.SalePrice = c.SalePrice
	}
	if c.PoliceBribe > 0 {
		r.PoliceBribe = c.PoliceBribe
	}
	for _, d := range c.EffectDurations {
		kind, _ := domain.CardKind(d.Kind).Effect()
		r.EffectDurations[kind] = d.Turns
	}
	if c.MinDwellMillis > 0 {
		r.MinDwell = time.Duration(c.MinDwellMillis) * time.Millisecond
	}
	return r
}

// GetRules returns the loaded rules, or the defaults when no config was loaded.
func GetRules() domain.Rules {
	return cfg.Rules()
}

// GetTickRate returns the match ticks per second.
func GetTickRate() int {
	if cfg == nil || cfg.TickRate <= 0 {
		return defaultTickRate
	}
	return cfg.TickRate
}

// GetBotAutoFillDelay returns how long a lobby waits before bots fill empty seats.
func GetBotAutoFillDelay() time.Duration {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return defaultBotAutoFillDelay * time.Second
	}
	return time.Duration(cfg.BotAutoFillDelaySeconds) * time.Second
}
