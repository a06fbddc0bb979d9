package domain

// EffectKind is the type of a timed status effect.
type EffectKind string

const (
	// EffectDrought stops production for its owner.
	EffectDrought     EffectKind = "drought"
	EffectAttack      EffectKind = "attack"
	EffectEspionage   EffectKind = "espionage"
	EffectPoliceBribe EffectKind = "police_bribe"
	EffectBigDeal     EffectKind = "big_deal"
)

// Effect is a status attached to one player for a bounded number of turns.
type Effect struct {
	Kind      EffectKind `json:"kind"`
	Owner     int        `json:"owner"`
	AppliedAt int        `json:"applied_at"`
	Duration  int        `json:"duration"`
}

// ActiveAt reports whether the effect covers turn.
// An effect applied at T with duration D covers T through T+D-1.
func (e Effect) ActiveAt(turn int) bool {
	return e.AppliedAt <= turn && e.AppliedAt+e.Duration > turn
}

// EffectRegistry holds the effects currently attached to players.
type EffectRegistry struct {
	effects []Effect
}

// NewEffectRegistry returns an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{}
}

// Add registers an effect and returns it.
func (r *EffectRegistry) Add(kind EffectKind, owner, appliedAt, duration int) Effect {
	e := Effect{Kind: kind, Owner: owner, AppliedAt: appliedAt, Duration: duration}
	r.effects = append(r.effects, e)
	return e
}

// ActiveFor returns the player's effects that cover turn, in registration order.
func (r *EffectRegistry) ActiveFor(player, turn int) []Effect {
	var out []Effect
	for _, e := range r.effects {
		if e.Owner == player && e.ActiveAt(turn) {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether the player has an active effect of the given kind.
func (r *EffectRegistry) Has(kind EffectKind, player, turn int) bool {
	for _, e := range r.ActiveFor(player, turn) {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Sweep drops every effect whose window ended before turn and returns how many were removed.
// Calling it again with the same turn removes nothing.
func (r *EffectRegistry) Sweep(turn int) int {
	kept := r.effects[:0]
	for _, e := range r.effects {
		if e.AppliedAt+e.Duration > turn {
			kept = append(kept, e)
		}
	}
	removed := len(r.effects) - len(kept)
	clear(r.effects[len(kept):])
	r.effects = kept
	return removed
}

// All returns a copy of every registered effect.
func (r *EffectRegistry) All() []Effect {
	return append([]Effect(nil), r.effects...)
}

// Len returns the number of registered effects.
func (r *EffectRegistry) Len() int {
	return len(r.effects)
}

// Reset removes every effect.
func (r *EffectRegistry) Reset() {
	r.effects = nil
}
