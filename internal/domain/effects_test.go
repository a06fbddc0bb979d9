package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestEffectWindow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		applied := rapid.IntRange(1, 50).Draw(t, "applied")
		duration := rapid.IntRange(1, 10).Draw(t, "duration")
		turn := rapid.IntRange(1, 70).Draw(t, "turn")

		r := NewEffectRegistry()
		r.Add(EffectDrought, 1, applied, duration)

		want := applied <= turn && turn < applied+duration
		if got := r.Has(EffectDrought, 1, turn); got != want {
			t.Fatalf("applied=%d duration=%d turn=%d: active=%v, want %v", applied, duration, turn, got, want)
		}
		if r.Has(EffectDrought, 2, turn) {
			t.Fatalf("effect leaked to another player")
		}
	})
}

func TestEffectSweep(t *testing.T) {
	tests := []struct {
		name        string
		sweepAt     int
		wantRemoved int
		wantLeft    int
	}{
		{name: "nothing expired", sweepAt: 1, wantRemoved: 0, wantLeft: 3},
		{name: "one turn effects expire", sweepAt: 2, wantRemoved: 2, wantLeft: 1},
		{name: "drought expires after three turns", sweepAt: 4, wantRemoved: 3, wantLeft: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEffectRegistry()
			r.Add(EffectAttack, 1, 1, 1)
			r.Add(EffectEspionage, 2, 1, 1)
			r.Add(EffectDrought, 2, 1, 3)

			if got := r.Sweep(tt.sweepAt); got != tt.wantRemoved {
				t.Fatalf("removed %d, want %d", got, tt.wantRemoved)
			}
			if r.Len() != tt.wantLeft {
				t.Fatalf("left %d, want %d", r.Len(), tt.wantLeft)
			}
			if got := r.Sweep(tt.sweepAt); got != 0 {
				t.Fatalf("second sweep removed %d", got)
			}
		})
	}
}
