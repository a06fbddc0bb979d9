package domain

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestLedger(t *testing.T) {
	tests := []struct {
		name    string
		ops     func(l *Ledger) error
		player  int
		want    int64
		wantErr error
	}{
		{
			name:   "credit",
			ops:    func(l *Ledger) error { return l.Credit(1, 250) },
			player: 1,
			want:   250,
		},
		{
			name: "debit within balance",
			ops: func(l *Ledger) error {
				l.Credit(2, 100)
				return l.Debit(2, 40)
			},
			player: 2,
			want:   60,
		},
		{
			name: "overdraft refused",
			ops: func(l *Ledger) error {
				l.Credit(1, 50)
				return l.Debit(1, 51)
			},
			player:  1,
			want:    50,
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "unknown player",
			ops:     func(l *Ledger) error { return l.Credit(3, 10) },
			player:  1,
			wantErr: ErrUnknownPlayer,
		},
		{
			name:    "negative amount",
			ops:     func(l *Ledger) error { return l.Debit(1, -5) },
			player:  1,
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(2)
			err := tt.ops(l)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := l.Balance(tt.player)
			if err != nil {
				t.Fatalf("Balance: %v", err)
			}
			if got != tt.want {
				t.Fatalf("balance %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLedger(1)
		start := rapid.Int64Range(0, 10_000).Draw(t, "start")
		x := rapid.Int64Range(0, 10_000).Draw(t, "x")
		l.Credit(1, start)

		if err := l.Credit(1, x); err != nil {
			t.Fatalf("Credit: %v", err)
		}
		if err := l.Debit(1, x); err != nil {
			t.Fatalf("Debit: %v", err)
		}
		if got, _ := l.Balance(1); got != start {
			t.Fatalf("balance %d, want %d", got, start)
		}
	})
}

func TestLedgerNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewLedger(1)
		ops := rapid.SliceOf(rapid.Int64Range(-500, 500)).Draw(t, "ops")
		for _, op := range ops {
			if op >= 0 {
				l.Credit(1, op)
			} else {
				l.Debit(1, -op)
			}
			if got, _ := l.Balance(1); got < 0 {
				t.Fatalf("balance went negative: %d", got)
			}
		}
	})
}

func TestLedgerResetAll(t *testing.T) {
	l := NewLedger(3)
	l.Credit(1, 10)
	l.Credit(3, 30)
	l.ResetAll()
	for i, b := range l.Balances() {
		if b != 0 {
			t.Fatalf("player %d balance %d after reset", i+1, b)
		}
	}
}
