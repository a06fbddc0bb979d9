package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrNegativeAmount    = errors.New("negative amount")
)

// Ledger keeps one bank balance per player. Balances never go below zero.
type Ledger struct {
	bank []int64
}

// NewLedger returns a ledger with a zero balance for each of numPlayers.
func NewLedger(numPlayers int) *Ledger {
	return &Ledger{bank: make([]int64, numPlayers)}
}

// Credit adds amount to the player's balance.
func (l *Ledger) Credit(player int, amount int64) error {
	if err := l.check(player, amount); err != nil {
		return err
	}
	l.bank[player-1] += amount
	return nil
}

// Debit removes amount from the player's balance.
// It fails with ErrInsufficientFunds rather than going negative.
func (l *Ledger) Debit(player int, amount int64) error {
	if err := l.check(player, amount); err != nil {
		return err
	}
	if amount > l.bank[player-1] {
		return fmt.Errorf("%w: player %d has %d, needs %d", ErrInsufficientFunds, player, l.bank[player-1], amount)
	}
	l.bank[player-1] -= amount
	return nil
}

// Balance returns the player's current balance.
func (l *Ledger) Balance(player int) (int64, error) {
	if err := l.check(player, 0); err != nil {
		return 0, err
	}
	return l.bank[player-1], nil
}

// Balances returns a copy of every balance in player order.
func (l *Ledger) Balances() []int64 {
	return append([]int64(nil), l.bank...)
}

// ResetAll zeroes every balance.
func (l *Ledger) ResetAll() {
	for i := range l.bank {
		l.bank[i] = 0
	}
}

func (l *Ledger) check(player int, amount int64) error {
	if player < 1 || player > len(l.bank) {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, player)
	}
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}
	return nil
}
