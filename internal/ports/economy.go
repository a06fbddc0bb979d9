package ports

//go:generate go tool mockgen -destination=./mocks/economy_mock.go -package=mocks . EconomyPort

import "context"

// WalletUpdate represents a single cash change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort mirrors in-game bank movements to a persistent wallet.
type EconomyPort interface {
	// GetBalance retrieves the current cash balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies multiple wallet changes. Sales and bribes of
	// one match tick are flushed together.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
