package iledgerrepo

import "context"

// ILedgerRepository tracks remaining purchasable quantity per food item.
type ILedgerRepository interface {
	// Initialize creates the ledger row alongside food item creation
	Initialize(ctx context.Context, foodItemID int64, maxOrders int) error

	// Reserve atomically decrements availableOrders, clamped at zero,
	// and returns the new value
	Reserve(ctx context.Context, foodItemID int64, quantity int) (int, error)

	// SetAvailable overwrites availableOrders with an absolute value
	SetAvailable(ctx context.Context, foodItemID int64, value int) error

	// Query maps food item ids to availableOrders; absent ids report 0
	Query(ctx context.Context, foodItemIDs []int64) (map[int64]int, error)
}
