package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
)

// LedgerRepository implements the inventory ledger for PostgreSQL.
type LedgerRepository struct {
	client *postgres.Client
}

// NewLedgerRepository creates a new ledger repository.
func NewLedgerRepository(client *postgres.Client) *LedgerRepository {
	return &LedgerRepository{
		client: client,
	}
}

// Initialize creates the ledger row for a freshly listed food item.
func (r *LedgerRepository) Initialize(ctx context.Context, foodItemID int64, maxOrders int) error {
	query, args, err := sq.Insert("max_orders").
		Columns("food_item_id", "available_orders").
		Values(foodItemID, maxOrders).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to initialize ledger entry: %w", err)
	}

	return nil
}

// Reserve decrements availableOrders in a single atomic update, clamped at
// zero. Concurrent reservations on the same item serialize on the row update,
// so the ledger can never go negative or lose a decrement.
func (r *LedgerRepository) Reserve(ctx context.Context, foodItemID int64, quantity int) (int, error) {
	query, args, err := sq.Update("max_orders").
		Set("available_orders", sq.Expr("GREATEST(available_orders - ?, 0)", quantity)).
		Where(sq.Eq{"food_item_id": foodItemID}).
		Suffix("RETURNING available_orders").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build reserve query: %w", err)
	}

	var available int
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&available); err != nil {
		return 0, fmt.Errorf("failed to reserve %d of food item %d: %w", quantity, foodItemID, err)
	}

	return available, nil
}

// SetAvailable overwrites availableOrders; used by stop-orders and resupply.
func (r *LedgerRepository) SetAvailable(ctx context.Context, foodItemID int64, value int) error {
	query, args, err := sq.Update("max_orders").
		Set("available_orders", value).
		Where(sq.Eq{"food_item_id": foodItemID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set available orders: %w", err)
	}

	return nil
}

// Query maps food item ids to their availableOrders. Ids without a ledger row
// are simply absent; callers report those as zero.
func (r *LedgerRepository) Query(ctx context.Context, foodItemIDs []int64) (map[int64]int, error) {
	if len(foodItemIDs) == 0 {
		return map[int64]int{}, nil
	}

	query, args, err := sq.Select("food_item_id", "available_orders").
		From("max_orders").
		Where(sq.Eq{"food_item_id": foodItemIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]int, len(foodItemIDs))
	for rows.Next() {
		var id int64
		var available int
		if err := rows.Scan(&id, &available); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		result[id] = available
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
