package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/service/models/order"
)

var orderColumns = []string{
	"order_id",
	"customer_id",
	"apartment_id",
	"payment_id",
	"food_item_lines",
	"created_at",
	"updated_at",
}

// OrderRepository implements the order aggregate repository for PostgreSQL.
// Line collections are stored as text[] of encoded order-line records.
type OrderRepository struct {
	client *postgres.Client
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// Insert stores a new order and returns it with its id.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns("customer_id", "apartment_id", "payment_id", "food_item_lines", "created_at", "updated_at").
		Values(o.CustomerID, o.ApartmentID, o.PaymentID, o.Lines, o.CreatedAt, o.UpdatedAt).
		Suffix("RETURNING order_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// GetByID fetches one order.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := scanOrder(r.client.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// ListByIDs fetches a batch of orders.
func (r *OrderRepository) ListByIDs(ctx context.Context, ids []int64) ([]order.Order, error) {
	if len(ids) == 0 {
		return []order.Order{}, nil
	}

	return r.list(ctx, sq.Eq{"order_id": ids})
}

// ListByCustomer returns a customer's orders.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]order.Order, error) {
	return r.list(ctx, sq.Eq{"customer_id": customerID})
}

// ListByApartment returns every order scoped to an apartment.
func (r *OrderRepository) ListByApartment(ctx context.Context, apartmentID int64) ([]order.Order, error) {
	return r.list(ctx, sq.Eq{"apartment_id": apartmentID})
}

// ListAll returns every order; the expiry sweep scans the whole table.
func (r *OrderRepository) ListAll(ctx context.Context) ([]order.Order, error) {
	return r.list(ctx, nil)
}

func (r *OrderRepository) list(ctx context.Context, cond sq.Sqlizer) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("order_id ASC").
		PlaceholderFormat(sq.Dollar)
	if cond != nil {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateLines rewrites one order's line collection.
func (r *OrderRepository) UpdateLines(ctx context.Context, orderID int64, lines []string) error {
	query, args, err := sq.Update("orders").
		Set("food_item_lines", lines).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"order_id": orderID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order lines: %w", err)
	}

	return nil
}

// BulkUpsertLines rewrites line collections for a batch of orders in one
// statement. Either every order in the batch is durably rewritten or none is.
func (r *OrderRepository) BulkUpsertLines(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	builder := sq.Insert("orders").
		Columns("order_id", "customer_id", "apartment_id", "payment_id", "food_item_lines", "created_at", "updated_at")
	for _, o := range orders {
		builder = builder.Values(o.ID, o.CustomerID, o.ApartmentID, o.PaymentID, o.Lines, o.CreatedAt, o.UpdatedAt)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (order_id) DO UPDATE SET food_item_lines = EXCLUDED.food_item_lines, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk upsert orders: %w", err)
	}

	return nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.ApartmentID,
		&o.PaymentID,
		&o.Lines,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &o, nil
}
