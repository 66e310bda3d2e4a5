package iorderrepo

import (
	"context"

	"github.com/tiffinbox/marketplace/internal/service/models/order"
)

// IOrderRepository defines order aggregate persistence operations.
type IOrderRepository interface {
	// Insert stores a new order and returns it with its id
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// GetByID fetches one order
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// ListByIDs fetches a batch of orders
	ListByIDs(ctx context.Context, ids []int64) ([]order.Order, error)

	// ListByCustomer returns a customer's orders
	ListByCustomer(ctx context.Context, customerID int64) ([]order.Order, error)

	// ListByApartment returns every order scoped to an apartment
	ListByApartment(ctx context.Context, apartmentID int64) ([]order.Order, error)

	// ListAll returns every order; used by the expiry sweep
	ListAll(ctx context.Context) ([]order.Order, error)

	// UpdateLines rewrites one order's line collection
	UpdateLines(ctx context.Context, orderID int64, lines []string) error

	// BulkUpsertLines rewrites line collections for a batch of orders in a
	// single statement with conflict target = primary key
	BulkUpsertLines(ctx context.Context, orders []order.Order) error
}
