package icustomerrepo

import (
	"context"

	"github.com/tiffinbox/marketplace/internal/service/models/customer"
)

// ICustomerRepository defines customer persistence operations.
type ICustomerRepository interface {
	// Insert stores a new customer and returns its id
	Insert(ctx context.Context, c customer.Customer) (int64, error)

	// GetByID fetches one customer
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)

	// GetByPhone fetches a customer by phone number; nil when absent
	GetByPhone(ctx context.Context, phoneNumber string) (*customer.Customer, error)

	// ListByIDs fetches a batch of customers
	ListByIDs(ctx context.Context, ids []int64) ([]customer.Customer, error)

	// InsertQuery stores a customer support query
	InsertQuery(ctx context.Context, customerID int64, query string) error
}
