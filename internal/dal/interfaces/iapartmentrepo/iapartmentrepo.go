package iapartmentrepo

import (
	"context"

	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
)

// IApartmentRepository defines apartment persistence operations.
type IApartmentRepository interface {
	// Insert stores a new apartment and returns it with its id
	Insert(ctx context.Context, a apartment.Apartment) (apartment.Apartment, error)

	// GetByID fetches one apartment
	GetByID(ctx context.Context, id int64) (*apartment.Apartment, error)

	// ListAll returns every apartment
	ListAll(ctx context.Context) ([]apartment.Apartment, error)

	// Search returns apartments whose name contains the fragment
	Search(ctx context.Context, fragment string, limit int) ([]apartment.Apartment, error)
}
