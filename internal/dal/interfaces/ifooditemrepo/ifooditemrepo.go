package ifooditemrepo

import (
	"context"
	"time"

	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
)

// IFoodItemRepository defines catalog persistence operations.
type IFoodItemRepository interface {
	// Insert stores a new food item and returns its id
	Insert(ctx context.Context, item fooditem.FoodItem) (int64, error)

	// Update rewrites a food item's descriptive fields
	Update(ctx context.Context, item fooditem.FoodItem) error

	// GetByID fetches one item regardless of visibility
	GetByID(ctx context.Context, id int64) (*fooditem.FoodItem, error)

	// ListByIDs fetches a batch of items regardless of visibility
	ListByIDs(ctx context.Context, ids []int64) ([]fooditem.FoodItem, error)

	// ListVisibleByVendor returns a vendor's visible items
	ListVisibleByVendor(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error)

	// ListByVendor returns all of a vendor's items
	ListByVendor(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error)

	// ListVisibleByApartment returns visible items scoped to an apartment,
	// optionally narrowed to specific ids
	ListVisibleByApartment(ctx context.Context, apartmentID int64, ids []int64) ([]fooditem.FoodItem, error)

	// ListExpiredIDs returns ids of items whose expiry is at or before now
	ListExpiredIDs(ctx context.Context, now time.Time) ([]int64, error)

	// SetVisibility flips the soft-delete flag
	SetVisibility(ctx context.Context, id int64, visible bool) error

	// Delete hard-deletes an item from the catalog
	Delete(ctx context.Context, id int64) error
}
