package ireviewrepo

import (
	"context"

	"github.com/tiffinbox/marketplace/internal/service/models/review"
)

// IReviewRepository defines review persistence operations.
type IReviewRepository interface {
	// Insert stores a new review and returns it with its id
	Insert(ctx context.Context, r review.Review) (review.Review, error)

	// ListByVendor returns a vendor's reviews with reviewer names attached
	ListByVendor(ctx context.Context, vendorID int64) ([]review.Review, error)

	// CountByVendor returns how many reviews a vendor has
	CountByVendor(ctx context.Context, vendorID int64) (int, error)
}
