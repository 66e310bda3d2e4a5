package ivendorrepo

import (
	"context"

	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
)

// IVendorRepository defines vendor persistence operations.
type IVendorRepository interface {
	// Insert stores a new vendor and returns its id
	Insert(ctx context.Context, v vendor.Vendor) (int64, error)

	// GetByID fetches one vendor
	GetByID(ctx context.Context, id int64) (*vendor.Vendor, error)

	// GetByPhone fetches a vendor by phone number; nil when absent
	GetByPhone(ctx context.Context, phoneNumber string) (*vendor.Vendor, error)

	// ListByApartment returns vendors registered to an apartment
	ListByApartment(ctx context.Context, apartmentID int64) ([]vendor.Vendor, error)

	// UpdateRating overwrites a vendor's running average rating
	UpdateRating(ctx context.Context, id int64, rating float64) error

	// UpdateProfile overwrites a vendor's contact details
	UpdateProfile(ctx context.Context, id int64, email, note string) error
}
