package catalogsvc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iapartmentrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/ifooditemrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iledgerrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/ireviewrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/ivendorrepo"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/ledger"
	"github.com/tiffinbox/marketplace/internal/service/models/review"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
)

var ErrNoVendors = errors.New("no vendors found for this apartment")

// CatalogService owns the food item catalog, the availability ledger views
// that annotate it, apartments, vendor listings and reviews.
type CatalogService struct {
	foodItemRepo  ifooditemrepo.IFoodItemRepository
	ledgerRepo    iledgerrepo.ILedgerRepository
	apartmentRepo iapartmentrepo.IApartmentRepository
	vendorRepo    ivendorrepo.IVendorRepository
	reviewRepo    ireviewrepo.IReviewRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithFoodItemRepository(repo ifooditemrepo.IFoodItemRepository) option {
	return func(s *CatalogService) {
		s.foodItemRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithLedgerRepository(repo iledgerrepo.ILedgerRepository) option {
	return func(s *CatalogService) {
		s.ledgerRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithApartmentRepository(repo iapartmentrepo.IApartmentRepository) option {
	return func(s *CatalogService) {
		s.apartmentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithVendorRepository(repo ivendorrepo.IVendorRepository) option {
	return func(s *CatalogService) {
		s.vendorRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithReviewRepository(repo ireviewrepo.IReviewRepository) option {
	return func(s *CatalogService) {
		s.reviewRepo = repo
	}
}

// AddFoodItem stores a new catalog entry and seeds its ledger row with the
// item's maxOrders.
func (s *CatalogService) AddFoodItem(ctx context.Context, item fooditem.FoodItem) (int64, error) {
	item.IsVisible = true
	item.CreatedAt = time.Now()

	id, err := s.foodItemRepo.Insert(ctx, item)
	if err != nil {
		return 0, err
	}

	if err := s.ledgerRepo.Initialize(ctx, id, item.MaxOrders); err != nil {
		return 0, err
	}

	return id, nil
}

// EditFoodItem rewrites a catalog entry and resets the ledger to the new
// maxOrders. Editing re-shows a hidden item.
func (s *CatalogService) EditFoodItem(ctx context.Context, item fooditem.FoodItem) error {
	if err := s.foodItemRepo.Update(ctx, item); err != nil {
		return err
	}

	if err := s.ledgerRepo.SetAvailable(ctx, item.ID, item.MaxOrders); err != nil {
		slog.Error("Failed to sync ledger after edit", "food_item_id", item.ID, "error", err)
	}

	return nil
}

// DeleteFoodItem hard-deletes a catalog entry after checking the item belongs
// to the requesting vendor.
func (s *CatalogService) DeleteFoodItem(ctx context.Context, vendorID, foodItemID int64) error {
	item, err := s.foodItemRepo.GetByID(ctx, foodItemID)
	if err != nil {
		return err
	}
	if item.VendorID != vendorID {
		return vendor.ErrMismatch
	}

	return s.foodItemRepo.Delete(ctx, foodItemID)
}

// VendorFoodItems returns a vendor's visible catalog entries.
func (s *CatalogService) VendorFoodItems(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error) {
	return s.foodItemRepo.ListVisibleByVendor(ctx, vendorID)
}

// ListFoodItems returns visible catalog entries for an apartment annotated
// with their remaining availableOrders. Items without a ledger row report 0.
func (s *CatalogService) ListFoodItems(ctx context.Context, apartmentID int64, ids []int64) ([]fooditem.Annotated, error) {
	items, err := s.foodItemRepo.ListVisibleByApartment(ctx, apartmentID, ids)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i := range items {
		itemIDs[i] = items[i].ID
	}

	available, err := s.ledgerRepo.Query(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	result := make([]fooditem.Annotated, len(items))
	for i := range items {
		result[i] = fooditem.Annotated{
			FoodItem:        items[i],
			AvailableOrders: available[items[i].ID],
		}
	}

	return result, nil
}

// AvailableOrders reports remaining quantity for the requested items in
// request order. Items without a ledger row report 0.
func (s *CatalogService) AvailableOrders(ctx context.Context, foodItemIDs []int64) ([]ledger.Entry, error) {
	available, err := s.ledgerRepo.Query(ctx, foodItemIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, len(foodItemIDs))
	for i, id := range foodItemIDs {
		entries[i] = ledger.Entry{FoodItemID: id, AvailableOrders: available[id]}
	}

	return entries, nil
}

// StopOrders zeroes an item's remaining quantity so further reservations fail.
func (s *CatalogService) StopOrders(ctx context.Context, foodItemID int64) error {
	return s.ledgerRepo.SetAvailable(ctx, foodItemID, 0)
}

// UpdateAvailableOrders overwrites an item's remaining quantity after checking
// the item belongs to the requesting vendor.
func (s *CatalogService) UpdateAvailableOrders(ctx context.Context, vendorID, foodItemID int64, value int) error {
	item, err := s.foodItemRepo.GetByID(ctx, foodItemID)
	if err != nil {
		return err
	}
	if item.VendorID != vendorID {
		return vendor.ErrMismatch
	}

	return s.ledgerRepo.SetAvailable(ctx, foodItemID, value)
}

// ListApartments returns every registered apartment.
func (s *CatalogService) ListApartments(ctx context.Context) ([]apartment.Apartment, error) {
	return s.apartmentRepo.ListAll(ctx)
}

// SaveApartment registers a new apartment.
func (s *CatalogService) SaveApartment(ctx context.Context, a apartment.Apartment) (apartment.Apartment, error) {
	return s.apartmentRepo.Insert(ctx, a)
}

// SearchApartments returns up to limit apartments whose name contains the
// fragment.
func (s *CatalogService) SearchApartments(ctx context.Context, fragment string, limit int) ([]apartment.Apartment, error) {
	return s.apartmentRepo.Search(ctx, fragment, limit)
}

// ListVendors returns vendors registered to an apartment.
func (s *CatalogService) ListVendors(ctx context.Context, apartmentID int64) ([]vendor.Vendor, error) {
	vendors, err := s.vendorRepo.ListByApartment(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, ErrNoVendors
	}

	return vendors, nil
}

// VendorProfile is a vendor together with its apartment and, optionally, its
// reviews.
type VendorProfile struct {
	Vendor    vendor.Vendor        `json:"vendor"`
	Apartment *apartment.Apartment `json:"apartment,omitempty"`
	Reviews   []review.Review      `json:"reviews,omitempty"`
}

// VendorWithReviews returns a vendor's public profile.
func (s *CatalogService) VendorWithReviews(ctx context.Context, vendorID int64, includeReviews bool) (*VendorProfile, error) {
	v, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	profile := &VendorProfile{Vendor: *v}

	a, err := s.apartmentRepo.GetByID(ctx, v.ApartmentID)
	if err != nil {
		slog.Error("Failed to load vendor apartment", "vendor_id", vendorID, "error", err)
	} else {
		profile.Apartment = a
	}

	if includeReviews {
		reviews, err := s.reviewRepo.ListByVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		profile.Reviews = reviews
	}

	return profile, nil
}

// WriteReview stores a review and folds its rating into the vendor's running
// average. Returns the stored review and the vendor's new rating.
func (s *CatalogService) WriteReview(ctx context.Context, rv review.Review) (review.Review, float64, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return review.Review{}, 0, review.ErrRatingOutOfRange
	}

	v, err := s.vendorRepo.GetByID(ctx, rv.VendorID)
	if err != nil {
		return review.Review{}, 0, err
	}

	count, err := s.reviewRepo.CountByVendor(ctx, rv.VendorID)
	if err != nil {
		return review.Review{}, 0, err
	}

	stored, err := s.reviewRepo.Insert(ctx, rv)
	if err != nil {
		return review.Review{}, 0, err
	}

	newRating := review.NextRating(v.Rating, count, rv.Rating)
	if err := s.vendorRepo.UpdateRating(ctx, rv.VendorID, newRating); err != nil {
		return review.Review{}, 0, err
	}

	return stored, newRating, nil
}

// VendorReviews returns a vendor's reviews, newest first.
func (s *CatalogService) VendorReviews(ctx context.Context, vendorID int64) ([]review.Review, error) {
	return s.reviewRepo.ListByVendor(ctx, vendorID)
}
