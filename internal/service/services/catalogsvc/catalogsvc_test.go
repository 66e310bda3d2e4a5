package catalogsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/review"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/service/services/catalogsvc"
)

type fakeFoodItemRepo struct {
	items  map[int64]fooditem.FoodItem
	nextID int64
}

func (f *fakeFoodItemRepo) Insert(_ context.Context, item fooditem.FoodItem) (int64, error) {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = item

	return item.ID, nil
}

func (f *fakeFoodItemRepo) Update(_ context.Context, item fooditem.FoodItem) error {
	stored, ok := f.items[item.ID]
	if !ok {
		return fooditem.ErrNotFound
	}
	item.VendorID = stored.VendorID
	item.ApartmentID = stored.ApartmentID
	item.IsVisible = true
	f.items[item.ID] = item

	return nil
}

func (f *fakeFoodItemRepo) GetByID(_ context.Context, id int64) (*fooditem.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, fooditem.ErrNotFound
	}

	return &item, nil
}

func (f *fakeFoodItemRepo) ListByIDs(_ context.Context, ids []int64) ([]fooditem.FoodItem, error) {
	var result []fooditem.FoodItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			result = append(result, item)
		}
	}

	return result, nil
}

func (f *fakeFoodItemRepo) ListVisibleByVendor(_ context.Context, vendorID int64) ([]fooditem.FoodItem, error) {
	var result []fooditem.FoodItem
	for _, item := range f.items {
		if item.VendorID == vendorID && item.IsVisible {
			result = append(result, item)
		}
	}

	return result, nil
}

func (f *fakeFoodItemRepo) ListByVendor(_ context.Context, vendorID int64) ([]fooditem.FoodItem, error) {
	var result []fooditem.FoodItem
	for _, item := range f.items {
		if item.VendorID == vendorID {
			result = append(result, item)
		}
	}

	return result, nil
}

func (f *fakeFoodItemRepo) ListVisibleByApartment(_ context.Context, apartmentID int64, ids []int64) ([]fooditem.FoodItem, error) {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var result []fooditem.FoodItem
	for _, item := range f.items {
		if item.ApartmentID != apartmentID || !item.IsVisible {
			continue
		}
		if len(ids) > 0 {
			if _, ok := wanted[item.ID]; !ok {
				continue
			}
		}
		result = append(result, item)
	}

	return result, nil
}

func (f *fakeFoodItemRepo) ListExpiredIDs(_ context.Context, _ time.Time) ([]int64, error) {
	return nil, nil
}

func (f *fakeFoodItemRepo) SetVisibility(_ context.Context, id int64, visible bool) error {
	item, ok := f.items[id]
	if !ok {
		return fooditem.ErrNotFound
	}
	item.IsVisible = visible
	f.items[id] = item

	return nil
}

func (f *fakeFoodItemRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)

	return nil
}

type fakeLedgerRepo struct {
	available map[int64]int
}

func (f *fakeLedgerRepo) Initialize(_ context.Context, foodItemID int64, maxOrders int) error {
	f.available[foodItemID] = maxOrders

	return nil
}

func (f *fakeLedgerRepo) Reserve(_ context.Context, foodItemID int64, quantity int) (int, error) {
	next := f.available[foodItemID] - quantity
	if next < 0 {
		next = 0
	}
	f.available[foodItemID] = next

	return next, nil
}

func (f *fakeLedgerRepo) SetAvailable(_ context.Context, foodItemID int64, value int) error {
	f.available[foodItemID] = value

	return nil
}

func (f *fakeLedgerRepo) Query(_ context.Context, foodItemIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int)
	for _, id := range foodItemIDs {
		if v, ok := f.available[id]; ok {
			result[id] = v
		}
	}

	return result, nil
}

type fakeApartmentRepo struct {
	apartments map[int64]apartment.Apartment
}

func (f *fakeApartmentRepo) Insert(_ context.Context, a apartment.Apartment) (apartment.Apartment, error) {
	a.ID = int64(len(f.apartments) + 1)
	f.apartments[a.ID] = a

	return a, nil
}

func (f *fakeApartmentRepo) GetByID(_ context.Context, id int64) (*apartment.Apartment, error) {
	a, ok := f.apartments[id]
	if !ok {
		return nil, apartment.ErrNotFound
	}

	return &a, nil
}

func (f *fakeApartmentRepo) ListAll(_ context.Context) ([]apartment.Apartment, error) {
	var result []apartment.Apartment
	for _, a := range f.apartments {
		result = append(result, a)
	}

	return result, nil
}

func (f *fakeApartmentRepo) Search(_ context.Context, _ string, _ int) ([]apartment.Apartment, error) {
	return nil, nil
}

type fakeVendorRepo struct {
	vendors map[int64]vendor.Vendor
}

func (f *fakeVendorRepo) Insert(_ context.Context, v vendor.Vendor) (int64, error) {
	f.vendors[v.ID] = v

	return v.ID, nil
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}

	return &v, nil
}

func (f *fakeVendorRepo) GetByPhone(_ context.Context, _ string) (*vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) ListByApartment(_ context.Context, apartmentID int64) ([]vendor.Vendor, error) {
	var result []vendor.Vendor
	for _, v := range f.vendors {
		if v.ApartmentID == apartmentID {
			result = append(result, v)
		}
	}

	return result, nil
}

func (f *fakeVendorRepo) UpdateRating(_ context.Context, id int64, rating float64) error {
	v := f.vendors[id]
	v.Rating = rating
	f.vendors[id] = v

	return nil
}

func (f *fakeVendorRepo) UpdateProfile(_ context.Context, id int64, email, note string) error {
	v := f.vendors[id]
	v.Email = email
	v.Note = note
	f.vendors[id] = v

	return nil
}

type fakeReviewRepo struct {
	reviews []review.Review
}

func (f *fakeReviewRepo) Insert(_ context.Context, rv review.Review) (review.Review, error) {
	rv.ID = int64(len(f.reviews) + 1)
	rv.CreatedAt = time.Now()
	f.reviews = append(f.reviews, rv)

	return rv, nil
}

func (f *fakeReviewRepo) ListByVendor(_ context.Context, vendorID int64) ([]review.Review, error) {
	var result []review.Review
	for _, rv := range f.reviews {
		if rv.VendorID == vendorID {
			result = append(result, rv)
		}
	}

	return result, nil
}

func (f *fakeReviewRepo) CountByVendor(_ context.Context, vendorID int64) (int, error) {
	count := 0
	for _, rv := range f.reviews {
		if rv.VendorID == vendorID {
			count++
		}
	}

	return count, nil
}

func newCatalog() (*catalogsvc.CatalogService, *fakeFoodItemRepo, *fakeLedgerRepo, *fakeVendorRepo, *fakeReviewRepo) {
	foodItemRepo := &fakeFoodItemRepo{items: make(map[int64]fooditem.FoodItem)}
	ledgerRepo := &fakeLedgerRepo{available: make(map[int64]int)}
	apartmentRepo := &fakeApartmentRepo{apartments: map[int64]apartment.Apartment{
		1: {ID: 1, Name: "Green Residency", Pincode: "560001"},
	}}
	vendorRepo := &fakeVendorRepo{vendors: map[int64]vendor.Vendor{
		7: {ID: 7, Name: "Asha Kitchen", ApartmentID: 1},
	}}
	reviewRepo := &fakeReviewRepo{}

	svc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithFoodItemRepository(foodItemRepo),
		catalogsvc.WithLedgerRepository(ledgerRepo),
		catalogsvc.WithApartmentRepository(apartmentRepo),
		catalogsvc.WithVendorRepository(vendorRepo),
		catalogsvc.WithReviewRepository(reviewRepo),
	)

	return svc, foodItemRepo, ledgerRepo, vendorRepo, reviewRepo
}

func TestAddFoodItemSeedsLedger(t *testing.T) {
	svc, foodItemRepo, ledgerRepo, _, _ := newCatalog()

	id, err := svc.AddFoodItem(context.Background(), fooditem.FoodItem{
		VendorID:    7,
		ApartmentID: 1,
		Name:        "Dal",
		MaxOrders:   12,
	})
	require.NoError(t, err)

	assert.True(t, foodItemRepo.items[id].IsVisible)
	assert.Equal(t, 12, ledgerRepo.available[id])
}

func TestListFoodItemsAnnotatesAvailability(t *testing.T) {
	svc, foodItemRepo, ledgerRepo, _, _ := newCatalog()
	foodItemRepo.items[1] = fooditem.FoodItem{ID: 1, VendorID: 7, ApartmentID: 1, IsVisible: true}
	foodItemRepo.items[2] = fooditem.FoodItem{ID: 2, VendorID: 7, ApartmentID: 1, IsVisible: true}
	ledgerRepo.available[1] = 4
	// item 2 has no ledger row and reports zero

	items, err := svc.ListFoodItems(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := make(map[int64]int)
	for _, item := range items {
		byID[item.ID] = item.AvailableOrders
	}
	assert.Equal(t, 4, byID[1])
	assert.Equal(t, 0, byID[2])
}

func TestDeleteFoodItemOwnership(t *testing.T) {
	svc, foodItemRepo, _, _, _ := newCatalog()
	foodItemRepo.items[1] = fooditem.FoodItem{ID: 1, VendorID: 7, ApartmentID: 1}

	err := svc.DeleteFoodItem(context.Background(), 8, 1)
	assert.ErrorIs(t, err, vendor.ErrMismatch)

	err = svc.DeleteFoodItem(context.Background(), 7, 99)
	assert.ErrorIs(t, err, fooditem.ErrNotFound)

	require.NoError(t, svc.DeleteFoodItem(context.Background(), 7, 1))
	_, ok := foodItemRepo.items[1]
	assert.False(t, ok)
}

func TestUpdateAvailableOrdersOwnership(t *testing.T) {
	svc, foodItemRepo, ledgerRepo, _, _ := newCatalog()
	foodItemRepo.items[1] = fooditem.FoodItem{ID: 1, VendorID: 7, ApartmentID: 1}

	assert.ErrorIs(t, svc.UpdateAvailableOrders(context.Background(), 8, 1, 5), vendor.ErrMismatch)

	require.NoError(t, svc.UpdateAvailableOrders(context.Background(), 7, 1, 5))
	assert.Equal(t, 5, ledgerRepo.available[1])
}

func TestStopOrdersZeroesLedger(t *testing.T) {
	svc, _, ledgerRepo, _, _ := newCatalog()
	ledgerRepo.available[1] = 9

	require.NoError(t, svc.StopOrders(context.Background(), 1))
	assert.Equal(t, 0, ledgerRepo.available[1])
}

func TestWriteReviewFoldsRating(t *testing.T) {
	svc, _, _, vendorRepo, _ := newCatalog()

	_, rating, err := svc.WriteReview(context.Background(), review.Review{CustomerID: 10, VendorID: 7, Rating: 5})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, rating, 0.001)

	_, rating, err = svc.WriteReview(context.Background(), review.Review{CustomerID: 11, VendorID: 7, Rating: 4})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, rating, 0.001)
	assert.InDelta(t, 4.5, vendorRepo.vendors[7].Rating, 0.001)
}

func TestWriteReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _, _, _ := newCatalog()

	_, _, err := svc.WriteReview(context.Background(), review.Review{CustomerID: 10, VendorID: 7, Rating: 6})
	assert.ErrorIs(t, err, review.ErrRatingOutOfRange)

	_, _, err = svc.WriteReview(context.Background(), review.Review{CustomerID: 10, VendorID: 7, Rating: 0})
	assert.ErrorIs(t, err, review.ErrRatingOutOfRange)
}

func TestListVendorsEmptyApartment(t *testing.T) {
	svc, _, _, _, _ := newCatalog()

	vendors, err := svc.ListVendors(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)

	_, err = svc.ListVendors(context.Background(), 99)
	assert.ErrorIs(t, err, catalogsvc.ErrNoVendors)
}
