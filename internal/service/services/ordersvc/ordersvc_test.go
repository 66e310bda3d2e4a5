package ordersvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/order"
	"github.com/tiffinbox/marketplace/internal/service/models/orderline"
	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
)

type fakeOrderRepo struct {
	orders map[int64]order.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]order.Order), nextID: 1}
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	o.ID = f.nextID
	f.nextID++
	f.orders[o.ID] = o

	return o, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}

	return &o, nil
}

func (f *fakeOrderRepo) ListByIDs(_ context.Context, ids []int64) ([]order.Order, error) {
	var result []order.Order
	for _, id := range ids {
		if o, ok := f.orders[id]; ok {
			result = append(result, o)
		}
	}

	return result, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID int64) ([]order.Order, error) {
	var result []order.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}

	return result, nil
}

func (f *fakeOrderRepo) ListByApartment(_ context.Context, apartmentID int64) ([]order.Order, error) {
	var result []order.Order
	for _, o := range f.orders {
		if o.ApartmentID == apartmentID {
			result = append(result, o)
		}
	}

	return result, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]order.Order, error) {
	var result []order.Order
	for _, o := range f.orders {
		result = append(result, o)
	}

	return result, nil
}

func (f *fakeOrderRepo) UpdateLines(_ context.Context, orderID int64, lines []string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.Lines = lines
	o.UpdatedAt = time.Now()
	f.orders[orderID] = o

	return nil
}

func (f *fakeOrderRepo) BulkUpsertLines(_ context.Context, orders []order.Order) error {
	for _, o := range orders {
		stored, ok := f.orders[o.ID]
		if !ok {
			return errors.New("order not found")
		}
		stored.Lines = o.Lines
		stored.UpdatedAt = time.Now()
		f.orders[o.ID] = stored
	}

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
	current, ok := f.available[foodItemID]
	if !ok {
		return 0, errors.New("no ledger row")
	}

	next := current - quantity
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

type fakeFoodItemRepo struct {
	items map[int64]fooditem.FoodItem
}

func (f *fakeFoodItemRepo) Insert(_ context.Context, item fooditem.FoodItem) (int64, error) {
	f.items[item.ID] = item

	return item.ID, nil
}

func (f *fakeFoodItemRepo) Update(_ context.Context, item fooditem.FoodItem) error {
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
	seen := make(map[int64]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
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

func (f *fakeFoodItemRepo) ListExpiredIDs(_ context.Context, now time.Time) ([]int64, error) {
	var ids []int64
	for _, item := range f.items {
		if !item.Expiry.After(now) {
			ids = append(ids, item.ID)
		}
	}

	return ids, nil
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

type fakeCustomerRepo struct {
	customers map[int64]customer.Customer
}

func (f *fakeCustomerRepo) Insert(_ context.Context, c customer.Customer) (int64, error) {
	f.customers[c.ID] = c

	return c.ID, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}

	return &c, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phoneNumber string) (*customer.Customer, error) {
	for _, c := range f.customers {
		if c.PhoneNumber == phoneNumber {
			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeCustomerRepo) ListByIDs(_ context.Context, ids []int64) ([]customer.Customer, error) {
	var result []customer.Customer
	for _, id := range ids {
		if c, ok := f.customers[id]; ok {
			result = append(result, c)
		}
	}

	return result, nil
}

func (f *fakeCustomerRepo) InsertQuery(_ context.Context, _ int64, _ string) error {
	return nil
}

func newService(t *testing.T) (*ordersvc.OrderService, *fakeOrderRepo, *fakeLedgerRepo, *fakeFoodItemRepo) {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	ledgerRepo := &fakeLedgerRepo{available: make(map[int64]int)}
	foodItemRepo := &fakeFoodItemRepo{items: make(map[int64]fooditem.FoodItem)}
	customerRepo := &fakeCustomerRepo{customers: map[int64]customer.Customer{
		10: {ID: 10, Name: "Asha", PhoneNumber: "+911234567890", ApartmentID: 1},
	}}

	svc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepo),
		ordersvc.WithLedgerRepository(ledgerRepo),
		ordersvc.WithFoodItemRepository(foodItemRepo),
		ordersvc.WithCustomerRepository(customerRepo),
	)

	return svc, orderRepo, ledgerRepo, foodItemRepo
}

func TestPlaceOrderAllReserved(t *testing.T) {
	svc, orderRepo, ledgerRepo, _ := newService(t)
	ledgerRepo.available[1] = 5
	ledgerRepo.available[2] = 5

	result, err := svc.PlaceOrder(context.Background(), 10, 1, []ordersvc.RequestedItem{
		{FoodItemID: 1, Quantity: 2, DeliveryType: "delivery"},
		{FoodItemID: 2, Quantity: 1, DeliveryType: "pickup"},
	})
	require.NoError(t, err)

	assert.Len(t, result.Placed, 2)
	assert.Empty(t, result.Failed)
	assert.Len(t, result.Order.PaymentID, 10)
	assert.Equal(t, 3, ledgerRepo.available[1])
	assert.Equal(t, 4, ledgerRepo.available[2])

	stored := orderRepo.orders[result.Order.ID]
	require.Len(t, stored.Lines, 2)
	for _, raw := range stored.Lines {
		line, err := orderline.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, orderline.StatusPlaced, line.Status)
	}
}

func TestPlaceOrderPartialFailure(t *testing.T) {
	svc, orderRepo, ledgerRepo, _ := newService(t)
	ledgerRepo.available[1] = 5
	// no ledger row for item 2, its reservation fails

	result, err := svc.PlaceOrder(context.Background(), 10, 1, []ordersvc.RequestedItem{
		{FoodItemID: 1, Quantity: 1, DeliveryType: "delivery"},
		{FoodItemID: 2, Quantity: 1, DeliveryType: "delivery"},
	})
	require.NoError(t, err)

	require.Len(t, result.Placed, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, int64(1), result.Placed[0].FoodItemID)
	assert.Equal(t, int64(2), result.Failed[0].FoodItemID)
	assert.Equal(t, orderline.StatusFailed, result.Failed[0].Status)

	// the failed line is still persisted on the order
	stored := orderRepo.orders[result.Order.ID]
	require.Len(t, stored.Lines, 2)
}

func TestPlaceOrderOversizedReservationDrainsToZero(t *testing.T) {
	svc, _, ledgerRepo, _ := newService(t)
	ledgerRepo.available[1] = 3

	result, err := svc.PlaceOrder(context.Background(), 10, 1, []ordersvc.RequestedItem{
		{FoodItemID: 1, Quantity: 5, DeliveryType: "delivery"},
	})
	require.NoError(t, err)

	assert.Len(t, result.Placed, 1)
	assert.Equal(t, 0, ledgerRepo.available[1])
}

func TestMarkPreparedIsIdempotent(t *testing.T) {
	svc, orderRepo, _, _ := newService(t)
	o, err := orderRepo.Insert(context.Background(), order.Order{
		CustomerID:  10,
		ApartmentID: 1,
		Lines:       []string{"1,2,pending,delivery", "2,1,pending,pickup"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPrepared(context.Background(), []int64{o.ID}, 1))
	require.NoError(t, svc.MarkPrepared(context.Background(), []int64{o.ID}, 1))

	stored := orderRepo.orders[o.ID]
	assert.Equal(t, "1,2,prepared,delivery", stored.Lines[0])
	assert.Equal(t, "2,1,pending,pickup", stored.Lines[1])
}

func TestMarkPreparedUnknownOrders(t *testing.T) {
	svc, _, _, _ := newService(t)

	err := svc.MarkPrepared(context.Background(), []int64{99}, 1)
	assert.ErrorIs(t, err, ordersvc.ErrOrderNotFound)
}

func TestMarkDelivered(t *testing.T) {
	svc, orderRepo, _, _ := newService(t)
	o, err := orderRepo.Insert(context.Background(), order.Order{
		CustomerID:  10,
		ApartmentID: 1,
		Lines:       []string{"1,2,prepared,delivery", "2,1,prepared,pickup", "3,1,pending,pickup"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkDelivered(context.Background(), o.ID, []int64{1, 2}))

	stored := orderRepo.orders[o.ID]
	assert.Equal(t, "1,2,delivered,delivery", stored.Lines[0])
	assert.Equal(t, "2,1,delivered,pickup", stored.Lines[1])
	assert.Equal(t, "3,1,pending,pickup", stored.Lines[2])

	err = svc.MarkDelivered(context.Background(), 99, []int64{1})
	assert.ErrorIs(t, err, ordersvc.ErrOrderNotFound)
}

func TestMarkPreparedKeepsMalformedLines(t *testing.T) {
	svc, orderRepo, _, _ := newService(t)
	o, err := orderRepo.Insert(context.Background(), order.Order{
		CustomerID:  10,
		ApartmentID: 1,
		Lines:       []string{"garbage", "1,1,pending,delivery"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPrepared(context.Background(), []int64{o.ID}, 1))

	stored := orderRepo.orders[o.ID]
	assert.Equal(t, "garbage", stored.Lines[0])
	assert.Equal(t, "1,1,prepared,delivery", stored.Lines[1])
}

func TestVendorOrdersPresentsPlacedAsPendingWithoutMutating(t *testing.T) {
	svc, orderRepo, _, foodItemRepo := newService(t)
	foodItemRepo.items[1] = fooditem.FoodItem{ID: 1, VendorID: 7, ApartmentID: 1, Name: "Dal"}
	o, err := orderRepo.Insert(context.Background(), order.Order{
		CustomerID:  10,
		ApartmentID: 1,
		Lines:       []string{"1,2,placed,delivery", "9,1,placed,delivery"},
	})
	require.NoError(t, err)

	entries, err := svc.VendorOrders(context.Background(), 7, 1)
	require.NoError(t, err)

	// only the vendor's own line shows, presented as pending
	require.Len(t, entries, 1)
	assert.Equal(t, orderline.StatusPending, entries[0].Status)
	assert.Equal(t, "Asha", entries[0].Customer.Name)

	// the read did not touch stored state
	assert.Equal(t, "1,2,placed,delivery", orderRepo.orders[o.ID].Lines[0])
}

func TestAcknowledgeNewOrdersPersistsTransitionOnce(t *testing.T) {
	svc, orderRepo, _, foodItemRepo := newService(t)
	foodItemRepo.items[1] = fooditem.FoodItem{ID: 1, VendorID: 7, ApartmentID: 1}
	o, err := orderRepo.Insert(context.Background(), order.Order{
		CustomerID:  10,
		ApartmentID: 1,
		Lines:       []string{"1,2,placed,delivery", "9,1,placed,delivery"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.AcknowledgeNewOrders(context.Background(), 7, 1))

	stored := orderRepo.orders[o.ID]
	assert.Equal(t, "1,2,pending,delivery", stored.Lines[0])
	// another vendor's line is untouched
	assert.Equal(t, "9,1,placed,delivery", stored.Lines[1])

	// a second acknowledge finds nothing to flip
	require.NoError(t, svc.AcknowledgeNewOrders(context.Background(), 7, 1))
	assert.Equal(t, "1,2,pending,delivery", orderRepo.orders[o.ID].Lines[0])
}

func TestFetchCustomerOrders(t *testing.T) {
	svc, orderRepo, _, foodItemRepo := newService(t)
	foodItemRepo.items[1] = fooditem.FoodItem{ID: 1, VendorID: 7, ApartmentID: 1, Name: "Dal"}
	_, err := orderRepo.Insert(context.Background(), order.Order{
		CustomerID:  10,
		ApartmentID: 1,
		Lines:       []string{"1,2,placed,delivery", "99,1,placed,delivery"},
	})
	require.NoError(t, err)

	orders, err := svc.FetchCustomerOrders(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, orders, 1)
	// the line referencing a deleted item is dropped from the view
	require.Len(t, orders[0].FoodItems, 1)
	assert.Equal(t, "Dal", orders[0].FoodItems[0].Name)
	assert.Equal(t, 2, orders[0].FoodItems[0].Quantity)

	_, err = svc.FetchCustomerOrders(context.Background(), 55)
	assert.ErrorIs(t, err, ordersvc.ErrOrderNotFound)
}
