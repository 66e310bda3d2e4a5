package ordersvc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tiffinbox/marketplace/internal/dal/interfaces/icustomerrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/ifooditemrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iledgerrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/inotifyrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/order"
	"github.com/tiffinbox/marketplace/internal/service/models/orderline"
	"golang.org/x/sync/errgroup"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderService owns the order lifecycle: placement, the status state machine
// and the vendor/customer order views.
type OrderService struct {
	orderRepo    iorderrepo.IOrderRepository
	ledgerRepo   iledgerrepo.ILedgerRepository
	foodItemRepo ifooditemrepo.IFoodItemRepository
	customerRepo icustomerrepo.ICustomerRepository
	notifyRepo   inotifyrepo.INotificationRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithLedgerRepository(repo iledgerrepo.ILedgerRepository) option {
	return func(s *OrderService) {
		s.ledgerRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithFoodItemRepository(repo ifooditemrepo.IFoodItemRepository) option {
	return func(s *OrderService) {
		s.foodItemRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *OrderService) {
		s.customerRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotificationRepository(repo inotifyrepo.INotificationRepository) option {
	return func(s *OrderService) {
		s.notifyRepo = repo
	}
}

// RequestedItem is one food item in a checkout request.
type RequestedItem struct {
	FoodItemID   int64
	Quantity     int
	DeliveryType string
}

// PlacementResult reports a checkout as an explicit partial result so callers
// can tell full success from partial success.
type PlacementResult struct {
	Order  order.Order      `json:"order"`
	Placed []orderline.Line `json:"placed"`
	Failed []orderline.Line `json:"failed"`
}

// PlaceOrder reserves ledger quantity for every requested item concurrently,
// builds the encoded line collection and persists one order row. A failed
// reservation marks only that item's line failed; sibling reservations are
// neither blocked nor rolled back.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	customerID int64,
	apartmentID int64,
	items []RequestedItem,
) (*PlacementResult, error) {
	lines := make([]orderline.Line, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			status := orderline.StatusPlaced
			remaining, err := s.ledgerRepo.Reserve(gctx, item.FoodItemID, item.Quantity)
			if err != nil {
				slog.Error("Ledger reservation failed",
					"food_item_id", item.FoodItemID,
					"quantity", item.Quantity,
					"error", err,
				)
				status = orderline.StatusFailed
			} else {
				slog.Info("Reserved ledger quantity",
					"food_item_id", item.FoodItemID,
					"available_orders", remaining,
				)
			}

			lines[i] = orderline.Line{
				FoodItemID:   item.FoodItemID,
				Quantity:     item.Quantity,
				Status:       status,
				DeliveryType: item.DeliveryType,
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	o := order.Order{
		CustomerID:  customerID,
		ApartmentID: apartmentID,
		PaymentID:   order.NewPaymentID(),
		Lines:       make([]string, len(lines)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, line := range lines {
		o.Lines[i] = line.MustEncode()
	}

	o, err := s.orderRepo.Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	if s.notifyRepo != nil {
		if err := s.notifyRepo.PublishOrderPlaced(ctx, o); err != nil {
			slog.Error("Failed to publish order placed event", "order_id", o.ID, "error", err)
		}
	}

	result := &PlacementResult{Order: o, Placed: []orderline.Line{}, Failed: []orderline.Line{}}
	for _, line := range lines {
		if line.Status == orderline.StatusFailed {
			result.Failed = append(result.Failed, line)
		} else {
			result.Placed = append(result.Placed, line)
		}
	}

	return result, nil
}

// CustomerOrderItem is one decoded line enriched with its catalog entry.
type CustomerOrderItem struct {
	fooditem.FoodItem
	Quantity int              `json:"quantity"`
	Status   orderline.Status `json:"status"`
}

// CustomerOrder is a customer's order with enriched lines.
type CustomerOrder struct {
	OrderID   int64               `json:"orderId"`
	FoodItems []CustomerOrderItem `json:"foodItems"`
}

// FetchCustomerOrders returns a customer's orders with each line joined to its
// food item. Lines referencing deleted items are dropped from the view.
func (s *OrderService) FetchCustomerOrders(ctx context.Context, customerID int64) ([]CustomerOrder, error) {
	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	var itemIDs []int64
	for i := range orders {
		for _, line := range orders[i].DecodedLines() {
			itemIDs = append(itemIDs, line.FoodItemID)
		}
	}

	items, err := s.foodItemRepo.ListByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[int64]fooditem.FoodItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	result := make([]CustomerOrder, 0, len(orders))
	for i := range orders {
		co := CustomerOrder{OrderID: orders[i].ID, FoodItems: []CustomerOrderItem{}}
		for _, line := range orders[i].DecodedLines() {
			item, ok := itemsByID[line.FoodItemID]
			if !ok {
				continue
			}
			co.FoodItems = append(co.FoodItems, CustomerOrderItem{
				FoodItem: item,
				Quantity: line.Quantity,
				Status:   line.Status,
			})
		}
		result = append(result, co)
	}

	return result, nil
}

// VendorOrderEntry is one of a vendor's lines across all orders in an
// apartment, joined with its customer and catalog entry.
type VendorOrderEntry struct {
	OrderID      int64              `json:"orderId"`
	Quantity     int                `json:"quantity"`
	Status       orderline.Status   `json:"status"`
	DeliveryType string             `json:"deliveryType"`
	Customer     *customer.Customer `json:"customer"`
	FoodItem     *fooditem.FoodItem `json:"foodItems"`
}

// VendorOrders is a pure read: it returns every line in the apartment's orders
// that belongs to the vendor, presenting placed lines as pending. The matching
// persistent transition happens in AcknowledgeNewOrders.
func (s *OrderService) VendorOrders(ctx context.Context, vendorID, apartmentID int64) ([]VendorOrderEntry, error) {
	orders, err := s.orderRepo.ListByApartment(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	vendorItems, err := s.foodItemRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[int64]fooditem.FoodItem, len(vendorItems))
	for _, item := range vendorItems {
		itemsByID[item.ID] = item
	}

	var entries []VendorOrderEntry
	customerIDs := make(map[int64]struct{})
	for i := range orders {
		for _, line := range orders[i].DecodedLines() {
			item, ok := itemsByID[line.FoodItemID]
			if !ok {
				continue
			}

			status := line.Status
			if status == orderline.StatusPlaced {
				status = orderline.StatusPending
			}

			customerIDs[orders[i].CustomerID] = struct{}{}
			entries = append(entries, VendorOrderEntry{
				OrderID:      orders[i].ID,
				Quantity:     line.Quantity,
				Status:       status,
				DeliveryType: line.DeliveryType,
				FoodItem:     &item,
				Customer:     &customer.Customer{ID: orders[i].CustomerID},
			})
		}
	}
	if len(entries) == 0 {
		return []VendorOrderEntry{}, nil
	}

	ids := make([]int64, 0, len(customerIDs))
	for id := range customerIDs {
		ids = append(ids, id)
	}
	customers, err := s.customerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	customersByID := make(map[int64]customer.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.ID] = c
	}
	for i := range entries {
		if c, ok := customersByID[entries[i].Customer.ID]; ok {
			entries[i].Customer = &c
		}
	}

	return entries, nil
}

// AcknowledgeNewOrders flips the vendor's placed lines to pending across the
// apartment's orders and persists the rewrite as one batched upsert. Running
// it twice is a no-op the second time.
func (s *OrderService) AcknowledgeNewOrders(ctx context.Context, vendorID, apartmentID int64) error {
	orders, err := s.orderRepo.ListByApartment(ctx, apartmentID)
	if err != nil {
		return err
	}

	vendorItems, err := s.foodItemRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return err
	}
	vendorItemIDs := make(map[int64]struct{}, len(vendorItems))
	for _, item := range vendorItems {
		vendorItemIDs[item.ID] = struct{}{}
	}

	var changed []order.Order
	for i := range orders {
		if s.rewriteLines(&orders[i], func(line orderline.Line) (orderline.Line, bool) {
			if _, ok := vendorItemIDs[line.FoodItemID]; !ok || line.Status != orderline.StatusPlaced {
				return line, false
			}
			line.Status = orderline.StatusPending

			return line, true
		}) {
			changed = append(changed, orders[i])
		}
	}
	if len(changed) == 0 {
		return nil
	}

	return s.orderRepo.BulkUpsertLines(ctx, changed)
}

// MarkPrepared moves every line matching foodItemID to prepared across the
// given batch of orders. The overwrite is keyed only by membership, so
// re-applying it has no additional effect.
func (s *OrderService) MarkPrepared(ctx context.Context, orderIDs []int64, foodItemID int64) error {
	orders, err := s.orderRepo.ListByIDs(ctx, orderIDs)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrOrderNotFound
	}

	for i := range orders {
		s.rewriteLines(&orders[i], func(line orderline.Line) (orderline.Line, bool) {
			if line.FoodItemID != foodItemID {
				return line, false
			}
			line.Status = orderline.StatusPrepared

			return line, true
		})
	}

	return s.orderRepo.BulkUpsertLines(ctx, orders)
}

// MarkDelivered moves the lines whose food item id is in foodItemIDs to
// delivered within one order. Idempotent for the same reason as MarkPrepared.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID int64, foodItemIDs []int64) error {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	wanted := make(map[int64]struct{}, len(foodItemIDs))
	for _, id := range foodItemIDs {
		wanted[id] = struct{}{}
	}

	s.rewriteLines(o, func(line orderline.Line) (orderline.Line, bool) {
		if _, ok := wanted[line.FoodItemID]; !ok {
			return line, false
		}
		line.Status = orderline.StatusDelivered

		return line, true
	})

	return s.orderRepo.UpdateLines(ctx, o.ID, o.Lines)
}

// rewriteLines applies fn to each decodable line, re-encoding the ones fn
// changed. Malformed records are left in place untouched: they are logged at
// decode time and must not abort the batch.
func (s *OrderService) rewriteLines(o *order.Order, fn func(orderline.Line) (orderline.Line, bool)) bool {
	changed := false
	for i, raw := range o.Lines {
		line, err := orderline.Decode(raw)
		if err != nil {
			slog.Error("Skipping malformed order line", "order_id", o.ID, "raw", raw, "error", err)
			continue
		}

		next, ok := fn(line)
		if !ok {
			continue
		}
		o.Lines[i] = next.MustEncode()
		changed = true
	}

	return changed
}
