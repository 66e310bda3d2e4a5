package reconciler

import (
	"context"
	"log/slog"
	"time"

	"github.com/tiffinbox/marketplace/internal/dal/interfaces/ifooditemrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/tiffinbox/marketplace/internal/service/models/order"
	"github.com/tiffinbox/marketplace/internal/service/models/orderline"
)

// Reconciler removes expired food items from the catalog without ever
// breaking an order that still references them.
type Reconciler struct {
	foodItemRepo ifooditemrepo.IFoodItemRepository
	orderRepo    iorderrepo.IOrderRepository
}

// option is a function that configures the Reconciler.
type option func(*Reconciler)

// MustNewReconciler creates a new Reconciler.
func MustNewReconciler(opts ...option) *Reconciler {
	r := &Reconciler{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithFoodItemRepository(repo ifooditemrepo.IFoodItemRepository) option {
	return func(r *Reconciler) {
		r.foodItemRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(r *Reconciler) {
		r.orderRepo = repo
	}
}

// occurrence is one order line referencing an expired item.
type occurrence struct {
	order *order.Order
	line  orderline.Line
}

// Sweep resolves every item expired at now. Per item:
//
//   - referenced only by delivered lines in single-line orders: hard delete
//   - referenced only by delivered lines, some in multi-line orders: detach
//     the line from each multi-line order, then hard delete
//   - referenced by any line not yet delivered: hide the item instead
//   - referenced by nothing: leave it alone
//
// A failure on one item is logged and never aborts the rest of the sweep.
func (r *Reconciler) Sweep(ctx context.Context, now time.Time) error {
	expiredIDs, err := r.foodItemRepo.ListExpiredIDs(ctx, now)
	if err != nil {
		return err
	}
	if len(expiredIDs) == 0 {
		return nil
	}

	orders, err := r.orderRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	expired := make(map[int64]struct{}, len(expiredIDs))
	for _, id := range expiredIDs {
		expired[id] = struct{}{}
	}

	occurrences := make(map[int64][]occurrence, len(expiredIDs))
	for i := range orders {
		for _, line := range orders[i].DecodedLines() {
			if _, ok := expired[line.FoodItemID]; !ok {
				continue
			}
			occurrences[line.FoodItemID] = append(occurrences[line.FoodItemID], occurrence{
				order: &orders[i],
				line:  line,
			})
		}
	}

	for _, id := range expiredIDs {
		r.resolve(ctx, id, occurrences[id])
	}

	return nil
}

func (r *Reconciler) resolve(ctx context.Context, foodItemID int64, occs []occurrence) {
	if len(occs) == 0 {
		slog.Info("Expired food item is unreferenced, leaving untouched", "food_item_id", foodItemID)

		return
	}

	for _, occ := range occs {
		if occ.line.Status != orderline.StatusDelivered {
			if err := r.foodItemRepo.SetVisibility(ctx, foodItemID, false); err != nil {
				slog.Error("Failed to hide expired food item", "food_item_id", foodItemID, "error", err)
			}

			return
		}
	}

	// Every referencing line is delivered. Detach from multi-line orders
	// first so the delete never orphans a live order.
	for _, occ := range occs {
		if occ.order.Solo() {
			continue
		}

		if err := r.detach(ctx, occ.order, foodItemID); err != nil {
			slog.Error("Failed to detach expired food item from order",
				"food_item_id", foodItemID,
				"order_id", occ.order.ID,
				"error", err,
			)

			return
		}
	}

	if err := r.foodItemRepo.Delete(ctx, foodItemID); err != nil {
		slog.Error("Failed to delete expired food item", "food_item_id", foodItemID, "error", err)

		return
	}

	slog.Info("Deleted expired food item", "food_item_id", foodItemID)
}

// detach removes the lines referencing foodItemID from the order and persists
// the shrunk collection. Malformed records are kept as they are.
func (r *Reconciler) detach(ctx context.Context, o *order.Order, foodItemID int64) error {
	kept := make([]string, 0, len(o.Lines))
	for _, raw := range o.Lines {
		line, err := orderline.Decode(raw)
		if err == nil && line.FoodItemID == foodItemID {
			continue
		}
		kept = append(kept, raw)
	}

	if len(kept) == len(o.Lines) {
		return nil
	}
	o.Lines = kept

	return r.orderRepo.UpdateLines(ctx, o.ID, o.Lines)
}
