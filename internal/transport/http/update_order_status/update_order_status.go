package updateorderstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/orderline"
	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	MarkPrepared(ctx context.Context, orderIDs []int64, foodItemID int64) error
	MarkDelivered(ctx context.Context, orderID int64, foodItemIDs []int64) error
}

var validate = validator.New()

type request struct {
	NewStatus   string  `json:"newStatus" validate:"required,oneof=prepared delivered"`
	OrderIDs    []int64 `json:"orderIds" validate:"required_if=NewStatus prepared"`
	FoodItemID  int64   `json:"foodItemId" validate:"required_if=NewStatus prepared"`
	OrderID     int64   `json:"orderId" validate:"required_if=NewStatus delivered"`
	FoodItemIDs []int64 `json:"foodItemIds" validate:"required_if=NewStatus delivered"`
}

// UpdateOrderStatus advances order lines through the vendor half of the
// lifecycle. Prepared fans one food item out over a batch of orders;
// delivered fans a set of food items into one order.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for update order status", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid status update payload", err)

		return
	}

	var err error
	switch orderline.Status(req.NewStatus) {
	case orderline.StatusPrepared:
		err = service.MarkPrepared(r.Context(), req.OrderIDs, req.FoodItemID)
	case orderline.StatusDelivered:
		err = service.MarkDelivered(r.Context(), req.OrderID, req.FoodItemIDs)
	}

	if err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			resp.Error(w, http.StatusNotFound, "Order not found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to update order status", err)
		slog.Error("Error updating order status", "new_status", req.NewStatus, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}
