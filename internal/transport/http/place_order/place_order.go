package placeorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, customerID, apartmentID int64, items []ordersvc.RequestedItem) (*ordersvc.PlacementResult, error)
}

var validate = validator.New()

type requestItem struct {
	FoodItemID   int64  `json:"foodItemId" validate:"required,gt=0"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	DeliveryType string `json:"deliveryType" validate:"required,excludesall=0x2C"`
}

type request struct {
	ApartmentID int64         `json:"apartmentId" validate:"required,gt=0"`
	FoodItems   []requestItem `json:"foodItems" validate:"required,min=1,dive"`
}

// PlaceOrder handles a customer checkout.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid order payload", err)

		return
	}

	items := make([]ordersvc.RequestedItem, len(req.FoodItems))
	for i, item := range req.FoodItems {
		items[i] = ordersvc.RequestedItem{
			FoodItemID:   item.FoodItemID,
			Quantity:     item.Quantity,
			DeliveryType: item.DeliveryType,
		}
	}

	result, err := service.PlaceOrder(r.Context(), claims.CustomerID, req.ApartmentID, items)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to place order", err)
		slog.Error("Error placing order", "customer_id", claims.CustomerID, "error", err)

		return
	}

	resp.JSON(w, http.StatusCreated, result)
}
