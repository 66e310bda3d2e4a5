package stoporders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	StopOrders(ctx context.Context, foodItemID int64) error
}

var validate = validator.New()

type request struct {
	FoodItemID int64 `json:"foodItemId" validate:"required,gt=0"`
}

// StopOrders zeroes an item's remaining quantity so further checkouts fail.
func StopOrders(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for stop orders", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid stop orders payload", err)

		return
	}

	if err := service.StopOrders(r.Context(), req.FoodItemID); err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to stop orders", err)
		slog.Error("Error stopping orders", "food_item_id", req.FoodItemID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Orders stopped"})
}
