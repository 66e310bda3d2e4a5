package updateavailableorders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	UpdateAvailableOrders(ctx context.Context, vendorID, foodItemID int64, value int) error
}

var validate = validator.New()

type request struct {
	FoodItemID      int64 `json:"foodItemId" validate:"required,gt=0"`
	AvailableOrders *int  `json:"availableOrders" validate:"required,gte=0"`
}

// UpdateAvailableOrders overwrites an item's remaining quantity for the
// authenticated vendor.
func UpdateAvailableOrders(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for update available orders", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid available orders payload", err)

		return
	}

	err := service.UpdateAvailableOrders(r.Context(), claims.VendorID, req.FoodItemID, *req.AvailableOrders)
	if err != nil {
		if errors.Is(err, fooditem.ErrNotFound) {
			resp.Error(w, http.StatusNotFound, "Food item not found", err)

			return
		}
		if errors.Is(err, vendor.ErrMismatch) {
			resp.Error(w, http.StatusForbidden, "Food item does not belong to this vendor", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to update available orders", err)
		slog.Error("Error updating available orders", "food_item_id", req.FoodItemID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Available orders updated"})
}
