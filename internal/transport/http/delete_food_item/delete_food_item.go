package deletefooditem

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	DeleteFoodItem(ctx context.Context, vendorID, foodItemID int64) error
}

// DeleteFoodItem hard-deletes one of the authenticated vendor's items.
func DeleteFoodItem(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	foodItemID, err := strconv.ParseInt(chi.URLParam(r, "foodItemId"), 10, 64)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid food item id", err)

		return
	}

	if err := service.DeleteFoodItem(r.Context(), claims.VendorID, foodItemID); err != nil {
		if errors.Is(err, fooditem.ErrNotFound) || errors.Is(err, vendor.ErrMismatch) {
			resp.Error(w, http.StatusNotFound, "Food item not found for this vendor", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to delete food item", err)
		slog.Error("Error deleting food item", "food_item_id", foodItemID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Food item deleted"})
}
