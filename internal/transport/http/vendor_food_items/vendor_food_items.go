package vendorfooditems

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	VendorFoodItems(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error)
}

// VendorFoodItems lists the authenticated vendor's visible catalog entries.
func VendorFoodItems(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	items, err := service.VendorFoodItems(r.Context(), claims.VendorID)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to fetch food items", err)
		slog.Error("Error fetching vendor food items", "vendor_id", claims.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"foodItems": items})
}
