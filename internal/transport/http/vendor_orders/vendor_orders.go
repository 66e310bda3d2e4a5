package vendororders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	VendorOrders(ctx context.Context, vendorID, apartmentID int64) ([]ordersvc.VendorOrderEntry, error)
	AcknowledgeNewOrders(ctx context.Context, vendorID, apartmentID int64) error
}

var decoder = schema.NewDecoder()

type query struct {
	ApartmentID int64 `schema:"apartmentId,required"`
}

// VendorOrders lists the authenticated vendor's lines across the apartment's
// orders. Reading never mutates order state.
func VendorOrders(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var q query
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query parameters", err)

		return
	}

	entries, err := service.VendorOrders(r.Context(), claims.VendorID, q.ApartmentID)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to fetch vendor orders", err)
		slog.Error("Error fetching vendor orders", "vendor_id", claims.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"orders": entries})
}

// AcknowledgeNewOrders persists the placed to pending transition for the
// vendor's new lines.
func AcknowledgeNewOrders(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var q query
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query parameters", err)

		return
	}

	if err := service.AcknowledgeNewOrders(r.Context(), claims.VendorID, q.ApartmentID); err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to acknowledge new orders", err)
		slog.Error("Error acknowledging new orders", "vendor_id", claims.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "New orders acknowledged"})
}
