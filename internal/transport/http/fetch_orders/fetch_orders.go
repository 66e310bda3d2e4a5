package fetchorders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	FetchCustomerOrders(ctx context.Context, customerID int64) ([]ordersvc.CustomerOrder, error)
}

// FetchOrders returns the authenticated customer's orders with enriched lines.
func FetchOrders(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	orders, err := service.FetchCustomerOrders(r.Context(), claims.CustomerID)
	if err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			resp.Error(w, http.StatusNotFound, "No orders found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to fetch orders", err)
		slog.Error("Error fetching customer orders", "customer_id", claims.CustomerID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
