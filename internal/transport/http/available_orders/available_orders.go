package availableorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/tiffinbox/marketplace/internal/service/models/ledger"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	AvailableOrders(ctx context.Context, foodItemIDs []int64) ([]ledger.Entry, error)
}

var decoder = schema.NewDecoder()

type query struct {
	FoodItemIDs []int64 `schema:"foodItemIds,required"`
}

// AvailableOrders reports remaining purchasable quantity per food item.
// Items without a ledger row report 0.
func AvailableOrders(w http.ResponseWriter, r *http.Request, service service) {
	var q query
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query parameters", err)

		return
	}

	entries, err := service.AvailableOrders(r.Context(), q.FoodItemIDs)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to fetch available orders", err)
		slog.Error("Error fetching available orders", "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"availableOrders": entries})
}
