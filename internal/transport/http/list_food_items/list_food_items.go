package listfooditems

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	ListFoodItems(ctx context.Context, apartmentID int64, ids []int64) ([]fooditem.Annotated, error)
}

var decoder = schema.NewDecoder()

type query struct {
	ApartmentID int64   `schema:"apartmentId,required"`
	FoodItemIDs []int64 `schema:"foodItemIds"`
}

// ListFoodItems returns the apartment's visible catalog annotated with
// remaining availability.
func ListFoodItems(w http.ResponseWriter, r *http.Request, service service) {
	var q query
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid query parameters", err)

		return
	}

	items, err := service.ListFoodItems(r.Context(), q.ApartmentID, q.FoodItemIDs)
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to fetch food items", err)
		slog.Error("Error listing food items", "apartment_id", q.ApartmentID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]interface{}{"foodItems": items})
}
