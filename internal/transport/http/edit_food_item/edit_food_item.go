package editfooditem

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
)

// service is an interface for the service layer.
type service interface {
	EditFoodItem(ctx context.Context, item fooditem.FoodItem) error
}

var validate = validator.New()

type request struct {
	FoodItemID         int64     `json:"foodItemId" validate:"required,gt=0"`
	Name               string    `json:"name" validate:"required"`
	Description        string    `json:"description"`
	Type               string    `json:"type" validate:"required"`
	Category           string    `json:"category" validate:"required"`
	Serves             int       `json:"serves" validate:"gte=0"`
	Tags               string    `json:"tags"`
	PriceCents         int64     `json:"priceCents" validate:"required,gt=0"`
	DiscountPriceCents int64     `json:"discountPriceCents" validate:"gte=0"`
	MaxOrders          int       `json:"maxOrders" validate:"required,gt=0"`
	Expiry             time.Time `json:"expiry" validate:"required"`
}

// EditFoodItem rewrites a catalog entry. Editing re-shows a hidden item.
func EditFoodItem(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for edit food item", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid food item payload", err)

		return
	}

	err := service.EditFoodItem(r.Context(), fooditem.FoodItem{
		ID:                 req.FoodItemID,
		Name:               req.Name,
		Description:        req.Description,
		Type:               req.Type,
		Category:           req.Category,
		Serves:             req.Serves,
		Tags:               req.Tags,
		PriceCents:         req.PriceCents,
		DiscountPriceCents: req.DiscountPriceCents,
		MaxOrders:          req.MaxOrders,
		Expiry:             req.Expiry,
	})
	if err != nil {
		if errors.Is(err, fooditem.ErrNotFound) {
			resp.Error(w, http.StatusNotFound, "Food item not found", err)

			return
		}

		resp.Error(w, http.StatusInternalServerError, "Failed to edit food item", err)
		slog.Error("Error editing food item", "food_item_id", req.FoodItemID, "error", err)

		return
	}

	resp.JSON(w, http.StatusOK, map[string]string{"message": "Food item updated"})
}
