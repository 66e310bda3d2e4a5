package addfooditem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/transport/http/resp"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	AddFoodItem(ctx context.Context, item fooditem.FoodItem) (int64, error)
}

var validate = validator.New()

type request struct {
	ApartmentID         int64     `json:"apartmentId" validate:"required,gt=0"`
	Name                string    `json:"name" validate:"required"`
	Description         string    `json:"description"`
	Type                string    `json:"type" validate:"required"`
	Category            string    `json:"category" validate:"required"`
	Serves              int       `json:"serves" validate:"gte=0"`
	Tags                string    `json:"tags"`
	PriceCents          int64     `json:"priceCents" validate:"required,gt=0"`
	DiscountPriceCents  int64     `json:"discountPriceCents" validate:"gte=0"`
	MaxOrders           int       `json:"maxOrders" validate:"required,gt=0"`
	IsDelivery          bool      `json:"isDelivery"`
	DeliveryDescription string    `json:"deliveryDescription"`
	DeliveryPriceCents  int64     `json:"deliveryPriceCents" validate:"gte=0"`
	Expiry              time.Time `json:"expiry" validate:"required"`
}

// AddFoodItem creates a catalog entry for the authenticated vendor.
func AddFoodItem(w http.ResponseWriter, r *http.Request, service service) {
	claims := authmw.ClaimsFromContext(r.Context())

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Failed to decode request body", err)
		slog.Error("Error decoding request body for add food item", "error", err)

		return
	}

	if err := validate.Struct(req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid food item payload", err)

		return
	}

	id, err := service.AddFoodItem(r.Context(), fooditem.FoodItem{
		VendorID:            claims.VendorID,
		ApartmentID:         req.ApartmentID,
		Name:                req.Name,
		Description:         req.Description,
		Type:                req.Type,
		Category:            req.Category,
		Serves:              req.Serves,
		Tags:                req.Tags,
		PriceCents:          req.PriceCents,
		DiscountPriceCents:  req.DiscountPriceCents,
		MaxOrders:           req.MaxOrders,
		IsDelivery:          req.IsDelivery,
		DeliveryDescription: req.DeliveryDescription,
		DeliveryPriceCents:  req.DeliveryPriceCents,
		Expiry:              req.Expiry,
	})
	if err != nil {
		resp.Error(w, http.StatusInternalServerError, "Failed to add food item", err)
		slog.Error("Error adding food item", "vendor_id", claims.VendorID, "error", err)

		return
	}

	resp.JSON(w, http.StatusCreated, map[string]interface{}{"foodItemId": id})
}
