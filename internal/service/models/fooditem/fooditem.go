package fooditem

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("food item not found")

// FoodItem is a vendor's time-limited listing. IsVisible is the sole soft-delete
// mechanism: an invisible item is never returned to customers but may still be
// referenced by open orders.
type FoodItem struct {
	ID                  int64     `json:"foodItemId"`
	VendorID            int64     `json:"vendorId"`
	ApartmentID         int64     `json:"apartmentId"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Type                string    `json:"type"`
	Category            string    `json:"category"`
	Serves              int       `json:"serves"`
	Tags                string    `json:"tags"`
	PriceCents          int64     `json:"priceCents"`
	DiscountPriceCents  int64     `json:"discountPriceCents"`
	MaxOrders           int       `json:"maxOrders"`
	IsDelivery          bool      `json:"isDelivery"`
	DeliveryDescription string    `json:"deliveryDescription"`
	DeliveryPriceCents  int64     `json:"deliveryPriceCents"`
	Expiry              time.Time `json:"expiry"`
	IsVisible           bool      `json:"isVisible"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Annotated is a catalog listing entry: the item plus its remaining
// purchasable quantity from the ledger.
type Annotated struct {
	FoodItem
	AvailableOrders int `json:"availableOrders"`
}
