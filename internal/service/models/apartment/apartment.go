package apartment

import "errors"

var ErrNotFound = errors.New("apartment not found")

// Apartment is a residential complex that scopes vendors, customers and listings.
type Apartment struct {
	ID        int64   `json:"apartmentId"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Pincode   string  `json:"pincode"`
}
