package customer

import "errors"

var ErrNotFound = errors.New("customer not found")

// Customer is a buyer registered to an apartment complex.
type Customer struct {
	ID          int64  `json:"customerId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	ApartmentID int64  `json:"apartmentId"`
}
