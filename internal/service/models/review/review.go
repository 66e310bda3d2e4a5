package review

import (
	"errors"
	"time"
)

var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// Review is a customer's rating of a vendor.
type Review struct {
	ID           int64     `json:"reviewId"`
	CustomerID   int64     `json:"customerId"`
	VendorID     int64     `json:"vendorId"`
	Rating       int       `json:"rating"`
	Content      string    `json:"content"`
	CustomerName string    `json:"customerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NextRating folds a new rating into a vendor's running average.
func NextRating(current float64, count int, rating int) float64 {
	return (current*float64(count) + float64(rating)) / float64(count+1)
}
