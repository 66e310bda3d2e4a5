package order

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/tiffinbox/marketplace/internal/service/models/orderline"
)

// Order is one customer checkout event. Each element of Lines is an encoded
// order-line record; insertion order is placement order.
type Order struct {
	ID          int64     `json:"orderId"`
	CustomerID  int64     `json:"customerId"`
	ApartmentID int64     `json:"apartmentId"`
	PaymentID   string    `json:"paymentId"`
	Lines       []string  `json:"foodItemIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DecodedLines decodes every stored line, skipping and logging malformed
// records. Malformed records are a data defect and must never abort the
// operation that hit them.
func (o *Order) DecodedLines() []orderline.Line {
	lines := make([]orderline.Line, 0, len(o.Lines))
	for _, raw := range o.Lines {
		line, err := orderline.Decode(raw)
		if err != nil {
			slog.Error("Skipping malformed order line", "order_id", o.ID, "raw", raw, "error", err)
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// Solo reports whether the order contains exactly one line.
func (o *Order) Solo() bool {
	return len(o.Lines) == 1
}

const paymentIDLength = 10

const paymentIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewPaymentID generates an opaque payment token. Collisions are not checked;
// at ten alphanumeric characters the space is large enough for observed scale.
func NewPaymentID() string {
	b := make([]byte, paymentIDLength)
	for i := range b {
		b[i] = paymentIDAlphabet[rand.Intn(len(paymentIDAlphabet))]
	}

	return string(b)
}
