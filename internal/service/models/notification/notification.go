package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderPlaced   = "marketplace.order.placed"
	EventCustomerQuery = "marketplace.customer.query"
)

// Envelope wraps every event published to the notification queue.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps an already-marshaled payload in a fresh envelope.
func NewEnvelope(eventType string, payload []byte) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// OrderPlacedPayload announces a new checkout to downstream notifiers.
type OrderPlacedPayload struct {
	OrderID     int64    `json:"orderId"`
	CustomerID  int64    `json:"customerId"`
	ApartmentID int64    `json:"apartmentId"`
	PaymentID   string   `json:"paymentId"`
	Lines       []string `json:"foodItemIds"`
}

// CustomerQueryPayload carries a support query for the mailer.
type CustomerQueryPayload struct {
	CustomerID   int64  `json:"customerId"`
	CustomerName string `json:"customerName"`
	Query        string `json:"query"`
}
