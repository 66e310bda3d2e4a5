package orderline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a single order line.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusPending   Status = "pending"
	StatusPrepared  Status = "prepared"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

var (
	ErrInvalidStatus = errors.New("invalid order line status")
	ErrMalformedLine = errors.New("malformed order line record")
	ErrInvalidLine   = errors.New("invalid order line")
)

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPlaced:
		return StatusPlaced, nil
	case StatusPending:
		return StatusPending, nil
	case StatusPrepared:
		return StatusPrepared, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusFailed:
		return StatusFailed, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Line is one food item's participation in an order. Lines never exist outside
// their enclosing order; they are persisted as encoded records in the order row.
type Line struct {
	FoodItemID   int64  `json:"foodItemId"`
	Quantity     int    `json:"quantity"`
	Status       Status `json:"status"`
	DeliveryType string `json:"deliveryType"`
}

// Encode renders the line as "<foodItemId>,<quantity>,<status>,<deliveryType>".
// Ids and quantities are checked so a record can never carry an embedded delimiter.
func (l Line) Encode() (string, error) {
	if l.FoodItemID < 0 || l.Quantity < 0 {
		return "", fmt.Errorf("%w: negative id or quantity", ErrInvalidLine)
	}
	if _, err := ParseStatus(l.Status.String()); err != nil {
		return "", err
	}
	if strings.Contains(l.DeliveryType, ",") {
		return "", fmt.Errorf("%w: delivery type contains delimiter", ErrInvalidLine)
	}

	return fmt.Sprintf("%d,%d,%s,%s", l.FoodItemID, l.Quantity, l.Status, l.DeliveryType), nil
}

// MustEncode is Encode for lines built by the service itself, where the
// validation in Encode cannot fail.
func (l Line) MustEncode() string {
	s, err := l.Encode()
	if err != nil {
		panic(err)
	}

	return s
}

// Decode parses an encoded record back into a Line. Stored records are padded
// inconsistently, so every field is trimmed. Records with fewer than three
// fields are malformed; a three-field record is a legacy line without a
// delivery type.
func Decode(raw string) (Line, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 3 {
		return Line{}, fmt.Errorf("%w: %q", ErrMalformedLine, raw)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Line{}, fmt.Errorf("%w: bad food item id in %q", ErrMalformedLine, raw)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Line{}, fmt.Errorf("%w: bad quantity in %q", ErrMalformedLine, raw)
	}

	status, err := ParseStatus(parts[2])
	if err != nil {
		return Line{}, fmt.Errorf("%w: bad status in %q", ErrMalformedLine, raw)
	}

	deliveryType := ""
	if len(parts) > 3 {
		deliveryType = strings.TrimSpace(parts[3])
	}

	return Line{
		FoodItemID:   id,
		Quantity:     qty,
		Status:       status,
		DeliveryType: deliveryType,
	}, nil
}
