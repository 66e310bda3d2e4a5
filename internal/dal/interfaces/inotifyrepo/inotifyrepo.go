package inotifyrepo

import (
	"context"

	"github.com/tiffinbox/marketplace/internal/service/models/order"
)

// INotificationRepository publishes fire-and-forget events for downstream
// notifiers. Failures are logged by callers, never retried here.
type INotificationRepository interface {
	// PublishOrderPlaced announces a new checkout
	PublishOrderPlaced(ctx context.Context, o order.Order) error

	// PublishCustomerQuery forwards a support query to the mailer queue
	PublishCustomerQuery(ctx context.Context, customerID int64, customerName, query string) error
}
