package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
	"github.com/tiffinbox/marketplace/internal/dal/rabbitmq"
	"github.com/tiffinbox/marketplace/internal/service/models/notification"
	"github.com/tiffinbox/marketplace/internal/service/models/order"
)

// NotificationRabbitMQRepository publishes notification events. Delivery is
// fire-and-forget: callers log failures and move on, nothing is retried.
type NotificationRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewNotificationRabbitMQRepository(client *rabbitmq.Client) *NotificationRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       "marketplace.notifications",
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &NotificationRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// PublishOrderPlaced announces a new checkout to downstream notifiers.
func (r *NotificationRabbitMQRepository) PublishOrderPlaced(ctx context.Context, o order.Order) error {
	payload, err := json.Marshal(notification.OrderPlacedPayload{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		ApartmentID: o.ApartmentID,
		PaymentID:   o.PaymentID,
		Lines:       o.Lines,
	})
	if err != nil {
		return err
	}

	return r.publish(notification.NewEnvelope(notification.EventOrderPlaced, payload))
}

// PublishCustomerQuery forwards a support query to the mailer queue.
func (r *NotificationRabbitMQRepository) PublishCustomerQuery(ctx context.Context, customerID int64, customerName, query string) error {
	payload, err := json.Marshal(notification.CustomerQueryPayload{
		CustomerID:   customerID,
		CustomerName: customerName,
		Query:        query,
	})
	if err != nil {
		return err
	}

	return r.publish(notification.NewEnvelope(notification.EventCustomerQuery, payload))
}

func (r *NotificationRabbitMQRepository) publish(env notification.Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
