package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	notificationRepo "rideshare/database/repository/notification"
	"rideshare/models"
	"rideshare/services/tasks"

	"github.com/hibiken/asynq"
	amqp "github.com/rabbitmq/amqp091-go"
)

// StoreOutbox records outbound messages directly in the outbound log.
type StoreOutbox struct {
	Repo notificationRepo.NotificationRepository
}

func (o *StoreOutbox) Send(ctx context.Context, msg models.OutboundMessage) error {
	return o.Repo.AppendOutbound(ctx, msg)
}

// TaskEnqueuer is the part of *asynq.Client the queue outbox needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueOutbox defers delivery to the outbound worker through asynq.
type QueueOutbox struct {
	Client TaskEnqueuer
}

func (o *QueueOutbox) Send(ctx context.Context, msg models.OutboundMessage) error {
	task, opts, err := tasks.NewOutboundTask(msg)
	if err != nil {
		return fmt.Errorf("failed to build outbound task: %w", err)
	}
	if _, err := o.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue outbound task: %w", err)
	}
	return nil
}

// Publisher is the part of *amqp.Channel the broker outbox needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

const outboundRoutingKey = "sms.outbound"

// BrokerOutbox publishes outbound messages to a RabbitMQ exchange for an
// external gateway and keeps a copy in the outbound log.
type BrokerOutbox struct {
	Channel  Publisher
	Exchange string
	Repo     notificationRepo.NotificationRepository
}

func (o *BrokerOutbox) Send(ctx context.Context, msg models.OutboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode outbound message: %w", err)
	}
	err = o.Channel.PublishWithContext(ctx,
		o.Exchange,
		outboundRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish outbound message: %w", err)
	}
	return o.Repo.AppendOutbound(ctx, msg)
}

// DeclareOutboundExchange creates the durable topic exchange the broker
// outbox publishes to.
func DeclareOutboundExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
}
