package fulfillment

import (
	"context"
	"encoding/json"
	"time"

	"eventmart/internal/logger"
	"eventmart/internal/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	placedQueue = "order.placed"
	statusQueue = "order.status"
)

// Queue connects the order lifecycle to the external fulfillment process.
// Placed orders go out on one queue; status transitions come back on
// another and are applied verbatim.
type Queue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Connect(url string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	for _, name := range []string{placedQueue, statusQueue} {
		if _, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, err
		}
	}

	return &Queue{conn: conn, ch: ch}, nil
}

type placedEvent struct {
	OrderID string `json:"order_id"`
	Total   int    `json:"total_price"`
}

func (q *Queue) OrderPlaced(ctx context.Context, orderID string, total int) error {
	body, err := json.Marshal(placedEvent{OrderID: orderID, Total: total})
	if err != nil {
		return err
	}

	return q.ch.PublishWithContext(ctx,
		"",          // default exchange
		placedQueue, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

type statusEvent struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// StatusUpdater applies an externally owned status transition.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID string, status order.Status) error
}

// ConsumeStatusUpdates blocks applying transitions until the channel
// closes or ctx is done. Run it in its own goroutine.
func (q *Queue) ConsumeStatusUpdates(ctx context.Context, svc StatusUpdater) error {
	deliveries, err := q.ch.Consume(
		statusQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	log := logger.L().With(zap.String("queue", statusQueue))
	log.Info("fulfillment consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			var evt statusEvent
			if err := json.Unmarshal(d.Body, &evt); err != nil {
				log.Warn("malformed status event", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}

			if err := svc.UpdateStatus(ctx, evt.OrderID, order.Status(evt.Status)); err != nil {
				log.Error("failed to apply status update",
					zap.String("order_id", evt.OrderID),
					zap.String("status", evt.Status),
					zap.Error(err),
				)
				_ = d.Nack(false, false)
				continue
			}

			_ = d.Ack(false)
		}
	}
}

func (q *Queue) Close() {
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}
