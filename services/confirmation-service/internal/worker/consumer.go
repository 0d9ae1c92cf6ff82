package worker

import (
	"context"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"order-confirmation/services/confirmation-service/internal/notifier"
)

type Processor interface {
	ProcessOne(ctx context.Context, m notifier.Message) notifier.Outcome
}

// Consumer feeds queue deliveries to the notifier one at a time. Unparseable
// messages are rejected into the DLQ; everything else is acked, including
// failed sends, because confirmations are never retried.
type Consumer struct {
	Log      zerolog.Logger
	Notifier Processor
}

// Run handles deliveries until ctx is cancelled or the channel closes.
// Cancelling ctx stops intake only: the message being handled keeps its
// context and is acked as usual. A delivery picked up after cancellation is
// left unacked for the broker to redeliver.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	c.Log.Info().Msg("confirmation consumer started")
	handleCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			c.Log.Info().Msg("confirmation consumer stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				c.Log.Info().Msg("deliveries closed")
				return
			}
			if ctx.Err() != nil {
				c.Log.Info().Uint64("tag", d.DeliveryTag).Msg("confirmation consumer stopped, delivery left for redelivery")
				return
			}
			c.handle(handleCtx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	// logID only correlates log lines. The notifier gets the broker's id as is,
	// so a delivery without one is never deduplicated against a random id.
	logID := d.MessageId
	if logID == "" {
		logID = uuid.NewString()
		c.Log.Debug().Str("message_id", logID).Str("rk", d.RoutingKey).Msg("delivery without message id")
	}

	out := c.Notifier.ProcessOne(ctx, notifier.Message{ID: d.MessageId, Body: d.Body})

	switch out.Status {
	case notifier.StatusParseFailed:
		if err := d.Nack(false, false); err != nil {
			c.Log.Error().Err(err).Str("message_id", logID).Msg("nack failed")
		}
		c.Log.Warn().Str("message_id", logID).Str("rk", d.RoutingKey).Msg("bad order -> dlq")
	default:
		if err := d.Ack(false); err != nil {
			c.Log.Error().Err(err).Str("message_id", logID).Str("order_id", out.OrderID).Msg("ack failed")
		}
	}
}
