package lambdahandler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"order-confirmation/services/confirmation-service/internal/notifier"
)

type BatchProcessor interface {
	Process(ctx context.Context, batch []notifier.Message) notifier.Report
}

// Handler adapts SQS batches delivered by Lambda to the notifier.
type Handler struct {
	Log      zerolog.Logger
	Notifier BatchProcessor
}

// Handle always returns nil: failed records are logged and dropped, never
// handed back to SQS for redelivery.
func (h *Handler) Handle(ctx context.Context, event events.SQSEvent) error {
	batch := make([]notifier.Message, 0, len(event.Records))
	for _, r := range event.Records {
		batch = append(batch, notifier.Message{ID: r.MessageId, Body: []byte(r.Body)})
	}

	rep := h.Notifier.Process(ctx, batch)
	for _, out := range rep.Outcomes {
		if out.Err != nil {
			h.Log.Warn().
				Err(out.Err).
				Str("message_id", out.MessageID).
				Str("order_id", out.OrderID).
				Str("status", string(out.Status)).
				Msg("record dropped")
		}
	}
	return nil
}
