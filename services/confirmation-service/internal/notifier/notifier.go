package notifier

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"

	"order-confirmation/services/confirmation-service/internal/dedupe"
	"order-confirmation/services/confirmation-service/internal/mail"
	"order-confirmation/services/confirmation-service/internal/metrics"
	"order-confirmation/shared/pkg/models"
)

// Message is one raw queue record. ID is the transport's message id and may
// be empty.
type Message struct {
	ID   string
	Body []byte
}

type Status string

const (
	StatusSent        Status = metrics.OutcomeSent
	StatusParseFailed Status = metrics.OutcomeParseFailed
	StatusSendFailed  Status = metrics.OutcomeSendFailed
	StatusDuplicate   Status = metrics.OutcomeDuplicate
)

// Outcome describes what happened to one message.
type Outcome struct {
	MessageID string
	OrderID   string
	Status    Status
	Err       error
}

// Report summarizes a batch. Outcomes has one entry per input message, in
// input order.
type Report struct {
	Outcomes    []Outcome
	Sent        int
	ParseFailed int
	SendFailed  int
	Duplicates  int
}

// Notifier turns order messages into confirmation emails. It is safe to reuse
// across batches; it keeps no per-message state.
type Notifier struct {
	Log           zerolog.Logger
	Mailer        mail.Sender
	Sender        string
	SubjectPrefix string

	// Dedupe is optional.
	Dedupe dedupe.Store
}

// Process handles every message of the batch in order. A failing message is
// logged and skipped; the batch is never aborted and nothing is retried.
func (n *Notifier) Process(ctx context.Context, batch []Message) Report {
	n.Log.Info().Int("records", len(batch)).Msg("batch received")
	metrics.BatchSize.Observe(float64(len(batch)))

	rep := Report{Outcomes: make([]Outcome, 0, len(batch))}
	for _, m := range batch {
		out := n.ProcessOne(ctx, m)
		rep.Outcomes = append(rep.Outcomes, out)
		switch out.Status {
		case StatusSent:
			rep.Sent++
		case StatusParseFailed:
			rep.ParseFailed++
		case StatusSendFailed:
			rep.SendFailed++
		case StatusDuplicate:
			rep.Duplicates++
		}
	}

	n.Log.Info().
		Int("records", len(batch)).
		Int("sent", rep.Sent).
		Int("parse_failed", rep.ParseFailed).
		Int("send_failed", rep.SendFailed).
		Int("duplicates", rep.Duplicates).
		Msg("batch done")
	return rep
}

// ProcessOne parses, renders and sends a single message.
func (n *Notifier) ProcessOne(ctx context.Context, m Message) (out Outcome) {
	out.MessageID = m.ID
	// A panic is confined to this message and classified by the stage it hit:
	// while decoding it is a parse failure, afterwards a send failure.
	stage := StatusParseFailed
	defer func() {
		if r := recover(); r != nil {
			n.Log.Error().Interface("panic", r).Str("message_id", m.ID).Str("stage", string(stage)).Msg("message handling panicked")
			out.Status = stage
			out.Err = errors.Errorf("panic: %v", r)
		}
		metrics.MessagesTotal.WithLabelValues(string(out.Status)).Inc()
	}()

	n.Log.Debug().Str("message_id", m.ID).Bytes("body", m.Body).Msg("processing message")

	order, err := models.DecodeOrder(m.Body)
	if err != nil {
		n.Log.Error().Err(err).Str("message_id", m.ID).Msg("bad order message -> skip")
		out.Status = StatusParseFailed
		out.Err = errors.Wrap(err, "parse order")
		return out
	}
	out.OrderID = order.ID
	stage = StatusSendFailed

	n.Log.Debug().
		Str("order_id", order.ID).
		Str("to", order.CustomerEmail).
		Int("items", len(order.Items)).
		Msg("order decoded")

	if n.Dedupe != nil && m.ID != "" {
		first, err := n.Dedupe.Claim(ctx, m.ID, order.ID)
		switch {
		case err != nil:
			n.Log.Warn().Err(err).Str("message_id", m.ID).Str("order_id", order.ID).Msg("dedupe claim failed, sending anyway")
		case !first:
			n.Log.Info().Str("message_id", m.ID).Str("order_id", order.ID).Msg("duplicate message ignored")
			out.Status = StatusDuplicate
			return out
		}
	}

	email := BuildEmail(order, n.Sender, n.SubjectPrefix)

	n.Log.Info().Str("order_id", order.ID).Str("to", order.CustomerEmail).Msg("sending confirmation")
	start := time.Now()
	err = n.Mailer.Send(ctx, email)
	metrics.SendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		n.Log.Error().Err(err).Str("order_id", order.ID).Str("to", order.CustomerEmail).Msg("send confirmation failed")
		out.Status = StatusSendFailed
		out.Err = errors.Wrap(err, "send confirmation")
		return out
	}

	n.Log.Info().Str("order_id", order.ID).Str("to", order.CustomerEmail).Msg("confirmation sent")
	out.Status = StatusSent
	return out
}
