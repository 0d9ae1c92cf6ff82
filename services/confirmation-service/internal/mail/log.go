package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes the email to the log instead of sending it. Used for local
// runs and staging queues.
type LogSender struct {
	Log zerolog.Logger
}

func (l *LogSender) Send(_ context.Context, e Email) error {
	l.Log.Info().
		Str("from", e.Source).
		Strs("to", e.To).
		Str("subject", e.Subject).
		Str("body", e.TextBody).
		Msg("dry-run email")
	return nil
}
