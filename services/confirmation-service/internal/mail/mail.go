package mail

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"

	"order-confirmation/shared/pkg/config"
)

// Email is one outbound plain-text message.
type Email struct {
	Source   string
	To       []string
	Subject  string
	TextBody string
}

// Sender submits an email to a transactional mail service. Implementations
// make exactly one attempt.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// New picks the sender configured by MAIL_PROVIDER.
func New(ctx context.Context, cfg config.MailConfig, log zerolog.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.ProviderSES:
		return NewSES(ctx, cfg.AWSRegion)
	case config.ProviderResend:
		return NewResend(cfg.ResendAPIKey), nil
	case config.ProviderLog:
		return &LogSender{Log: log}, nil
	default:
		return nil, errors.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
