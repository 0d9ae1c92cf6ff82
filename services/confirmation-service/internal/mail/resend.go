package mail

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/resend/resend-go/v3"
)

type resendAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Resend sends through the Resend HTTP API.
type Resend struct {
	Emails resendAPI
}

func NewResend(apiKey string) *Resend {
	return &Resend{Emails: resend.NewClient(apiKey).Emails}
}

func (r *Resend) Send(ctx context.Context, e Email) error {
	params := &resend.SendEmailRequest{
		From:    e.Source,
		To:      e.To,
		Subject: e.Subject,
		Text:    e.TextBody,
	}
	if _, err := r.Emails.SendWithContext(ctx, params); err != nil {
		return errors.Wrap(err, "resend send email")
	}
	return nil
}
