package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-confirmation/services/confirmation-service/internal/mail"
	"order-confirmation/shared/pkg/config"
)

func TestNewNotifier_LogProvider(t *testing.T) {
	cfg := config.Config{
		Mail: config.MailConfig{
			Sender:        "shop@example.com",
			SubjectPrefix: "Purchase Confirmation",
			Provider:      config.ProviderLog,
		},
		Dedupe: config.DedupeConfig{Backend: config.DedupeNone},
	}

	n, cleanup, err := NewNotifier(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "shop@example.com", n.Sender)
	assert.Equal(t, "Purchase Confirmation", n.SubjectPrefix)
	assert.IsType(t, &mail.LogSender{}, n.Mailer)
	assert.Nil(t, n.Dedupe)
}

func TestNewNotifier_UnknownProvider(t *testing.T) {
	cfg := config.Config{Mail: config.MailConfig{Sender: "shop@example.com", Provider: "fax"}}

	_, _, err := NewNotifier(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}
