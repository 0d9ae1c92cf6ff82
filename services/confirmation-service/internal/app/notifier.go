package app

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"order-confirmation/services/confirmation-service/internal/dedupe"
	"order-confirmation/services/confirmation-service/internal/mail"
	"order-confirmation/services/confirmation-service/internal/notifier"
	"order-confirmation/shared/pkg/config"
)

// NewNotifier wires the mail sender and the optional dedupe store from
// config. The returned cleanup closes whatever connections were opened.
func NewNotifier(ctx context.Context, cfg config.Config, log zerolog.Logger) (*notifier.Notifier, func(), error) {
	sender, err := mail.New(ctx, cfg.Mail, log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mail sender")
	}

	n := &notifier.Notifier{
		Log:           log,
		Mailer:        sender,
		Sender:        cfg.Mail.Sender,
		SubjectPrefix: cfg.Mail.SubjectPrefix,
	}
	cleanup := func() {}

	switch cfg.Dedupe.Backend {
	case config.DedupeRedis:
		store, client := dedupe.NewRedis(cfg.Redis.Addr, cfg.Dedupe.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrap(err, "redis ping")
		}
		n.Dedupe = store
		cleanup = func() { _ = client.Close() }
	case config.DedupePostgres:
		dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		db, err := pgxpool.New(dbCtx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, errors.Wrap(err, "pg connect")
		}
		store := &dedupe.Postgres{DB: db}
		if err := store.EnsureSchema(dbCtx); err != nil {
			db.Close()
			return nil, nil, err
		}
		n.Dedupe = store
		cleanup = db.Close
	}

	log.Info().
		Str("provider", cfg.Mail.Provider).
		Str("dedupe", cfg.Dedupe.Backend).
		Str("sender", cfg.Mail.Sender).
		Msg("notifier ready")
	return n, cleanup, nil
}
