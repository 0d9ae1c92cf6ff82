package dedupe

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

const Schema = `
	create table if not exists processed_messages (
		message_id text primary key,
		order_id   text not null,
		created_at timestamptz not null default now()
	)
`

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Postgres struct {
	DB execer
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.DB.Exec(ctx, Schema); err != nil {
		return errors.Wrap(err, "create processed_messages")
	}
	return nil
}

// Claim returns true if inserted (new), false if already processed.
func (p *Postgres) Claim(ctx context.Context, messageID, orderID string) (bool, error) {
	ct, err := p.DB.Exec(ctx, `
		insert into processed_messages(message_id, order_id)
		values ($1, $2)
		on conflict (message_id) do nothing
	`, messageID, orderID)
	if err != nil {
		return false, errors.Wrap(err, "insert processed message")
	}
	return ct.RowsAffected() == 1, nil
}
