package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	keys map[string]any
	ttl  time.Duration
	err  error
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	f.ttl = ttl
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value
	return redis.NewBoolResult(true, nil)
}

func TestRedis_Claim(t *testing.T) {
	fr := &fakeRedis{keys: map[string]any{}}
	r := &Redis{C: fr, TTL: time.Hour}
	ctx := context.Background()

	ok, err := r.Claim(ctx, "m-1", "123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Claim(ctx, "m-1", "123")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "123", fr.keys["confirmation:m-1:claimed"])
	assert.Equal(t, time.Hour, fr.ttl)
}

func TestRedis_ClaimError(t *testing.T) {
	boom := errors.New("connection refused")
	r := &Redis{C: &fakeRedis{err: boom}}

	_, err := r.Claim(context.Background(), "m-1", "123")
	require.ErrorIs(t, err, boom)
}

type fakeDB struct {
	seen map[string]bool
	sql  []string
	err  error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	if len(args) == 0 {
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
	id := args[0].(string)
	if f.seen[id] {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	f.seen[id] = true
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgres_Claim(t *testing.T) {
	db := &fakeDB{seen: map[string]bool{}}
	p := &Postgres{DB: db}
	ctx := context.Background()

	require.NoError(t, p.EnsureSchema(ctx))

	ok, err := p.Claim(ctx, "m-1", "123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Claim(ctx, "m-1", "123")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Claim(ctx, "m-2", "124")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, db.sql, 4)
	assert.Contains(t, db.sql[0], "create table if not exists processed_messages")
	assert.Contains(t, db.sql[1], "on conflict (message_id) do nothing")
}

func TestPostgres_ClaimError(t *testing.T) {
	boom := errors.New("db down")
	p := &Postgres{DB: &fakeDB{err: boom}}

	_, err := p.Claim(context.Background(), "m-1", "123")
	require.ErrorIs(t, err, boom)
}
