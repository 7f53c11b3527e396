package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksecure/tradedesk/pkg/adapters/redis"
	"github.com/blocksecure/tradedesk/pkg/domain"
	"github.com/blocksecure/tradedesk/pkg/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	store := redis.NewFromClient(client)
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	sess := domain.NewSession("42", time.Now())
	sess.Trade.Name = "Jane Doe"
	require.NoError(t, store.Save(ctx, sess))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "42")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// The index prune uses time.Now() for its cutoff, so wait past the TTL
	// in real time before checking the lazy cleanup.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSession("42", time.Now())))

	assert.True(t, mr.Exists("custom:42"))
	assert.False(t, mr.Exists("tradedesk:session:42"))
}

func TestRedisStore_RoundTripPreservesTrade(t *testing.T) {
	_, client := newTestClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := domain.NewSession("42", now)
	sess.Step = domain.StepConfirmMin
	sess.Trade = domain.TradeRequest{
		Name:     "Jane Doe",
		Email:    "jane@x.com",
		USDEquiv: 999.5,
	}
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmMin, loaded.Step)
	assert.Equal(t, sess.Trade, loaded.Trade)
	assert.True(t, loaded.LastActivityAt.Equal(now))
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	_, client := newTestClient(t)
	locker := redis.NewLocker(client, "tradedesk:session:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "42", 5*time.Second)
	require.NoError(t, err)

	// A second acquisition must block until released.
	blockedCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blockedCtx, "42", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "42", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}
