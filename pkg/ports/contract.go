package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation adheres
// to the interface contract. Store tests for every adapter run this suite.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	userID := "contract-user-" + time.Now().Format("20060102150405")
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(userID, now)
		session.Step = domain.StepCrypto
		session.Trade.Name = "Jane Doe"
		session.Trade.USDEquiv = 1500

		require.NoError(t, store.Save(ctx, session))

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, loaded.UserID)
		assert.Equal(t, domain.StepCrypto, loaded.Step)
		assert.Equal(t, "Jane Doe", loaded.Trade.Name)
		assert.Equal(t, 1500.0, loaded.Trade.USDEquiv)
	})

	t.Run("Load returns isolated copies", func(t *testing.T) {
		session := domain.NewSession(userID, now)
		require.NoError(t, store.Save(ctx, session))

		first, err := store.Load(ctx, userID)
		require.NoError(t, err)
		first.Trade.Name = "mutated"

		second, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, second.Trade.Name, "mutating a loaded session must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(userID, now)))
		require.NoError(t, store.Delete(ctx, userID))

		_, err := store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		// Deleting again must be a no-op.
		assert.NoError(t, store.Delete(ctx, userID))
	})

	t.Run("List", func(t *testing.T) {
		id1 := userID + "-1"
		id2 := userID + "-2"
		require.NoError(t, store.Save(ctx, domain.NewSession(id1, now)))
		require.NoError(t, store.Save(ctx, domain.NewSession(id2, now)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
