package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/testutils"
)

func newTestService(t *testing.T, store Store) *Service {
	cfg := testutils.GetTestConfig()
	codec := jwt.NewService(cfg, nil)
	return NewService(codec, store, cfg, nil)
}

func TestService_Issue(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, NewMemoryStore())

	t.Run("issued token is decodable and persisted as a hash", func(t *testing.T) {
		raw, err := service.Issue(ctx, KindRefresh, 123)
		require.NoError(t, err)
		require.NotEmpty(t, raw)

		exists, err := service.Exists(ctx, KindRefresh, raw)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("access and refresh records are independent", func(t *testing.T) {
		raw, err := service.Issue(ctx, KindAccess, 123)
		require.NoError(t, err)

		exists, err := service.Exists(ctx, KindRefresh, raw)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestService_IsExpiredOrRevoked(t *testing.T) {
	ctx := context.Background()

	t.Run("freshly issued token is valid", func(t *testing.T) {
		service := newTestService(t, NewMemoryStore())
		raw, err := service.Issue(ctx, KindAccess, 1)
		require.NoError(t, err)

		assert.False(t, service.IsExpiredOrRevoked(ctx, KindAccess, raw))
	})

	t.Run("unknown token fails safe", func(t *testing.T) {
		service := newTestService(t, NewMemoryStore())
		assert.True(t, service.IsExpiredOrRevoked(ctx, KindAccess, "never-issued-token"))
	})

	t.Run("invalidated token stays invalid permanently", func(t *testing.T) {
		service := newTestService(t, NewMemoryStore())
		raw, err := service.Issue(ctx, KindRefresh, 1)
		require.NoError(t, err)

		require.NoError(t, service.Invalidate(ctx, KindRefresh, raw))

		for i := 0; i < 3; i++ {
			assert.True(t, service.IsExpiredOrRevoked(ctx, KindRefresh, raw))
		}
	})

	t.Run("stored expiry in the past lazily revokes the record", func(t *testing.T) {
		// The relational backend keeps expired rows, so the lazy
		// revocation side effect is observable there.
		store := NewGormStore(testutils.SetupTestDB(t, &Record{}), nil)
		service := newTestService(t, store)

		cfg := testutils.GetTestConfig()
		codec := jwt.NewService(cfg, nil)
		raw, err := codec.Generate(1, time.Hour)
		require.NoError(t, err)

		hash := HashToken(cfg.JWT.SecretKey, raw)
		require.NoError(t, store.Save(ctx, Record{
			UserID:    1,
			Kind:      KindRefresh,
			TokenHash: hash,
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-time.Hour),
		}))

		assert.True(t, service.IsExpiredOrRevoked(ctx, KindRefresh, raw))

		rec, err := store.FindByHash(ctx, KindRefresh, hash)
		require.NoError(t, err)
		assert.True(t, rec.Revoked, "expired record should be lazily marked revoked")
	})
}

func TestService_Invalidate(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, NewMemoryStore())

	t.Run("unknown token reports not found", func(t *testing.T) {
		err := service.Invalidate(ctx, KindRefresh, "never-issued-token")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})
}

func TestService_ExchangeRefreshForAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token mints a live access token", func(t *testing.T) {
		service := newTestService(t, NewMemoryStore())
		refreshRaw, err := service.Issue(ctx, KindRefresh, 7)
		require.NoError(t, err)

		accessRaw, err := service.ExchangeRefreshForAccess(ctx, 7, refreshRaw)
		require.NoError(t, err)

		assert.False(t, service.IsExpiredOrRevoked(ctx, KindAccess, accessRaw))

		// The exchange itself does not consume the refresh token;
		// rotation is the caller's responsibility.
		assert.False(t, service.IsExpiredOrRevoked(ctx, KindRefresh, refreshRaw))
	})

	t.Run("refresh token absent from the store is rejected", func(t *testing.T) {
		service := newTestService(t, NewMemoryStore())

		cfg := testutils.GetTestConfig()
		codec := jwt.NewService(cfg, nil)
		unknown, err := codec.Generate(7, time.Hour)
		require.NoError(t, err)

		_, err = service.ExchangeRefreshForAccess(ctx, 7, unknown)
		assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		service := newTestService(t, NewMemoryStore())
		refreshRaw, err := service.Issue(ctx, KindRefresh, 7)
		require.NoError(t, err)
		require.NoError(t, service.Invalidate(ctx, KindRefresh, refreshRaw))

		_, err = service.ExchangeRefreshForAccess(ctx, 7, refreshRaw)
		assert.ErrorIs(t, err, ErrRefreshTokenExpired)
	})
}
