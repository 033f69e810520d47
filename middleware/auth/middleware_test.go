package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/services/tokens"
	"github.com/traintrack/traintrack/services/user"
	"github.com/traintrack/traintrack/testutils"
)

func setupGate(t *testing.T) (*echo.Echo, *jwt.Service, *tokens.Service, *user.User, *user.User) {
	cfg := testutils.GetTestConfig()
	db := testutils.SetupTestDB(t, &user.User{})
	users := user.NewService(db, nil)
	codec := jwt.NewService(cfg, nil)
	lifecycle := tokens.NewService(codec, tokens.NewMemoryStore(), cfg, nil)

	seeded := user.User{Username: "alice", Password: "hash", Role: user.RoleUser}
	require.NoError(t, db.Create(&seeded).Error)

	admin := user.User{Username: "admin", Password: "hash", Role: user.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, CurrentUser(c))
	}, RequireUser(codec, lifecycle, users))
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireUser(codec, lifecycle, users), RequireAdmin())

	return e, codec, lifecycle, &seeded, &admin
}

func doRequest(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: string(tokens.KindAccess), Value: token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing cookie", func(t *testing.T) {
		e, _, _, _, _ := setupGate(t)
		rec := doRequest(e, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		e, _, _, _, _ := setupGate(t)
		rec := doRequest(e, "/me", "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("well-formed token absent from the store is rejected", func(t *testing.T) {
		// The signature verifies, but the store has no record: this is
		// the revocation path that codec checks alone cannot catch.
		e, codec, _, u, _ := setupGate(t)
		raw, err := codec.Generate(u.ID, testutils.GetTestConfig().JWT.AccessExpiry)
		require.NoError(t, err)

		rec := doRequest(e, "/me", raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("issued token authenticates", func(t *testing.T) {
		e, _, lifecycle, u, _ := setupGate(t)
		raw, err := lifecycle.Issue(ctx, tokens.KindAccess, u.ID)
		require.NoError(t, err)

		rec := doRequest(e, "/me", raw)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice")
	})

	t.Run("invalidated token is rejected", func(t *testing.T) {
		e, _, lifecycle, u, _ := setupGate(t)
		raw, err := lifecycle.Issue(ctx, tokens.KindAccess, u.ID)
		require.NoError(t, err)
		require.NoError(t, lifecycle.Invalidate(ctx, tokens.KindAccess, raw))

		rec := doRequest(e, "/me", raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deleted user resolves to not found", func(t *testing.T) {
		e, _, lifecycle, _, _ := setupGate(t)
		raw, err := lifecycle.Issue(ctx, tokens.KindAccess, 9999)
		require.NoError(t, err)

		rec := doRequest(e, "/me", raw)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin is forbidden", func(t *testing.T) {
		e, _, lifecycle, u, _ := setupGate(t)
		raw, err := lifecycle.Issue(ctx, tokens.KindAccess, u.ID)
		require.NoError(t, err)

		rec := doRequest(e, "/admin", raw)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes the role check", func(t *testing.T) {
		e, _, lifecycle, _, admin := setupGate(t)
		raw, err := lifecycle.Issue(ctx, tokens.KindAccess, admin.ID)
		require.NoError(t, err)

		rec := doRequest(e, "/admin", raw)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
