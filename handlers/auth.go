package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/traintrack/traintrack/config"
	"github.com/traintrack/traintrack/middleware/auth"
	authsvc "github.com/traintrack/traintrack/services/auth"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/services/logging"
	"github.com/traintrack/traintrack/services/tokens"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	config    *config.Config
	auth      *authsvc.Service
	codec     *jwt.Service
	lifecycle *tokens.Service
	logger    *logging.Service
}

func NewAuthHandler(cfg *config.Config, auth *authsvc.Service, codec *jwt.Service, lifecycle *tokens.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		config:    cfg,
		auth:      auth,
		codec:     codec,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	if _, err := h.auth.Register(req.Username, req.Password); err != nil {
		if err == authsvc.ErrUsernameTaken {
			return c.JSON(http.StatusOK, echo.Map{"message": "Пользователь уже существует"})
		}
		h.logger.Error("registration failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to register user")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Пользователь успешно зарегистрирован"})
}

// Login verifies credentials and issues the refresh/access pair. Wrong
// credentials deliberately produce a success-shaped message body rather
// than an HTTP error.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := h.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "Неверные учетные данные"})
	}

	ctx := c.Request().Context()

	refreshToken, err := h.lifecycle.Issue(ctx, tokens.KindRefresh, u.ID)
	if err != nil {
		h.logger.Error("failed to issue refresh token", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue tokens")
	}

	accessToken, err := h.lifecycle.Issue(ctx, tokens.KindAccess, u.ID)
	if err != nil {
		h.logger.Error("failed to issue access token", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue tokens")
	}

	h.setTokenCookie(c, tokens.KindAccess, accessToken, h.codec.AccessExpiry())
	h.setTokenCookie(c, tokens.KindRefresh, refreshToken, h.codec.RefreshExpiry())

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Успешный вход в систему",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	for _, kind := range []tokens.Kind{tokens.KindAccess, tokens.KindRefresh} {
		if cookie, err := c.Cookie(string(kind)); err == nil && cookie.Value != "" {
			if err := h.lifecycle.Invalidate(ctx, kind, cookie.Value); err != nil && err != tokens.ErrTokenNotFound {
				h.logger.Warn("failed to invalidate token on logout",
					zap.String("token_type", string(kind)),
					zap.Error(err))
			}
		}
		h.clearTokenCookie(c, kind)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Успешный выход из системы"})
}

// Refresh performs the rotation protocol: the current refresh token is
// validated and exchanged for a new access token, then immediately
// invalidated, and a fresh refresh token is issued alongside. Each refresh
// token is therefore valid for exactly one exchange; replaying a rotated
// token fails as revoked.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(string(tokens.KindRefresh))
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, echo.Map{"message": "Refresh токен истёк или инвалидирован"})
	}
	refreshRaw := cookie.Value

	userID, err := h.codec.Decode(refreshRaw)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "Refresh токен истёк или инвалидирован"})
	}

	ctx := c.Request().Context()

	accessToken, err := h.lifecycle.ExchangeRefreshForAccess(ctx, userID, refreshRaw)
	if err != nil {
		if err == tokens.ErrRefreshTokenNotFound || err == tokens.ErrRefreshTokenExpired {
			return c.JSON(http.StatusOK, echo.Map{"message": "Refresh токен истёк или инвалидирован"})
		}
		h.logger.Error("refresh exchange failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to refresh tokens")
	}

	if err := h.lifecycle.Invalidate(ctx, tokens.KindRefresh, refreshRaw); err != nil && err != tokens.ErrTokenNotFound {
		h.logger.Error("failed to invalidate rotated refresh token", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to refresh tokens")
	}

	newRefreshToken, err := h.lifecycle.Issue(ctx, tokens.KindRefresh, userID)
	if err != nil {
		h.logger.Error("failed to issue rotated refresh token", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to refresh tokens")
	}

	h.setTokenCookie(c, tokens.KindAccess, accessToken, h.codec.AccessExpiry())
	h.setTokenCookie(c, tokens.KindRefresh, newRefreshToken, h.codec.RefreshExpiry())

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.CurrentUser(c))
}

func (h *AuthHandler) setTokenCookie(c echo.Context, kind tokens.Kind, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     string(kind),
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookie(c echo.Context, kind tokens.Kind) {
	c.SetCookie(&http.Cookie{
		Name:     string(kind),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
