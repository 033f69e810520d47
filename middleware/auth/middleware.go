package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/services/tokens"
	"github.com/traintrack/traintrack/services/user"
)

const (
	UserKey   = "_auth_user"
	UserIDKey = "_auth_user_id"
)

// RequireUser authenticates the request from the access_token cookie. Two
// independent checks compose: the codec verifies signature and embedded
// expiry, then the lifecycle manager rejects tokens the store considers
// expired or revoked, which signature checks alone cannot catch.
// Every request is re-validated; nothing is cached across requests.
func RequireUser(codec *jwt.Service, lifecycle *tokens.Service, users *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(string(tokens.KindAccess))
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Токен не найден в куки. Необходима авторизация.")
			}

			userID, err := codec.Decode(cookie.Value)
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Токен истек")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Невалидный токен")
			}

			if lifecycle.IsExpiredOrRevoked(c.Request().Context(), tokens.KindAccess, cookie.Value) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access токен истёк или инвалидирован")
			}

			u, err := users.GetByID(userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "Пользователь не найден")
			}

			c.Set(UserIDKey, u.ID)
			c.Set(UserKey, u)

			return next(c)
		}
	}
}

// RequireAdmin escalates an already authenticated request with a role
// check. It must run after RequireUser.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Токен не найден в куки. Необходима авторизация.")
			}
			if !u.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Недостаточно прав доступа. Требуется роль администратора.")
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *user.User {
	if u, ok := c.Get(UserKey).(*user.User); ok {
		return u
	}
	return nil
}

func CurrentUserID(c echo.Context) uint {
	if id, ok := c.Get(UserIDKey).(uint); ok {
		return id
	}
	return 0
}
