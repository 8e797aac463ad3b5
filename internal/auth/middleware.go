package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/repository"
)

const currentUserKey = "currentUser"

// CurrentUser returns the user resolved for this request, or nil for
// an anonymous request.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

// Identify resolves the session cookie into a user and attaches it to
// the request context. It never fails: a missing, invalid or expired
// token, or a vanished user, leaves the request anonymous.
func Identify(jwtService *JWTService, users repository.UserRepository, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			claims := jwtService.Resolve(cookie.Value)
			if claims == nil {
				return next(c)
			}
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err == nil && user != nil {
				c.Set(currentUserKey, user)
			}
			return next(c)
		}
	}
}

// LoadUser turns the token already verified by the echo-jwt middleware
// into a full user record. It rejects requests whose subject no longer
// exists.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated()
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.UserID == 0 {
				return unauthenticated()
			}
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil || user == nil {
				return unauthenticated()
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose resolved user is not an ADMIN.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthenticated()
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: apperrors.ErrForbidden.Error(),
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.ErrUnauthenticated.Error(),
		Code:  "UNAUTHENTICATED",
	})
}
