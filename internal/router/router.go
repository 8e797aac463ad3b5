package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bandbook/internal/auth"
	"bandbook/internal/config"
	apperrors "bandbook/internal/errors"
	"bandbook/internal/handler"
	"bandbook/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	bandHandler *handler.BandHandler,
	reviewHandler *handler.ReviewHandler,
	favoriteHandler *handler.FavoriteHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes. Identify attaches the user when a valid session
	// cookie is present but never rejects the request.
	identify := auth.Identify(jwtService, users, cfg.CookieName)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me, identify)

	api.GET("/bands", bandHandler.List)
	api.GET("/bands/:id", bandHandler.Get)
	api.GET("/bands/:id/reviews", reviewHandler.List)
	api.GET("/bands/:id/videos", videoHandler.ListForBand)

	// Secured routes (require a valid session cookie)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + cfg.CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	}), auth.LoadUser(users))

	secured.POST("/bands/:id/reviews", reviewHandler.Submit)

	secured.GET("/favorites", favoriteHandler.ListMine)
	secured.GET("/bands/:id/favorite", favoriteHandler.GetForBand)
	secured.POST("/bands/:id/favorite", favoriteHandler.Replace)
	secured.PATCH("/bands/:id/favorite/tracks", favoriteHandler.PatchTracks)
	secured.DELETE("/bands/:id/favorite", favoriteHandler.Remove)

	secured.PATCH("/users/me", userHandler.UpdateMe)

	// Admin routes
	admin := secured.Group("", auth.RequireAdmin())

	admin.POST("/bands", bandHandler.Create)
	admin.PATCH("/bands/:id", bandHandler.Update)
	admin.DELETE("/bands/:id", bandHandler.Delete)

	admin.GET("/users", userHandler.List)
	admin.PATCH("/users/:id/role", userHandler.UpdateRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
