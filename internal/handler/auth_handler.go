package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bandbook/internal/auth"
	"bandbook/internal/model"
	"bandbook/internal/service"
	"bandbook/internal/upload"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	authService  service.AuthService
	uploader     *upload.Client
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, uploader *upload.Client, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		uploader:     uploader,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	AvatarURL string `json:"avatarUrl"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse wraps a user payload.
type UserResponse struct {
	User *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a USER account, optionally with an avatar (multipart file or remote avatarUrl), and sets the session cookie.
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if isMultipart(c) {
		req.Name = c.FormValue("name")
		req.Email = c.FormValue("email")
		req.Password = c.FormValue("password")
		req.AvatarURL = c.FormValue("avatarUrl")
	} else if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("missing fields: name, email, password")
	}

	avatarURL := resolveAvatar(c, h.uploader, req.AvatarURL)

	user, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, avatarURL)
	if err != nil {
		return respondError(err)
	}

	c.SetCookie(auth.SessionCookie(h.cookieName, token, h.cookieSecure))
	return c.JSON(http.StatusCreated, UserResponse{User: user})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("missing fields: email, password")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	c.SetCookie(auth.SessionCookie(h.cookieName, token, h.cookieSecure))
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session cookie. Already-issued tokens expire naturally.
// @Tags auth
// @Produce json
// @Success 200 {object} okResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearSessionCookie(h.cookieName, h.cookieSecure))
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user, or null for anonymous requests.
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, UserResponse{User: auth.CurrentUser(c)})
}
