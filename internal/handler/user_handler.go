package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bandbook/internal/auth"
	"bandbook/internal/model"
	"bandbook/internal/service"
	"bandbook/internal/upload"
)

// UserHandler handles profile and admin user management endpoints.
type UserHandler struct {
	userService service.UserService
	uploader    *upload.Client
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, uploader *upload.Client) *UserHandler {
	return &UserHandler{
		userService: userService,
		uploader:    uploader,
	}
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// UpdateRoleRequest represents a role change.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateMe godoc
// @Summary Update own profile
// @Description Partial update of name and avatar. Accepts multipart/form-data with an "avatar" file or JSON with avatarUrl; an empty avatarUrl clears the avatar.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := auth.CurrentUser(c)

	var patch service.ProfilePatch
	if isMultipart(c) {
		if v, ok := formValue(c, "name"); ok {
			patch.Name = &v
		}
		if v, ok := formValue(c, "avatarUrl"); ok {
			patch.AvatarURL = &v
		}
	} else {
		var req UpdateProfileRequest
		if err := c.Bind(&req); err != nil {
			return validationError("invalid request body")
		}
		patch.Name = req.Name
		patch.AvatarURL = req.AvatarURL
	}

	if uploaded := resolveAvatar(c, h.uploader, deref(patch.AvatarURL)); uploaded != nil {
		patch.AvatarURL = uploaded
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: updated})
}

// List godoc
// @Summary List users
// @Description Admin only.
// @Tags users
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.UserPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.userService.List(c.Request().Context(), pageParams(c, 20))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Description Admin only. Admins cannot change their own role.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "New role (USER or ADMIN)"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	actor := auth.CurrentUser(c)

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("missing field: role")
	}

	user, err := h.userService.ChangeRole(c.Request().Context(), actor.ID, targetID, model.Role(req.Role))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}
