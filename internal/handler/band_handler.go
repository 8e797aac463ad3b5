package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bandbook/internal/model"
	"bandbook/internal/service"
	"bandbook/internal/upload"
)

// BandHandler handles band CRUD endpoints.
type BandHandler struct {
	bandService service.BandService
	uploader    *upload.Client
}

// NewBandHandler creates a new band handler.
func NewBandHandler(bandService service.BandService, uploader *upload.Client) *BandHandler {
	return &BandHandler{
		bandService: bandService,
		uploader:    uploader,
	}
}

// BandResponse wraps a band payload.
type BandResponse struct {
	Band *model.Band `json:"band"`
}

// CreateBandRequest represents a band create request.
type CreateBandRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Members     model.StringList `json:"members"`
	ChannelID   string           `json:"channelId" validate:"required"`
	AvatarURL   string           `json:"avatarUrl"`
	Category    string           `json:"category"`
}

// UpdateBandRequest represents a partial band update; absent fields stay unchanged.
type UpdateBandRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Members     *model.StringList `json:"members"`
	ChannelID   *string           `json:"channelId"`
	AvatarURL   *string           `json:"avatarUrl"`
	Category    *string           `json:"category"`
}

// List godoc
// @Summary List bands
// @Description Public listing with substring search, category filter, sorting and pagination.
// @Tags bands
// @Produce json
// @Param q query string false "Search over name/description"
// @Param category query string false "Exact category filter"
// @Param sort query string false "Sort order" Enums(new, name-asc, name-desc)
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 12, max 100)"
// @Success 200 {object} service.BandPage
// @Router /bands [get]
func (h *BandHandler) List(c echo.Context) error {
	page, err := h.bandService.List(c.Request().Context(), service.BandListQuery{
		Q:        c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Params:   pageParams(c, 12),
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get band by id
// @Tags bands
// @Produce json
// @Param id path int true "Band ID"
// @Success 200 {object} BandResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id} [get]
func (h *BandHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	band, err := h.bandService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, BandResponse{Band: band})
}

// Create godoc
// @Summary Create a band
// @Description Admin only. Accepts multipart/form-data with an "avatar" file or JSON with avatarUrl.
// @Tags bands
// @Accept json,mpfd
// @Produce json
// @Param request body CreateBandRequest true "Band data"
// @Success 201 {object} BandResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /bands [post]
func (h *BandHandler) Create(c echo.Context) error {
	var req CreateBandRequest
	if isMultipart(c) {
		req.Name = c.FormValue("name")
		req.Description = c.FormValue("description")
		req.Members = model.ParseStringList(c.FormValue("members"))
		req.ChannelID = c.FormValue("channelId")
		req.AvatarURL = c.FormValue("avatarUrl")
		req.Category = c.FormValue("category")
	} else if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("missing fields: name, description, channelId")
	}

	input := service.BandInput{
		Name:        req.Name,
		Description: req.Description,
		Members:     req.Members,
		ChannelID:   req.ChannelID,
		AvatarURL:   resolveAvatar(c, h.uploader, req.AvatarURL),
	}
	if req.Category != "" {
		input.Category = &req.Category
	}

	band, err := h.bandService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, BandResponse{Band: band})
}

// Update godoc
// @Summary Update a band
// @Description Admin only. Partial update; same body rules as create.
// @Tags bands
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Band ID"
// @Param request body UpdateBandRequest true "Fields to change"
// @Success 200 {object} BandResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id} [patch]
func (h *BandHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var patch service.BandPatch
	if isMultipart(c) {
		patch = h.patchFromForm(c)
	} else {
		var req UpdateBandRequest
		if err := c.Bind(&req); err != nil {
			return validationError("invalid request body")
		}
		patch = service.BandPatch{
			Name:        req.Name,
			Description: req.Description,
			Members:     req.Members,
			ChannelID:   req.ChannelID,
			AvatarURL:   req.AvatarURL,
			Category:    req.Category,
		}
	}

	// A freshly uploaded or re-pointed avatar overrides the existing one.
	if uploaded := resolveAvatar(c, h.uploader, deref(patch.AvatarURL)); uploaded != nil {
		patch.AvatarURL = uploaded
	}

	band, err := h.bandService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, BandResponse{Band: band})
}

// Delete godoc
// @Summary Delete a band
// @Description Admin only.
// @Tags bands
// @Produce json
// @Param id path int true "Band ID"
// @Success 200 {object} okResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id} [delete]
func (h *BandHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.bandService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func (h *BandHandler) patchFromForm(c echo.Context) service.BandPatch {
	var patch service.BandPatch
	if v, ok := formValue(c, "name"); ok {
		patch.Name = &v
	}
	if v, ok := formValue(c, "description"); ok {
		patch.Description = &v
	}
	if v, ok := formValue(c, "members"); ok {
		members := model.ParseStringList(v)
		patch.Members = &members
	}
	if v, ok := formValue(c, "channelId"); ok {
		patch.ChannelID = &v
	}
	if v, ok := formValue(c, "avatarUrl"); ok {
		patch.AvatarURL = &v
	}
	if v, ok := formValue(c, "category"); ok {
		patch.Category = &v
	}
	return patch
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
