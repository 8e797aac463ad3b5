package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bandbook/internal/auth"
	"bandbook/internal/model"
	"bandbook/internal/service"
)

// FavoriteHandler handles favorite track set endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// ReplaceFavoriteRequest replaces the whole track set for a band.
type ReplaceFavoriteRequest struct {
	TrackIDs model.StringList `json:"trackIds"`
}

// PatchFavoriteRequest applies add/remove deltas to the track set.
type PatchFavoriteRequest struct {
	Add    model.StringList `json:"add"`
	Remove model.StringList `json:"remove"`
}

// FavoriteResponse wraps a favorite payload; Favorite is null when the
// user has no favorite for the band.
type FavoriteResponse struct {
	Favorite *model.Favorite `json:"favorite"`
}

// FavoriteListResponse wraps the user's favorites.
type FavoriteListResponse struct {
	Items []service.FavoriteItem `json:"items"`
}

// ListMine godoc
// @Summary List own favorites
// @Description Returns the caller's favorites with shallow band info, newest first.
// @Tags favorites
// @Produce json
// @Success 200 {object} FavoriteListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /favorites [get]
func (h *FavoriteHandler) ListMine(c echo.Context) error {
	user := auth.CurrentUser(c)
	items, err := h.favoriteService.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, FavoriteListResponse{Items: items})
}

// GetForBand godoc
// @Summary Get own favorite for a band
// @Tags favorites
// @Produce json
// @Param id path int true "Band ID"
// @Success 200 {object} FavoriteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /bands/{id}/favorite [get]
func (h *FavoriteHandler) GetForBand(c echo.Context) error {
	bandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user := auth.CurrentUser(c)
	favorite, err := h.favoriteService.GetForBand(c.Request().Context(), user.ID, bandID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, FavoriteResponse{Favorite: favorite})
}

// Replace godoc
// @Summary Replace own favorite track set for a band
// @Description Upserts the whole trackIds list (max 500 entries).
// @Tags favorites
// @Accept json
// @Produce json
// @Param id path int true "Band ID"
// @Param request body ReplaceFavoriteRequest true "Track IDs (array or comma-separated string)"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id}/favorite [post]
func (h *FavoriteHandler) Replace(c echo.Context) error {
	bandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user := auth.CurrentUser(c)

	var req ReplaceFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}

	favorite, err := h.favoriteService.Replace(c.Request().Context(), user.ID, bandID, req.TrackIDs)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, FavoriteResponse{Favorite: favorite})
}

// PatchTracks godoc
// @Summary Add and remove favorite tracks for a band
// @Description Applies the delta atomically; an id in both add and remove ends up removed.
// @Tags favorites
// @Accept json
// @Produce json
// @Param id path int true "Band ID"
// @Param request body PatchFavoriteRequest true "Deltas (arrays or comma-separated strings)"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id}/favorite/tracks [patch]
func (h *FavoriteHandler) PatchTracks(c echo.Context) error {
	bandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user := auth.CurrentUser(c)

	var req PatchFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}

	favorite, err := h.favoriteService.Patch(c.Request().Context(), user.ID, bandID, req.Add, req.Remove)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, FavoriteResponse{Favorite: favorite})
}

// Remove godoc
// @Summary Remove own favorite for a band
// @Tags favorites
// @Produce json
// @Param id path int true "Band ID"
// @Success 200 {object} okResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /bands/{id}/favorite [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	bandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user := auth.CurrentUser(c)
	if err := h.favoriteService.Remove(c.Request().Context(), user.ID, bandID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
