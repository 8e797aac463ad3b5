package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/service"
	"bandbook/internal/video"
)

// VideoHandler serves a band's YouTube channel videos.
type VideoHandler struct {
	bandService service.BandService
	videos      *video.Client
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(bandService service.BandService, videos *video.Client) *VideoHandler {
	return &VideoHandler{
		bandService: bandService,
		videos:      videos,
	}
}

// ListForBand godoc
// @Summary List a band's channel videos
// @Description Fetches one page of the band's YouTube channel uploads, newest first. Use the returned continuation tokens to page.
// @Tags videos
// @Produce json
// @Param id path int true "Band ID"
// @Param pageToken query string false "Continuation token from a previous page"
// @Param pageSize query int false "Page size (default 6, max 50)"
// @Success 200 {object} video.Page
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /bands/{id}/videos [get]
func (h *VideoHandler) ListForBand(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	band, err := h.bandService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}

	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	page, err := h.videos.ChannelVideos(c.Request().Context(), band.ChannelID, c.QueryParam("pageToken"), pageSize)
	if err != nil {
		c.Logger().Errorf("channel video lookup for band %d: %v", id, err)
		return echo.NewHTTPError(http.StatusBadGateway, apperrors.ErrorResponse{
			Error: "failed to fetch channel videos",
			Code:  "UPSTREAM",
		})
	}
	return c.JSON(http.StatusOK, page)
}
