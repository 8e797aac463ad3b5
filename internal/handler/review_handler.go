package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bandbook/internal/auth"
	"bandbook/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRequest represents a review submission.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse wraps a review payload.
type ReviewResponse struct {
	Review *service.ReviewItem `json:"review"`
}

// Submit godoc
// @Summary Create or update own review for a band
// @Description One review per (band, user); a second submission overwrites rating and comment.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Band ID"
// @Param request body ReviewRequest true "Rating 1..5 and comment (max 1000 chars)"
// @Success 200 {object} ReviewResponse "updated"
// @Success 201 {object} ReviewResponse "created"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id}/reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	bandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user := auth.CurrentUser(c)

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}

	review, created, err := h.reviewService.Submit(c.Request().Context(), bandID, user.ID, req.Rating, req.Comment)
	if err != nil {
		return respondError(err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, ReviewResponse{Review: review})
}

// List godoc
// @Summary List reviews for a band
// @Tags reviews
// @Produce json
// @Param id path int true "Band ID"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} service.ReviewPage
// @Failure 404 {object} errors.ErrorResponse
// @Router /bands/{id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	bandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.reviewService.ListForBand(c.Request().Context(), bandID, pageParams(c, 10))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, page)
}
