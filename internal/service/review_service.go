package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/pagination"
	"bandbook/internal/repository"
)

// ReviewItem is a review with its author's shallow profile attached.
type ReviewItem struct {
	model.Review
	Author model.UserSummary `json:"user"`
}

// ReviewPage is a paginated review listing for a band.
type ReviewPage struct {
	Items      []ReviewItem `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"totalPages"`
	PageRange  []string     `json:"pageRange"`
	Average    float64      `json:"average"`
}

// ReviewService handles review submission and listing.
type ReviewService interface {
	// Submit creates or overwrites the caller's review for the band.
	// The returned flag reports whether a new review was created.
	Submit(ctx context.Context, bandID, userID uint, rating int, comment string) (*ReviewItem, bool, error)
	ListForBand(ctx context.Context, bandID uint, params pagination.Params) (*ReviewPage, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	bands   repository.BandRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, bands repository.BandRepository) ReviewService {
	return &reviewService{
		reviews: reviews,
		bands:   bands,
	}
}

func (s *reviewService) Submit(ctx context.Context, bandID, userID uint, rating int, comment string) (*ReviewItem, bool, error) {
	if rating < 1 || rating > 5 {
		return nil, false, apperrors.ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, false, apperrors.ErrCommentRequired
	}
	if len([]rune(comment)) > 1000 {
		return nil, false, apperrors.ErrCommentTooLong
	}

	if err := s.ensureBand(ctx, bandID); err != nil {
		return nil, false, err
	}

	stored, err := s.reviews.Upsert(ctx, &model.Review{
		BandID:  bandID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert review: %w", err)
	}

	// Equal timestamps mean the upsert inserted rather than updated.
	created := stored.CreatedAt.Equal(stored.UpdatedAt)
	return toReviewItem(stored), created, nil
}

func (s *reviewService) ListForBand(ctx context.Context, bandID uint, params pagination.Params) (*ReviewPage, error) {
	if err := s.ensureBand(ctx, bandID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviews.ListByBand(ctx, bandID, params.Offset(), params.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	avg, err := s.reviews.AverageRating(ctx, bandID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	rounded, _ := decimal.NewFromFloat(avg).Round(2).Float64()

	items := make([]ReviewItem, 0, len(reviews))
	for i := range reviews {
		items = append(items, *toReviewItem(&reviews[i]))
	}
	totalPages := pagination.TotalPages(total, params.PageSize)
	return &ReviewPage{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
		PageRange:  pagination.PageRange(params.Page, totalPages),
		Average:    rounded,
	}, nil
}

func (s *reviewService) ensureBand(ctx context.Context, bandID uint) error {
	if _, err := s.bands.FindByID(ctx, bandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBandNotFound
		}
		return err
	}
	return nil
}

func toReviewItem(review *model.Review) *ReviewItem {
	item := &ReviewItem{Review: *review}
	if review.User != nil {
		item.Author = review.User.Summary()
	}
	item.User = nil
	item.Band = nil
	return item
}
