package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bandbook/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	// Upsert creates or overwrites the review keyed by (band, user) and
	// returns the stored record with its author preloaded.
	Upsert(ctx context.Context, review *model.Review) (*model.Review, error)
	ListByBand(ctx context.Context, bandID uint, offset, limit int) ([]model.Review, int64, error)
	AverageRating(ctx context.Context, bandID uint) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Upsert relies on the unique (band_id, user_id) index: a conflicting
// insert turns into an update of rating/comment, resolved atomically by
// the store.
func (r *reviewRepository) Upsert(ctx context.Context, review *model.Review) (*model.Review, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "band_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(review).Error
	if err != nil {
		return nil, err
	}

	var stored model.Review
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("band_id = ? AND user_id = ?", review.BandID, review.UserID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *reviewRepository) ListByBand(ctx context.Context, bandID uint, offset, limit int) ([]model.Review, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("band_id = ?", bandID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("band_id = ?", bandID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// AverageRating returns the mean rating for a band, 0 when unreviewed.
func (r *reviewRepository) AverageRating(ctx context.Context, bandID uint) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("band_id = ?", bandID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
