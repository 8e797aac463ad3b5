package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bandbook/internal/model"
)

// FavoriteRepository defines favorite persistence operations.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error)
	FindByUserAndBand(ctx context.Context, userID, bandID uint) (*model.Favorite, error)
	// Replace upserts the whole track list for (user, band).
	Replace(ctx context.Context, userID, bandID uint, trackIDs model.StringList) (*model.Favorite, error)
	// PatchTracks applies a delta to the stored track list. The read,
	// the apply callback and the write run in one transaction with the
	// favorite row locked, so concurrent patches to the same (user,
	// band) pair serialize instead of losing updates.
	PatchTracks(ctx context.Context, userID, bandID uint, apply func(current model.StringList) (model.StringList, error)) (*model.Favorite, error)
	Delete(ctx context.Context, userID, bandID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository builds a GORM-backed repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Band").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) FindByUserAndBand(ctx context.Context, userID, bandID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND band_id = ?", userID, bandID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Replace(ctx context.Context, userID, bandID uint, trackIDs model.StringList) (*model.Favorite, error) {
	favorite := &model.Favorite{UserID: userID, BandID: bandID, TrackIDs: trackIDs}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "band_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"track_ids", "updated_at"}),
	}).Create(favorite).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserAndBand(ctx, userID, bandID)
}

func (r *favoriteRepository) PatchTracks(ctx context.Context, userID, bandID uint, apply func(current model.StringList) (model.StringList, error)) (*model.Favorite, error) {
	var out *model.Favorite
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var favorite model.Favorite
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND band_id = ?", userID, bandID).
			First(&favorite).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		next, err := apply(favorite.TrackIDs)
		if err != nil {
			return err
		}

		if favorite.ID == 0 {
			favorite = model.Favorite{UserID: userID, BandID: bandID, TrackIDs: next}
			if err := tx.Create(&favorite).Error; err != nil {
				return err
			}
		} else {
			favorite.TrackIDs = next
			if err := tx.Save(&favorite).Error; err != nil {
				return err
			}
		}
		out = &favorite
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the favorite for (user, band); deleting a missing
// favorite is a no-op, mirroring deleteMany semantics.
func (r *favoriteRepository) Delete(ctx context.Context, userID, bandID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND band_id = ?", userID, bandID).
		Delete(&model.Favorite{}).Error
}
