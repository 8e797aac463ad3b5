package repository

import (
	"context"

	"gorm.io/gorm"

	"bandbook/internal/model"
)

// BandQuery carries the search, filter and paging options for band listings.
type BandQuery struct {
	Q        string // substring match over name/description
	Category string // exact-match filter
	Sort     string // "new" (default), "name-asc", "name-desc"
	Offset   int
	Limit    int
}

// BandRepository defines band persistence operations.
type BandRepository interface {
	Create(ctx context.Context, band *model.Band) error
	Update(ctx context.Context, band *model.Band) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Band, error)
	FindByChannelID(ctx context.Context, channelID string) (*model.Band, error)
	Search(ctx context.Context, q BandQuery) ([]model.Band, int64, error)
}

type bandRepository struct {
	db *gorm.DB
}

// NewBandRepository builds a GORM-backed repository.
func NewBandRepository(db *gorm.DB) BandRepository {
	return &bandRepository{db: db}
}

func (r *bandRepository) Create(ctx context.Context, band *model.Band) error {
	return r.db.WithContext(ctx).Create(band).Error
}

func (r *bandRepository) Update(ctx context.Context, band *model.Band) error {
	return r.db.WithContext(ctx).Save(band).Error
}

func (r *bandRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Band{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bandRepository) FindByID(ctx context.Context, id uint) (*model.Band, error) {
	var band model.Band
	if err := r.db.WithContext(ctx).First(&band, id).Error; err != nil {
		return nil, err
	}
	return &band, nil
}

func (r *bandRepository) FindByChannelID(ctx context.Context, channelID string) (*model.Band, error) {
	var band model.Band
	if err := r.db.WithContext(ctx).Where("channel_id = ?", channelID).First(&band).Error; err != nil {
		return nil, err
	}
	return &band, nil
}

// Search lists bands matching the query and returns the matching total.
// Substring search uses LIKE with the store's default collation.
func (r *bandRepository) Search(ctx context.Context, q BandQuery) ([]model.Band, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Band{})
	if q.Q != "" {
		pattern := "%" + q.Q + "%"
		tx = tx.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch q.Sort {
	case "name-asc":
		order = "name ASC"
	case "name-desc":
		order = "name DESC"
	}

	var bands []model.Band
	err := tx.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&bands).Error
	if err != nil {
		return nil, 0, err
	}
	return bands, total, nil
}
