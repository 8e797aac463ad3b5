package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"bandbook/internal/cache"
	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/pagination"
	"bandbook/internal/repository"
)

const bandCacheTTL = 5 * time.Minute

// BandListQuery is the public listing query.
type BandListQuery struct {
	Q        string
	Category string
	Sort     string
	Params   pagination.Params
}

// BandPage is a paginated band listing. PageRange is the compressed
// page-label sequence the client renders as pagination controls.
type BandPage struct {
	Items      []model.Band `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"totalPages"`
	PageRange  []string     `json:"pageRange"`
}

// BandInput carries band create fields.
type BandInput struct {
	Name        string
	Description string
	Members     model.StringList
	ChannelID   string
	AvatarURL   *string
	Category    *string
}

// BandPatch carries band update fields; nil means unchanged.
type BandPatch struct {
	Name        *string
	Description *string
	Members     *model.StringList
	ChannelID   *string
	AvatarURL   *string // non-nil empty string clears the avatar
	Category    *string // non-nil empty string clears the category
}

// BandService handles band operations.
type BandService interface {
	List(ctx context.Context, q BandListQuery) (*BandPage, error)
	Get(ctx context.Context, id uint) (*model.Band, error)
	Create(ctx context.Context, input BandInput) (*model.Band, error)
	Update(ctx context.Context, id uint, patch BandPatch) (*model.Band, error)
	Delete(ctx context.Context, id uint) error
}

type bandService struct {
	bands repository.BandRepository
	cache *cache.Client
}

// NewBandService creates a new band service.
func NewBandService(bands repository.BandRepository, cache *cache.Client) BandService {
	return &bandService{
		bands: bands,
		cache: cache,
	}
}

func (s *bandService) cacheKey(id uint) string {
	return fmt.Sprintf("band:%d", id)
}

func (s *bandService) List(ctx context.Context, q BandListQuery) (*BandPage, error) {
	items, total, err := s.bands.Search(ctx, repository.BandQuery{
		Q:        strings.TrimSpace(q.Q),
		Category: strings.TrimSpace(q.Category),
		Sort:     q.Sort,
		Offset:   q.Params.Offset(),
		Limit:    q.Params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("search bands: %w", err)
	}
	totalPages := pagination.TotalPages(total, q.Params.PageSize)
	return &BandPage{
		Items:      items,
		Page:       q.Params.Page,
		PageSize:   q.Params.PageSize,
		Total:      total,
		TotalPages: totalPages,
		PageRange:  pagination.PageRange(q.Params.Page, totalPages),
	}, nil
}

// Get retrieves a band by ID with caching.
func (s *bandService) Get(ctx context.Context, id uint) (*model.Band, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Band
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	band, err := s.bands.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBandNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(band); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, bandCacheTTL)
	}
	return band, nil
}

func (s *bandService) Create(ctx context.Context, input BandInput) (*model.Band, error) {
	band := &model.Band{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Members:     input.Members,
		ChannelID:   strings.TrimSpace(input.ChannelID),
		AvatarURL:   input.AvatarURL,
		Category:    trimOptional(input.Category),
	}
	if band.Members == nil {
		band.Members = model.StringList{}
	}
	if err := s.bands.Create(ctx, band); err != nil {
		return nil, err
	}
	return band, nil
}

func (s *bandService) Update(ctx context.Context, id uint, patch BandPatch) (*model.Band, error) {
	band, err := s.bands.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBandNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		band.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		band.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Members != nil {
		band.Members = *patch.Members
	}
	if patch.ChannelID != nil {
		band.ChannelID = strings.TrimSpace(*patch.ChannelID)
	}
	if patch.AvatarURL != nil {
		band.AvatarURL = trimOptional(patch.AvatarURL)
	}
	if patch.Category != nil {
		band.Category = trimOptional(patch.Category)
	}

	if err := s.bands.Update(ctx, band); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return band, nil
}

func (s *bandService) Delete(ctx context.Context, id uint) error {
	if err := s.bands.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBandNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// trimOptional trims an optional string; blank collapses to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
