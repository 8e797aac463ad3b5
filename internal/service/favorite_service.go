package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/repository"
)

// FavoriteItem is a favorite with its band's shallow profile attached.
type FavoriteItem struct {
	model.Favorite
	BandInfo model.BandSummary `json:"band"`
}

// FavoriteService handles per-user favorite track sets.
type FavoriteService interface {
	ListMine(ctx context.Context, userID uint) ([]FavoriteItem, error)
	// GetForBand returns the user's favorite for the band, or nil when
	// none exists (not an error).
	GetForBand(ctx context.Context, userID, bandID uint) (*model.Favorite, error)
	// Replace overwrites the whole track set; capped at
	// model.MaxFavoriteTracks.
	Replace(ctx context.Context, userID, bandID uint, trackIDs []string) (*model.Favorite, error)
	// Patch applies add/remove deltas atomically per (user, band).
	Patch(ctx context.Context, userID, bandID uint, add, remove []string) (*model.Favorite, error)
	Remove(ctx context.Context, userID, bandID uint) error
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	bands     repository.BandRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favorites repository.FavoriteRepository, bands repository.BandRepository) FavoriteService {
	return &favoriteService{
		favorites: favorites,
		bands:     bands,
	}
}

func (s *favoriteService) ListMine(ctx context.Context, userID uint) ([]FavoriteItem, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	items := make([]FavoriteItem, 0, len(favorites))
	for i := range favorites {
		item := FavoriteItem{Favorite: favorites[i]}
		if favorites[i].Band != nil {
			item.BandInfo = favorites[i].Band.Summary()
		}
		item.Band = nil
		items = append(items, item)
	}
	return items, nil
}

func (s *favoriteService) GetForBand(ctx context.Context, userID, bandID uint) (*model.Favorite, error) {
	favorite, err := s.favorites.FindByUserAndBand(ctx, userID, bandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return favorite, nil
}

func (s *favoriteService) Replace(ctx context.Context, userID, bandID uint, trackIDs []string) (*model.Favorite, error) {
	if err := s.ensureBand(ctx, bandID); err != nil {
		return nil, err
	}
	deduped := dedupeTracks(trackIDs)
	if len(deduped) > model.MaxFavoriteTracks {
		return nil, apperrors.ErrTooManyTracks
	}
	favorite, err := s.favorites.Replace(ctx, userID, bandID, deduped)
	if err != nil {
		return nil, fmt.Errorf("replace favorite: %w", err)
	}
	return favorite, nil
}

// Patch applies the delta inside the repository's locked transaction,
// so concurrent patches to the same favorite serialize. The track cap
// is deliberately not enforced here, only on Replace, matching the
// existing behavior of the API.
func (s *favoriteService) Patch(ctx context.Context, userID, bandID uint, add, remove []string) (*model.Favorite, error) {
	if err := s.ensureBand(ctx, bandID); err != nil {
		return nil, err
	}
	if len(add) == 0 && len(remove) == 0 {
		return nil, apperrors.ErrNothingToChange
	}
	favorite, err := s.favorites.PatchTracks(ctx, userID, bandID, func(current model.StringList) (model.StringList, error) {
		next, err := ReconcileTracks(current, add, remove)
		if err != nil {
			return nil, err
		}
		return model.StringList(next), nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNothingToChange) {
			return nil, apperrors.ErrNothingToChange
		}
		return nil, fmt.Errorf("patch favorite: %w", err)
	}
	return favorite, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, bandID uint) error {
	if err := s.favorites.Delete(ctx, userID, bandID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) ensureBand(ctx context.Context, bandID uint) error {
	if _, err := s.bands.FindByID(ctx, bandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBandNotFound
		}
		return err
	}
	return nil
}
