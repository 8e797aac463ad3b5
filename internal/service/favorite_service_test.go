package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/repository"
)

// MockBandRepository is a mock implementation of BandRepository.
type MockBandRepository struct {
	mock.Mock
}

func (m *MockBandRepository) Create(ctx context.Context, band *model.Band) error {
	args := m.Called(ctx, band)
	return args.Error(0)
}

func (m *MockBandRepository) Update(ctx context.Context, band *model.Band) error {
	args := m.Called(ctx, band)
	return args.Error(0)
}

func (m *MockBandRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBandRepository) FindByID(ctx context.Context, id uint) (*model.Band, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Band), args.Error(1)
}

func (m *MockBandRepository) FindByChannelID(ctx context.Context, channelID string) (*model.Band, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Band), args.Error(1)
}

func (m *MockBandRepository) Search(ctx context.Context, q repository.BandQuery) ([]model.Band, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Band), args.Get(1).(int64), args.Error(2)
}

// MockFavoriteRepository is a mock implementation of FavoriteRepository.
// PatchTracks runs the apply callback against the configured current
// list, the way the real repository does inside its transaction.
type MockFavoriteRepository struct {
	mock.Mock
	current model.StringList
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) FindByUserAndBand(ctx context.Context, userID, bandID uint) (*model.Favorite, error) {
	args := m.Called(ctx, userID, bandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Replace(ctx context.Context, userID, bandID uint, trackIDs model.StringList) (*model.Favorite, error) {
	args := m.Called(ctx, userID, bandID, trackIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) PatchTracks(ctx context.Context, userID, bandID uint, apply func(current model.StringList) (model.StringList, error)) (*model.Favorite, error) {
	args := m.Called(ctx, userID, bandID)
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	next, err := apply(m.current)
	if err != nil {
		return nil, err
	}
	return &model.Favorite{UserID: userID, BandID: bandID, TrackIDs: next}, nil
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, bandID uint) error {
	args := m.Called(ctx, userID, bandID)
	return args.Error(0)
}

func existingBand(m *MockBandRepository, id uint) {
	m.On("FindByID", mock.Anything, id).Return(&model.Band{ID: id, Name: "Band"}, nil)
}

func TestFavoriteService_Replace(t *testing.T) {
	t.Run("dedupes before storing", func(t *testing.T) {
		mockBands := new(MockBandRepository)
		mockFavorites := new(MockFavoriteRepository)
		existingBand(mockBands, 1)

		mockFavorites.On("Replace", mock.Anything, uint(7), uint(1), model.StringList{"a", "b"}).
			Return(&model.Favorite{UserID: 7, BandID: 1, TrackIDs: model.StringList{"a", "b"}}, nil)

		service := NewFavoriteService(mockFavorites, mockBands)
		favorite, err := service.Replace(context.Background(), 7, 1, []string{"a", "b", "a"})

		assert.NoError(t, err)
		assert.Equal(t, model.StringList{"a", "b"}, favorite.TrackIDs)
		mockFavorites.AssertExpectations(t)
	})

	t.Run("rejects oversized track sets", func(t *testing.T) {
		mockBands := new(MockBandRepository)
		mockFavorites := new(MockFavoriteRepository)
		existingBand(mockBands, 1)

		tracks := make([]string, model.MaxFavoriteTracks+1)
		for i := range tracks {
			tracks[i] = fmt.Sprintf("track-%d", i)
		}

		service := NewFavoriteService(mockFavorites, mockBands)
		favorite, err := service.Replace(context.Background(), 7, 1, tracks)

		assert.Equal(t, apperrors.ErrTooManyTracks, err)
		assert.Nil(t, favorite)
	})

	t.Run("unknown band", func(t *testing.T) {
		mockBands := new(MockBandRepository)
		mockFavorites := new(MockFavoriteRepository)
		mockBands.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewFavoriteService(mockFavorites, mockBands)
		favorite, err := service.Replace(context.Background(), 7, 99, []string{"a"})

		assert.Equal(t, apperrors.ErrBandNotFound, err)
		assert.Nil(t, favorite)
	})
}

func TestFavoriteService_Patch(t *testing.T) {
	t.Run("applies deltas against the stored set", func(t *testing.T) {
		mockBands := new(MockBandRepository)
		mockFavorites := new(MockFavoriteRepository)
		existingBand(mockBands, 1)

		mockFavorites.current = model.StringList{"a", "b", "c"}
		mockFavorites.On("PatchTracks", mock.Anything, uint(7), uint(1)).Return(nil)

		service := NewFavoriteService(mockFavorites, mockBands)
		favorite, err := service.Patch(context.Background(), 7, 1, []string{"d"}, []string{"b"})

		assert.NoError(t, err)
		assert.Equal(t, model.StringList{"a", "c", "d"}, favorite.TrackIDs)
	})

	t.Run("both deltas empty is rejected before touching the store", func(t *testing.T) {
		mockBands := new(MockBandRepository)
		mockFavorites := new(MockFavoriteRepository)
		existingBand(mockBands, 1)

		service := NewFavoriteService(mockFavorites, mockBands)
		favorite, err := service.Patch(context.Background(), 7, 1, nil, nil)

		assert.Equal(t, apperrors.ErrNothingToChange, err)
		assert.Nil(t, favorite)
		mockFavorites.AssertNotCalled(t, "PatchTracks", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFavoriteService_GetForBand(t *testing.T) {
	t.Run("missing favorite resolves to nil, not an error", func(t *testing.T) {
		mockBands := new(MockBandRepository)
		mockFavorites := new(MockFavoriteRepository)
		mockFavorites.On("FindByUserAndBand", mock.Anything, uint(7), uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := NewFavoriteService(mockFavorites, mockBands)
		favorite, err := service.GetForBand(context.Background(), 7, 1)

		assert.NoError(t, err)
		assert.Nil(t, favorite)
	})
}

func TestFavoriteService_ListMine(t *testing.T) {
	mockBands := new(MockBandRepository)
	mockFavorites := new(MockFavoriteRepository)

	band := &model.Band{ID: 1, Name: "Radiohead", ChannelID: "UC123"}
	mockFavorites.On("ListByUser", mock.Anything, uint(7)).Return([]model.Favorite{
		{ID: 11, UserID: 7, BandID: 1, TrackIDs: model.StringList{"a"}, Band: band},
	}, nil)

	service := NewFavoriteService(mockFavorites, mockBands)
	items, err := service.ListMine(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Radiohead", items[0].BandInfo.Name)
	assert.Nil(t, items[0].Band) // full relation replaced by the summary
}
