package model

import "time"

// MaxFavoriteTracks caps the number of track IDs stored per favorite.
const MaxFavoriteTracks = 500

// Favorite is a per-user-per-band set of liked track IDs. TrackIDs is
// stored as an ordered list but holds no duplicates.
type Favorite struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"-" gorm:"not null;uniqueIndex:idx_favorites_user_band;index"`
	BandID    uint       `json:"bandId" gorm:"not null;uniqueIndex:idx_favorites_user_band"`
	TrackIDs  StringList `json:"trackIds" gorm:"serializer:json;type:json"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Relations
	Band *Band `json:"-" gorm:"foreignKey:BandID"`
}
