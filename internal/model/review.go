package model

import "time"

// Review is a user's rating and comment for a band. At most one review
// exists per (band, user) pair; submissions collapse into an upsert.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BandID    uint      `json:"bandId" gorm:"not null;uniqueIndex:idx_reviews_band_user;index"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_reviews_band_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"size:1000;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
	Band *Band `json:"-" gorm:"foreignKey:BandID"`
}
