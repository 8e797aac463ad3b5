package model

import "time"

// Band represents a band with an affiliated YouTube channel.
type Band struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:255;not null;index"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Members     StringList `json:"members" gorm:"serializer:json;type:json"`
	ChannelID   string     `json:"channelId" gorm:"column:channel_id;uniqueIndex;size:64;not null"`
	AvatarURL   *string    `json:"avatarUrl" gorm:"size:512"`
	Category    *string    `json:"category" gorm:"size:100;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BandSummary is the shallow band shape embedded in favorite listings.
type BandSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
	Category  *string `json:"category"`
	ChannelID string  `json:"channelId"`
}

// Summary returns the shallow representation of the band.
func (b *Band) Summary() BandSummary {
	return BandSummary{
		ID:        b.ID,
		Name:      b.Name,
		AvatarURL: b.AvatarURL,
		Category:  b.Category,
		ChannelID: b.ChannelID,
	}
}
