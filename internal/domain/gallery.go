package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryImage is a generated image owned by a user. Rows are created by the
// generation pipeline after a successful edit and deleted only by the owner.
type GalleryImage struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	Theme     string    `json:"theme"`
	URL       string    `json:"url" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

func (g *GalleryImage) BeforeCreate(_ *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
