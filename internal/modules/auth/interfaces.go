package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

// UserRepositoryInterface — only the methods auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DB() *gorm.DB
}

// GalleryReader — интерфейс который будет реализован galleryRepo
type GalleryReader interface {
	ListByUserID(ctx context.Context, userID int64) ([]domain.GalleryImage, error)
}
