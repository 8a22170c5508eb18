package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(ctx context.Context, img *domain.GalleryImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	if tx := r.db.WithContext(ctx).Where("id = ?", id).First(&img); tx.Error != nil {
		return nil, tx.Error
	}
	return &img, nil
}

func (r *GalleryRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.GalleryImage, error) {
	var images []domain.GalleryImage
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&images)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return images, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.GalleryImage{}).Error
}
