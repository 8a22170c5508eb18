package gallery

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

// GalleryRepositoryInterface — only the methods gallery service uses
type GalleryRepositoryInterface interface {
	Create(ctx context.Context, img *domain.GalleryImage) error
	GetByID(ctx context.Context, id string) (*domain.GalleryImage, error)
	ListByUserID(ctx context.Context, userID int64) ([]domain.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo GalleryRepositoryInterface
}

func NewService(repo GalleryRepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.GalleryImage, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) Add(ctx context.Context, userID int64, url, theme string) (*domain.GalleryImage, error) {
	img := &domain.GalleryImage{
		UserID: userID,
		Theme:  theme,
		URL:    url,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Delete removes an image after checking it exists and belongs to the caller.
func (s *Service) Delete(ctx context.Context, userID int64, imageID string) error {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if img.UserID != userID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, imageID)
}
