package database

import (
	"context"

	"axelmotors/models"
)

func (s *GormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *GormStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
