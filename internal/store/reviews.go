package store

import (
	"context"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

type ReviewStore struct {
	db *bun.DB
}

func (s *ReviewStore) ByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.NewSelect().
		Model(&reviews).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Scan(ctx)
	return reviews, err
}

func (s *ReviewStore) Exists(ctx context.Context, bookID, customerEmail string) (bool, error) {
	return s.db.NewSelect().
		Model((*models.Review)(nil)).
		Where("book_id = ?", bookID).
		Where("customer_email = ?", customerEmail).
		Exists(ctx)
}
