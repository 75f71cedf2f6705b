package store

import (
	"context"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

type CoverageStore struct {
	db *bun.DB
}

func (s *CoverageStore) List(ctx context.Context) ([]models.CoverageArea, error) {
	areas := []models.CoverageArea{}
	err := s.db.NewSelect().
		Model(&areas).
		Order("district", "city", "area").
		Scan(ctx)
	return areas, err
}
