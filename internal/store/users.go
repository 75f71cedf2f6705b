package store

import (
	"context"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

type UserStore struct {
	db *bun.DB
}

// ByEmail fetches one user by email, nil when absent.
func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RoleByEmail returns the stored role for an email, "" when the user does
// not exist. This is the single lookup behind the authorization gate.
func (s *UserStore) RoleByEmail(ctx context.Context, email string) (string, error) {
	var role string
	err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Column("role").
		Where("email = ?", email).
		Limit(1).
		Scan(ctx, &role)
	if noRows(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.NewSelect().
		Model(&users).
		Order("created_at DESC").
		Scan(ctx)
	return users, err
}

// UpdateRole sets a user's role, reporting whether a row was touched.
func (s *UserStore) UpdateRole(ctx context.Context, email, role string) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("role = ?", role).
		Where("email = ?", email).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}
