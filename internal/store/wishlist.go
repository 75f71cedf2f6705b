package store

import (
	"context"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

type WishlistStore struct {
	db *bun.DB
}

func (s *WishlistStore) Exists(ctx context.Context, bookID, userEmail string) (bool, error) {
	return s.db.NewSelect().
		Model((*models.WishlistItem)(nil)).
		Where("book_id = ?", bookID).
		Where("user_email = ?", userEmail).
		Exists(ctx)
}

func (s *WishlistStore) Add(ctx context.Context, item *models.WishlistItem) error {
	_, err := s.db.NewInsert().Model(item).Exec(ctx)
	return err
}

func (s *WishlistStore) Remove(ctx context.Context, bookID, userEmail string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.WishlistItem)(nil)).
		Where("book_id = ?", bookID).
		Where("user_email = ?", userEmail).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// ListWithBooks returns a user's wishlist items joined with the books they
// point at. Two queries grouped in memory; items whose book has been
// deleted keep a nil Book.
func (s *WishlistStore) ListWithBooks(ctx context.Context, userEmail string) ([]models.WishlistEntry, error) {
	items := []models.WishlistItem{}
	err := s.db.NewSelect().
		Model(&items).
		Where("user_email = ?", userEmail).
		Order("seen_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.WishlistEntry{}, nil
	}

	bookIDs := make([]string, len(items))
	for i, item := range items {
		bookIDs[i] = item.BookID
	}

	books := []models.Book{}
	err = s.db.NewSelect().
		Model(&books).
		Where("id IN (?)", bun.In(bookIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	entries := make([]models.WishlistEntry, len(items))
	for i, item := range items {
		entries[i] = models.WishlistEntry{
			WishlistItem: item,
			Book:         byID[item.BookID],
		}
	}
	return entries, nil
}
