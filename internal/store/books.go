package store

import (
	"context"
	"strings"
	"time"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

// LatestBooksLimit caps the landing-page listing.
const LatestBooksLimit = 8

type BookStore struct {
	db *bun.DB
}

func (s *BookStore) ByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := s.db.NewSelect().
		Model(&book).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *BookStore) Create(ctx context.Context, book *models.Book) error {
	_, err := s.db.NewInsert().Model(book).Exec(ctx)
	return err
}

// List applies the shared listing filter - optional status equality plus an
// optional case-insensitive substring OR over book_name/author_name - sorts
// by price descending and returns the page together with the total match
// count.
func (s *BookStore) List(ctx context.Context, filter models.BookFilter) ([]models.Book, int, error) {
	books := []models.Book{}
	q := s.db.NewSelect().Model(&books)
	q = applyBookFilter(q, filter)
	q = q.Order("price DESC")
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return books, count, nil
}

// Latest returns the newest published books, capped at 8, with a reduced
// projection for the landing page.
func (s *BookStore) Latest(ctx context.Context) ([]models.BookSummary, error) {
	books := []models.BookSummary{}
	err := s.db.NewSelect().
		Model(&books).
		Column("id", "book_name", "author_name", "image_url", "price", "created_at").
		Where("status = ?", models.BookStatusPublished).
		Order("created_at DESC").
		Limit(LatestBooksLimit).
		Scan(ctx)
	return books, err
}

// Patch applies a partial update. publishedAt, when non-nil, stamps the
// first publication time; it is never cleared afterwards.
func (s *BookStore) Patch(ctx context.Context, id string, patch models.BookPatch, publishedAt *time.Time) (bool, error) {
	q := s.db.NewUpdate().
		Model((*models.Book)(nil)).
		Where("id = ?", id)

	if patch.BookName != nil {
		q = q.Set("book_name = ?", *patch.BookName)
	}
	if patch.AuthorName != nil {
		q = q.Set("author_name = ?", *patch.AuthorName)
	}
	if patch.Description != nil {
		q = q.Set("description = ?", *patch.Description)
	}
	if patch.ImageURL != nil {
		q = q.Set("image_url = ?", *patch.ImageURL)
	}
	if patch.Price != nil {
		q = q.Set("price = ?", *patch.Price)
	}
	if patch.Status != nil {
		q = q.Set("status = ?", *patch.Status)
	}
	if publishedAt != nil {
		q = q.Set("published_at = ?", *publishedAt)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (s *BookStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// lower(...) LIKE keeps the substring match case-insensitive on both
// Postgres and the SQLite used in tests.
func applyBookFilter(q *bun.SelectQuery, filter models.BookFilter) *bun.SelectQuery {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("lower(book_name) LIKE ?", pattern).
				WhereOr("lower(author_name) LIKE ?", pattern)
		})
	}
	return q
}
