package store

import (
	"context"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

type OrderStore struct {
	db *bun.DB
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	_, err := s.db.NewInsert().Model(order).Exec(ctx)
	return err
}

func (s *OrderStore) ByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.NewSelect().
		Model(&order).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ByCustomer lists a customer's orders, newest first.
func (s *OrderStore) ByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.NewSelect().
		Model(&orders).
		Where("customer_email = ?", email).
		Order("order_date DESC").
		Scan(ctx)
	return orders, err
}

// ByAuthor lists orders placed against a librarian's books, newest first.
func (s *OrderStore) ByAuthor(ctx context.Context, authorEmail string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.NewSelect().
		Model(&orders).
		Where("book_author_email = ?", authorEmail).
		Order("order_date DESC").
		Scan(ctx)
	return orders, err
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*models.Order)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// SetSessionID records the checkout session created for an order.
func (s *OrderStore) SetSessionID(ctx context.Context, id, sessionID string) (bool, error) {
	res, err := s.db.NewUpdate().
		Model((*models.Order)(nil)).
		Set("session_id = ?", sessionID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// PaidUnreviewed finds the order that entitles a customer to review a
// book: paid for, not yet reviewed. Nil when no such order exists.
func (s *OrderStore) PaidUnreviewed(ctx context.Context, bookID, customerEmail string) (*models.Order, error) {
	var order models.Order
	err := s.db.NewSelect().
		Model(&order).
		Where("book_id = ?", bookID).
		Where("customer_email = ?", customerEmail).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Where("review_status = ?", false).
		Limit(1).
		Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
