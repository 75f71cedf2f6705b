package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

// Store aggregates the per-collection repositories. It is built once at
// startup and handed to the handlers - no ambient globals.
type Store struct {
	Users    *UserStore
	Books    *BookStore
	Orders   *OrderStore
	Payments *PaymentStore
	Wishlist *WishlistStore
	Reviews  *ReviewStore
	Coverage *CoverageStore

	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Books:    &BookStore{db: db},
		Orders:   &OrderStore{db: db},
		Payments: &PaymentStore{db: db},
		Wishlist: &WishlistStore{db: db},
		Reviews:  &ReviewStore{db: db},
		Coverage: &CoverageStore{db: db},
		db:       db,
	}
}

// OrderByID and PaymentByTransactionID forward to the sub-stores so Store
// satisfies the payment flow's DB interface as one handle.
func (s *Store) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.Orders.ByID(ctx, id)
}

func (s *Store) PaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	return s.Payments.ByTransactionID(ctx, transactionID)
}

// ConfirmOrderPayment marks the order paid and inserts the payment record
// in one transaction, so a crash can never leave an order marked paid
// without its payment row.
func (s *Store) ConfirmOrderPayment(ctx context.Context, orderID string, payment *models.Payment) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Order)(nil)).
			Set("payment_status = ?", models.PaymentStatusPaid).
			Where("id = ?", orderID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return fmt.Errorf("order %s not found", orderID)
		}

		if _, err := tx.NewInsert().Model(payment).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert payment for order %s: %w", orderID, err)
		}
		return nil
	})
}

// SubmitReview inserts the review and flips review_status on the
// originating order in one transaction.
func (s *Store) SubmitReview(ctx context.Context, review *models.Review, orderID string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(review).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}

		_, err := tx.NewUpdate().
			Model((*models.Order)(nil)).
			Set("review_status = ?", true).
			Where("id = ?", orderID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to flag order %s as reviewed: %w", orderID, err)
		}
		return nil
	})
}

// Counts returns the per-collection document counts for the dashboard.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for name, model := range map[string]interface{}{
		"users":    (*models.User)(nil),
		"books":    (*models.Book)(nil),
		"orders":   (*models.Order)(nil),
		"payments": (*models.Payment)(nil),
		"reviews":  (*models.Review)(nil),
	} {
		n, err := s.db.NewSelect().Model(model).Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}

// noRows maps "no matching document" onto a nil result instead of an error.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
