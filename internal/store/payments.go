package store

import (
	"context"

	"bookcourier/internal/models"

	"github.com/uptrace/bun"
)

type PaymentStore struct {
	db *bun.DB
}

// ByTransactionID is the idempotency lookup of the confirmation flow. It
// keys on the provider's transaction id, not the order id, since one order
// can be retried under a new checkout session.
func (s *PaymentStore) ByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.NewSelect().
		Model(&payment).
		Where("transaction_id = ?", transactionID).
		Limit(1).
		Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentStore) ByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := s.db.NewSelect().
		Model(&payments).
		Where("customer_email = ?", email).
		Order("paid_at DESC").
		Scan(ctx)
	return payments, err
}
