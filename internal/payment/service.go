package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcourier/internal/logger"
	"bookcourier/internal/models"
	"bookcourier/internal/qr"

	"github.com/google/uuid"
)

var ErrNoTransaction = errors.New("checkout session has no transaction id")

type DBLayer interface {
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	PaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	ConfirmOrderPayment(ctx context.Context, orderID string, payment *models.Payment) error
}

type Publisher interface {
	PublishPaymentRecorded(payment models.Payment) error
}

// Service runs the payment confirmation flow: provider session retrieval,
// idempotency check, then order update + payment insert in one
// transaction.
type Service struct {
	Provider Provider
	DB       DBLayer
	Lock     Lock
	Kafka    Publisher
	QR       *qr.Generator
	logger   *logger.Logger
}

func NewService(provider Provider, db DBLayer, lock Lock, kafka Publisher, qrGen *qr.Generator, log *logger.Logger) *Service {
	return &Service{Provider: provider, DB: db, Lock: lock, Kafka: kafka, QR: qrGen, logger: log}
}

// Confirm settles one checkout session. At most one Payment row is ever
// created per provider transaction id: the check-then-insert runs under a
// per-transaction lock and the unique index on transaction_id backstops
// it.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*models.ConfirmResponse, error) {
	s.logger.LogPayment("CONFIRM", sessionID, "retrieving session from provider")

	sess, err := s.Provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session %s: %w", sessionID, err)
	}
	if sess.TransactionID == "" {
		return nil, ErrNoTransaction
	}

	if s.Lock != nil {
		ok, err := s.Lock.Acquire(ctx, sess.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("lock error for transaction %s: %w", sess.TransactionID, err)
		}
		if !ok {
			// Another confirmation of the same transaction is in flight.
			s.logger.Warn("PAYMENT", fmt.Sprintf("Confirmation for transaction %s already in progress", sess.TransactionID))
			return &models.ConfirmResponse{Status: models.ConfirmStatusAlreadyProcessed}, nil
		}
		defer func() {
			if err := s.Lock.Release(ctx, sess.TransactionID); err != nil {
				s.logger.Error("PAYMENT", fmt.Sprintf("Failed to release lock for transaction %s: %v", sess.TransactionID, err))
			}
		}()
	}

	// Idempotency check before any mutation.
	existing, err := s.DB.PaymentByTransactionID(ctx, sess.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check transaction %s: %w", sess.TransactionID, err)
	}
	if existing != nil {
		s.logger.LogPayment("CONFIRM", sessionID, "transaction already processed, no-op")
		return &models.ConfirmResponse{Status: models.ConfirmStatusAlreadyProcessed, Payment: existing}, nil
	}

	if !sess.Paid {
		s.logger.LogPayment("CONFIRM", sessionID, "provider does not report session as paid")
		return &models.ConfirmResponse{Status: models.ConfirmStatusNotPaid}, nil
	}

	if sess.OrderID == "" {
		return nil, fmt.Errorf("session %s has no order_id in metadata", sessionID)
	}
	order, err := s.DB.OrderByID(ctx, sess.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", sess.OrderID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s from session metadata not found", sess.OrderID)
	}

	customerEmail := sess.CustomerEmail
	if customerEmail == "" {
		customerEmail = order.CustomerEmail
	}

	pay := &models.Payment{
		ID:            uuid.NewString(),
		TransactionID: sess.TransactionID,
		OrderID:       order.ID,
		Amount:        float64(sess.AmountTotal) / 100.0,
		Currency:      sess.Currency,
		CustomerEmail: customerEmail,
		PaidAt:        time.Now().UTC(),
	}

	if s.QR != nil {
		code, err := s.QR.GenerateDeliveryQR(qr.DeliveryCode{
			OrderID:       order.ID,
			TransactionID: sess.TransactionID,
			CustomerEmail: customerEmail,
		})
		if err != nil {
			// The payment still lands; the courier code can be reissued.
			s.logger.Error("PAYMENT", fmt.Sprintf("Failed to generate delivery QR for order %s: %v", order.ID, err))
		} else {
			pay.DeliveryQR = code
		}
	}

	if err := s.DB.ConfirmOrderPayment(ctx, order.ID, pay); err != nil {
		return nil, fmt.Errorf("failed to record payment for order %s: %w", order.ID, err)
	}
	s.logger.LogPayment("CONFIRM", sessionID, fmt.Sprintf("payment %s recorded for order %s", pay.ID, order.ID))

	if s.Kafka != nil {
		if err := s.Kafka.PublishPaymentRecorded(*pay); err != nil {
			s.logger.Error("KAFKA", fmt.Sprintf("Failed to publish payment event for order %s: %v", order.ID, err))
		}
	}

	return &models.ConfirmResponse{Status: models.ConfirmStatusPaid, Payment: pay}, nil
}
