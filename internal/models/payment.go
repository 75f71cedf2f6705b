package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Payment struct {
	bun.BaseModel `bun:"table:payments"`

	ID            string    `bun:"id,pk" json:"id"`
	TransactionID string    `bun:"transaction_id,unique,notnull" json:"transactionId"`
	OrderID       string    `bun:"order_id,notnull" json:"orderId"`
	Amount        float64   `bun:"amount,notnull" json:"amount"`
	Currency      string    `bun:"currency,notnull" json:"currency"`
	CustomerEmail string    `bun:"customer_email,notnull" json:"customerEmail"`
	DeliveryQR    []byte    `bun:"delivery_qr,nullzero" json:"deliveryQr,omitempty"`
	PaidAt        time.Time `bun:"paid_at,notnull" json:"paidAt"`
}

type CheckoutRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type ConfirmRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Confirmation result variants. The original design answered 200 with
// ambiguous message bodies; an explicit status field replaces that.
const (
	ConfirmStatusPaid             = "paid"
	ConfirmStatusAlreadyProcessed = "already_processed"
	ConfirmStatusNotPaid          = "not_paid"
)

type ConfirmResponse struct {
	Status  string   `json:"status"`
	Payment *Payment `json:"payment,omitempty"`
}
