package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID              string    `bun:"id,pk" json:"id"`
	CustomerEmail   string    `bun:"customer_email,notnull" json:"customerEmail"`
	BookAuthorEmail string    `bun:"book_author_email,notnull" json:"bookAuthorEmail"`
	BookID          string    `bun:"book_id,notnull" json:"bookId"`
	BookName        string    `bun:"book_name,nullzero" json:"bookName,omitempty"`
	Price           float64   `bun:"price,notnull" json:"price"`
	Status          string    `bun:"status,notnull" json:"status"`
	PaymentStatus   string    `bun:"payment_status,notnull" json:"paymentStatus"`
	ReviewStatus    bool      `bun:"review_status,notnull" json:"reviewStatus"`
	SessionID       string    `bun:"session_id,nullzero" json:"sessionId,omitempty"`
	OrderDate       time.Time `bun:"order_date,notnull" json:"orderDate"`
}

// OrderRequest is the body of POST /book-orders. Status, payment status
// and review status are forced server-side regardless of what the caller
// sends; the customer email comes from the verified principal.
type OrderRequest struct {
	BookID string `json:"bookId" validate:"required"`
}

type OrderStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}
