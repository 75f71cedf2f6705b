package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Review struct {
	bun.BaseModel `bun:"table:reviews"`

	ID            string    `bun:"id,pk" json:"id"`
	BookID        string    `bun:"book_id,notnull" json:"bookId"`
	CustomerEmail string    `bun:"customer_email,notnull" json:"customerEmail"`
	Rating        int       `bun:"rating,notnull" json:"rating"`
	Text          string    `bun:"text,nullzero" json:"text,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type ReviewRequest struct {
	BookID string `json:"bookId" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text"`
}

type ReviewPermission struct {
	CanReview bool `json:"canReview"`
}
