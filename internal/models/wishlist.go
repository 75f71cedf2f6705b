package models

import (
	"time"

	"github.com/uptrace/bun"
)

type WishlistItem struct {
	bun.BaseModel `bun:"table:wishlist_items"`

	ID        string    `bun:"id,pk" json:"id"`
	BookID    string    `bun:"book_id,notnull" json:"bookId"`
	UserEmail string    `bun:"user_email,notnull" json:"userEmail"`
	SeenAt    time.Time `bun:"seen_at,notnull" json:"seenAt"`
}

type WishlistRequest struct {
	BookID string `json:"bookId" validate:"required"`
}

// WishlistEntry is a wishlist item joined with the book it points at.
type WishlistEntry struct {
	WishlistItem
	Book *Book `json:"book,omitempty"`
}
