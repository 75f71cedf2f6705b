package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
	BookStatusArchived  = "archived"
)

type Book struct {
	bun.BaseModel `bun:"table:books"`

	ID          string    `bun:"id,pk" json:"id"`
	BookName    string    `bun:"book_name,notnull" json:"bookName"`
	AuthorName  string    `bun:"author_name,nullzero" json:"authorName,omitempty"`
	AuthorEmail string    `bun:"author_email,notnull" json:"authorEmail"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	ImageURL    string    `bun:"image_url,nullzero" json:"imageUrl,omitempty"`
	Price       float64   `bun:"price,notnull" json:"price"`
	Status      string    `bun:"status,notnull" json:"status"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	// Set the first time the book is published and never cleared, even if
	// the status later moves away from "published".
	PublishedAt time.Time `bun:"published_at,nullzero" json:"publishedAt,omitempty"`
}

type BookRequest struct {
	BookName    string  `json:"bookName" validate:"required"`
	AuthorName  string  `json:"authorName"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// BookPatch carries a partial update for PATCH /book-details/{id}. Nil
// fields are left untouched.
type BookPatch struct {
	BookName    *string  `json:"bookName"`
	AuthorName  *string  `json:"authorName"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// BookSummary is the reduced projection returned by the latest-books
// listing on the landing page.
type BookSummary struct {
	bun.BaseModel `bun:"table:books"`

	ID         string    `bun:"id" json:"id"`
	BookName   string    `bun:"book_name" json:"bookName"`
	AuthorName string    `bun:"author_name" json:"authorName,omitempty"`
	ImageURL   string    `bun:"image_url" json:"imageUrl,omitempty"`
	Price      float64   `bun:"price" json:"price"`
	CreatedAt  time.Time `bun:"created_at" json:"createdAt"`
}

// BookFilter mirrors the query parameters of the listing endpoints.
// Search matches book_name OR author_name, case-insensitive substring.
// Zero values mean "no bound".
type BookFilter struct {
	Status   string
	Search   string
	MaxPrice float64
	Limit    int
	Skip     int
}

type BookPage struct {
	Books []Book `json:"books"`
	Count int    `json:"count"`
}
