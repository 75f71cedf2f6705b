package api

import (
	"fmt"
	"net/http"
	"time"

	"bookcourier/internal/auth"
	"bookcourier/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateBook handles POST /books (librarian). publishedAt is stamped only
// when the book arrives with status "published".
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req models.BookRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := req.Status
	if status == "" {
		status = models.BookStatusDraft
	}

	now := time.Now().UTC()
	book := &models.Book{
		ID:          uuid.NewString(),
		BookName:    req.BookName,
		AuthorName:  req.AuthorName,
		AuthorEmail: auth.PrincipalEmail(r.Context()),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Status:      status,
		CreatedAt:   now,
	}
	if status == models.BookStatusPublished {
		book.PublishedAt = now
	}

	if err := h.Store.Books.Create(r.Context(), book); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBook: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusCreated, book)
}

// AllBooks handles GET /all-books: the public catalogue, published books
// only, price descending, paginated, with the total match count.
func (h *Handler) AllBooks(w http.ResponseWriter, r *http.Request) {
	filter := models.BookFilter{
		Status:   models.BookStatusPublished,
		Search:   r.URL.Query().Get("search"),
		MaxPrice: queryFloat(r, "price"),
		Limit:    queryInt(r, "limit"),
		Skip:     queryInt(r, "skip"),
	}

	books, count, err := h.Store.Books.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("AllBooks: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, models.BookPage{Books: books, Count: count})
}

// AllBooksAdmin handles GET /all-books-admin: every status, with the
// optional status equality filter on top of the search filter.
func (h *Handler) AllBooksAdmin(w http.ResponseWriter, r *http.Request) {
	filter := models.BookFilter{
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("searchText"),
		MaxPrice: queryFloat(r, "price"),
		Limit:    queryInt(r, "limit"),
		Skip:     queryInt(r, "skip"),
	}

	books, count, err := h.Store.Books.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("AllBooksAdmin: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, models.BookPage{Books: books, Count: count})
}

// LatestBooks handles GET /books-library: the landing-page listing.
func (h *Handler) LatestBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.Books.Latest(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("LatestBooks: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, books)
}

// BookDetails handles GET /book-details/{id}.
func (h *Handler) BookDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	book, err := h.Store.Books.ByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("BookDetails: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	h.respondJSON(w, http.StatusOK, book)
}

// PatchBook handles PATCH /book-details/{id} (librarian). Moving to
// "published" stamps publishedAt once; later status changes leave the
// first publication time in place.
func (h *Handler) PatchBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.BookPatch
	if err := h.decodeAndValidate(r, &patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.Store.Books.ByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("PatchBook: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}

	var publishedAt *time.Time
	if patch.Status != nil && *patch.Status == models.BookStatusPublished && book.PublishedAt.IsZero() {
		now := time.Now().UTC()
		publishedAt = &now
	}

	if _, err := h.Store.Books.Patch(r.Context(), id, patch, publishedAt); err != nil {
		h.Logger.Error("API", fmt.Sprintf("PatchBook: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	updated, err := h.Store.Books.ByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("PatchBook: reload failed: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteBook handles DELETE /books/{id} (admin).
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.Store.Books.Delete(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteBook: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
