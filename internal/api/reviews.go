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

// ReviewPermission handles GET /book-review-permission/{bookId}: whether
// the principal holds a paid, not-yet-reviewed order for the book.
func (h *Handler) ReviewPermission(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	order, err := h.Store.Orders.PaidUnreviewed(r.Context(), bookID, auth.PrincipalEmail(r.Context()))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ReviewPermission: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, models.ReviewPermission{CanReview: order != nil})
}

// BookReviews handles GET /book-review?bookId=...
func (h *Handler) BookReviews(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId query parameter is required", http.StatusBadRequest)
		return
	}

	reviews, err := h.Store.Reviews.ByBook(r.Context(), bookID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("BookReviews: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

// SubmitReview handles POST /book-review. The paid-unreviewed predicate is
// re-verified server-side here, not just in the permission endpoint, and
// the insert plus the order's review flag commit together.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := auth.PrincipalEmail(r.Context())
	order, err := h.Store.Orders.PaidUnreviewed(r.Context(), req.BookID, email)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SubmitReview: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, "no reviewable order for this book", http.StatusForbidden)
		return
	}

	review := &models.Review{
		ID:            uuid.NewString(),
		BookID:        req.BookID,
		CustomerEmail: email,
		Rating:        req.Rating,
		Text:          req.Text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.Store.SubmitReview(r.Context(), review, order.ID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("SubmitReview: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("SubmitReview: review %s posted for book %s by %s", review.ID, review.BookID, email))
	h.respondJSON(w, http.StatusCreated, review)
}
