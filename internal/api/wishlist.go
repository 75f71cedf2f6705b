package api

import (
	"fmt"
	"net/http"
	"time"

	"bookcourier/internal/auth"
	"bookcourier/internal/models"

	"github.com/google/uuid"
)

// AddWishlistItem handles POST /user-wishlist. Duplicates are a soft
// no-op; the unique index on (book_id, user_email) backstops the check
// under concurrent requests.
func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req models.WishlistRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := auth.PrincipalEmail(r.Context())
	exists, err := h.Store.Wishlist.Exists(r.Context(), req.BookID, email)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddWishlistItem: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if exists {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"inserted": false,
			"message":  "book already in wishlist",
		})
		return
	}

	item := &models.WishlistItem{
		ID:        uuid.NewString(),
		BookID:    req.BookID,
		UserEmail: email,
		SeenAt:    time.Now().UTC(),
	}
	if err := h.Store.Wishlist.Add(r.Context(), item); err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddWishlistItem: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"inserted": true,
		"id":       item.ID,
	})
}

// GetWishlist handles GET /user-wishlist.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.Wishlist.ListWithBooks(r.Context(), auth.PrincipalEmail(r.Context()))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetWishlist: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

// RemoveWishlistItem handles DELETE /user-wishlist?bookId=...
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		http.Error(w, "bookId query parameter is required", http.StatusBadRequest)
		return
	}

	removed, err := h.Store.Wishlist.Remove(r.Context(), bookID, auth.PrincipalEmail(r.Context()))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("RemoveWishlistItem: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "wishlist item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
