package api_test

import (
	"net/http"
	"testing"

	"bookcourier/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestWishlistFlow(t *testing.T) {
	f := setupAPI(t)
	defer f.db.Close()

	book := f.seedBook(t, &models.Book{BookName: "Wanted Book", Price: 18})

	w := f.do(t, "POST", "/user-wishlist", "user-token", map[string]string{"bookId": book.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, true, resp["inserted"])

	// Same book again: soft no-op
	w = f.do(t, "POST", "/user-wishlist", "user-token", map[string]string{"bookId": book.ID})
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, false, resp["inserted"])

	// The listing carries the joined book
	w = f.do(t, "GET", "/user-wishlist", "user-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var entries []models.WishlistEntry
	decodeBody(t, w, &entries)
	assert.Equal(t, 1, len(entries))
	assert.NotNil(t, entries[0].Book)
	assert.Equal(t, "Wanted Book", entries[0].Book.BookName)

	// Another user's wishlist is empty
	w = f.do(t, "GET", "/user-wishlist", "other-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &entries)
	assert.Equal(t, 0, len(entries))

	// Remove, then removing again is a 404
	w = f.do(t, "DELETE", "/user-wishlist?bookId="+book.ID, "user-token", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, "DELETE", "/user-wishlist?bookId="+book.ID, "user-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "DELETE", "/user-wishlist", "user-token", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
