package store_test

import (
	"context"
	"testing"
	"time"

	"bookcourier/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWishlistAddExistsRemove(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	exists, err := st.Wishlist.Exists(ctx, "b1", "reader@example.com")
	assert.NoError(t, err)
	assert.False(t, exists)

	item := &models.WishlistItem{ID: uuid.New().String(), BookID: "b1", UserEmail: "reader@example.com", SeenAt: time.Now()}
	assert.NoError(t, st.Wishlist.Add(ctx, item))

	exists, err = st.Wishlist.Exists(ctx, "b1", "reader@example.com")
	assert.NoError(t, err)
	assert.True(t, exists)

	// Scoped to the owning user
	exists, err = st.Wishlist.Exists(ctx, "b1", "someone@example.com")
	assert.NoError(t, err)
	assert.False(t, exists)

	removed, err := st.Wishlist.Remove(ctx, "b1", "reader@example.com")
	assert.NoError(t, err)
	assert.True(t, removed)

	removed, err = st.Wishlist.Remove(ctx, "b1", "reader@example.com")
	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestWishlistListWithBooks(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	book := &models.Book{BookName: "Kept Book", AuthorEmail: "a@example.com", Price: 12}
	insertBook(t, bunDB, book)

	kept := &models.WishlistItem{ID: uuid.New().String(), BookID: book.ID, UserEmail: "reader@example.com", SeenAt: time.Now()}
	orphan := &models.WishlistItem{ID: uuid.New().String(), BookID: "deleted-book", UserEmail: "reader@example.com", SeenAt: time.Now().Add(-time.Minute)}
	assert.NoError(t, st.Wishlist.Add(ctx, kept))
	assert.NoError(t, st.Wishlist.Add(ctx, orphan))

	entries, err := st.Wishlist.ListWithBooks(ctx, "reader@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(entries))

	// Newest first; item whose book vanished keeps a nil Book
	assert.Equal(t, kept.ID, entries[0].ID)
	assert.NotNil(t, entries[0].Book)
	assert.Equal(t, "Kept Book", entries[0].Book.BookName)
	assert.Nil(t, entries[1].Book)

	empty, err := st.Wishlist.ListWithBooks(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(empty))
}
