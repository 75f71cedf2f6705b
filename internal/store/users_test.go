package store_test

import (
	"context"
	"testing"
	"time"

	"bookcourier/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserByEmail(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     "reader@example.com",
		Name:      "Reader",
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
	err := st.Users.Create(ctx, user)
	assert.NoError(t, err)

	found, err := st.Users.ByEmail(ctx, "reader@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, models.RoleUser, found.Role)

	// Absent email is nil, not an error
	found, err = st.Users.ByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestDuplicateEmailRejected(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	first := &models.User{ID: uuid.New().String(), Email: "dup@example.com", Role: models.RoleUser, CreatedAt: time.Now()}
	assert.NoError(t, st.Users.Create(ctx, first))

	second := &models.User{ID: uuid.New().String(), Email: "dup@example.com", Role: models.RoleUser, CreatedAt: time.Now()}
	err := st.Users.Create(ctx, second)
	assert.Error(t, err)
}

func TestRoleByEmail(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	user := &models.User{ID: uuid.New().String(), Email: "lib@example.com", Role: models.RoleLibrarian, CreatedAt: time.Now()}
	assert.NoError(t, st.Users.Create(ctx, user))

	role, err := st.Users.RoleByEmail(ctx, "lib@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, role)

	role, err = st.Users.RoleByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "", role)
}

func TestUpdateRole(t *testing.T) {
	st, bunDB := setupTestStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	user := &models.User{ID: uuid.New().String(), Email: "promote@example.com", Role: models.RoleUser, CreatedAt: time.Now()}
	assert.NoError(t, st.Users.Create(ctx, user))

	applied, err := st.Users.UpdateRole(ctx, "promote@example.com", models.RoleLibrarian)
	assert.NoError(t, err)
	assert.True(t, applied)

	role, err := st.Users.RoleByEmail(ctx, "promote@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, role)

	applied, err = st.Users.UpdateRole(ctx, "nobody@example.com", models.RoleAdmin)
	assert.NoError(t, err)
	assert.False(t, applied)
}
