package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/store"
)

func TestUsers_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user_1", Email: "Author@Example.com", DisplayName: "Author"}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	got, err := s.Users.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Author", got.DisplayName)
}

func TestUsers_GetByEmail_CaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user_1", Email: "Author@Example.com"}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	got, err := s.Users.GetByIndex(ctx, "email", "author@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "user_1", got.ID)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, "user_1", &domain.User{ID: "user_1", Email: "a@example.com"}))

	err := s.Users.Create(ctx, "user_2", &domain.User{ID: "user_2", Email: "A@example.com"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_Update_ReindexesEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user_1", Email: "old@example.com"}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	user.Email = "new@example.com"
	require.NoError(t, s.Users.Update(ctx, user.ID, user))

	_, err := s.Users.GetByIndex(ctx, "email", "old@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Users.GetByIndex(ctx, "email", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", got.ID)
}

func TestUsers_Delete_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: "user_1", Email: "a@example.com"}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	require.NoError(t, s.Users.Delete(ctx, "user_1"))
	require.NoError(t, s.Users.Delete(ctx, "user_1"))

	_, err := s.Users.GetByIndex(ctx, "email", "a@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_List(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, "user_1", &domain.User{ID: "user_1", Email: "a@example.com"}))
	require.NoError(t, s.Users.Create(ctx, "user_2", &domain.User{ID: "user_2", Email: "b@example.com"}))

	var count int
	for user, err := range s.Users.List(ctx) {
		require.NoError(t, err)
		require.NotNil(t, user)
		count++
	}
	assert.Equal(t, 2, count)
}
