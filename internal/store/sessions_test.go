package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/store"
)

func newTestSession(id, userID, tokenHash string) *domain.Session {
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        time.Now().Add(time.Hour),
		CreatedAt:        time.Now(),
	}
}

func TestSession_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sess := newTestSession("sess_1", "user_1", "hash_1")
	require.NoError(t, s.CreateSession(ctx, sess))

	got, err := s.GetSession(ctx, "sess_1")
	require.NoError(t, err)
	assert.Equal(t, "user_1", got.UserID)
}

func TestSession_GetExpired(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sess := newTestSession("sess_1", "user_1", "hash_1")
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.CreateSession(ctx, sess))

	_, err := s.GetSession(ctx, "sess_1")
	assert.ErrorIs(t, err, store.ErrSessionExpired)
}

func TestSession_GetByRefreshToken(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_1", "user_1", "hash_1")))

	got, err := s.GetSessionByRefreshToken(ctx, "hash_1")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", got.ID)

	_, err = s.GetSessionByRefreshToken(ctx, "unknown")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSession_Update_RotatesTokenIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sess := newTestSession("sess_1", "user_1", "hash_old")
	require.NoError(t, s.CreateSession(ctx, sess))

	sess.RefreshTokenHash = "hash_new"
	require.NoError(t, s.UpdateSession(ctx, sess))

	_, err := s.GetSessionByRefreshToken(ctx, "hash_old")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.GetSessionByRefreshToken(ctx, "hash_new")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", got.ID)
}

func TestSession_Delete_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_1", "user_1", "hash_1")))

	require.NoError(t, s.DeleteSession(ctx, "sess_1"))
	require.NoError(t, s.DeleteSession(ctx, "sess_1"))

	_, err := s.GetSession(ctx, "sess_1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSession_DeleteUserSessions(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_1", "user_1", "hash_1")))
	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_2", "user_1", "hash_2")))
	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_3", "user_2", "hash_3")))

	require.NoError(t, s.DeleteUserSessions(ctx, "user_1"))

	_, err := s.GetSession(ctx, "sess_1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetSession(ctx, "sess_2")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetSession(ctx, "sess_3")
	assert.NoError(t, err)
}

func TestSite_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.GetSite(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	site := &domain.Site{ID: "site_1", Title: "Quill", Description: "A blog"}
	require.NoError(t, s.SaveSite(ctx, site))

	got, err := s.GetSite(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Quill", got.Title)
}
