package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStatus(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/auth/setup")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SetupStatusResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.SetupRequired)

	ts.setupAuthor(t)

	resp = ts.api.Get("/api/auth/setup")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.SetupRequired)
}

func TestSetup_ReturnsTokensAndUser(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/auth/setup", map[string]any{
		"email":        "author@example.com",
		"password":     "correct horse battery staple",
		"display_name": "The Author",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "author@example.com", envelope.Data.User.Email)
	assert.Equal(t, "The Author", envelope.Data.User.DisplayName)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.False(t, envelope.Data.ExpiresAt.IsZero())
}

func TestSetup_OnlyOnce(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAuthor(t)

	resp := ts.api.Post("/api/auth/setup", map[string]any{
		"email":        "second@example.com",
		"password":     "another long password",
		"display_name": "Interloper",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestSetup_RejectsShortPassword(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/auth/setup", map[string]any{
		"email":        "author@example.com",
		"password":     "short",
		"display_name": "The Author",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAuthor(t)

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "author@example.com",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAuthor(t)

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "author@example.com",
		"password": "wrong password entirely",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAuthor(t)

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/auth/setup", map[string]any{
		"email":        "author@example.com",
		"password":     "correct horse battery staple",
		"display_name": "The Author",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var setup testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &setup))

	resp = ts.api.Post("/api/auth/refresh", map[string]any{
		"refresh_token": setup.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var refreshed testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.Data.AccessToken)
	assert.NotEqual(t, setup.Data.RefreshToken, refreshed.Data.RefreshToken)

	// The rotated-out token no longer works.
	resp = ts.api.Post("/api/auth/refresh", map[string]any{
		"refresh_token": setup.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/auth/setup", map[string]any{
		"email":        "author@example.com",
		"password":     "correct horse battery staple",
		"display_name": "The Author",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var setup testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &setup))

	resp = ts.api.Post("/api/auth/logout", map[string]any{
		"refresh_token": setup.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// Logout of an already revoked token is still a success.
	resp = ts.api.Post("/api/auth/logout", map[string]any{
		"refresh_token": setup.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// The revoked session cannot refresh anymore.
	resp = ts.api.Post("/api/auth/refresh", map[string]any{
		"refresh_token": setup.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
