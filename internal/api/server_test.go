package api

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/quillapp/quill-server/internal/auth"
	"github.com/quillapp/quill-server/internal/markdown"
	"github.com/quillapp/quill-server/internal/ratelimit"
	"github.com/quillapp/quill-server/internal/search"
	"github.com/quillapp/quill-server/internal/service"
	"github.com/quillapp/quill-server/internal/store"
	"github.com/quillapp/quill-server/internal/validation"
)

// testEnvelope mirrors the success envelope for unmarshaling in tests.
type testEnvelope[T any] struct {
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// testErrorEnvelope mirrors the error envelope. Error is raw because it can
// be a string or an object depending on the failure.
type testErrorEnvelope struct {
	Version int             `json:"v"`
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
}

const testAuthKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewIndex(search.Options{DataPath: t.TempDir(), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	tokenService, err := auth.NewTokenService(testAuthKey, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	loginLimiter := ratelimit.New(600, 100)
	t.Cleanup(loginLimiter.Stop)

	v := validation.New()

	searchService := service.NewSearchService(index, st, logger)
	st.SetSearchIndexer(searchService)

	services := &Services{
		Auth:   service.NewAuthService(st, tokenService, loginLimiter, v, logger),
		Post:   service.NewPostService(st, v, markdown.NewRenderer(), logger),
		Site:   service.NewSiteService(st, logger),
		Search: searchService,
	}

	srv := NewServer(st, services, logger)

	return &testServer{
		Server: srv,
		api:    humatest.Wrap(t, srv.API()),
	}
}

// setupAuthor creates the author account and returns an access token.
func (ts *testServer) setupAuthor(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/auth/setup", map[string]any{
		"email":        "author@example.com",
		"password":     "correct horse battery staple",
		"display_name": "The Author",
	})
	require.Equal(t, 200, resp.Code, "setup failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken
}

// createPost creates a post through the API and returns its response body.
func (ts *testServer) createPost(t *testing.T, token, title, body string, tags []string) PostResponse {
	t.Helper()

	if tags == nil {
		tags = []string{}
	}
	payload := map[string]any{"title": title, "body": body, "tags": tags}

	resp := ts.api.Post("/api/posts", "Authorization: Bearer "+token, payload)
	require.Equal(t, 200, resp.Code, "create post failed: %s", resp.Body.String())

	var envelope testEnvelope[PostResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}
