package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) searchPosts(t *testing.T, query string) SearchResponse {
	t.Helper()

	resp := ts.api.Get("/api/posts/search?q=" + query)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SearchResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestSearchPosts_FindsByTitle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupAuthor(t)

	created := ts.createPost(t, token, "Gardening in Winter", "Some plants survive frost.", nil)
	ts.createPost(t, token, "Unrelated", "Nothing to see here.", nil)

	result := ts.searchPosts(t, "gardening")
	require.Len(t, result.Hits, 1)
	assert.Equal(t, created.ID, result.Hits[0].ID)
	assert.Equal(t, "Gardening in Winter", result.Hits[0].Title)
}

func TestSearchPosts_FindsByBody(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupAuthor(t)

	created := ts.createPost(t, token, "Post One", "The capybara is the largest rodent.", nil)
	ts.createPost(t, token, "Post Two", "Nothing remarkable.", nil)

	result := ts.searchPosts(t, "rodent")
	require.Len(t, result.Hits, 1)
	assert.Equal(t, created.ID, result.Hits[0].ID)
}

func TestSearchPosts_DeletedPostsDisappear(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupAuthor(t)

	created := ts.createPost(t, token, "Ephemeral", "Gone soon.", nil)

	result := ts.searchPosts(t, "ephemeral")
	require.Len(t, result.Hits, 1)

	resp := ts.api.Delete("/api/posts/"+created.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusNoContent, resp.Code)

	result = ts.searchPosts(t, "ephemeral")
	assert.Empty(t, result.Hits)
}

func TestSearchPosts_TagFilter(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupAuthor(t)

	tagged := ts.createPost(t, token, "Recipe: Bread", "Flour and water.", []string{"cooking"})
	ts.createPost(t, token, "Recipe: Disaster", "Do not try this.", []string{"humor"})

	resp := ts.api.Get("/api/posts/search?q=recipe&tag=cooking")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, tagged.ID, envelope.Data.Hits[0].ID)
}

func TestReindexPosts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupAuthor(t)

	ts.createPost(t, token, "Indexed", "Find me please.", nil)

	resp := ts.api.Post("/api/posts/reindex", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	result := ts.searchPosts(t, "indexed")
	assert.Len(t, result.Hits, 1)
}

func TestReindexPosts_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	ts.setupAuthor(t)

	resp := ts.api.Post("/api/posts/reindex")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
