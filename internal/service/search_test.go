package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillapp/quill-server/internal/markdown"
	"github.com/quillapp/quill-server/internal/search"
	"github.com/quillapp/quill-server/internal/store"
	"github.com/quillapp/quill-server/internal/validation"
)

func setupSearchService(t *testing.T) (*SearchService, *PostService) {
	t.Helper()

	dataPath := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	s, err := store.New(filepath.Join(dataPath, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	idx, err := search.NewIndex(search.Options{DataPath: dataPath, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = idx.Close()
	})

	searchSvc := NewSearchService(idx, s, logger)
	s.SetSearchIndexer(searchSvc)

	postSvc := NewPostService(s, validation.New(), markdown.NewRenderer(), logger)
	return searchSvc, postSvc
}

func TestSearchService_PostWritesFlowIntoIndex(t *testing.T) {
	searchSvc, postSvc := setupSearchService(t)
	ctx := context.Background()

	post, err := postSvc.Create(ctx, CreatePostRequest{
		Title: "Concurrency Patterns",
		Body:  "Channels and goroutines.",
		Tags:  []string{"go"},
	})
	require.NoError(t, err)

	result, err := searchSvc.Search(ctx, search.Params{Query: "concurrency"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, post.ID, result.Hits[0].ID)

	require.NoError(t, postSvc.Delete(ctx, post.ID))

	result, err = searchSvc.Search(ctx, search.Params{Query: "concurrency"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchService_UpdateReindexes(t *testing.T) {
	searchSvc, postSvc := setupSearchService(t)
	ctx := context.Background()

	post, err := postSvc.Create(ctx, CreatePostRequest{Title: "Old Title"})
	require.NoError(t, err)

	newTitle := "Fresh Title"
	_, err = postSvc.Update(ctx, post.ID, UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)

	result, err := searchSvc.Search(ctx, search.Params{Query: "fresh"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Fresh Title", result.Hits[0].Title)
}

func TestSearchService_Reindex(t *testing.T) {
	searchSvc, postSvc := setupSearchService(t)
	ctx := context.Background()

	_, err := postSvc.Create(ctx, CreatePostRequest{Title: "Survivor"})
	require.NoError(t, err)

	require.NoError(t, searchSvc.Reindex(ctx))

	result, err := searchSvc.Search(ctx, search.Params{Query: "survivor"})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)
}
