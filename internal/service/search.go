package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/search"
	"github.com/quillapp/quill-server/internal/store"
)

// SearchService bridges the search index with the post store.
// It implements store.SearchIndexer so post writes flow into the index.
type SearchService struct {
	index  *search.Index
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, s *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  s,
		logger: logger,
	}
}

// Search executes a full-text post search.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if params.Limit <= 0 {
		params.Limit = search.DefaultParams().Limit
	}
	return s.index.Search(ctx, params)
}

// IndexPost indexes a single post. Called on post create and update.
func (s *SearchService) IndexPost(_ context.Context, post *domain.Post) error {
	if err := s.index.IndexDocument(search.PostToDocument(post)); err != nil {
		return fmt.Errorf("index post: %w", err)
	}

	s.logger.Debug("indexed post", "post_id", post.ID, "title", post.Title)
	return nil
}

// DeletePost removes a post from the index.
func (s *SearchService) DeletePost(_ context.Context, postID string) error {
	if err := s.index.DeleteDocument(postID); err != nil {
		return fmt.Errorf("delete post from index: %w", err)
	}
	return nil
}

// DocumentCount returns the number of indexed posts.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Reindex rebuilds the search index from the store.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	posts, err := s.store.AllPosts(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}

	docs := make([]*search.PostDocument, len(posts))
	for i := range posts {
		docs[i] = search.PostToDocument(&posts[i])
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index posts: %w", err)
	}

	s.logger.Info("reindexed posts", "count", len(docs))
	return nil
}
