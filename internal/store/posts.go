package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/quillapp/quill-server/internal/domain"
)

// PostPageSize is the fixed number of posts per page in listings.
const PostPageSize = 10

const postPrefix = "post:"

// CreatePost stores a new post.
// Post IDs embed their creation time, so the natural key order of the post
// prefix is chronological and reverse iteration yields newest first.
func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(postPrefix + post.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check post exists: %w", err)
		}

		data, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("marshal post: %w", err)
		}

		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.indexPost(ctx, post)
	return nil
}

// GetPost retrieves a post by ID.
func (s *Store) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post domain.Post
	if err := s.get([]byte(postPrefix+postID), &post); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// UpdatePost replaces an existing post.
// Returns ErrNotFound if the post does not exist.
func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(postPrefix + post.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("check post exists: %w", err)
		}

		data, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("marshal post: %w", err)
		}

		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.indexPost(ctx, post)
	return nil
}

// DeletePost removes a post by ID.
// Idempotent: deleting a missing post is not an error.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.delete([]byte(postPrefix + postID)); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if err := s.searchIndexer.DeletePost(ctx, postID); err != nil && s.logger != nil {
		s.logger.Warn("failed to remove post from search index", "post_id", postID, "error", err)
	}

	return nil
}

// ListPosts returns one page of posts, newest first.
// Page numbers start at 1. When tag is non-empty, only posts carrying that
// exact tag are returned; the tag comparison is case-sensitive.
func (s *Store) ListPosts(ctx context.Context, page int, tag string) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	skip := (page - 1) * PostPageSize
	posts := make([]domain.Post, 0, PostPageSize)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postPrefix)
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the last possible post key, then walk backwards.
		seekKey := append([]byte(postPrefix), 0xFF)

		matched := 0
		for it.Seek(seekKey); it.ValidForPrefix([]byte(postPrefix)); it.Next() {
			var post domain.Post
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &post)
			})
			if err != nil {
				return fmt.Errorf("unmarshal post: %w", err)
			}

			if tag != "" && !post.HasTag(tag) {
				continue
			}

			if matched < skip {
				matched++
				continue
			}

			posts = append(posts, post)
			if len(posts) == PostPageSize {
				break
			}
			matched++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// CountPosts returns the total number of stored posts, ignoring any tag
// filter.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(postPrefix)); it.ValidForPrefix([]byte(postPrefix)); it.Next() {
			count++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// AllPosts returns every stored post in key order. Used for search reindexing
// and exports, not request paths.
func (s *Store) AllPosts(ctx context.Context) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var posts []domain.Post
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(postPrefix)); it.ValidForPrefix([]byte(postPrefix)); it.Next() {
			var post domain.Post
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &post)
			})
			if err != nil {
				return fmt.Errorf("unmarshal post: %w", err)
			}
			posts = append(posts, post)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// indexPost pushes a post into the search index, logging failures instead of
// surfacing them. A stale index entry is preferable to a failed write.
func (s *Store) indexPost(ctx context.Context, post *domain.Post) {
	if err := s.searchIndexer.IndexPost(ctx, post); err != nil && s.logger != nil {
		s.logger.Warn("failed to index post", "post_id", post.ID, "error", err)
	}
}
