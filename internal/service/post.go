// Package service contains the application's business logic, sitting between
// the HTTP handlers and the store.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillapp/quill-server/internal/domain"
	domainerrors "github.com/quillapp/quill-server/internal/errors"
	"github.com/quillapp/quill-server/internal/id"
	"github.com/quillapp/quill-server/internal/markdown"
	"github.com/quillapp/quill-server/internal/store"
	"github.com/quillapp/quill-server/internal/validation"
)

// PostService handles blog post operations.
type PostService struct {
	store     *store.Store
	validator *validation.Validator
	renderer  *markdown.Renderer
	logger    *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(s *store.Store, v *validation.Validator, r *markdown.Renderer, logger *slog.Logger) *PostService {
	return &PostService{
		store:     s,
		validator: v,
		renderer:  r,
		logger:    logger,
	}
}

// CreatePostRequest contains the fields for a new post.
type CreatePostRequest struct {
	Title string   `json:"title" validate:"required"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// UpdatePostRequest contains the fields for a partial post update.
// Nil fields are left untouched; submitted fields replace the stored value
// wholesale, including the tag list.
type UpdatePostRequest struct {
	Title *string   `json:"title,omitempty"`
	Body  *string   `json:"body,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []domain.Post
	// LastPage is derived from the total post count, not the filtered count.
	LastPage int
}

// Create validates and stores a new post.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:    id.NewDocumentID(),
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.InitTimestamps()

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info("created post", "post_id", post.ID, "title", post.Title)
	return post, nil
}

// Get retrieves a post by ID.
func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("post %s not found", postID)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return post, nil
}

// List returns one page of posts, newest first, optionally filtered by tag.
// Page numbers start at 1.
func (s *PostService) List(ctx context.Context, page int, tag string) (*PostPage, error) {
	if page < 1 {
		return nil, domainerrors.Validation("page must be a positive integer")
	}

	posts, err := s.store.ListPosts(ctx, page, tag)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	total, err := s.store.CountPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	lastPage := (total + store.PostPageSize - 1) / store.PostPageSize

	return &PostPage{
		Posts:    posts,
		LastPage: lastPage,
	}, nil
}

// Update applies a partial update to an existing post.
// Submitted fields replace the stored values as-is; there is no field
// validation on update.
func (s *PostService) Update(ctx context.Context, postID string, req UpdatePostRequest) (*domain.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
		if post.Tags == nil {
			post.Tags = []string{}
		}
	}
	post.Touch()

	if err := s.store.UpdatePost(ctx, post); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("post %s not found", postID)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.logger.Info("updated post", "post_id", post.ID)
	return post, nil
}

// Delete removes a post.
// Idempotent: deleting a missing post succeeds.
func (s *PostService) Delete(ctx context.Context, postID string) error {
	if err := s.store.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.logger.Info("deleted post", "post_id", postID)
	return nil
}

// BodyHTML renders a post's markdown body to HTML.
func (s *PostService) BodyHTML(post *domain.Post) (string, error) {
	html, err := s.renderer.Render(post.Body)
	if err != nil {
		return "", fmt.Errorf("render post body: %w", err)
	}
	return html, nil
}
