package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/service"
)

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createPost",
		Method:        http.MethodPost,
		Path:          "/api/posts",
		Summary:       "Create post",
		Description:   "Creates a new blog post",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusOK,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPosts",
		Method:      http.MethodGet,
		Path:        "/api/posts",
		Summary:     "List posts",
		Description: "Returns one page of posts, newest first, with excerpted bodies",
		Tags:        []string{"Posts"},
	}, s.handleListPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPost",
		Method:      http.MethodGet,
		Path:        "/api/posts/{id}",
		Summary:     "Get post",
		Description: "Returns a post by ID with its full body",
		Tags:        []string{"Posts"},
	}, s.handleGetPost)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePost",
		Method:      http.MethodPatch,
		Path:        "/api/posts/{id}",
		Summary:     "Update post",
		Description: "Applies a partial update to a post",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePost)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePost",
		Method:        http.MethodDelete,
		Path:          "/api/posts/{id}",
		Summary:       "Delete post",
		Description:   "Deletes a post; succeeds whether or not the post exists",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusNoContent,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePost)
}

// === DTOs ===

type CreatePostRequest struct {
	Title string   `json:"title" minLength:"1" doc:"Post title"`
	Body  string   `json:"body" doc:"Post body in markdown"`
	Tags  []string `json:"tags" doc:"Tag list, may be empty"`
}

type CreatePostInput struct {
	Authorization string `header:"Authorization"`
	Body          CreatePostRequest
}

// PostResponse is the full post representation used by reads and writes.
type PostResponse struct {
	ID        string    `json:"id" doc:"Post ID"`
	Title     string    `json:"title" doc:"Post title"`
	Body      string    `json:"body" doc:"Full markdown body"`
	BodyHTML  string    `json:"body_html,omitempty" doc:"Body rendered to HTML"`
	Tags      []string  `json:"tags" doc:"Tag list"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type PostOutput struct {
	Body PostResponse
}

// PostListItem is the excerpted representation used in listings.
// Body holds at most the excerpt length, never the full text.
type PostListItem struct {
	ID        string    `json:"id" doc:"Post ID"`
	Title     string    `json:"title" doc:"Post title"`
	Body      string    `json:"body" doc:"Body excerpt"`
	Tags      []string  `json:"tags" doc:"Tag list"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type ListPostsInput struct {
	Page int    `query:"page" default:"1" doc:"Page number, starting at 1"`
	Tag  string `query:"tag" doc:"Only posts carrying this exact tag"`
}

type ListPostsOutput struct {
	LastPage int `header:"Last-Page"`
	Body     []PostListItem
}

type GetPostInput struct {
	ID string `path:"id" doc:"Post ID"`
}

type UpdatePostRequest struct {
	Title *string   `json:"title,omitempty" doc:"Post title"`
	Body  *string   `json:"body,omitempty" doc:"Post body in markdown"`
	Tags  *[]string `json:"tags,omitempty" doc:"Replacement tag list"`
}

type UpdatePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
	Body          UpdatePostRequest
}

type DeletePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
}

type DeletePostOutput struct{}

// === Handlers ===

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	post, err := s.services.Post.Create(ctx, service.CreatePostRequest{
		Title: input.Body.Title,
		Body:  input.Body.Body,
		Tags:  input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: s.mapPostResponse(post)}, nil
}

func (s *Server) handleListPosts(ctx context.Context, input *ListPostsInput) (*ListPostsOutput, error) {
	page, err := s.services.Post.List(ctx, input.Page, input.Tag)
	if err != nil {
		return nil, err
	}

	items := make([]PostListItem, 0, len(page.Posts))
	for i := range page.Posts {
		items = append(items, mapPostListItem(&page.Posts[i]))
	}

	return &ListPostsOutput{
		LastPage: page.LastPage,
		Body:     items,
	}, nil
}

func (s *Server) handleGetPost(ctx context.Context, input *GetPostInput) (*PostOutput, error) {
	if err := requireValidPostID(input.ID); err != nil {
		return nil, err
	}

	post, err := s.services.Post.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: s.mapPostResponse(post)}, nil
}

func (s *Server) handleUpdatePost(ctx context.Context, input *UpdatePostInput) (*PostOutput, error) {
	if err := requireValidPostID(input.ID); err != nil {
		return nil, err
	}
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	post, err := s.services.Post.Update(ctx, input.ID, service.UpdatePostRequest{
		Title: input.Body.Title,
		Body:  input.Body.Body,
		Tags:  input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: s.mapPostResponse(post)}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, input *DeletePostInput) (*DeletePostOutput, error) {
	if err := requireValidPostID(input.ID); err != nil {
		return nil, err
	}
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Post.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeletePostOutput{}, nil
}

// === Mappers ===

func (s *Server) mapPostResponse(post *domain.Post) PostResponse {
	resp := PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		Tags:      post.Tags,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	html, err := s.services.Post.BodyHTML(post)
	if err != nil {
		s.logger.Warn("failed to render post body", "post_id", post.ID, "error", err)
	} else {
		resp.BodyHTML = html
	}

	return resp
}

func mapPostListItem(post *domain.Post) PostListItem {
	return PostListItem{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Excerpt(),
		Tags:      post.Tags,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
