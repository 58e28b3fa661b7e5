package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quillapp/quill-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchPosts",
		Method:      http.MethodGet,
		Path:        "/api/posts/search",
		Summary:     "Search posts",
		Description: "Full-text search over post titles and bodies",
		Tags:        []string{"Search"},
	}, s.handleSearchPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindexPosts",
		Method:      http.MethodPost,
		Path:        "/api/posts/reindex",
		Summary:     "Rebuild search index",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReindexPosts)
}

// === DTOs ===

type SearchPostsInput struct {
	Query  string `query:"q" doc:"Search terms; empty matches all posts"`
	Tag    string `query:"tag" doc:"Only posts carrying this exact tag"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum hits to return"`
	Offset int    `query:"offset" minimum:"0" doc:"Hits to skip"`
}

type SearchHit struct {
	ID         string              `json:"id" doc:"Post ID"`
	Score      float64             `json:"score" doc:"Relevance score"`
	Title      string              `json:"title" doc:"Post title"`
	Tags       []string            `json:"tags,omitempty" doc:"Tag list"`
	Highlights map[string][]string `json:"highlights,omitempty" doc:"Matching fragments by field"`
}

type SearchResponse struct {
	Query  string      `json:"query" doc:"Search terms as executed"`
	Total  uint64      `json:"total" doc:"Total matching posts"`
	TookMs int64       `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchHit `json:"hits" doc:"Matching posts in relevance order"`
}

type SearchPostsOutput struct {
	Body SearchResponse
}

type ReindexResponse struct {
	Status string `json:"status" doc:"Reindex outcome"`
}

type ReindexOutput struct {
	Body ReindexResponse
}

// === Handlers ===

func (s *Server) handleSearchPosts(ctx context.Context, input *SearchPostsInput) (*SearchPostsOutput, error) {
	result, err := s.services.Search.Search(ctx, search.Params{
		Query:  input.Query,
		Tag:    input.Tag,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, SearchHit{
			ID:         hit.ID,
			Score:      hit.Score,
			Title:      hit.Title,
			Tags:       hit.Tags,
			Highlights: hit.Highlights,
		})
	}

	return &SearchPostsOutput{
		Body: SearchResponse{
			Query:  result.Query,
			Total:  result.Total,
			TookMs: result.TookMs,
			Hits:   hits,
		},
	}, nil
}

func (s *Server) handleReindexPosts(ctx context.Context, input *AuthorizedInput) (*ReindexOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Search.Reindex(ctx); err != nil {
		return nil, err
	}

	return &ReindexOutput{Body: ReindexResponse{Status: "ok"}}, nil
}
