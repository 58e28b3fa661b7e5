package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/service"
)

func (s *Server) registerSiteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSite",
		Method:      http.MethodGet,
		Path:        "/api/site",
		Summary:     "Get site settings",
		Tags:        []string{"Site"},
	}, s.handleGetSite)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSite",
		Method:      http.MethodPatch,
		Path:        "/api/site",
		Summary:     "Update site settings",
		Tags:        []string{"Site"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateSite)
}

// === DTOs ===

type SiteResponse struct {
	ID          string    `json:"id" doc:"Site ID"`
	Title       string    `json:"title" doc:"Site title"`
	Description string    `json:"description" doc:"Site description"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last settings change"`
}

type SiteOutput struct {
	Body SiteResponse
}

type UpdateSiteRequest struct {
	Title       *string `json:"title,omitempty" doc:"Site title"`
	Description *string `json:"description,omitempty" doc:"Site description"`
}

type UpdateSiteInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateSiteRequest
}

// === Handlers ===

func (s *Server) handleGetSite(ctx context.Context, _ *struct{}) (*SiteOutput, error) {
	site, err := s.services.Site.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &SiteOutput{Body: mapSiteResponse(site)}, nil
}

func (s *Server) handleUpdateSite(ctx context.Context, input *UpdateSiteInput) (*SiteOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	site, err := s.services.Site.Update(ctx, service.UpdateSiteRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}
	return &SiteOutput{Body: mapSiteResponse(site)}, nil
}

// === Mappers ===

func mapSiteResponse(site *domain.Site) SiteResponse {
	return SiteResponse{
		ID:          site.ID,
		Title:       site.Title,
		Description: site.Description,
		UpdatedAt:   site.UpdatedAt,
	}
}
