package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillapp/quill-server/internal/domain"
	domainerrors "github.com/quillapp/quill-server/internal/errors"
	"github.com/quillapp/quill-server/internal/store"
)

// SiteService manages the singleton site settings document.
type SiteService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSiteService creates a new site service.
func NewSiteService(s *store.Store, logger *slog.Logger) *SiteService {
	return &SiteService{store: s, logger: logger}
}

// UpdateSiteRequest contains partial site settings updates.
type UpdateSiteRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Get returns the site settings, creating them with defaults on first access.
func (s *SiteService) Get(ctx context.Context) (*domain.Site, error) {
	site, err := s.store.GetSite(ctx)
	if err == nil {
		return site, nil
	}
	if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get site: %w", err)
	}

	now := time.Now()
	site = &domain.Site{
		ID:          uuid.NewString(),
		Title:       "Quill",
		Description: "A quiet place to write",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.SaveSite(ctx, site); err != nil {
		return nil, fmt.Errorf("initialize site: %w", err)
	}

	s.logger.Info("initialized site settings", "site_id", site.ID)
	return site, nil
}

// Update applies a partial update to the site settings.
func (s *SiteService) Update(ctx context.Context, req UpdateSiteRequest) (*domain.Site, error) {
	site, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("site title cannot be empty")
		}
		site.Title = *req.Title
	}
	if req.Description != nil {
		site.Description = *req.Description
	}
	site.UpdatedAt = time.Now()

	if err := s.store.SaveSite(ctx, site); err != nil {
		return nil, fmt.Errorf("save site: %w", err)
	}

	s.logger.Info("updated site settings", "site_id", site.ID)
	return site, nil
}
