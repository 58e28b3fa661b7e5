package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/quillapp/quill-server/internal/errors"
	"github.com/quillapp/quill-server/internal/store"
)

func setupSiteService(t *testing.T) *SiteService {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return NewSiteService(s, slog.New(slog.DiscardHandler))
}

func TestSiteService_Get_InitializesDefaults(t *testing.T) {
	svc := setupSiteService(t)
	ctx := context.Background()

	site, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, site.ID)
	assert.NotEmpty(t, site.Title)

	// Second call returns the same document.
	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, site.ID, again.ID)
}

func TestSiteService_Update(t *testing.T) {
	svc := setupSiteService(t)
	ctx := context.Background()

	title := "My Blog"
	desc := "Notes and essays"
	site, err := svc.Update(ctx, UpdateSiteRequest{Title: &title, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "My Blog", site.Title)
	assert.Equal(t, "Notes and essays", site.Description)
}

func TestSiteService_Update_RejectsEmptyTitle(t *testing.T) {
	svc := setupSiteService(t)

	empty := ""
	_, err := svc.Update(context.Background(), UpdateSiteRequest{Title: &empty})

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}
