package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/quillapp/quill-server/internal/errors"
	"github.com/quillapp/quill-server/internal/store"
)

func TestErrorHandler_SchemaViolationsBecomeBadRequest(t *testing.T) {
	RegisterErrorHandler()

	err := huma422(t, "expected string")
	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Equal(t, string(domainerrors.CodeValidation), err.Code)
}

func huma422(t *testing.T, details ...string) *APIError {
	t.Helper()

	errs := make([]error, len(details))
	for i, d := range details {
		errs[i] = fmt.Errorf("%s", d)
	}

	statusErr := huma.NewError(http.StatusUnprocessableEntity, "validation failed", errs...)
	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	return apiErr
}

func TestErrorHandler_DomainErrorsKeepTheirStatus(t *testing.T) {
	RegisterErrorHandler()

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domainerrors.NotFound("post not found"), http.StatusNotFound, string(domainerrors.CodeNotFound)},
		{domainerrors.Validation("page must be a positive integer"), http.StatusBadRequest, string(domainerrors.CodeValidation)},
		{domainerrors.Unauthorized("invalid token"), http.StatusUnauthorized, string(domainerrors.CodeUnauthorized)},
		{domainerrors.AlreadyExists("taken"), http.StatusConflict, string(domainerrors.CodeAlreadyExists)},
		{domainerrors.RateLimited("slow down"), http.StatusTooManyRequests, string(domainerrors.CodeRateLimited)},
	}

	for _, tc := range cases {
		statusErr := huma.NewError(http.StatusInternalServerError, "unused", tc.err)
		apiErr, ok := statusErr.(*APIError)
		require.True(t, ok)
		assert.Equal(t, tc.status, apiErr.GetStatus(), "case %s", tc.code)
		assert.Equal(t, tc.code, apiErr.Code)
	}
}

func TestErrorHandler_StoreNotFoundBecomes404(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(http.StatusInternalServerError, "unused", store.ErrNotFound)
	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.GetStatus())
}

func TestErrorHandler_ValidationDetailsSurvive(t *testing.T) {
	RegisterErrorHandler()

	domainErr := domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"title": "title is required",
	})

	statusErr := huma.NewError(http.StatusUnprocessableEntity, "unused", domainErr)
	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.GetStatus())
	assert.Equal(t, map[string]string{"title": "title is required"}, apiErr.Details)
}
