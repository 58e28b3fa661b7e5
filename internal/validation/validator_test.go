package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/quillapp/quill-server/internal/errors"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(loginForm{Email: "author@example.com", Password: "correct horse"})
	assert.NoError(t, err)
}

func TestValidate_CollectsAllFields(t *testing.T) {
	v := New()

	err := v.Validate(loginForm{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()

	type form struct {
		DisplayName string `json:"display_name,omitempty" validate:"required"`
	}

	err := v.Validate(form{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Contains(t, details, "display_name")
}
