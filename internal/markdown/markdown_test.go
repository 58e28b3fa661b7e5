package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_BasicMarkdown(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("# Hello\n\nSome **bold** text.")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Hello")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRender_GFMTable(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)

	assert.Contains(t, html, "<table>")
}

func TestRender_Empty(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
