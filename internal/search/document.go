// Package search provides full-text post search backed by Bleve.
package search

import (
	"github.com/quillapp/quill-server/internal/domain"
)

// PostDocument is the document structure stored in the Bleve index.
type PostDocument struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"created_at"` // Unix millis
	UpdatedAt int64    `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve defaults to Go struct field names, but our mapping uses lowercase
// names, so we convert explicitly.
func (d *PostDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"body":       d.Body,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// PostToDocument converts a domain Post to an indexable document.
func PostToDocument(post *domain.Post) *PostDocument {
	return &PostDocument{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		Tags:      post.Tags,
		CreatedAt: post.CreatedAt.UnixMilli(),
		UpdatedAt: post.UpdatedAt.UnixMilli(),
	}
}
