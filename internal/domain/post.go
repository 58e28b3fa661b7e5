package domain

import "time"

// ExcerptLength is the maximum number of characters of body shown in list views.
const ExcerptLength = 350

// Post is a blog post document.
//
// The ID doubles as the listing sort key: ids are time-correlated and
// lexicographically ordered by creation time, so iterating ids in reverse
// yields newest-first without a separate index.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the post changes.
func (p *Post) Touch() {
	p.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new post.
func (p *Post) InitTimestamps() {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// HasTag reports whether the post carries the given tag.
// Matching is exact and case-sensitive.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Excerpt returns the body truncated to ExcerptLength characters with a
// trailing ellipsis when longer. Bodies at or under the limit come back
// unchanged. Truncation counts characters, not bytes.
func (p *Post) Excerpt() string {
	runes := []rune(p.Body)
	if len(runes) <= ExcerptLength {
		return p.Body
	}
	return string(runes[:ExcerptLength]) + "..."
}
