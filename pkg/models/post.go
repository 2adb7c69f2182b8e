package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PostMeta is the typed front matter of a content file. Keys the CMS does not
// know about survive in Custom so a parse/serialize cycle loses nothing.
type PostMeta struct {
	Title       string         `json:"title" yaml:"title"`
	Date        time.Time      `json:"date" yaml:"date"`
	Draft       bool           `json:"draft" yaml:"draft"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Custom      map[string]any `json:"custom,omitempty" yaml:"-"`
}

// Validate rejects malformed records: title and date are always required.
func (m PostMeta) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date, validation.Required),
	)
}

// HasTag reports whether the tag set contains name.
func (m PostMeta) HasTag(name string) bool {
	for _, t := range m.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// Post represents a content file in the CMS.
type Post struct {
	Path        string         `json:"path"`
	Meta        PostMeta       `json:"meta"`
	FrontMatter map[string]any `json:"frontmatter,omitempty"`
	Body        string         `json:"body,omitempty"`
	Content     string         `json:"content,omitempty"` // Raw content (backward compatibility)
	Format      string         `json:"format,omitempty"`  // yaml, toml, json
	IsDirty     bool           `json:"is_dirty"`
}
