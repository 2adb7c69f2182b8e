package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPost = `---
title: "Sealed Interfaces"
date: 2025-07-06
draft: false
tags:
  - java
  - language-design
description: "Exploring exhaustive hierarchies"
---
Some **markdown** body.
`

const tomlPost = `+++
title = "Sealed Interfaces"
date = 2025-07-06
draft = true
tags = ["java"]
+++
Body text.
`

func TestParseFrontMatterYAML(t *testing.T) {
	fm, body, format, err := ParseFrontMatter([]byte(yamlPost))
	require.NoError(t, err)

	assert.Equal(t, "yaml", format)
	assert.Equal(t, "Sealed Interfaces", fm["title"])
	assert.Equal(t, false, fm["draft"])
	assert.Equal(t, "Some **markdown** body.", body)
}

func TestParseFrontMatterTOML(t *testing.T) {
	fm, body, format, err := ParseFrontMatter([]byte(tomlPost))
	require.NoError(t, err)

	assert.Equal(t, "toml", format)
	assert.Equal(t, "Sealed Interfaces", fm["title"])
	assert.Equal(t, true, fm["draft"])
	assert.Equal(t, "Body text.", body)
}

func TestParseFrontMatterJSON(t *testing.T) {
	content := `{
  "title": "Sealed Interfaces",
  "date": "2025-07-06",
  "draft": false
}`
	fm, body, format, err := ParseFrontMatter([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "json", format)
	assert.Equal(t, "Sealed Interfaces", fm["title"])
	assert.Empty(t, body)
}

func TestParseFrontMatterErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no front matter",
			content: "# Just a heading\n\nNo metadata here.\n",
			wantErr: ErrNoFrontMatter,
		},
		{
			name:    "unterminated yaml block",
			content: "---\ntitle: Broken\ndate: 2025-07-06\n\nBody without a closing marker.\n",
			wantErr: ErrUnterminated,
		},
		{
			name:    "unterminated toml block",
			content: "+++\ntitle = \"Broken\"\n\nBody.\n",
			wantErr: ErrUnterminated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ParseFrontMatter([]byte(tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoundTripPreservesMetadata(t *testing.T) {
	for _, content := range []string{yamlPost, tomlPost} {
		fm, body, format, err := ParseFrontMatter([]byte(content))
		require.NoError(t, err)

		rebuilt, err := ConstructFileContent(fm, body, format)
		require.NoError(t, err)

		fm2, body2, format2, err := ParseFrontMatter(rebuilt)
		require.NoError(t, err)

		assert.Equal(t, format, format2)
		assert.Equal(t, body, body2)
		assert.True(t, reflect.DeepEqual(canonicalizeFrontMatterForJSON(fm), canonicalizeFrontMatterForJSON(fm2)),
			"metadata changed through a parse/serialize cycle: %v vs %v", fm, fm2)
	}
}

func TestMetaFromMap(t *testing.T) {
	fm := map[string]interface{}{
		"title":       "X",
		"date":        "2025-07-06",
		"draft":       true,
		"tags":        []interface{}{"java", "jvm"},
		"description": "short summary",
		"series":      "language-features",
	}

	meta := MetaFromMap(fm)

	assert.Equal(t, "X", meta.Title)
	assert.Equal(t, time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC), meta.Date)
	assert.True(t, meta.Draft)
	assert.Equal(t, []string{"java", "jvm"}, meta.Tags)
	assert.Equal(t, "short summary", meta.Description)
	assert.Equal(t, "language-features", meta.Custom["series"])
}

func TestMetaToMapRoundTrip(t *testing.T) {
	fm := map[string]interface{}{
		"title": "X",
		"date":  "2025-07-06T00:00:00Z",
		"draft": false,
		"tags":  []interface{}{"java"},
	}

	meta := MetaFromMap(fm)
	back := MetaToMap(meta)

	assert.Equal(t, "X", back["title"])
	assert.Equal(t, false, back["draft"])
	assert.Equal(t, []string{"java"}, back["tags"])
}

func TestParseDateValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		ok   bool
		want time.Time
	}{
		{"2025-07-06", true, time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)},
		{"2025-07-06T10:30:00Z", true, time.Date(2025, 7, 6, 10, 30, 0, 0, time.UTC)},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"yesterday", false, time.Time{}},
		{42, false, time.Time{}},
	}

	for _, tt := range tests {
		got, ok := parseDateValue(tt.in)
		if ok != tt.ok {
			t.Errorf("parseDateValue(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("parseDateValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContentEquivalent(t *testing.T) {
	a := []byte("---\ntitle: X\ndate: 2025-07-06\ndraft: false\n---\nBody.\n")
	b := []byte("---\ndate: 2025-07-06\ntitle: X\ndraft: false\n---\n\nBody.\n")
	c := []byte("---\ntitle: Y\ndate: 2025-07-06\ndraft: false\n---\nBody.\n")

	assert.True(t, ContentEquivalent(a, b))
	assert.False(t, ContentEquivalent(a, c))
}
