package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreview(t *testing.T) {
	body := "# Heading\n\nSome *prose* with a [link](https://example.com).\n\n" +
		"```java\nsealed interface Shape permits Circle {}\n```\n"

	html, err := RenderPreview([]byte(body))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<h1 id=\"heading\">Heading</h1>")
	assert.Contains(t, out, "<em>prose</em>")
	assert.Contains(t, out, "<a href=\"https://example.com\">link</a>")
	assert.Contains(t, out, "language-java")
}

func TestRenderPreviewTaskList(t *testing.T) {
	html, err := RenderPreview([]byte("- [x] done\n- [ ] open\n"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "checkbox")
}
