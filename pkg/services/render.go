package services

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// previewMarkdown renders the editor preview. Site output is produced by the
// hugo binary, not by this engine.
var previewMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderPreview converts a markdown body into HTML for the editor preview.
func RenderPreview(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := previewMarkdown.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}
