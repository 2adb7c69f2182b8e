package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"content-cms/pkg/config"
	"content-cms/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerRepo(t *testing.T) {
	t.Helper()

	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "content"), 0755))

	prev := config.RepoPath
	config.RepoPath = repo
	services.InvalidateCache()
	t.Cleanup(func() {
		config.RepoPath = prev
		services.InvalidateCache()
	})
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSavePostRejectsMissingDate(t *testing.T) {
	setupHandlerRepo(t)

	w := postJSON(t, SavePost, "/api/post",
		`{"path":"x.md","frontmatter":{"title":"X"},"body":"Body.","format":"yaml"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed record")

	_, err := os.Stat(filepath.Join(config.RepoPath, "content", "x.md"))
	assert.True(t, os.IsNotExist(err), "malformed record must not be written")
}

func TestSavePostWritesValidRecord(t *testing.T) {
	setupHandlerRepo(t)

	w := postJSON(t, SavePost, "/api/post",
		`{"path":"x.md","frontmatter":{"title":"X","date":"2025-07-06","draft":false},"body":"Body.","format":"yaml"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	content, err := os.ReadFile(filepath.Join(config.RepoPath, "content", "x.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "title: X")
	assert.Contains(t, string(content), "Body.")
}

func TestGetDiffTempFileFailure(t *testing.T) {
	setupHandlerRepo(t)
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

	w := postJSON(t, GetDiff, "/api/diff",
		`{"path":"a.md","content":"plain text without front matter"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Diff failed")
}
