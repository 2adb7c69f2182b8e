package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"content-cms/pkg/config"
	"content-cms/pkg/models"
	"content-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

func HandleBuild(c *gin.Context) {
	err, log := services.BuildSite()
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandleSync(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	err, log := services.SyncRepo(token)

	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandlePublish(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	err, log := services.PublishRepo(token)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

// ListPosts returns the published listing. Drafts only appear when the
// drafts query flag is set.
func ListPosts(c *gin.Context) {
	includeDrafts := c.Query("drafts") == "1" || c.Query("drafts") == "true"
	posts, err := services.ListPosts(includeDrafts)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func ListTags(c *gin.Context) {
	tags, err := services.ListTags()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch tags"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

func GetPost(c *gin.Context) {
	targetPath := c.Query("path")
	fullPath := services.SafeJoin(config.RepoPath, "content", targetPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		c.JSON(404, gin.H{"error": "File not found"})
		return
	}

	post, err := services.ParsePost(targetPath, content)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"content": string(content)})
		return
	}

	c.JSON(http.StatusOK, post)
}

func SavePost(c *gin.Context) {
	var post models.Post
	if err := c.BindJSON(&post); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, "content", post.Path)
	if fullPath == "" {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}

	if post.Format == "" {
		post.Format = "yaml"
	}

	var finalContent []byte
	var err error

	switch {
	case post.FrontMatter != nil:
		finalContent, err = services.ConstructFileContent(post.FrontMatter, post.Body, post.Format)
	case post.Meta.Title != "" || !post.Meta.Date.IsZero():
		finalContent, err = services.ConstructFileContent(services.MetaToMap(post.Meta), post.Body, post.Format)
	default:
		finalContent = services.NormalizeContent([]byte(post.Content), nil)
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to construct file content: " + err.Error()})
		return
	}

	// A record without title or date is malformed and never written.
	saved, err := services.ParsePost(post.Path, finalContent)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed record: " + err.Error()})
		return
	}
	if err := saved.Meta.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed record", "fields": err.Error()})
		return
	}

	if err := os.WriteFile(fullPath, finalContent, 0644); err != nil {
		c.JSON(500, gin.H{"error": "Save failed"})
		return
	}

	services.InvalidateCache()
	c.JSON(200, gin.H{"status": "saved"})
}

func CreatePost(c *gin.Context) {
	var req struct {
		Path       string                 `json:"path"`
		Collection string                 `json:"collection"`
		Overrides  map[string]interface{} `json:"overrides"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if req.Path == "" || strings.Contains(req.Path, "..") {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}

	if req.Collection != "" {
		if err := services.CreateContentFromCollection(req.Path, req.Collection, req.Overrides); err != nil {
			if os.IsExist(err) {
				c.JSON(409, gin.H{"error": "File already exists"})
			} else {
				c.JSON(500, gin.H{"error": "Create failed: " + err.Error()})
			}
			return
		}
		c.JSON(200, gin.H{"status": "created"})
		return
	}

	err, log := services.CreateContent(req.Path)
	if err != nil {
		if os.IsExist(err) {
			c.JSON(409, gin.H{"error": log})
		} else {
			c.JSON(500, gin.H{"error": "Hugo new failed", "log": log})
		}
		return
	}

	c.JSON(200, gin.H{"status": "created", "log": log})
}

func DeletePost(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, "content", req.Path)
	if fullPath == "" {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			c.JSON(404, gin.H{"error": "File not found"})
		} else {
			c.JSON(500, gin.H{"error": "Delete failed"})
		}
		return
	}

	services.InvalidateCache()
	c.JSON(200, gin.H{"status": "deleted"})
}

// LintPosts lints one file when a path is given, the whole content tree
// otherwise.
func LintPosts(c *gin.Context) {
	if targetPath := c.Query("path"); targetPath != "" {
		fullPath := services.SafeJoin(config.RepoPath, "content", targetPath)
		content, err := os.ReadFile(fullPath)
		if err != nil {
			c.JSON(404, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusOK, []services.LintReport{
			{Path: targetPath, Issues: services.LintContent(content)},
		})
		return
	}

	reports, err := services.LintContentTree()
	if err != nil {
		c.JSON(500, gin.H{"error": "Lint failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func PreviewPost(c *gin.Context) {
	var req struct {
		Body string `json:"body"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	html, err := services.RenderPreview([]byte(req.Body))
	if err != nil {
		c.JSON(500, gin.H{"error": "Preview failed"})
		return
	}
	c.JSON(200, gin.H{"html": string(html)})
}

func GetDiff(c *gin.Context) {
	var post models.Post
	if err := c.BindJSON(&post); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, "content", post.Path)

	currentContent, err := os.ReadFile(fullPath)
	if err != nil {
		currentContent = []byte("")
	}

	if len(currentContent) > 0 {
		fm, body, format, err := services.ParseFrontMatter(currentContent)
		if err == nil {
			normalized, err := services.ConstructFileContent(fm, body, format)
			if err == nil {
				currentContent = normalized
			}
		}
	}

	var newContent []byte
	if post.FrontMatter != nil {
		newContent, err = services.ConstructFileContent(post.FrontMatter, post.Body, post.Format)
		if err != nil {
			c.JSON(500, gin.H{"error": "Construction failed"})
			return
		}
	} else {
		newContent = []byte(post.Content)
	}

	// Structurally equal content needs no unsaved diff; fall through to the
	// git diff against HEAD only.
	if services.ContentEquivalent(currentContent, newContent) {
		newContent = currentContent
	}

	tmpDir := os.TempDir()
	f1, err := os.CreateTemp(tmpDir, "diff_old_*")
	if err != nil {
		c.JSON(500, gin.H{"error": "Diff failed: " + err.Error()})
		return
	}
	defer os.Remove(f1.Name())
	f2, err := os.CreateTemp(tmpDir, "diff_new_*")
	if err != nil {
		f1.Close()
		c.JSON(500, gin.H{"error": "Diff failed: " + err.Error()})
		return
	}
	defer os.Remove(f2.Name())

	f1.Write(currentContent)
	f2.Write(newContent)
	f1.Close()
	f2.Close()

	relPath := filepath.Join("content", post.Path)
	diffStr, diffType := services.Diff(f1.Name(), f2.Name(), relPath)

	c.JSON(200, gin.H{"diff": diffStr, "type": diffType})
}

func GetConfig(c *gin.Context) {
	cfg, err := services.GetConfig()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to parse config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
