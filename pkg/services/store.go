package services

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"content-cms/pkg/config"
	"content-cms/pkg/models"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	postCache   []models.Post
	cacheMutex  sync.Mutex
	cacheLoaded bool
)

// TagCount is one entry of the tag index built from published posts.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func getPostsCache() ([]models.Post, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if cacheLoaded {
		return postCache, nil
	}

	contentDir := filepath.Join(config.RepoPath, "content")
	dirtyFiles, _ := getGitDirtyFiles(config.RepoPath)

	matches, err := doublestar.Glob(os.DirFS(contentDir), config.ContentPattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var posts []models.Post
	for _, relPath := range matches {
		fullPath := filepath.Join(contentDir, filepath.FromSlash(relPath))
		repoRelPath, _ := filepath.Rel(config.RepoPath, fullPath)
		isDirty := dirtyFiles[filepath.ToSlash(repoRelPath)]

		content, err := os.ReadFile(fullPath)
		if err != nil {
			continue
		}

		post, err := ParsePost(relPath, content)
		if err != nil {
			// Malformed records stay listed so the editor can repair them;
			// the title falls back to the path.
			post = models.Post{Path: relPath, Meta: models.PostMeta{Title: relPath}}
		}
		if post.Meta.Title == "" {
			post.Meta.Title = relPath
		}
		post.Body = ""
		post.FrontMatter = nil
		post.IsDirty = isDirty
		posts = append(posts, post)
	}

	postCache = posts
	cacheLoaded = true
	return postCache, nil
}

// ListPosts returns the cached index, newest first. Drafts are excluded from
// the listing unless includeDrafts is set.
func ListPosts(includeDrafts bool) ([]models.Post, error) {
	posts, err := getPostsCache()
	if err != nil {
		return nil, err
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !includeDrafts && p.Meta.Draft {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Meta.Date.Equal(out[j].Meta.Date) {
			return out[i].Meta.Date.After(out[j].Meta.Date)
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// ListTags aggregates tags across published posts.
func ListTags() ([]TagCount, error) {
	posts, err := ListPosts(false)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, p := range posts {
		seen := map[string]bool{}
		for _, tag := range p.Meta.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		tags = append(tags, TagCount{Name: name, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

func getGitDirtyFiles(dir string) (map[string]bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	dirty := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		path = strings.Trim(path, "\"")
		dirty[path] = true
	}
	return dirty, nil
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	cacheLoaded = false
	postCache = nil
}
