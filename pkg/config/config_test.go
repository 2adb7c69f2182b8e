package config

import (
	"testing"
	"time"
)

func TestInitDefaults(t *testing.T) {
	Init()

	if RepoPath != "./repo" {
		t.Errorf("expected default repo path ./repo, got %s", RepoPath)
	}
	if ContentPattern != "**/*.md" {
		t.Errorf("expected default content pattern **/*.md, got %s", ContentPattern)
	}
	if !WatchContent {
		t.Error("expected content watching enabled by default")
	}
	if WatchDebounce != 500*time.Millisecond {
		t.Errorf("expected 500ms debounce, got %s", WatchDebounce)
	}
	if GitBranch != "main" {
		t.Errorf("expected default branch main, got %s", GitBranch)
	}
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("REPO_PATH", "/srv/site")
	t.Setenv("CONTENT_PATTERN", "posts/**/*.md")
	t.Setenv("WATCH_CONTENT", "false")
	t.Setenv("WATCH_DEBOUNCE", "2s")
	t.Setenv("GIT_BRANCH", "trunk")

	Init()

	if RepoPath != "/srv/site" {
		t.Errorf("expected repo path /srv/site, got %s", RepoPath)
	}
	if PublicPath != "/srv/site/public" {
		t.Errorf("expected public path derived from repo path, got %s", PublicPath)
	}
	if ContentPattern != "posts/**/*.md" {
		t.Errorf("expected content pattern override, got %s", ContentPattern)
	}
	if WatchContent {
		t.Error("expected content watching disabled")
	}
	if WatchDebounce != 2*time.Second {
		t.Errorf("expected 2s debounce, got %s", WatchDebounce)
	}
	if GitBranch != "trunk" {
		t.Errorf("expected branch trunk, got %s", GitBranch)
	}
}
