package services

import (
	"os"
	"os/exec"
	"path/filepath"

	"content-cms/pkg/config"
)

// BuildSite invokes the external site builder. Rendering is entirely its
// concern; the CMS only hands it the content tree.
func BuildSite() (error, string) {
	cmd := exec.Command("hugo",
		"--source", config.RepoPath,
		"--destination", "public",
		"--baseURL", config.GetAppURL()+config.PreviewURL,
		"--cleanDestinationDir",
		"-D",
	)
	output, err := cmd.CombinedOutput()
	return err, string(output)
}

func CreateContent(path string) (error, string) {
	// Check if file already exists
	fullPath := SafeJoin(config.RepoPath, "content", path)
	if _, err := os.Stat(fullPath); err == nil {
		return os.ErrExist, "File already exists"
	}

	cmd := exec.Command("hugo", "new", "content", path)
	cmd.Dir = config.RepoPath
	output, err := cmd.CombinedOutput()

	if err == nil {
		InvalidateCache()
	}
	return err, string(output)
}

// CreateContentFromCollection writes a new file generated from a collection's
// field schema, bypassing the external builder's archetypes.
func CreateContentFromCollection(path string, collectionName string, overrides map[string]interface{}) error {
	fullPath := SafeJoin(config.RepoPath, "content", path)
	if fullPath == "" {
		return os.ErrInvalid
	}
	if _, err := os.Stat(fullPath); err == nil {
		return os.ErrExist
	}

	cfg, err := GetCMSConfig()
	if err != nil {
		return err
	}
	collection := cfg.FindCollection(collectionName)
	if collection == nil {
		return os.ErrNotExist
	}

	content, err := GenerateContentFromCollection(*collection, overrides)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return err
	}

	InvalidateCache()
	return nil
}
