package services

import (
	"os"
	"path/filepath"
	"strings"

	"content-cms/pkg/config"
	"content-cms/pkg/models"

	"gopkg.in/yaml.v3"
)

func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

func GetConfig() (map[string]interface{}, error) {
	content, err := os.ReadFile(cmsConfigPath())
	if err != nil {
		return nil, err
	}

	var cfg map[string]interface{}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func GetCMSConfig() (*models.CMSConfig, error) {
	content, err := os.ReadFile(cmsConfigPath())
	if err != nil {
		return nil, err
	}

	var cfg models.CMSConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func cmsConfigPath() string {
	return filepath.Join(config.RepoPath, "static/admin/config.yml")
}
