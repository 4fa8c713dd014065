package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gardar/pdfredact/pkg/redact"
)

type yamlConfig struct {
	ViewerWidth int    `yaml:"viewer_width"`
	Quality     int    `yaml:"quality"`
	PageSize    string `yaml:"page_size"`
	Orientation string `yaml:"orientation"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Creator     string `yaml:"creator"`
	Verify      *bool  `yaml:"verify"`
}

// loadConfig reads a YAML file and applies the values it sets on top of base.
func loadConfig(path string, base redact.Config) (redact.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := base
	if yc.ViewerWidth != 0 {
		if yc.ViewerWidth < 0 {
			return base, fmt.Errorf("viewer_width must be positive, got %d", yc.ViewerWidth)
		}
		cfg.ViewerWidth = yc.ViewerWidth
	}
	if yc.Quality != 0 {
		cfg.Export.Quality = yc.Quality
	}
	if yc.PageSize != "" {
		cfg.Export.PageSize = yc.PageSize
	}
	if yc.Orientation != "" {
		cfg.Export.Orientation = yc.Orientation
	}
	if yc.Title != "" {
		cfg.Export.Title = yc.Title
	}
	if yc.Author != "" {
		cfg.Export.Author = yc.Author
	}
	if yc.Creator != "" {
		cfg.Export.Creator = yc.Creator
	}
	if yc.Verify != nil {
		cfg.Export.Verify = *yc.Verify
	}
	return cfg, nil
}
