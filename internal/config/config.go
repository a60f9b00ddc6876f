// Package config loads the optional per-project configuration file from
// the marker directory. Absent file means defaults; a file that exists
// but fails to parse is an error, since it was authored by the user.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the marker directory.
const FileName = "config.yaml"

// Config is the root of the configuration file.
type Config struct {
	Sync SyncConfig `yaml:"sync"`
}

// SyncConfig controls discovery-mode change detection.
type SyncConfig struct {
	// Extensions is the allow-list of file extensions (with leading dot)
	// considered source/text files in the project tree.
	Extensions []string `yaml:"extensions"`

	// ExtraFiles are extensionless names tracked despite the allow-list.
	ExtraFiles []string `yaml:"extra_files"`

	// ExcludeDirs are directory names skipped while walking the project.
	// Hidden directories are always skipped.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			Extensions: []string{
				".c", ".cpp", ".cs", ".css", ".go", ".h", ".hpp", ".html",
				".java", ".js", ".json", ".jsx", ".md", ".py", ".rb", ".rs",
				".scss", ".sh", ".sql", ".toml", ".ts", ".tsx", ".txt",
				".yaml", ".yml",
			},
			ExtraFiles: []string{
				"Dockerfile", "Justfile", "LICENSE", "Makefile",
			},
			ExcludeDirs: []string{
				"__pycache__", "build", "dist", "node_modules", "target", "vendor",
			},
		},
	}
}

// Load reads config.yaml from tigDir, falling back to Default when the
// file does not exist. Any non-empty list in the file replaces the
// corresponding default list wholesale.
func Load(tigDir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(tigDir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	if len(loaded.Sync.Extensions) > 0 {
		cfg.Sync.Extensions = loaded.Sync.Extensions
	}
	if len(loaded.Sync.ExtraFiles) > 0 {
		cfg.Sync.ExtraFiles = loaded.Sync.ExtraFiles
	}
	if len(loaded.Sync.ExcludeDirs) > 0 {
		cfg.Sync.ExcludeDirs = loaded.Sync.ExcludeDirs
	}
	return cfg, nil
}

// Allows reports whether a file with the given base name belongs to the
// discovery allow-list.
func (c *SyncConfig) Allows(name string) bool {
	if ext := filepath.Ext(name); ext != "" {
		return slices.Contains(c.Extensions, ext)
	}
	return slices.Contains(c.ExtraFiles, name)
}

// Excludes reports whether a directory name is skipped during the
// project walk.
func (c *SyncConfig) Excludes(dirName string) bool {
	return slices.Contains(c.ExcludeDirs, dirName)
}
