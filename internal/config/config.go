// Package config loads surgefmt.toml: a per-project style file discovered by
// walking up from the working directory, в духе манифеста проекта.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"surgefmt/internal/format"
)

// FileName is the manifest the formatter looks for.
const FileName = "surgefmt.toml"

// Config is the on-disk shape of surgefmt.toml. Unset numeric fields inherit
// the preset named by Style.
type Config struct {
	Style               string `toml:"style"`
	MaxWidth            int    `toml:"max_width"`
	BlockIndent         int    `toml:"block_indent"`
	ContinuationIndent  int    `toml:"continuation_indent"`
	RemoveUnusedImports *bool  `toml:"remove_unused_imports"`
}

// Manifest is a located and parsed config file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir looking for surgefmt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates one config file.
func Load(path string) (*Manifest, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if _, err := StyleOptions(cfg.Style); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Discover finds, parses, and resolves the nearest config. ok=false without
// error means no config file exists; callers fall back to defaults.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Options resolves the manifest into formatter options: preset first, then
// explicit field overrides.
func (m *Manifest) Options() format.Options {
	opt, _ := StyleOptions(m.Config.Style)
	if m.Config.MaxWidth > 0 {
		opt.MaxWidth = m.Config.MaxWidth
	}
	if m.Config.BlockIndent > 0 {
		opt.BlockIndent = m.Config.BlockIndent
	}
	if m.Config.ContinuationIndent > 0 {
		opt.ContinuationIndent = m.Config.ContinuationIndent
	}
	if m.Config.RemoveUnusedImports != nil {
		opt.RemoveUnusedImports = *m.Config.RemoveUnusedImports
	}
	return opt
}

// StyleOptions maps a style name to its preset. The empty name is the
// default style.
func StyleOptions(style string) (format.Options, error) {
	switch strings.TrimSpace(strings.ToLower(style)) {
	case "", "default":
		return format.Defaults(), nil
	case "compiler":
		return format.StyleCompiler(), nil
	case "stdlib":
		return format.StyleStdlib(), nil
	default:
		return format.Options{}, fmt.Errorf("unknown style %q (expected default|compiler|stdlib)", style)
	}
}
