// Package prefs handles Bookshelf user preferences persistence.
// Preferences are stored in ~/.config/bookshelf/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for Bookshelf.
type Prefs struct {
	Theme   string  `toml:"theme"`
	Filters Filters `toml:"filters"`
}

// Filters is the last search and filter selection, restored on startup.
type Filters struct {
	Search string `toml:"search"`
	Genre  string `toml:"genre"`
	Status string `toml:"status"`
}

const (
	defaultPrefsPath = "~/.config/bookshelf/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. Any problem (missing file,
// unreadable file, bad TOML) yields the defaults.
func Load(path string) Prefs {
	defaults := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults
	}

	file, err := os.Open(resolved)
	if err != nil {
		return defaults
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return defaults
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return defaults
	}

	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.Filters.Search = strings.TrimSpace(p.Filters.Search)
	p.Filters.Genre = strings.TrimSpace(p.Filters.Genre)
	p.Filters.Status = strings.TrimSpace(p.Filters.Status)

	return p
}

// Save writes preferences to the given path, creating directories as needed.
// The file is replaced atomically.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(bytes)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
