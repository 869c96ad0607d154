package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings Bookshelf reads at startup.
type Config struct {
	APIURL          string
	PageSize        int
	Timeout         time.Duration
	RefreshInterval time.Duration
	DataDir         string
}

const (
	defaultConfigPath = "~/.config/bookshelf/config.toml"
	defaultDataDir    = "~/.local/share/bookshelf"
	defaultAPIURL     = "http://127.0.0.1:8080/books"
	defaultPageSize   = 10
	defaultTimeout    = 10 * time.Second

	logFileName = "bookshelf.log"
)

// Environment keys read by ApplyEnv.
const (
	EnvAPIURL   = "BOOKSHELF_API_URL"
	EnvPageSize = "BOOKSHELF_PAGE_SIZE"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:   defaultAPIURL,
		PageSize: defaultPageSize,
		Timeout:  defaultTimeout,
		DataDir:  mustExpand(defaultDataDir),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		PageSize       int    `toml:"page_size"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		RefreshSeconds int    `toml:"refresh_seconds"`
		DataDir        string `toml:"data_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}

	return cfg, nil
}

// ApplyEnv overrides the API URL and page size from .env and .env.local in
// dir, then from the process environment. Later sources win. Missing files
// are skipped.
func (c *Config) ApplyEnv(dir string) error {
	vals := make(map[string]string)
	for _, name := range []string{".env", ".env.local"} {
		fileVals, err := godotenv.Read(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("read %s: %w", name, err)
		}
		maps.Copy(vals, fileVals)
	}
	for _, key := range []string{EnvAPIURL, EnvPageSize} {
		if v, ok := os.LookupEnv(key); ok {
			vals[key] = v
		}
	}

	if v := strings.TrimSpace(vals[EnvAPIURL]); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(vals[EnvPageSize]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: want a positive integer, got %q", EnvPageSize, v)
		}
		c.PageSize = n
	}
	return nil
}

// LogPath returns the activity log file inside DataDir.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return filepath.Join(mustExpand(defaultDataDir), logFileName)
	}
	return filepath.Join(c.DataDir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
