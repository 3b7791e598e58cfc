// Package config loads application configuration from an optional TOML file
// merged with environment variables. Environment variables win.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultDir is the per-user directory holding the config file, the cache
// database, the session file and the generated code files.
const DefaultDir = ".ojcli"

// CodeConfig holds the code-generation and editor settings from the [code]
// table of the config file.
type CodeConfig struct {
	Lang         string   `toml:"lang"`
	Editor       string   `toml:"editor"`
	EditorArgs   []string `toml:"editor_args"`
	EditorEnvs   []string `toml:"editor_envs"`
	InjectBefore []string `toml:"inject_before"`
	InjectAfter  []string `toml:"inject_after"`
	CodeMarkers  bool     `toml:"code_markers"`
	WriteTests   bool     `toml:"write_tests"`
}

// Config holds the application configuration.
type Config struct {
	BaseURL     string        `toml:"base_url"`
	Categories  []string      `toml:"categories"`
	DBPath      string        `toml:"db_path"`
	SessionPath string        `toml:"session_path"`
	CodeDir     string        `toml:"code_dir"`
	Timeout     time.Duration `toml:"-"`
	Code        CodeConfig    `toml:"code"`

	// SecretKey protects credentials at rest. Never read from the config
	// file, only from OJCLI_SECRET_KEY.
	SecretKey []byte `toml:"-"`
}

// fileConfig mirrors Config for decoding; timeout is a duration string in the
// file ("30s") rather than an integer.
type fileConfig struct {
	Config
	Timeout string `toml:"timeout"`
}

// Load reads the config file at path (or ~/.ojcli/config.toml when path is
// empty), applies OJCLI_* environment overrides and fills in defaults. A
// missing config file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	baseDir := filepath.Join(home, DefaultDir)

	cfg := &Config{
		BaseURL:     "https://leetcode.com",
		Categories:  []string{"algorithms"},
		DBPath:      filepath.Join(baseDir, "cache.db"),
		SessionPath: filepath.Join(baseDir, "session.json"),
		CodeDir:     filepath.Join(baseDir, "code"),
		Timeout:     30 * time.Second,
	}

	if path == "" {
		path = filepath.Join(baseDir, "config.toml")
	}
	if err := mergeFile(cfg, path); err != nil {
		return nil, err
	}
	if err := mergeEnv(cfg); err != nil {
		return nil, err
	}

	if key, ok := os.LookupEnv("OJCLI_SECRET_KEY"); ok && key != "" {
		sum := sha256.Sum256([]byte(key))
		cfg.SecretKey = sum[:]
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := fileConfig{Config: *cfg}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	*cfg = fc.Config
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("%s: timeout has invalid duration %q: %w", path, fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func mergeEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("OJCLI_BASE_URL"); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv("OJCLI_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("OJCLI_SESSION_PATH"); ok && v != "" {
		cfg.SessionPath = v
	}
	if v, ok := os.LookupEnv("OJCLI_CODE_DIR"); ok && v != "" {
		cfg.CodeDir = v
	}
	if v, ok := os.LookupEnv("OJCLI_CATEGORIES"); ok && v != "" {
		var categories []string
		for _, c := range strings.Split(v, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				categories = append(categories, c)
			}
		}
		if categories != nil {
			cfg.Categories = categories
		}
	}
	if v, ok := os.LookupEnv("OJCLI_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("OJCLI_TIMEOUT has invalid duration %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	return nil
}
