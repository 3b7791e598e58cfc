package config

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every OJCLI_ env var that Load() reads.
var allConfigKeys = []string{
	"OJCLI_BASE_URL",
	"OJCLI_DB_PATH",
	"OJCLI_SESSION_PATH",
	"OJCLI_CODE_DIR",
	"OJCLI_CATEGORIES",
	"OJCLI_TIMEOUT",
	"OJCLI_SECRET_KEY",
}

// isolateConfigEnv unsets all OJCLI_ env vars so tests don't inherit values
// from the host environment. t.Cleanup restores original values.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		key := key
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, "https://leetcode.com", cfg.BaseURL)
	assert.Equal(t, []string{"algorithms"}, cfg.Categories)
	assert.Equal(t, filepath.Join(home, ".ojcli", "cache.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, ".ojcli", "session.json"), cfg.SessionPath)
	assert.Equal(t, filepath.Join(home, ".ojcli", "code"), cfg.CodeDir)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Nil(t, cfg.SecretKey)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolateConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url = "https://leetcode.cn"
categories = ["algorithms", "database"]
db_path = "/data/oj.db"
timeout = "10s"

[code]
lang = "rust"
editor = "nvim"
editor_args = ["-O"]
inject_before = ["// start"]
write_tests = true
`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://leetcode.cn", cfg.BaseURL)
	assert.Equal(t, []string{"algorithms", "database"}, cfg.Categories)
	assert.Equal(t, "/data/oj.db", cfg.DBPath)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "rust", cfg.Code.Lang)
	assert.Equal(t, "nvim", cfg.Code.Editor)
	assert.Equal(t, []string{"-O"}, cfg.Code.EditorArgs)
	assert.Equal(t, []string{"// start"}, cfg.Code.InjectBefore)
	assert.True(t, cfg.Code.WriteTests)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url = "https://from-file.example"
timeout = "10s"
`), 0o644))

	t.Setenv("OJCLI_BASE_URL", "https://from-env.example")
	t.Setenv("OJCLI_TIMEOUT", "5s")
	t.Setenv("OJCLI_CATEGORIES", "algorithms, shell ,")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://from-env.example", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"algorithms", "shell"}, cfg.Categories)
}

func TestLoad_SecretKeyDerivation(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OJCLI_SECRET_KEY", "hunter2")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	want := sha256.Sum256([]byte("hunter2"))
	assert.Equal(t, want[:], cfg.SecretKey)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("OJCLI_TIMEOUT", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = ["), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}
