package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	_, err := Load(LoadOptions{
		EnvFiles: []string{},
		Environ:  map[string]string{"WORKHUB_CONFIG": filepath.Join(t.TempDir(), "missing.yaml")},
	})
	// An explicitly named config file must exist.
	require.Error(t, err)

	cfg, err := Load(LoadOptions{
		ConfigFile: writeFile(t, t.TempDir(), "empty.yaml", ""),
		EnvFiles:   []string{},
		Environ:    map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_YAMLThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
backend: remote
page_size: 25
api:
  base_url: https://yaml.example.com/api
  timeout_ms: 3000
log:
  level: debug
`)

	cfg, err := Load(LoadOptions{
		ConfigFile: path,
		EnvFiles:   []string{},
		Environ: map[string]string{
			"WORKHUB_API_URL":   "https://env.example.com/api",
			"WORKHUB_API_TOKEN": "secret",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.PageSize, "yaml overrides default")
	assert.Equal(t, 3000, cfg.API.TimeoutMs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL, "env overrides yaml")
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, "text", cfg.Log.Format, "untouched default survives")
}

func TestLoad_DotenvFilesBelowEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "WORKHUB_BACKEND=local\nWORKHUB_DB=/tmp/from-dotenv.db\nWORKHUB_PAGE_SIZE=7\n")

	cfg, err := Load(LoadOptions{
		ConfigFile: writeFile(t, dir, "empty.yaml", ""),
		EnvFiles:   []string{envFile, filepath.Join(dir, "missing.env")},
		Environ:    map[string]string{"WORKHUB_PAGE_SIZE": "15"},
	})
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.Local.DBPath)
	assert.Equal(t, 15, cfg.PageSize)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	_, err := Load(LoadOptions{
		EnvFiles: []string{},
		Environ:  map[string]string{"WORKHUB_PAGE_SIZE": "many"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Backend = "carrier-pigeon"
	assert.ErrorContains(t, cfg.Validate(), "unknown backend")

	cfg = Default()
	cfg.API.BaseURL = "not a url"
	assert.ErrorContains(t, cfg.Validate(), "absolute URL")

	cfg = Default()
	cfg.PageSize = 0
	assert.ErrorContains(t, cfg.Validate(), "page size")

	cfg = Default()
	cfg.Backend = BackendLocal
	cfg.Local.DBPath = " "
	assert.ErrorContains(t, cfg.Validate(), "database path")
}

func TestAPIConfig_Timeout(t *testing.T) {
	c := APIConfig{TimeoutMs: 1500}
	assert.Equal(t, "1.5s", c.Timeout().String())
}
