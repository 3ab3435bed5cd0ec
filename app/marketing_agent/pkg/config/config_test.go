package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
llm:
  model: llama-3.1-8b-instant
search:
  provider: searxng
  searxng:
    base_url: http://localhost:8888
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv(APIKeyEnv, "gsk-test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gsk-test", cfg.LLM.APIKey)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, defaultBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, "searxng", cfg.Search.Provider)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, defaultAddr, cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "gsk-test")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultModel, cfg.LLM.Model)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate_MissingCredential(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, APIKeyEnv, cfgErr.Variable)
	assert.Contains(t, err.Error(), APIKeyEnv)
}
