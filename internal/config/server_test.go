package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrollfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultServerConfig_IsValid(t *testing.T) {
	cfg := DefaultServerConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 200, cfg.CorpusSize)
	assert.Equal(t, 500*time.Millisecond, cfg.ProviderLatency)
	assert.Equal(t, 20, cfg.RefreshInsertCount)
	assert.Equal(t, 20, cfg.PaginationConfig().DefaultLimit)
	assert.Equal(t, 100, cfg.PaginationConfig().MaxLimit)
}

func TestLoadServerConfig_EnvOverrides(t *testing.T) {
	t.Setenv(FileEnv, "")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CORPUS_SIZE", "45")
	t.Setenv("PROVIDER_LATENCY", "0s")
	t.Setenv("REFRESH_INSERT_COUNT", "5")
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "10")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("TRACING_ENABLED", "false")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 45, cfg.CorpusSize)
	assert.Zero(t, cfg.ProviderLatency)
	assert.Equal(t, 5, cfg.RefreshInsertCount)
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadServerConfig_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
http_addr: ":7070"
corpus_size: 1000
provider_latency: 250ms
pagination:
  default_limit: 50
  max_limit: 200
`)
	t.Setenv(FileEnv, path)
	t.Setenv("CORPUS_SIZE", "300")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, 300, cfg.CorpusSize, "environment wins over file")
	assert.Equal(t, 250*time.Millisecond, cfg.ProviderLatency)
	assert.Equal(t, 50, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 200, cfg.Pagination.MaxLimit)
	assert.Equal(t, 1, cfg.Pagination.DefaultPage, "absent keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, "failed to read config file"},
		{"unknown key", func(t *testing.T) string { return writeFile(t, "http_adr: \":1\"\n") }, "failed to parse config"},
		{"bad duration", func(t *testing.T) string { return writeFile(t, "provider_latency: soon\n") }, "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			err := LoadFile(tt.path(t), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg := DefaultServerConfig()
	require.NoError(t, LoadFile(writeFile(t, ""), &cfg))
	assert.Equal(t, DefaultServerConfig(), cfg)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.HTTPAddr = ""
	cfg.CorpusSize = -1
	cfg.ProviderLatency = -time.Second
	cfg.ShutdownTimeout = 0
	cfg.Pagination.DefaultLimit = 500

	err := cfg.Validate()
	require.Error(t, err)

	for _, want := range []string{"http_addr", "corpus_size", "provider_latency", "shutdown_timeout", "pagination.default_limit"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
		ok     bool
	}{
		{"zero latency allowed", func(c *ServerConfig) { c.ProviderLatency = 0 }, true},
		{"empty corpus allowed", func(c *ServerConfig) { c.CorpusSize = 0 }, true},
		{"zero request timeout disables it", func(c *ServerConfig) { c.RequestTimeout = 0 }, true},
		{"negative insert count", func(c *ServerConfig) { c.RefreshInsertCount = -1 }, false},
		{"zero default page", func(c *ServerConfig) { c.Pagination.DefaultPage = 0 }, false},
		{"zero max limit", func(c *ServerConfig) { c.Pagination.MaxLimit = 0 }, false},
		{"zero body limit", func(c *ServerConfig) { c.MaxBodyBytes = 0 }, false},
		{"corpus too large", func(c *ServerConfig) { c.CorpusSize = MaxCorpusSize + 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
