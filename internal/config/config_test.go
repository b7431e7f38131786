package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "/api/images", cfg.Gallery.ListingEndpoint)
	assert.Equal(t, time.Second, cfg.Gallery.ProbeTimeout)
	assert.Equal(t, 20, cfg.Gallery.TargetCount)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.CloseDelay)
	assert.Contains(t, cfg.Server.Include, "*.tiff")
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  images_dir: /srv/photos
gallery:
  base_path: /portfolio/
  probe_timeout: 750ms
  target_count: 15
ui:
  placeholder_on_error: true
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/srv/photos", cfg.Server.ImagesDir)
	assert.Equal(t, "/portfolio/", cfg.Gallery.BasePath)
	assert.Equal(t, 750*time.Millisecond, cfg.Gallery.ProbeTimeout)
	assert.Equal(t, 15, cfg.Gallery.TargetCount)
	assert.True(t, cfg.UI.PlaceholderOnError)

	// Untouched keys keep their defaults
	assert.Equal(t, 500, cfg.Gallery.MaxCandidates)
	assert.Equal(t, 4, cfg.UI.GridColumns)
}

func TestLoadConfigFileEnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("FOLIO_SERVER_ADDR", ":7000")
	t.Setenv("FOLIO_GALLERY_TARGET_COUNT", "5")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Gallery.TargetCount)
}

func TestLoadConfigFileRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "gallery:\n  target_count: 0\n")

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_count")
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"probe timeout", func(c *Config) { c.Gallery.ProbeTimeout = 0 }},
		{"max candidates", func(c *Config) { c.Gallery.MaxCandidates = -1 }},
		{"load concurrency", func(c *Config) { c.Gallery.LoadConcurrency = 0 }},
		{"request timeout", func(c *Config) { c.Gallery.RequestTimeout = 0 }},
		{"grid columns", func(c *Config) { c.UI.GridColumns = 0 }},
		{"swipe threshold", func(c *Config) { c.UI.SwipeThreshold = 0 }},
		{"base url", func(c *Config) { c.Gallery.BaseURL = "http://[::1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolveTimeoutCoversCandidateBudget(t *testing.T) {
	g := GalleryConfig{
		ProbeTimeout:   time.Second,
		MaxCandidates:  500,
		RequestTimeout: 30 * time.Second,
	}
	assert.Equal(t, 530*time.Second, g.ResolveTimeout())
}
