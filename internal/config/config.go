package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the listing server configuration
type ServerConfig struct {
	Addr      string   `mapstructure:"addr"`
	ImagesDir string   `mapstructure:"images_dir"`
	SiteDir   string   `mapstructure:"site_dir"` // optional static site served at /
	Include   []string `mapstructure:"include"`  // glob patterns matched against lower-cased names
	Watch     bool     `mapstructure:"watch"`
}

// GalleryConfig holds image resolution settings for the browser
type GalleryConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	BasePath        string        `mapstructure:"base_path"`   // deployment sub-path, e.g. "/portfolio/"
	ImagesPath      string        `mapstructure:"images_path"` // relative to base path
	ListingEndpoint string        `mapstructure:"listing_endpoint"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
	TargetCount     int           `mapstructure:"target_count"`
	MaxCandidates   int           `mapstructure:"max_candidates"`
	LoadConcurrency int           `mapstructure:"load_concurrency"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// ResolveTimeout bounds a whole resolution: one listing request plus the
// worst case of every candidate running into the probe timeout.
func (g GalleryConfig) ResolveTimeout() time.Duration {
	return g.RequestTimeout + time.Duration(g.MaxCandidates)*g.ProbeTimeout
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	GridColumns        int           `mapstructure:"grid_columns"`
	SwipeThreshold     int           `mapstructure:"swipe_threshold"` // in terminal cells
	OpenDelay          time.Duration `mapstructure:"open_delay"`
	CloseDelay         time.Duration `mapstructure:"close_delay"`
	PlaceholderOnError bool          `mapstructure:"placeholder_on_error"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultIncludePatterns are the image types served by the listing endpoint
var DefaultIncludePatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp", "*.bmp", "*.tiff"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8000",
			ImagesDir: "images",
			Include:   append([]string(nil), DefaultIncludePatterns...),
			Watch:     true,
		},
		Gallery: GalleryConfig{
			BaseURL:         "http://localhost:8000",
			BasePath:        "/",
			ImagesPath:      "images/",
			ListingEndpoint: "/api/images",
			ProbeTimeout:    time.Second,
			TargetCount:     20,
			MaxCandidates:   500,
			LoadConcurrency: 4,
			RequestTimeout:  10 * time.Second,
		},
		UI: UIConfig{
			GridColumns:    4,
			SwipeThreshold: 8,
			OpenDelay:      10 * time.Millisecond,
			CloseDelay:     300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "folio", "folio.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "folio", "folio.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "folio")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "folio")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return load(newViper(""))
}

// LoadConfigFile loads configuration from an explicit file plus environment
func LoadConfigFile(path string) (*Config, error) {
	return load(newViper(path))
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. FOLIO_SERVER_ADDR
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, DefaultConfig())
	return v
}

// bindDefaults registers every key so AutomaticEnv can see it during Unmarshal
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.images_dir", cfg.Server.ImagesDir)
	v.SetDefault("server.site_dir", cfg.Server.SiteDir)
	v.SetDefault("server.include", cfg.Server.Include)
	v.SetDefault("server.watch", cfg.Server.Watch)

	v.SetDefault("gallery.base_url", cfg.Gallery.BaseURL)
	v.SetDefault("gallery.base_path", cfg.Gallery.BasePath)
	v.SetDefault("gallery.images_path", cfg.Gallery.ImagesPath)
	v.SetDefault("gallery.listing_endpoint", cfg.Gallery.ListingEndpoint)
	v.SetDefault("gallery.probe_timeout", cfg.Gallery.ProbeTimeout)
	v.SetDefault("gallery.target_count", cfg.Gallery.TargetCount)
	v.SetDefault("gallery.max_candidates", cfg.Gallery.MaxCandidates)
	v.SetDefault("gallery.load_concurrency", cfg.Gallery.LoadConcurrency)
	v.SetDefault("gallery.request_timeout", cfg.Gallery.RequestTimeout)

	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("ui.swipe_threshold", cfg.UI.SwipeThreshold)
	v.SetDefault("ui.open_delay", cfg.UI.OpenDelay)
	v.SetDefault("ui.close_delay", cfg.UI.CloseDelay)
	v.SetDefault("ui.placeholder_on_error", cfg.UI.PlaceholderOnError)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

func load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the gallery cannot work with
func (c *Config) Validate() error {
	if _, err := url.Parse(c.Gallery.BaseURL); err != nil {
		return fmt.Errorf("invalid gallery.base_url %q: %w", c.Gallery.BaseURL, err)
	}
	if c.Gallery.ProbeTimeout <= 0 {
		return fmt.Errorf("gallery.probe_timeout must be positive, got %s", c.Gallery.ProbeTimeout)
	}
	if c.Gallery.TargetCount <= 0 {
		return fmt.Errorf("gallery.target_count must be positive, got %d", c.Gallery.TargetCount)
	}
	if c.Gallery.MaxCandidates <= 0 {
		return fmt.Errorf("gallery.max_candidates must be positive, got %d", c.Gallery.MaxCandidates)
	}
	if c.Gallery.LoadConcurrency <= 0 {
		return fmt.Errorf("gallery.load_concurrency must be positive, got %d", c.Gallery.LoadConcurrency)
	}
	if c.Gallery.RequestTimeout <= 0 {
		return fmt.Errorf("gallery.request_timeout must be positive, got %s", c.Gallery.RequestTimeout)
	}
	if c.UI.GridColumns <= 0 {
		return fmt.Errorf("ui.grid_columns must be positive, got %d", c.UI.GridColumns)
	}
	if c.UI.SwipeThreshold <= 0 {
		return fmt.Errorf("ui.swipe_threshold must be positive, got %d", c.UI.SwipeThreshold)
	}
	return nil
}
