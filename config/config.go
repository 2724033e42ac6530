package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/library"
	"github.com/s0up4200/marquee/yts"
)

// MaxPageSize is the largest page the catalog API accepts
const MaxPageSize = 50

// Load loads the configuration from file. A missing file is not an error
// when no explicit path was given; defaults cover every setting.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("marquee")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".marquee"))
		}
		v.AddConfigPath("/etc/marquee/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Catalog defaults
	v.SetDefault("catalog.mirrors", yts.DefaultMirrors)
	v.SetDefault("catalog.probe_timeout", yts.DefaultProbeTimeout)
	v.SetDefault("catalog.request_timeout", yts.DefaultRequestTimeout)
	v.SetDefault("catalog.user_agent", yts.DefaultUserAgent)
	v.SetDefault("catalog.page_size", browse.DefaultPageSize)

	v.SetDefault("browse.max_empty_pages", browse.DefaultMaxEmptyPages)
	v.SetDefault("browse.target", browse.DefaultTarget)

	// Filter defaults
	v.SetDefault("filter.genre", yts.GenreAll)
	v.SetDefault("filter.sort_by", "download_count")
	v.SetDefault("filter.order_by", "desc")
	v.SetDefault("filter.hide_owned", true)
	v.SetDefault("filter.language", "all")

	v.SetDefault("library.extensions", library.DefaultExtensions)

	v.SetDefault("tautulli.min_watch_percent", 85.0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if len(cfg.Catalog.Mirrors) == 0 {
		return fmt.Errorf("catalog.mirrors must list at least one mirror")
	}
	for _, m := range cfg.Catalog.Mirrors {
		if err := validateURL(m); err != nil {
			return fmt.Errorf("invalid catalog mirror %q: %w", m, err)
		}
	}

	if cfg.Catalog.PageSize <= 0 || cfg.Catalog.PageSize > MaxPageSize {
		return fmt.Errorf("catalog.page_size must be between 1 and %d", MaxPageSize)
	}
	if cfg.Browse.MaxEmptyPages <= 0 {
		return fmt.Errorf("browse.max_empty_pages must be positive")
	}
	if cfg.Browse.Target < 0 {
		return fmt.Errorf("browse.target must not be negative")
	}

	if err := validateFilter(&cfg.Filter); err != nil {
		return err
	}

	if cfg.Library.Similarity < 0 || cfg.Library.Similarity > 1 {
		return fmt.Errorf("library.similarity must be between 0 and 1")
	}

	if err := validateService("radarr", cfg.Radarr.Enabled, cfg.Radarr.URL, cfg.Radarr.APIKey); err != nil {
		return err
	}
	if err := validateService("tautulli", cfg.Tautulli.Enabled, cfg.Tautulli.URL, cfg.Tautulli.APIKey); err != nil {
		return err
	}
	if cfg.Tautulli.MinWatchPercent < 0 || cfg.Tautulli.MinWatchPercent > 100 {
		return fmt.Errorf("tautulli.min_watch_percent must be between 0 and 100")
	}
	if err := validateService("overseerr", cfg.Overseerr.Enabled, cfg.Overseerr.URL, cfg.Overseerr.APIKey); err != nil {
		return err
	}
	if cfg.Qbittorrent.Enabled && cfg.Qbittorrent.URL == "" {
		return fmt.Errorf("qbittorrent.url is required when qbittorrent is enabled")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

func validateFilter(f *FilterConfig) error {
	if f.MinYear > 0 && f.MaxYear > 0 && f.MinYear > f.MaxYear {
		return fmt.Errorf("filter.min_year %d is after filter.max_year %d", f.MinYear, f.MaxYear)
	}
	if f.MinRuntime > 0 && f.MaxRuntime > 0 && f.MinRuntime > f.MaxRuntime {
		return fmt.Errorf("filter.min_runtime %d exceeds filter.max_runtime %d", f.MinRuntime, f.MaxRuntime)
	}
	if f.MinimumRating < 0 || f.MinimumRating > 9 {
		return fmt.Errorf("filter.minimum_rating must be between 0 and 9")
	}
	if f.MinSeeds < 0 {
		return fmt.Errorf("filter.min_seeds must not be negative")
	}
	if f.Genre != "" && !yts.ValidGenre(f.Genre) {
		return fmt.Errorf("invalid filter.genre: %s", f.Genre)
	}
	for name, p := range f.Presets {
		if strings.TrimSpace(p.Expression) == "" {
			return fmt.Errorf("filter preset %q has no expression", name)
		}
	}
	return nil
}

func validateService(name string, enabled bool, rawURL, apiKey string) error {
	if !enabled {
		return nil
	}
	if rawURL == "" {
		return fmt.Errorf("%s.url is required when %s is enabled", name, name)
	}
	if err := validateURL(rawURL); err != nil {
		return fmt.Errorf("invalid %s.url: %w", name, err)
	}
	if apiKey == "" || apiKey == "your-api-key-here" {
		return fmt.Errorf("%s.api_key must be set to a valid API key", name)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
