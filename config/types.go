package config

import (
	"time"

	"github.com/s0up4200/marquee/filter"
)

// Config represents the complete configuration structure
type Config struct {
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Browse      BrowseConfig      `mapstructure:"browse"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Library     LibraryConfig     `mapstructure:"library"`
	Marks       MarksConfig       `mapstructure:"marks"`
	Radarr      RadarrConfig      `mapstructure:"radarr"`
	Tautulli    TautulliConfig    `mapstructure:"tautulli"`
	Overseerr   OverseerrConfig   `mapstructure:"overseerr"`
	Qbittorrent QbittorrentConfig `mapstructure:"qbittorrent"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// CatalogConfig holds the mirror list and request settings
type CatalogConfig struct {
	Mirrors        []string      `mapstructure:"mirrors"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	PageSize       int           `mapstructure:"page_size"`
}

// BrowseConfig contains pagination settings
type BrowseConfig struct {
	MaxEmptyPages int `mapstructure:"max_empty_pages"`
	Target        int `mapstructure:"target"`
}

// FilterConfig holds default filter options and named expression presets
type FilterConfig struct {
	filter.Config `mapstructure:",squash"`
	Presets       map[string]PresetConfig `mapstructure:"presets"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression string `mapstructure:"expression"`
}

// PresetExpressions flattens presets into name to expression
func (f FilterConfig) PresetExpressions() map[string]string {
	out := make(map[string]string, len(f.Presets))
	for name, p := range f.Presets {
		out[name] = p.Expression
	}
	return out
}

// LibraryConfig contains local library scan settings
type LibraryConfig struct {
	Folders    []string `mapstructure:"folders"`
	Extensions []string `mapstructure:"extensions"`
	Similarity float64  `mapstructure:"similarity"`
}

// MarksConfig holds statically configured mark lists
type MarksConfig struct {
	Owned     []string `mapstructure:"owned"`
	Hidden    []string `mapstructure:"hidden"`
	Watched   []string `mapstructure:"watched"`
	Watchlist []string `mapstructure:"watchlist"`
}

// RadarrConfig holds Radarr API connection details
type RadarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// TautulliConfig holds Tautulli API connection details and watch settings
type TautulliConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	URL             string  `mapstructure:"url"`
	APIKey          string  `mapstructure:"api_key"`
	MinWatchPercent float64 `mapstructure:"min_watch_percent"`
}

// OverseerrConfig holds Overseerr API connection details
type OverseerrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// QbittorrentConfig holds qBittorrent connection details
type QbittorrentConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Category string `mapstructure:"category"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
