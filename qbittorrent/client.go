package qbittorrent

import (
	"context"
	"fmt"
	"path"

	"github.com/autobrr/go-qbittorrent"
	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/library"
)

// TorrentAPI is the subset of the qBittorrent client used here
type TorrentAPI interface {
	GetTorrents(opts qbittorrent.TorrentFilterOptions) ([]qbittorrent.Torrent, error)
}

// Client wraps the qBittorrent API client
type Client struct {
	api      TorrentAPI
	category string
	logger   zerolog.Logger
}

// NewClient creates a new qBittorrent client and logs in
func NewClient(url, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("qbittorrent URL is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client := qbittorrent.NewClient(qbittorrent.Config{
		Host:          url,
		Username:      username,
		Password:      password,
		TLSSkipVerify: o.skipVerify,
		Timeout:       int(o.timeout.Seconds()),
	})

	if err := client.Login(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return &Client{
		api:      client,
		category: o.category,
		logger:   logger,
	}, nil
}

// NewClientWithAPI creates a client around an existing API implementation
func NewClientWithAPI(api TorrentAPI, category string, logger zerolog.Logger) *Client {
	return &Client{
		api:      api,
		category: category,
		logger:   logger,
	}
}

// GetTorrents retrieves torrents, restricted to the configured category when set
func (c *Client) GetTorrents(ctx context.Context) ([]*TorrentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	torrents, err := c.api.GetTorrents(qbittorrent.TorrentFilterOptions{
		Category: c.category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get torrents: %w", err)
	}

	c.logger.Debug().
		Str("category", c.category).
		Msgf("Retrieved %d torrents from qBittorrent", len(torrents))

	results := make([]*TorrentInfo, 0, len(torrents))
	for _, t := range torrents {
		results = append(results, &TorrentInfo{
			Hash:        t.Hash,
			Name:        t.Name,
			SavePath:    t.SavePath,
			ContentPath: t.ContentPath,
			State:       string(t.State),
			Progress:    t.Progress,
			Category:    t.Category,
		})
	}

	return results, nil
}

// LibraryEntries turns torrent names into library entries so movies that are
// downloading or seeding count as present locally.
func (c *Client) LibraryEntries(ctx context.Context) ([]library.Entry, error) {
	torrents, err := c.GetTorrents(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]library.Entry, 0, len(torrents))
	for _, t := range torrents {
		title, year := library.ExtractTitleAndYear(t.Name)
		entry := library.NewEntry(title, year, t.GetFullPath())
		if entry.Normalized == "" {
			c.logger.Debug().Str("torrent", t.Name).Msg("Skipping torrent without usable title")
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetFullPath returns the full path to the torrent content
func (t *TorrentInfo) GetFullPath() string {
	if t.ContentPath != "" {
		return t.ContentPath
	}
	return path.Join(t.SavePath, t.Name)
}
