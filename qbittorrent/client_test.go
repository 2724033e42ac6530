package qbittorrent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autobrr/go-qbittorrent"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTorrentAPI struct {
	torrents []qbittorrent.Torrent
	err      error
	opts     qbittorrent.TorrentFilterOptions
}

func (m *mockTorrentAPI) GetTorrents(opts qbittorrent.TorrentFilterOptions) ([]qbittorrent.Torrent, error) {
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.torrents, nil
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "admin", "secret", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
}

func TestOptions(t *testing.T) {
	o := defaultOptions()
	assert.Equal(t, 30*time.Second, o.timeout)

	for _, opt := range []Option{WithTimeout(5 * time.Second), WithTimeout(0), WithCategory("movies"), WithInsecureSkipVerify()} {
		opt(&o)
	}
	assert.Equal(t, 5*time.Second, o.timeout)
	assert.Equal(t, "movies", o.category)
	assert.True(t, o.skipVerify)
}

func TestLibraryEntries(t *testing.T) {
	api := &mockTorrentAPI{torrents: []qbittorrent.Torrent{
		{Hash: "a", Name: "Spirited.Away.2001.1080p.BluRay.x264-GRP", SavePath: "/downloads", Progress: 1},
		{Hash: "b", Name: "Inception (2010)", ContentPath: "/downloads/Inception (2010)", Progress: 0.4},
		{Hash: "c", Name: "...", SavePath: "/downloads"},
	}}
	client := NewClientWithAPI(api, "movies", zerolog.Nop())

	entries, err := client.LibraryEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "movies", api.opts.Category)

	assert.Equal(t, "spirited away", entries[0].Normalized)
	assert.Equal(t, 2001, entries[0].Year)
	assert.Equal(t, "/downloads/Spirited.Away.2001.1080p.BluRay.x264-GRP", entries[0].Path)

	assert.Equal(t, "inception", entries[1].Normalized)
	assert.Equal(t, 2010, entries[1].Year)
	assert.Equal(t, "/downloads/Inception (2010)", entries[1].Path)
}

func TestGetTorrents(t *testing.T) {
	client := NewClientWithAPI(&mockTorrentAPI{torrents: []qbittorrent.Torrent{
		{Hash: "a", Name: "Heat.1995.720p", Progress: 1, Category: "movies"},
	}}, "", zerolog.Nop())

	torrents, err := client.GetTorrents(context.Background())
	require.NoError(t, err)
	require.Len(t, torrents, 1)
	assert.True(t, torrents[0].IsComplete())
	assert.Equal(t, "movies", torrents[0].Category)
}

func TestGetTorrentsErrors(t *testing.T) {
	client := NewClientWithAPI(&mockTorrentAPI{err: errors.New("forbidden")}, "", zerolog.Nop())

	_, err := client.LibraryEntries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get torrents")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.GetTorrents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
