package yts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnet(t *testing.T) {
	movie := Movie{
		Title: "Spirited Away & Friends",
		Torrents: []Torrent{
			{Hash: "HASH720", Quality: "720p", Seeds: 10},
			{Hash: "HASH1080", Quality: "1080p", Seeds: 40},
		},
	}

	tests := []struct {
		name     string
		quality  string
		wantHash string
	}{
		{name: "exact quality", quality: "1080p", wantHash: "HASH1080"},
		{name: "case insensitive", quality: "720P", wantHash: "HASH720"},
		{name: "falls back to first variant", quality: "2160p", wantHash: "HASH720"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			magnet, ok := movie.Magnet(tt.quality)
			require.True(t, ok)
			assert.Equal(t,
				"magnet:?xt=urn:btih:"+tt.wantHash+
					"&dn=Spirited+Away+%26+Friends"+
					"&tr=udp%3A%2F%2Fopen.demonii.com%3A1337%2Fannounce"+
					"&tr=udp%3A%2F%2Ftracker.openbittorrent.com%3A80",
				magnet)
		})
	}

	t.Run("variant without hash falls back", func(t *testing.T) {
		partial := Movie{
			Title: "Heat",
			Torrents: []Torrent{
				{Hash: "", Quality: "1080p"},
				{Hash: "HASH720", Quality: "720p"},
			},
		}
		magnet, ok := partial.Magnet("1080p")
		require.True(t, ok)
		assert.Contains(t, magnet, "urn:btih:HASH720&")

		t720, ok := partial.Variant("2160p")
		require.True(t, ok)
		assert.Equal(t, "720p", t720.Quality)
	})

	t.Run("no variant with a hash", func(t *testing.T) {
		unhashed := Movie{Title: "Heat", Torrents: []Torrent{{Quality: "720p"}}}
		magnet, ok := unhashed.Magnet("720p")
		assert.False(t, ok)
		assert.Empty(t, magnet)
	})

	t.Run("no variants", func(t *testing.T) {
		empty := Movie{Title: "Nothing"}
		magnet, ok := empty.Magnet("1080p")
		assert.False(t, ok)
		assert.Empty(t, magnet)
	})
}

func TestMovieHelpers(t *testing.T) {
	movie := Movie{
		ID:       9,
		Synopsis: "short",
		Torrents: []Torrent{
			{Quality: "720p", Seeds: 3},
			{Quality: "1080p", Seeds: 12},
		},
	}

	assert.Equal(t, "yts:9", movie.Key())
	movie.IMDbCode = "tt0000009"
	assert.Equal(t, "tt0000009", movie.Key())

	assert.Equal(t, 12, movie.MaxSeeds())
	assert.True(t, movie.HasQuality("1080P"))
	assert.False(t, movie.HasQuality("2160p"))
	assert.Equal(t, []string{"720p", "1080p"}, movie.Qualities())
	assert.Equal(t, "short", movie.Description())
}

func TestResolveSort(t *testing.T) {
	v, ok := ResolveSort("Trending")
	assert.True(t, ok)
	assert.Equal(t, "download_count", v)

	v, ok = ResolveSort("date_added")
	assert.True(t, ok)
	assert.Equal(t, "date_added", v)

	_, ok = ResolveSort("popularity")
	assert.False(t, ok)

	assert.True(t, ValidGenre("sci-fi"))
	assert.False(t, ValidGenre("Cooking"))
}
