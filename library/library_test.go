package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Inception", "inception"},
		{"Léon: The Professional", "leon the professional"},
		{"Amélie", "amelie"},
		{"Spider-Man: No Way Home", "spiderman no way home"},
		{"  Extra   Spaces  ", "extra spaces"},
		{"Ocean's Eleven!", "oceans eleven"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestExtractTitleAndYear(t *testing.T) {
	tests := []struct {
		filename  string
		wantTitle string
		wantYear  int
	}{
		{"Inception (2010).mkv", "Inception", 2010},
		{"Interstellar [2014].mp4", "Interstellar", 2014},
		{"The.Dark.Knight.2008.1080p.BluRay.x264.mkv", "The Dark Knight", 2008},
		{"Avatar 2009.avi", "Avatar", 2009},
		{"Some Random Movie.mkv", "Some Random Movie", 0},
		{"Some_Random.Movie.mkv", "Some Random Movie", 0},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			title, year := ExtractTitleAndYear(tt.filename)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

func TestIndexContains(t *testing.T) {
	idx := NewIndex([]Entry{
		NewEntry("Inception", 2010, "/movies/Inception (2010).mkv"),
		NewEntry("Some Random Movie", 0, "/movies/Some Random Movie.mkv"),
	})
	require.Equal(t, 2, idx.Len())

	tests := []struct {
		name  string
		title string
		year  int
		want  bool
	}{
		{"same title and year", "Inception", 2010, true},
		{"unknown query year", "Inception", 0, true},
		{"different year", "Inception", 2011, false},
		{"different title", "Interstellar", 2014, false},
		{"case and punctuation folded", "INCEPTION!", 2010, true},
		{"unknown library year", "Some Random Movie", 1999, true},
		{"empty title", "", 2010, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Contains(tt.title, tt.year))
		})
	}
}

func TestIndexSimilarity(t *testing.T) {
	entries := []Entry{NewEntry("Inceptoin", 2010, "/movies/typo.mkv")}

	exact := NewIndex(entries)
	assert.False(t, exact.Contains("Inception", 2010))

	fuzzy := NewIndex(entries, WithSimilarity(0.9))
	assert.True(t, fuzzy.Contains("Inception", 2010))
	assert.False(t, fuzzy.Contains("Inception", 2011))
	assert.False(t, fuzzy.Contains("Interstellar", 2010))

	disabled := NewIndex(entries, WithSimilarity(1.5))
	assert.False(t, disabled.Contains("Inception", 2010))
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	assert.False(t, idx.Contains("Inception", 2010))
	assert.Equal(t, 0, idx.Len())
}

func TestScanner(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"Inception (2010).mkv",
		"nested/The.Dark.Knight.2008.1080p.BluRay.x264.MKV",
		"nested/deeper/Avatar 2009.avi",
		"notes.txt",
		"poster.jpg",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "Interstellar [2014].mp4"), nil, 0o644))

	scanner := NewScanner(nil, zerolog.Nop())

	t.Run("single folder", func(t *testing.T) {
		entries, err := scanner.ScanFolder(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		idx := NewIndex(entries)
		assert.True(t, idx.Contains("The Dark Knight", 2008))
		assert.True(t, idx.Contains("Avatar", 2009))
		assert.True(t, idx.Contains("Inception", 2010))
	})

	t.Run("missing folder is skipped", func(t *testing.T) {
		entries, err := scanner.ScanFolders(context.Background(), []string{
			filepath.Join(root, "does-not-exist"),
			root,
			other,
		})
		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, "Interstellar", entries[3].Title)
		assert.Equal(t, 2014, entries[3].Year)
	})

	t.Run("custom extensions", func(t *testing.T) {
		txt := NewScanner([]string{"TXT", ""}, zerolog.Nop())
		entries, err := txt.ScanFolder(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "notes", entries[0].Title)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := scanner.ScanFolder(ctx, root)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
