package yts

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Torrent is one downloadable variant of a movie
type Torrent struct {
	URL       string `json:"url"`
	Hash      string `json:"hash"`
	Quality   string `json:"quality"`
	Type      string `json:"type"`
	Size      string `json:"size"`
	SizeBytes int64  `json:"size_bytes"`
	Seeds     int    `json:"seeds"`
	Peers     int    `json:"peers"`
}

// Movie is a catalog entry as returned by the list, details and suggestions endpoints.
// ID is local to a mirror; IMDbCode is the stable key used everywhere else.
type Movie struct {
	ID               int       `json:"id"`
	IMDbCode         string    `json:"imdb_code"`
	Title            string    `json:"title"`
	TitleLong        string    `json:"title_long"`
	Year             int       `json:"year"`
	Rating           float64   `json:"rating"`
	Runtime          int       `json:"runtime"`
	Genres           []string  `json:"genres"`
	Synopsis         string    `json:"synopsis"`
	DescriptionFull  string    `json:"description_full"`
	Language         string    `json:"language"`
	BackgroundImage  string    `json:"background_image"`
	SmallCoverImage  string    `json:"small_cover_image"`
	MediumCoverImage string    `json:"medium_cover_image"`
	LargeCoverImage  string    `json:"large_cover_image"`
	Torrents         []Torrent `json:"torrents"`
}

// Key returns the identity used for de-duplication across pages
func (m *Movie) Key() string {
	if m.IMDbCode != "" {
		return m.IMDbCode
	}
	return "yts:" + strconv.Itoa(m.ID)
}

// MaxSeeds returns the highest seed count across all variants
func (m *Movie) MaxSeeds() int {
	best := 0
	for _, t := range m.Torrents {
		if t.Seeds > best {
			best = t.Seeds
		}
	}
	return best
}

// HasQuality reports whether any variant carries the given quality label
func (m *Movie) HasQuality(quality string) bool {
	for _, t := range m.Torrents {
		if strings.EqualFold(t.Quality, quality) {
			return true
		}
	}
	return false
}

// Qualities returns the quality labels of all variants in catalog order
func (m *Movie) Qualities() []string {
	out := make([]string, 0, len(m.Torrents))
	for _, t := range m.Torrents {
		out = append(out, t.Quality)
	}
	return out
}

// Description prefers the long description when the mirror sent one
func (m *Movie) Description() string {
	if m.DescriptionFull != "" {
		return m.DescriptionFull
	}
	return m.Synopsis
}

// MovieList is one page of list_movies results
type MovieList struct {
	MovieCount int     `json:"movie_count"`
	Limit      int     `json:"limit"`
	PageNumber int     `json:"page_number"`
	Movies     []Movie `json:"movies"`
}

// Empty reports whether the page carried no movies
func (l *MovieList) Empty() bool {
	return len(l.Movies) == 0
}

// ListParams are the server-side options of a list request
type ListParams struct {
	Page          int
	Limit         int
	SortBy        string
	OrderBy       string
	MinimumRating int
	Genre         string
	Query         string
}

// envelope is the common response wrapper of every endpoint
type envelope struct {
	Status        string          `json:"status"`
	StatusMessage string          `json:"status_message"`
	Data          json.RawMessage `json:"data"`
}

type detailsData struct {
	Movie *Movie `json:"movie"`
}

type suggestionsData struct {
	MovieCount int     `json:"movie_count"`
	Movies     []Movie `json:"movies"`
}
