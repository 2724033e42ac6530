package yts

import "strings"

// GenreAll disables the genre filter
const GenreAll = "All"

// Genres is the genre vocabulary accepted by the list endpoint
var Genres = []string{
	GenreAll, "Action", "Adventure", "Animation", "Biography", "Comedy",
	"Crime", "Documentary", "Drama", "Family", "Fantasy", "Film-Noir",
	"History", "Horror", "Music", "Musical", "Mystery", "Romance",
	"Sci-Fi", "Sport", "Thriller", "War", "Western",
}

// SortOption maps a display label to the sort_by value sent to the catalog
type SortOption struct {
	Label string
	Value string
}

// SortOptions in display order
var SortOptions = []SortOption{
	{Label: "Trending", Value: "download_count"},
	{Label: "Latest", Value: "date_added"},
	{Label: "Rating", Value: "rating"},
	{Label: "Seeds", Value: "seeds"},
	{Label: "Year", Value: "year"},
	{Label: "Title", Value: "title"},
}

// Qualities commonly published by the catalog. The set is open.
var Qualities = []string{"720p", "1080p", "2160p", "3D"}

// ResolveSort accepts either a label ("Trending") or a raw value
// ("download_count") and returns the raw value.
func ResolveSort(s string) (string, bool) {
	for _, opt := range SortOptions {
		if strings.EqualFold(opt.Label, s) || strings.EqualFold(opt.Value, s) {
			return opt.Value, true
		}
	}
	return "", false
}

// ValidGenre reports whether the genre is part of the vocabulary
func ValidGenre(g string) bool {
	for _, known := range Genres {
		if strings.EqualFold(known, g) {
			return true
		}
	}
	return false
}
