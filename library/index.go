package library

import (
	"github.com/hbollon/go-edlib"
)

// Entry is one movie found in the local library
type Entry struct {
	Title      string
	Normalized string
	Year       int // 0 when unknown
	Path       string
}

// NewEntry builds an entry with its normalized title filled in
func NewEntry(title string, year int, path string) Entry {
	return Entry{
		Title:      title,
		Normalized: Normalize(title),
		Year:       year,
		Path:       path,
	}
}

// Index answers "is this movie already in the library" lookups.
// Entries are grouped by normalized title.
type Index struct {
	years      map[string][]int
	size       int
	similarity float64
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithSimilarity enables a Jaro-Winkler fallback for titles that do not
// normalize to exactly the same string. Values outside (0, 1] disable it.
func WithSimilarity(threshold float64) IndexOption {
	return func(i *Index) {
		if threshold > 0 && threshold <= 1 {
			i.similarity = threshold
		}
	}
}

// NewIndex builds an index over the given entries
func NewIndex(entries []Entry, opts ...IndexOption) *Index {
	idx := &Index{
		years: make(map[string][]int, len(entries)),
	}
	for _, opt := range opts {
		opt(idx)
	}
	for _, e := range entries {
		idx.add(e)
	}
	return idx
}

func (i *Index) add(e Entry) {
	key := e.Normalized
	if key == "" {
		key = Normalize(e.Title)
	}
	if key == "" {
		return
	}
	i.years[key] = append(i.years[key], e.Year)
	i.size++
}

// Len returns the number of indexed entries
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return i.size
}

// Contains reports whether a movie with this title and year is in the library.
// Titles must normalize to the same string; a year of 0 on either side
// matches any year.
func (i *Index) Contains(title string, year int) bool {
	if i == nil || i.size == 0 {
		return false
	}

	key := Normalize(title)
	if key == "" {
		return false
	}

	if yearMatches(i.years[key], year) {
		return true
	}

	if i.similarity == 0 {
		return false
	}

	for candidate, years := range i.years {
		if candidate == key {
			continue
		}
		score := float64(edlib.JaroWinklerSimilarity(key, candidate))
		if score >= i.similarity && yearMatches(years, year) {
			return true
		}
	}

	return false
}

func yearMatches(years []int, year int) bool {
	for _, y := range years {
		if y == 0 || year == 0 || y == year {
			return true
		}
	}
	return false
}
