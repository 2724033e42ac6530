package filter

import (
	"strings"
)

// Config holds every option the user can set for a browse session.
// The first group is sent to the catalog, the rest is applied locally.
// Zero on either side of a range means unbounded.
type Config struct {
	// Server side
	Genre         string `mapstructure:"genre"`
	Query         string `mapstructure:"query"`
	SortBy        string `mapstructure:"sort_by"`
	OrderBy       string `mapstructure:"order_by"`
	MinimumRating int    `mapstructure:"minimum_rating"`

	// Membership toggles
	HideOwned     bool `mapstructure:"hide_owned"`
	ShowHidden    bool `mapstructure:"show_hidden"`
	HideWatched   bool `mapstructure:"hide_watched"`
	HideWatchlist bool `mapstructure:"hide_watchlist"`
	WatchlistOnly bool `mapstructure:"watchlist_only"`

	// Client side
	MinYear    int      `mapstructure:"min_year"`
	MaxYear    int      `mapstructure:"max_year"`
	MinRuntime int      `mapstructure:"min_runtime"`
	MaxRuntime int      `mapstructure:"max_runtime"`
	Qualities  []string `mapstructure:"qualities"`
	MinSeeds   int      `mapstructure:"min_seeds"`
	Language   string   `mapstructure:"language"`

	// Expression is an optional boolean expression evaluated after the
	// built-in stages.
	Expression string `mapstructure:"expression"`
}

// LanguageFilter returns the language to filter on, or "" when disabled
func (c Config) LanguageFilter() string {
	lang := strings.TrimSpace(c.Language)
	if strings.EqualFold(lang, "all") {
		return ""
	}
	return lang
}

// CodeSet is a set of external identifiers
type CodeSet map[string]struct{}

// NewCodeSet builds a set from a list, ignoring empty codes
func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}

// Has reports membership. A nil set contains nothing.
func (s CodeSet) Has(code string) bool {
	if s == nil || code == "" {
		return false
	}
	_, ok := s[code]
	return ok
}

// Clone returns a copy of the set
func (s CodeSet) Clone() CodeSet {
	out := make(CodeSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// LibraryMatcher answers whether a title/year pair is in the local library
type LibraryMatcher interface {
	Contains(title string, year int) bool
}

// State is a read-only view of the user's marks at one point in time
type State struct {
	Owned     CodeSet
	Hidden    CodeSet
	Watched   CodeSet
	Watchlist CodeSet
	Library   LibraryMatcher
}

// Reason names the stage that rejected a movie
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonHidden     Reason = "hidden"
	ReasonWatched    Reason = "watched"
	ReasonWatchlist  Reason = "watchlist"
	ReasonOwned      Reason = "owned"
	ReasonYear       Reason = "year"
	ReasonRuntime    Reason = "runtime"
	ReasonLanguage   Reason = "language"
	ReasonQuality    Reason = "quality"
	ReasonSeeds      Reason = "seeds"
	ReasonExpression Reason = "expression"
)

// Verdict is the outcome of evaluating one movie
type Verdict struct {
	Pass   bool
	Reason Reason
}

// Stats tallies rejections per reason for one Apply call
type Stats struct {
	Total    int
	Passed   int
	Rejected map[Reason]int
}
