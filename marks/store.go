package marks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/filter"
)

// Kind is the membership set a source feeds
type Kind string

const (
	KindOwned     Kind = "owned"
	KindHidden    Kind = "hidden"
	KindWatched   Kind = "watched"
	KindWatchlist Kind = "watchlist"
)

// MaxConcurrentSources bounds how many sources are fetched at once
const MaxConcurrentSources = 4

// FetchFunc returns the external identifiers a source currently knows about
type FetchFunc func(ctx context.Context) ([]string, error)

// Source is a named provider of codes for one Kind
type Source struct {
	Name  string
	Kind  Kind
	Fetch FetchFunc
}

// Static wraps a fixed list of codes as a source
func Static(name string, kind Kind, codes []string) Source {
	return Source{
		Name: name,
		Kind: kind,
		Fetch: func(context.Context) ([]string, error) {
			return codes, nil
		},
	}
}

// Store aggregates sources into immutable filter.State snapshots.
// Readers never block writers: each change publishes a new snapshot.
type Store struct {
	sources []Source
	logger  zerolog.Logger

	mu       sync.Mutex // serializes writers
	snapshot atomic.Pointer[filter.State]
}

// NewStore creates a store with an empty snapshot
func NewStore(logger zerolog.Logger, sources ...Source) *Store {
	s := &Store{
		sources: sources,
		logger:  logger,
	}
	s.snapshot.Store(&filter.State{
		Owned:     filter.CodeSet{},
		Hidden:    filter.CodeSet{},
		Watched:   filter.CodeSet{},
		Watchlist: filter.CodeSet{},
	})
	return s
}

// AddSource registers another source. It is used from the next Refresh.
func (s *Store) AddSource(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, src)
}

// Snapshot returns the current state. The returned sets must not be modified.
func (s *Store) Snapshot() filter.State {
	return *s.snapshot.Load()
}

// RefreshResult summarizes one Refresh
type RefreshResult struct {
	Counts map[Kind]int
	Failed []string
}

// Refresh fetches every source concurrently and publishes a new snapshot.
// A failing source is logged and skipped; its kind keeps the codes of the
// sources that did answer.
func (s *Store) Refresh(ctx context.Context) (RefreshResult, error) {
	s.mu.Lock()
	sources := make([]Source, len(s.sources))
	copy(sources, s.sources)
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentSources)

	codes := make([][]string, len(sources))
	errs := make([]error, len(sources))
	for i, src := range sources {
		g.Go(func() error {
			got, err := src.Fetch(gctx)
			if err != nil {
				errs[i] = err
				return nil
			}
			codes[i] = got
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return RefreshResult{}, fmt.Errorf("refresh cancelled: %w", err)
	}

	sets := map[Kind]filter.CodeSet{
		KindOwned:     {},
		KindHidden:    {},
		KindWatched:   {},
		KindWatchlist: {},
	}
	result := RefreshResult{Counts: make(map[Kind]int)}

	for i, src := range sources {
		if errs[i] != nil {
			s.logger.Warn().
				Err(errs[i]).
				Str("source", src.Name).
				Str("kind", string(src.Kind)).
				Msg("Failed to refresh marks source")
			result.Failed = append(result.Failed, src.Name)
			continue
		}
		set, ok := sets[src.Kind]
		if !ok {
			s.logger.Warn().Str("source", src.Name).Str("kind", string(src.Kind)).Msg("Unknown marks kind, skipping")
			continue
		}
		for _, code := range codes[i] {
			if code != "" {
				set[code] = struct{}{}
			}
		}
		s.logger.Debug().
			Str("source", src.Name).
			Str("kind", string(src.Kind)).
			Int("count", len(codes[i])).
			Msg("Refreshed marks source")
	}

	for kind, set := range sets {
		result.Counts[kind] = len(set)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.snapshot.Load()
	s.snapshot.Store(&filter.State{
		Owned:     sets[KindOwned],
		Hidden:    sets[KindHidden],
		Watched:   sets[KindWatched],
		Watchlist: sets[KindWatchlist],
		Library:   current.Library,
	})

	return result, nil
}

// SetLibrary publishes a new snapshot using matcher for library lookups
func (s *Store) SetLibrary(matcher filter.LibraryMatcher) {
	s.update(func(st *filter.State) {
		st.Library = matcher
	})
}

// Mark adds code to the set of kind. The change is visible from the next Snapshot.
func (s *Store) Mark(kind Kind, code string) error {
	return s.change(kind, code, true)
}

// Unmark removes code from the set of kind
func (s *Store) Unmark(kind Kind, code string) error {
	return s.change(kind, code, false)
}

func (s *Store) change(kind Kind, code string, add bool) error {
	if code == "" {
		return fmt.Errorf("empty code")
	}

	var err error
	s.update(func(st *filter.State) {
		var set *filter.CodeSet
		switch kind {
		case KindOwned:
			set = &st.Owned
		case KindHidden:
			set = &st.Hidden
		case KindWatched:
			set = &st.Watched
		case KindWatchlist:
			set = &st.Watchlist
		default:
			err = fmt.Errorf("unknown marks kind %q", kind)
			return
		}

		next := set.Clone()
		if add {
			next[code] = struct{}{}
		} else {
			delete(next, code)
		}
		*set = next
	})
	return err
}

// update copies the current snapshot, applies fn and publishes the copy
func (s *Store) update(fn func(st *filter.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.snapshot.Load()
	fn(&next)
	s.snapshot.Store(&next)
}
