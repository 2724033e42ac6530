package browse

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/yts"
)

// Controller defaults
const (
	DefaultPageSize      = 20
	DefaultMaxEmptyPages = 20
	DefaultTarget        = 40
)

// ErrStopped is returned when an intent is sent after Run has returned
var ErrStopped = errors.New("browse controller stopped")

// Catalog is the page source used by the controller
type Catalog interface {
	ListMovies(ctx context.Context, params yts.ListParams) (*yts.MovieList, error)
}

// StateSource hands out the membership snapshot used for one reconciliation
type StateSource interface {
	Snapshot() filter.State
}

// StateFunc adapts a function to StateSource
type StateFunc func() filter.State

// Snapshot implements StateSource
func (f StateFunc) Snapshot() filter.State {
	return f()
}

// Request starts a new browse operation
type Request struct {
	Config filter.Config
	// Target is the number of visible results wanted before the controller
	// stops fetching on its own. Zero uses the controller default.
	Target int
}

type intentKind int

const (
	intentStart intentKind = iota
	intentLoadMore
)

type intent struct {
	kind    intentKind
	request Request
	extra   int
}

type pageResult struct {
	generation uint64
	page       int
	list       *yts.MovieList
	err        error
}

// Controller drives the page-by-page fetch loop. All state is owned by the
// goroutine running Run; Start and LoadMore only enqueue intents.
type Controller struct {
	catalog       Catalog
	state         StateSource
	compiler      *filter.Compiler
	pageSize      int
	maxEmptyPages int
	defaultTarget int
	logger        zerolog.Logger

	intents chan intent
	results chan pageResult
	events  chan Event
	done    chan struct{}

	// owned by Run
	generation uint64
	status     Status
	cfg        filter.Config
	pipeline   *filter.Pipeline
	page       int
	seen       map[string]struct{}
	visible    int
	emptyPages int
	target     int
	total      int
	cancel     context.CancelFunc
}

// New creates a controller. Call Run in its own goroutine before reading Events.
func New(catalog Catalog, state StateSource, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		catalog:       catalog,
		state:         state,
		compiler:      filter.DefaultCompiler,
		pageSize:      DefaultPageSize,
		maxEmptyPages: DefaultMaxEmptyPages,
		defaultTarget: DefaultTarget,
		logger:        logger,
		intents:       make(chan intent, 16),
		results:       make(chan pageResult),
		events:        make(chan Event, 64),
		done:          make(chan struct{}),
		status:        StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the channel events are published on. It is closed when Run returns.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Start begins a new browse operation, discarding any previous one
func (c *Controller) Start(req Request) error {
	return c.send(intent{kind: intentStart, request: req})
}

// LoadMore asks for more visible results. extra is how many more are wanted;
// zero or less means one page worth. It is ignored while a page is in flight
// or after the operation reached a terminal state.
func (c *Controller) LoadMore(extra int) error {
	return c.send(intent{kind: intentLoadMore, extra: extra})
}

func (c *Controller) send(in intent) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}

	select {
	case c.intents <- in:
		return nil
	case <-c.done:
		return ErrStopped
	}
}

// Run processes intents and page results until ctx is cancelled
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.events)
	defer close(c.done)
	defer c.cancelFetch()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-c.intents:
			switch in.kind {
			case intentStart:
				c.start(ctx, in.request)
			case intentLoadMore:
				c.loadMore(ctx, in.extra)
			}
		case res := <-c.results:
			c.reconcile(ctx, res)
		}
	}
}

func (c *Controller) start(ctx context.Context, req Request) {
	c.cancelFetch()
	c.generation++

	c.status = StatusIdle
	c.cfg = req.Config
	c.pipeline = filter.NewPipeline(req.Config, filter.WithCompiler(c.compiler))
	c.page = 0
	c.seen = make(map[string]struct{})
	c.visible = 0
	c.emptyPages = 0
	c.total = 0
	c.target = req.Target
	if c.target <= 0 {
		c.target = c.defaultTarget
	}

	c.logger.Debug().
		Uint64("generation", c.generation).
		Int("target", c.target).
		Msg("Starting browse")

	c.emit(ctx, Event{Kind: EventStarted})

	if err := c.pipeline.Validate(); err != nil {
		c.fail(ctx, 0, err)
		return
	}

	c.fetchNext(ctx)
}

func (c *Controller) loadMore(ctx context.Context, extra int) {
	switch {
	case c.pipeline == nil:
		c.logger.Debug().Msg("Dropping load more: no browse started")
		return
	case c.status == StatusLoading:
		c.logger.Debug().Int("page", c.page).Msg("Dropping load more: page in flight")
		return
	case c.status.Terminal():
		c.logger.Debug().Stringer("status", c.status).Msg("Dropping load more: browse finished")
		return
	}

	if extra <= 0 {
		extra = c.pageSize
	}
	c.target = c.visible + extra
	c.fetchNext(ctx)
}

func (c *Controller) fetchNext(ctx context.Context) {
	c.page++
	c.status = StatusLoading

	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	gen := c.generation
	page := c.page
	params := yts.ListParams{
		Page:          page,
		Limit:         c.pageSize,
		SortBy:        c.cfg.SortBy,
		OrderBy:       c.cfg.OrderBy,
		MinimumRating: c.cfg.MinimumRating,
		Genre:         c.cfg.Genre,
		Query:         c.cfg.Query,
	}

	go func() {
		list, err := c.catalog.ListMovies(fetchCtx, params)
		select {
		case c.results <- pageResult{generation: gen, page: page, list: list, err: err}:
		case <-c.done:
		}
	}()
}

func (c *Controller) reconcile(ctx context.Context, res pageResult) {
	if res.generation != c.generation {
		c.logger.Debug().
			Uint64("generation", res.generation).
			Uint64("current", c.generation).
			Int("page", res.page).
			Msg("Discarding stale page")
		return
	}
	c.cancelFetch()

	if res.err != nil {
		c.fail(ctx, res.page, res.err)
		return
	}

	var movies []yts.Movie
	if res.list != nil {
		movies = res.list.Movies
		c.total = res.list.MovieCount
	}
	raw := len(movies)

	var st filter.State
	if c.state != nil {
		st = c.state.Snapshot()
	}
	kept, stats := c.pipeline.Apply(movies, st)

	added := make([]yts.Movie, 0, len(kept))
	for _, m := range kept {
		key := m.Key()
		if _, dup := c.seen[key]; dup {
			continue
		}
		c.seen[key] = struct{}{}
		added = append(added, m)
	}
	c.visible += len(added)

	if raw > 0 && len(added) == 0 {
		c.emptyPages++
	} else {
		c.emptyPages = 0
	}

	c.logger.Debug().
		Int("page", res.page).
		Int("raw", raw).
		Int("added", len(added)).
		Int("visible", c.visible).
		Int("empty_pages", c.emptyPages).
		Interface("rejected", stats.Rejected).
		Msg("Reconciled page")

	c.emit(ctx, Event{Kind: EventPage, Page: res.page, Added: added, Raw: raw, Stats: stats})

	switch {
	case raw == 0:
		c.status = StatusExhausted
		c.emit(ctx, Event{Kind: EventExhausted, Page: res.page})
	case c.emptyPages >= c.maxEmptyPages:
		c.status = StatusFilterExhausted
		c.logger.Info().
			Int("pages", c.emptyPages).
			Int("visible", c.visible).
			Msg("Stopping browse: consecutive pages filtered out")
		c.emit(ctx, Event{Kind: EventFilterExhausted, Page: res.page})
	case c.visible < c.target:
		c.fetchNext(ctx)
	default:
		c.status = StatusIdle
		c.emit(ctx, Event{Kind: EventIdle, Page: res.page})
	}
}

func (c *Controller) fail(ctx context.Context, page int, err error) {
	c.status = StatusFailed
	c.logger.Warn().Err(err).Int("page", page).Msg("Browse failed")
	c.emit(ctx, Event{Kind: EventFailed, Page: page, Err: err})
}

func (c *Controller) cancelFetch() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// emit stamps the event with the current counters and publishes it
func (c *Controller) emit(ctx context.Context, ev Event) {
	ev.Generation = c.generation
	ev.Status = c.status
	ev.Visible = c.visible
	ev.EmptyPages = c.emptyPages
	ev.Total = c.total

	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}
