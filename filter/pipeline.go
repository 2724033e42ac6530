package filter

import (
	"strings"

	"github.com/s0up4200/marquee/yts"
)

// Pipeline evaluates movies against a Config and a State.
// It holds no mutable state besides the shared expression cache, so a
// movie evaluated twice under the same inputs gets the same verdict.
type Pipeline struct {
	cfg       Config
	language  string
	qualities []string
	compiler  *Compiler
	program   *Program
	exprErr   error
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithCompiler shares an expression compiler (and its cache) between pipelines
func WithCompiler(c *Compiler) PipelineOption {
	return func(p *Pipeline) {
		if c != nil {
			p.compiler = c
		}
	}
}

// NewPipeline prepares a pipeline for cfg. An expression that does not
// compile is kept as an error; Validate reports it and Evaluate rejects.
func NewPipeline(cfg Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		language: cfg.LanguageFilter(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, q := range cfg.Qualities {
		if q = strings.TrimSpace(q); q != "" {
			p.qualities = append(p.qualities, q)
		}
	}

	if expression := strings.TrimSpace(cfg.Expression); expression != "" {
		if p.compiler == nil {
			p.compiler = DefaultCompiler
		}
		p.program, p.exprErr = p.compiler.Compile(expression)
	}

	return p
}

// Config returns the configuration the pipeline was built from
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Validate reports a configuration that cannot be evaluated
func (p *Pipeline) Validate() error {
	return p.exprErr
}

// Evaluate runs the stages in order and stops at the first rejection
func (p *Pipeline) Evaluate(m *yts.Movie, st State) Verdict {
	code := m.IMDbCode
	cfg := &p.cfg

	if !cfg.ShowHidden && st.Hidden.Has(code) {
		return reject(ReasonHidden)
	}

	if cfg.HideWatched && st.Watched.Has(code) {
		return reject(ReasonWatched)
	}

	inWatchlist := st.Watchlist.Has(code)
	if cfg.WatchlistOnly {
		if !inWatchlist {
			return reject(ReasonWatchlist)
		}
	} else if cfg.HideWatchlist && inWatchlist {
		return reject(ReasonWatchlist)
	}

	if cfg.HideOwned && isOwned(m, st) {
		return reject(ReasonOwned)
	}

	if cfg.MinYear > 0 && m.Year < cfg.MinYear {
		return reject(ReasonYear)
	}
	if cfg.MaxYear > 0 && m.Year > cfg.MaxYear {
		return reject(ReasonYear)
	}

	if m.Runtime > 0 {
		if cfg.MinRuntime > 0 && m.Runtime < cfg.MinRuntime {
			return reject(ReasonRuntime)
		}
		if cfg.MaxRuntime > 0 && m.Runtime > cfg.MaxRuntime {
			return reject(ReasonRuntime)
		}
	}

	if p.language != "" && !strings.EqualFold(p.language, m.Language) {
		return reject(ReasonLanguage)
	}

	if len(p.qualities) > 0 && len(m.Torrents) > 0 && !hasAnyQuality(m, p.qualities) {
		return reject(ReasonQuality)
	}

	if cfg.MinSeeds > 0 && len(m.Torrents) > 0 && m.MaxSeeds() < cfg.MinSeeds {
		return reject(ReasonSeeds)
	}

	if p.exprErr != nil {
		return reject(ReasonExpression)
	}
	if p.program != nil && !p.program.Match(m, st) {
		return reject(ReasonExpression)
	}

	return Verdict{Pass: true}
}

// Apply returns the movies that pass, in input order, and a tally of rejections
func (p *Pipeline) Apply(movies []yts.Movie, st State) ([]yts.Movie, Stats) {
	stats := Stats{Total: len(movies), Rejected: make(map[Reason]int)}
	kept := make([]yts.Movie, 0, len(movies))

	for i := range movies {
		v := p.Evaluate(&movies[i], st)
		if !v.Pass {
			stats.Rejected[v.Reason]++
			continue
		}
		kept = append(kept, movies[i])
	}

	stats.Passed = len(kept)
	return kept, stats
}

func reject(r Reason) Verdict {
	return Verdict{Pass: false, Reason: r}
}

func isOwned(m *yts.Movie, st State) bool {
	if st.Owned.Has(m.IMDbCode) {
		return true
	}
	return st.Library != nil && st.Library.Contains(m.Title, m.Year)
}

func hasAnyQuality(m *yts.Movie, qualities []string) bool {
	for _, q := range qualities {
		if m.HasQuality(q) {
			return true
		}
	}
	return false
}
