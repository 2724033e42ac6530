package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/yts"
)

// DefaultCacheSize is the number of compiled expressions kept by DefaultCompiler
const DefaultCacheSize = 100

// DefaultCompiler is shared by pipelines built without WithCompiler
var DefaultCompiler = NewCompiler(WithCache(DefaultCacheSize))

// Program is a compiled boolean expression over a movie
type Program struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables caching of compiled programs
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Program](size)
		}
	}
}

// WithFunctions adds helper functions available to expressions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler turns expression strings into Programs
type Compiler struct {
	helpers map[string]any
	cache   *lruCache[*Program]
}

// NewCompiler creates a compiler with the built-in helpers
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helpers: staticHelpers(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles expression, returning a cached Program when available
func (c *Compiler) Compile(expression string) (*Program, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	env := maps.Clone(c.helpers)
	maps.Copy(env, movieEnv(&yts.Movie{}, State{}))

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	p := &Program{expression: expression, program: program, helpers: c.helpers}
	if c.cache != nil {
		c.cache.Put(expression, p)
	}
	return p, nil
}

// Size returns the number of cached programs
func (c *Compiler) Size() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Size()
}

// Expression returns the source of the program
func (p *Program) Expression() string {
	return p.expression
}

// Match runs the program against a movie. Runtime errors count as no match.
func (p *Program) Match(m *yts.Movie, st State) bool {
	env := maps.Clone(p.helpers)
	maps.Copy(env, movieEnv(m, st))

	out, err := expr.Run(p.program, env)
	if err != nil {
		return false
	}
	result, ok := out.(bool)
	return ok && result
}

func staticHelpers() map[string]any {
	return map[string]any{
		"containsText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// movieEnv exposes the movie fields and movie-bound helpers
func movieEnv(m *yts.Movie, st State) map[string]any {
	genres := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = strings.ToLower(g)
	}

	return map[string]any{
		"Title":     m.Title,
		"Year":      m.Year,
		"Rating":    m.Rating,
		"Runtime":   m.Runtime,
		"Genres":    m.Genres,
		"Language":  m.Language,
		"IMDbCode":  m.IMDbCode,
		"MaxSeeds":  m.MaxSeeds(),
		"Qualities": m.Qualities(),
		"hasGenre": func(genre string) bool {
			return slices.Contains(genres, strings.ToLower(genre))
		},
		"hasQuality": m.HasQuality,
		"watched": func() bool {
			return st.Watched.Has(m.IMDbCode)
		},
		"inWatchlist": func() bool {
			return st.Watchlist.Has(m.IMDbCode)
		},
	}
}
