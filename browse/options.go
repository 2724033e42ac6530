package browse

import "github.com/s0up4200/marquee/filter"

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the number of movies requested per page
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithMaxEmptyPages sets how many consecutive pages without a new visible
// movie end a browse operation.
func WithMaxEmptyPages(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxEmptyPages = n
		}
	}
}

// WithTarget sets the default number of visible results to fetch
func WithTarget(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.defaultTarget = n
		}
	}
}

// WithCompiler shares an expression compiler with the pipelines the controller builds
func WithCompiler(compiler *filter.Compiler) Option {
	return func(c *Controller) {
		if compiler != nil {
			c.compiler = compiler
		}
	}
}
