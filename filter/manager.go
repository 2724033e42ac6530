package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Presets holds named expressions loaded from configuration
type Presets struct {
	compiler *Compiler
	presets  map[string]*Program
	mu       sync.RWMutex
}

// NewPresets creates an empty registry that compiles with compiler
// (DefaultCompiler when nil).
func NewPresets(compiler *Compiler) *Presets {
	if compiler == nil {
		compiler = DefaultCompiler
	}
	return &Presets{
		compiler: compiler,
		presets:  make(map[string]*Program),
	}
}

// Register compiles and stores a single preset
func (p *Presets) Register(name, expression string) error {
	program, err := p.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.presets[name] = program
	p.mu.Unlock()
	return nil
}

// RegisterAll compiles every preset first and stores them only if all compile
func (p *Presets) RegisterAll(expressions map[string]string) error {
	compiled := make(map[string]*Program, len(expressions))
	for name, expression := range expressions {
		program, err := p.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = program
	}

	p.mu.Lock()
	maps.Copy(p.presets, compiled)
	p.mu.Unlock()
	return nil
}

// Expression returns the source of a registered preset
func (p *Presets) Expression(name string) (string, error) {
	p.mu.RLock()
	program, ok := p.presets[name]
	p.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return program.Expression(), nil
}

// Names returns the registered preset names, sorted
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.presets))
}

// Combine joins a preset and an ad-hoc expression with "and". Either may be empty.
func (p *Presets) Combine(preset, expression string) (string, error) {
	if preset == "" {
		return expression, nil
	}
	base, err := p.Expression(preset)
	if err != nil {
		return "", err
	}
	if expression == "" {
		return base, nil
	}
	return fmt.Sprintf("(%s) and (%s)", base, expression), nil
}
