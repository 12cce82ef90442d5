// Package engine applies registered converters to values. It is the
// execution half of the conversion machinery: the conversions registry
// decides which target type applies, the engine performs the conversion.
package engine

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/kestrelsoft/docstore/conversions"
)

// ErrNoConverter reports that no registered converter covers the requested
// conversion.
var ErrNoConverter = errors.New("engine: no converter registered")

// Engine is a registration-ordered conversion engine. When several
// converters claim the same exact pair, the last registered wins, which is
// why the registry hands converters over defaults first and user converters
// last. Registration is expected to complete before concurrent Convert
// calls, matching the registry's initialization boundary; the lock only
// guards late registrations.
type Engine struct {
	mu        sync.RWMutex
	direct    map[conversions.TypePair]conversions.ConvertFunc
	ordered   []conversions.Converter
	factories []conversions.Factory
	multis    []conversions.MultiConverter
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{direct: make(map[conversions.TypePair]conversions.ConvertFunc)}
}

// RegisterConverter registers a single-pair converter. A later registration
// for the same pair replaces an earlier one on the exact-pair path; the
// ordered list keeps every registration for the assignability fallback.
func (e *Engine) RegisterConverter(c conversions.Converter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.direct[conversions.PairOf(c.Source, c.Target)] = c.Fn
	e.ordered = append(e.ordered, c)
}

// RegisterFactory registers a converter factory. Later factories are
// consulted first.
func (e *Engine) RegisterFactory(f conversions.Factory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.factories = append([]conversions.Factory{f}, e.factories...)
}

// RegisterMulti registers a multi-pair converter. Later registrations are
// consulted first.
func (e *Engine) RegisterMulti(m conversions.MultiConverter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.multis = append([]conversions.MultiConverter{m}, e.multis...)
}

// CanConvert reports whether a conversion from source to target is
// available.
func (e *Engine) CanConvert(source, target reflect.Type) bool {
	if source == nil || target == nil {
		return false
	}
	if source == target || source.AssignableTo(target) {
		return true
	}
	_, ok := e.resolve(source, target)
	return ok
}

// Convert converts value to the target type. Values already assignable to
// the target pass through unchanged.
func (e *Engine) Convert(value any, target reflect.Type) (any, error) {
	if target == nil {
		panic("engine: target type must not be nil")
	}
	if value == nil {
		return nil, fmt.Errorf("%w: cannot convert nil to %s", ErrNoConverter, target)
	}

	source := reflect.TypeOf(value)
	if source == target || source.AssignableTo(target) {
		return value, nil
	}

	fn, ok := e.resolve(source, target)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoConverter, source, target)
	}

	out, err := fn(value)
	if err != nil {
		return nil, fmt.Errorf("engine: converting %s -> %s: %w", source, target, err)
	}
	return out, nil
}

// resolve finds the conversion function for an exact pair, then scans direct
// registrations by assignability so interface-sourced converters cover their
// implementations, then falls back to factories and multi-pair converters.
// All fallbacks run newest first.
func (e *Engine) resolve(source, target reflect.Type) (conversions.ConvertFunc, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if fn, ok := e.direct[conversions.TypePair{Source: source, Target: target}]; ok {
		return fn, true
	}

	for i := len(e.ordered) - 1; i >= 0; i-- {
		c := e.ordered[i]
		if source.AssignableTo(c.Source) && c.Target.AssignableTo(target) {
			return c.Fn, true
		}
	}

	for _, f := range e.factories {
		if source == f.Source && target.AssignableTo(f.Target) {
			if fn := f.New(target); fn != nil {
				return fn, true
			}
		}
	}

	for _, m := range e.multis {
		for _, p := range m.Pairs {
			if source.AssignableTo(p.Source) && p.Target.AssignableTo(target) {
				fn := m.Fn
				return func(value any) (any, error) {
					return fn(value, target)
				}, true
			}
		}
	}

	return nil, false
}
