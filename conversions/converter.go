package conversions

import (
	"fmt"
	"reflect"
)

// ConvertFunc transforms a single value. The engine guarantees the value is
// of the converter's declared source type.
type ConvertFunc func(value any) (any, error)

// Capability declares a converter's intent. When neither flag is set the
// registry derives the intent from the store's simple types: writing when the
// target is store-simple, reading when the source is and writing was not
// already claimed.
type Capability struct {
	Reading bool
	Writing bool
}

// Candidate is implemented by every converter shape the registry accepts:
// Converter, Factory, MultiConverter and Set. The interface is sealed so
// dispatch stays a closed set of tags.
type Candidate interface {
	candidate()
}

// Converter converts values of exactly one source type into one target type.
type Converter struct {
	Source reflect.Type
	Target reflect.Type
	Fn     ConvertFunc
	Cap    Capability
}

// Factory produces converters parameterized by a target subtype of Target.
type Factory struct {
	Source reflect.Type
	Target reflect.Type
	New    func(target reflect.Type) ConvertFunc
	Cap    Capability
}

// MultiConverter declares several convertible pairs handled by one function.
type MultiConverter struct {
	Pairs []TypePair
	Fn    func(value any, target reflect.Type) (any, error)
	Cap   Capability
}

// Set groups converters so related ones can be passed around as one unit.
// Sets may nest; they are expanded recursively during registration.
type Set struct {
	Converters []Candidate
}

func (Converter) candidate()      {}
func (Factory) candidate()        {}
func (MultiConverter) candidate() {}
func (Set) candidate()            {}

func (c Converter) validate() error {
	if c.Source == nil || c.Target == nil {
		return fmt.Errorf("%w: converter with undeclared source or target type", ErrInvalidConverter)
	}
	if c.Fn == nil {
		return fmt.Errorf("%w: converter %s -> %s without a conversion function", ErrInvalidConverter, c.Source, c.Target)
	}
	return nil
}

func (f Factory) validate() error {
	if f.Source == nil || f.Target == nil {
		return fmt.Errorf("%w: factory with undeclared source or target type", ErrInvalidConverter)
	}
	if f.New == nil {
		return fmt.Errorf("%w: factory %s -> %s without a constructor", ErrInvalidConverter, f.Source, f.Target)
	}
	return nil
}

func (m MultiConverter) validate() error {
	if m.Fn == nil {
		return fmt.Errorf("%w: multi converter without a conversion function", ErrInvalidConverter)
	}
	for _, p := range m.Pairs {
		if p.Source == nil || p.Target == nil {
			return fmt.Errorf("%w: multi converter with an undeclared pair", ErrInvalidConverter)
		}
	}
	return nil
}

// NewConverter builds a Converter from a typed function without a declared
// capability; the registry derives reading/writing from the store's simple
// types.
func NewConverter[S, T any](fn func(S) (T, error)) Converter {
	return typed(fn, Capability{})
}

// Reading builds a Converter marked as reading: store representation in,
// application type out.
func Reading[S, T any](fn func(S) (T, error)) Converter {
	return typed(fn, Capability{Reading: true})
}

// Writing builds a Converter marked as writing: application type in,
// store representation out.
func Writing[S, T any](fn func(S) (T, error)) Converter {
	return typed(fn, Capability{Writing: true})
}

func typed[S, T any](fn func(S) (T, error), capability Capability) Converter {
	source := reflect.TypeOf((*S)(nil)).Elem()
	target := reflect.TypeOf((*T)(nil)).Elem()
	return Converter{
		Source: source,
		Target: target,
		Cap:    capability,
		Fn: func(value any) (any, error) {
			s, ok := value.(S)
			if !ok {
				return nil, fmt.Errorf("conversions: expected %s, got %T", source, value)
			}
			return fn(s)
		},
	}
}
