package conversions

import "fmt"

// StoreConversions captures the store-specific inputs to a registry: the
// store's simple type classifier and its default converters.
type StoreConversions struct {
	Simple     *SimpleTypes
	Converters []Candidate
}

// StoreOf creates StoreConversions for the given classifier and converters.
// A nil classifier falls back to the base simple types.
func StoreOf(simple *SimpleTypes, converters ...Candidate) StoreConversions {
	if simple == nil {
		simple = NewSimpleTypes()
	}
	return StoreConversions{Simple: simple, Converters: converters}
}

// registrationsFor expands one candidate into zero or more registrations,
// recursing into Sets. The recursion terminates on the non-composite shapes.
func (s StoreConversions) registrationsFor(c Candidate) ([]registration, error) {
	switch c := c.(type) {
	case Set:
		var regs []registration
		for _, sub := range c.Converters {
			expanded, err := s.registrationsFor(sub)
			if err != nil {
				return nil, err
			}
			regs = append(regs, expanded...)
		}
		return regs, nil

	case Converter:
		if err := c.validate(); err != nil {
			return nil, err
		}
		return []registration{{
			converter: c,
			pair:      PairOf(c.Source, c.Target),
			reading:   c.Cap.Reading,
			writing:   c.Cap.Writing,
			simple:    s.Simple,
		}}, nil

	case Factory:
		if err := c.validate(); err != nil {
			return nil, err
		}
		return []registration{{
			converter: c,
			pair:      PairOf(c.Source, c.Target),
			reading:   c.Cap.Reading,
			writing:   c.Cap.Writing,
			simple:    s.Simple,
		}}, nil

	case MultiConverter:
		if err := c.validate(); err != nil {
			return nil, err
		}
		regs := make([]registration, 0, len(c.Pairs))
		for _, p := range c.Pairs {
			regs = append(regs, registration{
				converter: c,
				pair:      p,
				reading:   c.Cap.Reading,
				writing:   c.Cap.Writing,
				simple:    s.Simple,
			})
		}
		return regs, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedConverter, c)
	}
}
