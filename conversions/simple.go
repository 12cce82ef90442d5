package conversions

import (
	"reflect"
	"time"
)

// SimpleTypes answers whether a type is directly representable by the store,
// meaning it needs neither decomposition nor a custom conversion. It holds a
// base set fixed at construction plus the custom types contributed by writing
// converter registrations. Instances handed out by a registry are frozen and
// safe for concurrent use.
type SimpleTypes struct {
	kinds map[reflect.Kind]struct{}
	types map[reflect.Type]struct{}
}

var simpleKinds = []reflect.Kind{
	reflect.Bool,
	reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
	reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
	reflect.Float32, reflect.Float64,
	reflect.String,
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// NewSimpleTypes builds a classifier over the store-intrinsic base set:
// primitive kinds, strings, byte slices and the temporal types by convention,
// extended with any additional store types.
func NewSimpleTypes(extra ...reflect.Type) *SimpleTypes {
	s := &SimpleTypes{
		kinds: make(map[reflect.Kind]struct{}, len(simpleKinds)),
		types: make(map[reflect.Type]struct{}, len(extra)+2),
	}
	for _, k := range simpleKinds {
		s.kinds[k] = struct{}{}
	}
	s.types[timeType] = struct{}{}
	s.types[bytesType] = struct{}{}
	for _, t := range extra {
		if t != nil {
			s.types[t] = struct{}{}
		}
	}
	return s
}

// IsSimple reports whether t is directly representable by the store.
// Total over all types; nil is never simple.
func (s *SimpleTypes) IsSimple(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := s.types[t]; ok {
		return true
	}
	if _, ok := s.kinds[t.Kind()]; ok {
		return true
	}
	// []byte aliases with their own named type
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// withCustom derives a frozen classifier extending s with the given custom
// simple types. The receiver is not modified.
func (s *SimpleTypes) withCustom(custom map[reflect.Type]struct{}) *SimpleTypes {
	out := &SimpleTypes{
		kinds: s.kinds,
		types: make(map[reflect.Type]struct{}, len(s.types)+len(custom)),
	}
	for t := range s.types {
		out.types[t] = struct{}{}
	}
	for t := range custom {
		out.types[t] = struct{}{}
	}
	return out
}
