package conversions

import (
	"fmt"
	"reflect"
)

// TypePair identifies one direction of convertibility between two types.
// Pairs are value-comparable and used as registration and lookup keys;
// equal pairs are interchangeable regardless of where they were declared.
type TypePair struct {
	Source reflect.Type
	Target reflect.Type
}

// PairOf creates a TypePair. Both types are required.
func PairOf(source, target reflect.Type) TypePair {
	mustType("source", source)
	mustType("target", target)
	return TypePair{Source: source, Target: target}
}

func (p TypePair) String() string {
	return fmt.Sprintf("%s -> %s", p.Source, p.Target)
}

func mustType(name string, t reflect.Type) {
	if t == nil {
		panic("conversions: " + name + " type must not be nil")
	}
}
