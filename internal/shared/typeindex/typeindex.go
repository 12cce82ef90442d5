// Package typeindex provides a fixed name-to-type lookup for the types the
// daemon can reference from configuration and API queries. Registration is
// static: reflection metadata cannot be constructed from strings at runtime,
// so only compiled-in types are addressable by name.
package typeindex

import (
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
)

var index = map[string]reflect.Type{
	"bool":          reflect.TypeOf(false),
	"int":           reflect.TypeOf(int(0)),
	"int32":         reflect.TypeOf(int32(0)),
	"int64":         reflect.TypeOf(int64(0)),
	"uint64":        reflect.TypeOf(uint64(0)),
	"float32":       reflect.TypeOf(float32(0)),
	"float64":       reflect.TypeOf(float64(0)),
	"string":        reflect.TypeOf(""),
	"bytes":         reflect.TypeOf([]byte(nil)),
	"time.Time":     reflect.TypeOf(time.Time{}),
	"time.Duration": reflect.TypeOf(time.Duration(0)),
	"uuid.UUID":     reflect.TypeOf(uuid.UUID{}),
}

// Lookup returns the type registered under name.
func Lookup(name string) (reflect.Type, bool) {
	t, ok := index[name]
	return t, ok
}

// Names returns all addressable type names, sorted.
func Names() []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
