// Package mapping writes application structs into store documents and reads
// them back, driven entirely by the conversions registry: simple values pass
// through, custom write targets are converted via the engine, everything else
// is decomposed recursively.
package mapping

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/kestrelsoft/docstore/conversions"
	"github.com/kestrelsoft/docstore/engine"
)

// Mapper maps structs to documents and back using a conversions registry and
// an engine populated from it.
type Mapper struct {
	conv *conversions.Conversions
	eng  *engine.Engine
}

// New builds a mapper for the given registry. The registry's converters are
// registered into a fresh engine in precedence order.
func New(conv *conversions.Conversions) (*Mapper, error) {
	eng := engine.New()
	if err := conv.RegisterConvertersIn(eng); err != nil {
		return nil, fmt.Errorf("mapping: %w", err)
	}
	return &Mapper{conv: conv, eng: eng}, nil
}

// Engine exposes the mapper's populated engine.
func (m *Mapper) Engine() *engine.Engine {
	return m.eng
}

// ToDocument maps a struct value (or pointer to one) into its store
// representation. Field names come from the `doc` tag, defaulting to the
// lower-cased field name; `doc:"-"` skips a field. A missing _id is filled
// with a generated UUID.
func (m *Mapper) ToDocument(v any) (Document, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("mapping: cannot map nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("mapping: expected struct, got %s", rv.Kind())
	}

	doc, err := m.structToDocument(rv)
	if err != nil {
		return nil, err
	}
	if _, ok := doc[IDField]; !ok {
		doc[IDField] = uuid.NewString()
	}
	return doc, nil
}

func (m *Mapper) structToDocument(rv reflect.Value) (Document, error) {
	t := rv.Type()
	doc := make(Document, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}
		val, err := m.writeValue(rv.Field(i))
		if err != nil {
			return nil, fmt.Errorf("mapping: field %s: %w", f.Name, err)
		}
		doc[name] = val
	}
	return doc, nil
}

// writeValue converts one value into its store form. Custom write targets
// take precedence over plain simple passthrough so user converters can
// override the representation of intrinsically simple types.
func (m *Mapper) writeValue(v reflect.Value) (any, error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	t := v.Type()

	if target, ok := m.conv.WriteTarget(t); ok && target != t {
		return m.eng.Convert(v.Interface(), target)
	}
	if m.conv.IsSimpleType(t) {
		return v.Interface(), nil
	}

	switch v.Kind() {
	case reflect.Struct:
		return m.structToDocument(v)
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			el, err := m.writeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = el
		}
		return out, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot map %s: document keys must be strings", t)
		}
		out := make(Document, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			el, err := m.writeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = el
		}
		return out, nil
	default:
		return nil, fmt.Errorf("no conversion to a store type for %s", t)
	}
}

// FromDocument reads a document into the struct pointed to by into. Fields
// absent from the document keep their zero values.
func (m *Mapper) FromDocument(doc Document, into any) error {
	rv := reflect.ValueOf(into)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("mapping: into must be a non-nil pointer, got %T", into)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("mapping: expected pointer to struct, got %s", rv.Kind())
	}

	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}
		raw, ok := doc[name]
		if !ok || raw == nil {
			continue
		}
		if err := m.readValue(raw, rv.Field(i)); err != nil {
			return fmt.Errorf("mapping: field %s: %w", f.Name, err)
		}
	}
	return nil
}

func (m *Mapper) readValue(raw any, dst reflect.Value) error {
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		dst = dst.Elem()
	}

	src := reflect.ValueOf(raw)
	st, dt := src.Type(), dst.Type()

	if st.AssignableTo(dt) {
		dst.Set(src)
		return nil
	}
	if m.conv.HasReadTarget(st, dt) {
		out, err := m.eng.Convert(raw, dt)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(out))
		return nil
	}
	// JSON round-trips widen numbers; narrow them back when lossless kinds allow.
	if isNumeric(st.Kind()) && isNumeric(dt.Kind()) && st.ConvertibleTo(dt) {
		dst.Set(src.Convert(dt))
		return nil
	}
	if nested, ok := raw.(Document); ok && dt.Kind() == reflect.Struct {
		return m.FromDocument(nested, dst.Addr().Interface())
	}
	if nested, ok := raw.(map[string]any); ok && dt.Kind() == reflect.Struct {
		return m.FromDocument(Document(nested), dst.Addr().Interface())
	}
	if src.Kind() == reflect.Slice && dt.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dt, src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := m.readValue(src.Index(i).Interface(), out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("cannot read %s into %s", st, dt)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("doc")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}
