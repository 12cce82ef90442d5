package mapping

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelsoft/docstore/conversions"
)

type address struct {
	City string
	Zip  string `doc:"postal_code"`
}

type account struct {
	ID        uuid.UUID     `doc:"_id"`
	Name      string        `doc:"name"`
	Age       int           `doc:"age"`
	CreatedAt time.Time     `doc:"created_at"`
	TTL       time.Duration `doc:"ttl"`
	Address   address       `doc:"address"`
	Tags      []string      `doc:"tags"`
	Secret    string        `doc:"-"`
	internal  int
}

func newTestMapper(t *testing.T) *Mapper {
	t.Helper()
	conv, err := conversions.New(conversions.Config{Store: DefaultStore()})
	require.NoError(t, err)
	m, err := New(conv)
	require.NoError(t, err)
	return m
}

func TestToDocument(t *testing.T) {
	m := newTestMapper(t)

	id := uuid.New()
	created := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	acc := account{
		ID:        id,
		Name:      "ada",
		Age:       37,
		CreatedAt: created,
		TTL:       90 * time.Second,
		Address:   address{City: "london", Zip: "EC1"},
		Tags:      []string{"admin", "beta"},
		Secret:    "hidden",
		internal:  1,
	}

	doc, err := m.ToDocument(acc)
	require.NoError(t, err)

	assert.Equal(t, id.String(), doc["_id"], "uuid written through the store converter")
	assert.Equal(t, "ada", doc["name"])
	assert.Equal(t, 37, doc["age"])
	assert.Equal(t, created.Format(time.RFC3339Nano), doc["created_at"])
	assert.Equal(t, "1m30s", doc["ttl"])
	assert.Equal(t, []any{"admin", "beta"}, doc["tags"])

	nested, ok := doc["address"].(Document)
	require.True(t, ok, "nested structs become documents")
	assert.Equal(t, "london", nested["city"])
	assert.Equal(t, "EC1", nested["postal_code"])

	_, hasSecret := doc["Secret"]
	assert.False(t, hasSecret)
	_, hasSecret = doc["secret"]
	assert.False(t, hasSecret)
}

func TestToDocumentGeneratesID(t *testing.T) {
	m := newTestMapper(t)

	type note struct {
		Text string
	}
	doc, err := m.ToDocument(note{Text: "hi"})
	require.NoError(t, err)

	raw, ok := doc[IDField].(string)
	require.True(t, ok, "missing _id is generated")
	_, err = uuid.Parse(raw)
	assert.NoError(t, err)
}

func TestToDocumentPointerAndErrors(t *testing.T) {
	m := newTestMapper(t)

	t.Run("pointer input", func(t *testing.T) {
		doc, err := m.ToDocument(&account{Name: "ptr"})
		require.NoError(t, err)
		assert.Equal(t, "ptr", doc["name"])
	})

	t.Run("nil pointer", func(t *testing.T) {
		_, err := m.ToDocument((*account)(nil))
		require.Error(t, err)
	})

	t.Run("non-struct", func(t *testing.T) {
		_, err := m.ToDocument(42)
		require.Error(t, err)
	})

	t.Run("unconvertible field", func(t *testing.T) {
		type bad struct {
			C chan int
		}
		_, err := m.ToDocument(bad{C: make(chan int)})
		require.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	m := newTestMapper(t)

	original := account{
		ID:        uuid.New(),
		Name:      "grace",
		Age:       41,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 600000000, time.UTC),
		TTL:       5 * time.Minute,
		Address:   address{City: "oslo", Zip: "0150"},
		Tags:      []string{"ops"},
	}

	doc, err := m.ToDocument(original)
	require.NoError(t, err)

	var restored account
	require.NoError(t, m.FromDocument(doc, &restored))

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Age, restored.Age)
	assert.True(t, original.CreatedAt.Equal(restored.CreatedAt))
	assert.Equal(t, original.TTL, restored.TTL)
	assert.Equal(t, original.Address, restored.Address)
	assert.Equal(t, original.Tags, restored.Tags)
	assert.Empty(t, restored.Secret, "skipped fields stay zero")
}

func TestFromDocumentPartial(t *testing.T) {
	m := newTestMapper(t)

	var acc account
	doc := Document{"name": "partial"}
	require.NoError(t, m.FromDocument(doc, &acc))

	assert.Equal(t, "partial", acc.Name)
	assert.Zero(t, acc.Age, "absent fields keep zero values")
	assert.True(t, acc.CreatedAt.IsZero())
}

func TestFromDocumentNumericNarrowing(t *testing.T) {
	m := newTestMapper(t)

	// JSON decoding hands back float64 for every number.
	var acc account
	require.NoError(t, m.FromDocument(Document{"age": float64(28)}, &acc))
	assert.Equal(t, 28, acc.Age)
}

func TestFromDocumentPlainMap(t *testing.T) {
	m := newTestMapper(t)

	// Documents parsed from JSON hold nested values as map[string]any.
	var acc account
	doc := Document{"address": map[string]any{"city": "turin", "postal_code": "10121"}}
	require.NoError(t, m.FromDocument(doc, &acc))
	assert.Equal(t, address{City: "turin", Zip: "10121"}, acc.Address)
}

func TestFromDocumentErrors(t *testing.T) {
	m := newTestMapper(t)

	t.Run("non-pointer destination", func(t *testing.T) {
		var acc account
		require.Error(t, m.FromDocument(Document{}, acc))
	})

	t.Run("nil destination", func(t *testing.T) {
		require.Error(t, m.FromDocument(Document{}, (*account)(nil)))
	})

	t.Run("incompatible value", func(t *testing.T) {
		var acc account
		err := m.FromDocument(Document{"age": "not a number"}, &acc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Age")
	})
}

func TestMapperUsesUserConverters(t *testing.T) {
	conv, err := conversions.New(conversions.Config{
		Store: DefaultStore(),
		Converters: []conversions.Candidate{
			conversions.Writing(func(tm time.Time) (string, error) {
				return tm.UTC().Format(time.RFC1123), nil
			}),
			conversions.Reading(func(s string) (time.Time, error) {
				return time.Parse(time.RFC1123, s)
			}),
		},
	})
	require.NoError(t, err)
	m, err := New(conv)
	require.NoError(t, err)

	created := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	doc, err := m.ToDocument(account{CreatedAt: created})
	require.NoError(t, err)
	assert.Equal(t, created.Format(time.RFC1123), doc["created_at"],
		"user converter replaces the default representation")

	var restored account
	require.NoError(t, m.FromDocument(doc, &restored))
	assert.True(t, created.Equal(restored.CreatedAt))
}

type labeled interface{ Label() string }

type tag struct{ V string }

func (t tag) Label() string { return t.V }

func TestMapperInterfaceSourcedConverter(t *testing.T) {
	labeledType := reflect.TypeOf((*labeled)(nil)).Elem()
	stringType := reflect.TypeOf("")

	conv, err := conversions.New(conversions.Config{
		Store: DefaultStore(),
		Converters: []conversions.Candidate{
			conversions.Converter{
				Source: labeledType,
				Target: stringType,
				Cap:    conversions.Capability{Writing: true},
				Fn: func(v any) (any, error) {
					return v.(labeled).Label(), nil
				},
			},
			conversions.Reading(func(s string) (tag, error) {
				return tag{V: s}, nil
			}),
		},
	})
	require.NoError(t, err)
	m, err := New(conv)
	require.NoError(t, err)

	type item struct {
		Tag tag `doc:"tag"`
	}

	doc, err := m.ToDocument(item{Tag: tag{V: "urgent"}})
	require.NoError(t, err, "interface-sourced converter must apply to implementations")
	assert.Equal(t, "urgent", doc["tag"])

	var restored item
	require.NoError(t, m.FromDocument(doc, &restored))
	assert.Equal(t, tag{V: "urgent"}, restored.Tag)
}

func TestFieldName(t *testing.T) {
	type sample struct {
		Plain   string
		Tagged  string `doc:"custom"`
		Options string `doc:"opt,omitempty"`
		Empty   string `doc:",omitempty"`
	}
	st := reflect.TypeOf(sample{})

	assert.Equal(t, "plain", fieldName(st.Field(0)))
	assert.Equal(t, "custom", fieldName(st.Field(1)))
	assert.Equal(t, "opt", fieldName(st.Field(2)))
	assert.Equal(t, "empty", fieldName(st.Field(3)))
}
