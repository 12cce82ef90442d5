package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := Document{
		"_id":  "abc-123",
		"name": "ada",
		"nested": map[string]any{
			"city": "london",
		},
	}

	data, err := doc.JSON()
	require.NoError(t, err)

	parsed, err := ParseJSON(data)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", parsed["_id"])
	assert.Equal(t, "ada", parsed["name"])
	nested, ok := parsed["nested"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "london", nested["city"])
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON([]byte("{not json"))
	require.Error(t, err)
}

func TestJSONThenFromDocument(t *testing.T) {
	m := newTestMapper(t)

	type note struct {
		Text  string `doc:"text"`
		Count int    `doc:"count"`
	}

	doc, err := m.ToDocument(note{Text: "hi", Count: 3})
	require.NoError(t, err)

	data, err := doc.JSON()
	require.NoError(t, err)
	parsed, err := ParseJSON(data)
	require.NoError(t, err)

	var restored note
	require.NoError(t, m.FromDocument(parsed, &restored))
	assert.Equal(t, "hi", restored.Text)
	assert.Equal(t, 3, restored.Count, "numbers widened by JSON narrow back")
}
