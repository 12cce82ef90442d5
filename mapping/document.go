package mapping

import "github.com/bytedance/sonic"

// Document is the store-native representation of a mapped value: a flat or
// nested map holding only store-simple values, byte slices and further
// documents.
type Document map[string]any

// IDField is the reserved document identity field.
const IDField = "_id"

// JSON encodes the document.
func (d Document) JSON() ([]byte, error) {
	return sonic.Marshal(d)
}

// ParseJSON decodes a document from JSON.
func ParseJSON(data []byte) (Document, error) {
	var d Document
	if err := sonic.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d, nil
}
