package mapping

import (
	"github.com/google/uuid"

	"github.com/kestrelsoft/docstore/conversions"
)

// DefaultStore returns the store conversions of the built-in document store:
// the base simple types plus UUID converters, so uuid.UUID fields persist as
// their canonical string form.
func DefaultStore() conversions.StoreConversions {
	return conversions.StoreOf(
		conversions.NewSimpleTypes(),
		conversions.Writing(func(id uuid.UUID) (string, error) {
			return id.String(), nil
		}),
		conversions.Reading(func(s string) (uuid.UUID, error) {
			return uuid.Parse(s)
		}),
	)
}
