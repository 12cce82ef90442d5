// Package conversions decides, for any pair of source and target types,
// whether a custom conversion applies and what target type it produces.
//
// The registry built by New merges converters from three origins with a
// fixed precedence (user-defined over store-provided over built-in default),
// derives the set of types the store can represent natively, and answers
// read/write target queries for the mapping layer:
//   - Writing: application type to store-native representation
//   - Reading: store-native representation to application type
//
// Resolution is not an exact-key lookup. A registered pair matches every
// source type assignable to its declared source, so interface-typed
// registrations cover all their implementations. Results are memoized per
// source and requested target, including misses, because the mapping layer
// asks the same questions for every persisted field.
//
// Construction is single-threaded; after New returns, all queries are safe
// for concurrent use.
package conversions
