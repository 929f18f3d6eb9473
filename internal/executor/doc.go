// Package executor resolves query descriptors against the content store.
//
// The Executor turns a queryir.Descriptor into native records in one of
// three ways:
//
//   - Single ID: a direct record load, filtered to published content.
//   - Slug: a path-alias lookup, falling back to the first record whose
//     title equals the de-hyphenated slug. Titles are not unique, so the
//     fallback is deliberately weak.
//   - Multi: an entity query with bundle, status, author, title search,
//     custom field, ordering and range conditions, followed by a bulk load
//     of the matched identifiers.
//
// Store failures never propagate as panics or bare errors to callers of
// Execute; they are reported on Result.Err next to an empty record list.
package executor
