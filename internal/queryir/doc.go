// Package queryir defines the query descriptor: the structured form of a
// data request after classification and before execution.
//
//	[request string | loop args] → classify → Descriptor → executor → records
//
// A Descriptor names the entity kind, an optional single identifier or
// slug, a list of predicates, an ordering, a range and the output shape the
// caller asked for.
//
// SEALED INTERFACES:
//
// Predicate is sealed using the marker method pattern. Only types in this
// package implement it, which lets the executor switch over predicates
// exhaustively:
//
//	switch p := pred.(type) {
//	case TypeIn:
//	case StatusIs:
//	case AuthorIs:
//	case Search:
//	case FieldEquals:
//	}
//
// DEFAULTS:
//
// Ordering defaults to creation time, newest first. A zero Limit means
// "use the default page size"; an unbounded result must be asked for with
// NoLimit. Zero is never silently promoted to "unlimited".
package queryir
