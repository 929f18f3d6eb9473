// Package classify turns data requests into query descriptors.
//
// Two request forms are understood:
//
//   - SQL-shaped strings as theme code hands them to the database
//     facade (Classify). Only a bounded vocabulary is recognized: the
//     table token, a handful of WHERE predicates, ORDER BY, LIMIT,
//     COUNT(*) and a plain column list. Anything else is ignored, so an
//     unsupported predicate widens the result instead of failing.
//   - WP_Query-style argument sets as the loop receives them (FromArgs).
//
// Classification is pure; it never touches the content store.
package classify
