// Package entityquery is the target store's entity-query builder.
//
// A Query collects conditions against one entity kind and is handed to a
// backend that returns the matching identifiers grouped by kind:
//
//	q := entityquery.New(record.KindNode).
//		Bundle("article", "page").
//		Property("status", 1, entityquery.OpEq).
//		OrderBy("created", true).
//		Range(0, 10)
//	matches, err := backend.Execute(ctx, q)
//	ids := matches.IDs(record.KindNode)
//
// Property conditions address base properties of the entity (nid, title,
// status, ...). Field conditions address free-form field storage and are
// only added once the caller has confirmed the field exists.
package entityquery
