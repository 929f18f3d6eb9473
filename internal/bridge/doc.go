// Package bridge implements the data-access facade theme code calls in
// place of the WordPress database object.
//
// A DB classifies each SQL-shaped request, resolves it against the
// content store through the executor, adapts the native records into
// WordPress-shaped objects and returns them in the requested output
// shape. It is read-only: Query, Insert, Update and Delete always report
// false.
//
// Every public call appends exactly one entry to the instance's query
// log. Create one DB per logical request; the log is never shared.
//
// No error crosses the public surface. Failures surface as false, nil or
// an empty slice depending on the method, and are logged with slog.
package bridge
