// Package adapter converts native store records into the object shapes
// theme code expects.
//
// Post, User and Term are pure functions of one record plus the site
// environment. They return nil when the record is nil or lacks its primary
// identifier; they never fail otherwise, falling back to empty strings,
// zeros and "closed" for anything the record does not carry.
//
// Options are resolved differently: GetOption consults a fixed table of
// well-known option names, then a generic key/value lookup, and reports a
// missing option with the boolean false (not nil), because that is what
// callers of get_option test for.
//
// SanitizeTitle is the single slug algorithm used for post slugs, user
// nicenames and term slugs.
package adapter
