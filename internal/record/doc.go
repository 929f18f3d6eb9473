// Package record defines the native records of the target content store.
//
// A Record is one of four concrete shapes:
//
//	Node     content item (nid, owner, bundle, status, timestamps, fields)
//	Account  user account (uid, name, mail, roles)
//	Term     taxonomy term (tid, vocabulary, name, parent, fields)
//	Config   configuration blob (name -> key/value data)
//
// Record is a sealed interface: only types in this package implement it, so
// consumers can switch over it exhaustively.
//
// Records are owned by the store. The bridge reads them and never mutates
// them. A zero numeric identifier means the record is missing its primary
// key; adapters treat such records as malformed input.
//
// # Field storage
//
// Free-form fields are keyed by field name, then language, then delta:
//
//	Fields{"body": {"und": {{"value": "...", "summary": "..."}}}}
//
// LanguageNone is the language key used for fields that are not
// translatable.
package record
