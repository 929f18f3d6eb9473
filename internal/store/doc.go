// Package store provides a SQLite-backed target content store.
//
// The store holds nodes, accounts, taxonomy terms, URL aliases and
// configuration blobs, and implements the collaborator contract the bridge
// depends on:
//
//   - LoadRecord / LoadRecords: records by identifier
//   - Execute / Count: entity queries compiled by internal/querysql
//   - FieldColumns: field existence for best-effort field conditions
//   - LookupAlias: path alias to internal path
//   - Config: namespace/key configuration reader
//
// The Put* methods exist to seed the store (fixtures, tests, the seed
// command). The bridge itself only reads.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// All id queries order by the primary key as a final tiebreaker, so result
// order is deterministic for equal sort keys.
package store
