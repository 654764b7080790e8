// Package credstore persists the single session token of the ozo CLI.
//
// Exactly one value lives under the fixed key "token". Set replaces it,
// Token reads it and Clear removes it. Every write is visible to the very
// next read; nothing is buffered.
//
// Three backends are available through New:
//
//	sqlite  a local database file that survives restarts (default)
//	memory  process lifetime only
//	redis   shared between machines, keys under a configurable prefix
//
// Read-only consumers depend on Reader. Only the session controller and
// the request gateway's unauthorized handler receive the full Store.
package credstore
