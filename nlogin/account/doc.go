// Package account owns the player-account table: the data model, the
// persistence boundary (Store), and its PostgreSQL and in-memory
// implementations.
//
// The package deliberately encodes two table invariants in its types:
// an account is bound to at most one external platform (PlatformID is a
// sum, not two nullable fields), and unique ids are 32-char dashless
// lowercase hex. The storage layer maps PlatformID back onto the two
// nullable columns of the legacy schema.
package account
