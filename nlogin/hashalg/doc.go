// Package hashalg implements password hash format detection and the
// closed set of hashing strategies understood by nLogin account rows.
//
// Stored hashes are self-describing: the token between the first two '$'
// delimiters names the algorithm that produced the hash. Detect maps that
// token to a Kind, and a Registry resolves the Kind to a concrete
// Algorithm. Unknown formats are a checked outcome, never a nil strategy.
package hashalg
