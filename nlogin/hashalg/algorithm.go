package hashalg

import "strings"

// Kind identifies one of the closed set of hashing strategies.
type Kind string

const (
	// KindBcrypt covers modular-crypt bcrypt hashes ("$2$", "$2a$").
	KindBcrypt Kind = "bcrypt"
	// KindSHA256 covers salted SHA-256 hashes ("$SHA256$salt$digest").
	KindSHA256 Kind = "sha256"
	// KindSHA512 covers salted SHA-512 hashes ("$SHA512$salt$digest").
	KindSHA512 Kind = "sha512"
	// KindAuthMe covers the legacy AuthMe double-SHA format ("$SHA$salt$digest").
	KindAuthMe Kind = "authme"
)

// Algorithm is the capability contract every strategy satisfies.
//
// Implementations never expose their digest math beyond these two
// operations, and Verify must not leak timing proportional to the
// mismatch position.
//
// All implementations are safe for concurrent use.
type Algorithm interface {
	// Hash produces a new, freshly salted, self-describing hash string
	// for the given plaintext. Two calls with the same plaintext yield
	// different outputs.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash.
	// Returns (false, ErrMalformedHash) when hash cannot be decoded.
	Verify(password, hash string) (bool, error)

	// Kind returns the strategy's identity.
	Kind() Kind
}

// Detect parses the algorithm token of a stored hash string and maps it
// to a Kind. The token is the segment between the first two '$'
// delimiters, compared case-insensitively.
//
// The second return value is false when the format is unrecognised,
// including strings with no delimiter at all.
func Detect(hash string) (Kind, bool) {
	if !strings.HasPrefix(hash, "$") {
		return "", false
	}
	rest := hash[1:]
	i := strings.IndexByte(rest, '$')
	if i < 0 {
		return "", false
	}

	switch strings.ToUpper(rest[:i]) {
	case "2", "2A":
		return KindBcrypt, true
	case "SHA256":
		return KindSHA256, true
	case "SHA512":
		return KindSHA512, true
	case "SHA":
		return KindAuthMe, true
	default:
		return "", false
	}
}
