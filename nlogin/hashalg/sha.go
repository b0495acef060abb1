package hashalg

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// saltHexLen is the salt width (hex characters) for SHA-family hashes.
const saltHexLen = 16

// shaDigest computes the hex digest for one SHA-family strategy.
type shaDigest func(password, salt string) string

// sha is the shared implementation behind the SHA-256, SHA-512 and
// legacy AuthMe strategies. Encoded form: $<TOKEN>$<salt>$<digest>.
type sha struct {
	kind   Kind
	token  string
	digest shaDigest
}

// NewSHA256 returns the salted SHA-256 strategy ("$SHA256$salt$digest",
// digest = sha256(password + salt)).
func NewSHA256() Algorithm {
	return &sha{
		kind:  KindSHA256,
		token: "SHA256",
		digest: func(password, salt string) string {
			return hexSum256(password + salt)
		},
	}
}

// NewSHA512 returns the salted SHA-512 strategy ("$SHA512$salt$digest",
// digest = sha512(password + salt)).
func NewSHA512() Algorithm {
	return &sha{
		kind:  KindSHA512,
		token: "SHA512",
		digest: func(password, salt string) string {
			sum := sha512.Sum512([]byte(password + salt))
			return hex.EncodeToString(sum[:])
		},
	}
}

// NewAuthMe returns the legacy AuthMe strategy ("$SHA$salt$digest",
// digest = sha256(hex(sha256(password)) + salt)), kept for rows imported
// from AuthMe databases.
func NewAuthMe() Algorithm {
	return &sha{
		kind:  KindAuthMe,
		token: "SHA",
		digest: func(password, salt string) string {
			return hexSum256(hexSum256(password) + salt)
		},
	}
}

func (s *sha) Kind() Kind { return s.kind }

// Hash encodes password with a fresh random salt.
func (s *sha) Hash(password string) (string, error) {
	salt, err := newSaltHex()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("$%s$%s$%s", s.token, salt, s.digest(password, salt)), nil
}

// Verify recomputes the digest with the stored salt and compares in
// constant time.
func (s *sha) Verify(password, hash string) (bool, error) {
	salt, digest, err := s.decode(hash)
	if err != nil {
		return false, err
	}
	want := s.digest(password, salt)
	return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1, nil
}

// decode splits $TOKEN$salt$digest, validating the token matches this
// strategy.
func (s *sha) decode(hash string) (salt, digest string, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 4 || parts[0] != "" {
		return "", "", ErrMalformedHash
	}
	if !strings.EqualFold(parts[1], s.token) {
		return "", "", fmt.Errorf("%w: token %q", ErrMalformedHash, parts[1])
	}
	if parts[2] == "" || parts[3] == "" {
		return "", "", ErrMalformedHash
	}
	return parts[2], parts[3], nil
}

func hexSum256(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newSaltHex() (string, error) {
	b := make([]byte, saltHexLen/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("hashalg: salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}
