package hashalg

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost keeps interactive logins in the low hundreds of
// milliseconds on current server hardware.
const DefaultBcryptCost = 12

// Bcrypt hashes passwords with the bcrypt algorithm. The salt lives
// inside the modular-crypt output, so callers never manage it.
type Bcrypt struct {
	cost int
}

// NewBcrypt constructs a Bcrypt strategy.
// Returns ErrInvalidOption if cost is outside bcrypt's legal range.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("hashalg: %w: bcrypt cost %d outside [%d, %d]",
			ErrInvalidOption, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Bcrypt{cost: cost}, nil
}

// Kind returns KindBcrypt.
func (b *Bcrypt) Kind() Kind { return KindBcrypt }

// Hash produces a "$2a$..." modular-crypt string with a fresh salt.
func (b *Bcrypt) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hashalg: bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify delegates comparison to bcrypt's own constant-time check.
// A mismatch is (false, nil); only undecodable hashes produce an error.
func (b *Bcrypt) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
}
