package hashalg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the single configuration surface for this package.
type Config struct {
	// WriteAlgorithm selects the strategy for all newly produced hashes.
	// Stored hashes in other formats remain verifiable and migrate on the
	// next password change.
	WriteAlgorithm Kind

	// BcryptCost is the bcrypt work factor. Zero means DefaultBcryptCost.
	BcryptCost int
}

// DefaultConfig returns the baseline: bcrypt writes at the default cost.
func DefaultConfig() Config {
	return Config{
		WriteAlgorithm: KindBcrypt,
		BcryptCost:     DefaultBcryptCost,
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - NLOGIN_HASH_ALGORITHM (bcrypt/sha256/sha512/authme)
// - NLOGIN_BCRYPT_COST
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("NLOGIN_HASH_ALGORITHM"); ok {
		kind, err := parseKind(v)
		if err != nil {
			return Config{}, fmt.Errorf("NLOGIN_HASH_ALGORITHM: %w", err)
		}
		cfg.WriteAlgorithm = kind
	}

	if v, ok := os.LookupEnv("NLOGIN_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 4 || n > 31 {
			return Config{}, fmt.Errorf("NLOGIN_BCRYPT_COST: %w: %q", ErrInvalidOption, v)
		}
		cfg.BcryptCost = n
	}

	return cfg, nil
}

func parseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bcrypt", "2", "2a":
		return KindBcrypt, nil
	case "sha256":
		return KindSHA256, nil
	case "sha512":
		return KindSHA512, nil
	case "authme", "sha":
		return KindAuthMe, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
}
