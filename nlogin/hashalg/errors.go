package hashalg

import "errors"

// Sentinel error kinds (stable for errors.Is and for mapping by callers).
var (
	// ErrUnknownFormat reports a stored hash whose algorithm token matches
	// no registered strategy. Callers must surface this loudly: it means
	// data corruption or an unsupported legacy format, never a wrong
	// password.
	ErrUnknownFormat = errors.New("unknown_hash_format")

	// ErrMalformedHash reports a hash string that names a known algorithm
	// but cannot be decoded into its salt/digest parts.
	ErrMalformedHash = errors.New("malformed_hash")

	// ErrInvalidOption reports an out-of-range construction parameter.
	ErrInvalidOption = errors.New("invalid_option")
)

// IsUnknownFormat reports whether err represents ErrUnknownFormat.
func IsUnknownFormat(err error) bool { return errors.Is(err, ErrUnknownFormat) }

// IsMalformedHash reports whether err represents ErrMalformedHash.
func IsMalformedHash(err error) bool { return errors.Is(err, ErrMalformedHash) }
