package nlogin

import "errors"

// Service-level sentinel errors. Store-level kinds (not-found,
// store-unavailable, conflict) live in the account package and pass
// through unchanged.
var (
	// ErrIdentityConflict reports a registration carrying both a Mojang
	// and a Bedrock id. An account binds to at most one platform; this is
	// a caller error, raised before any store access.
	ErrIdentityConflict = errors.New("identity_conflict")

	// ErrInvalidUniqueID reports a unique id that is not 32 hex
	// characters after normalization.
	ErrInvalidUniqueID = errors.New("invalid_unique_id")

	// ErrUnverifiableAccount reports a stored hash that matches no known
	// algorithm format. It must never be presented as "wrong password":
	// it means data corruption or an unsupported legacy format.
	ErrUnverifiableAccount = errors.New("unverifiable_account")

	// ErrInvalidInput reports a missing or malformed argument.
	ErrInvalidInput = errors.New("invalid_input")
)

// IsIdentityConflict reports whether err represents ErrIdentityConflict.
func IsIdentityConflict(err error) bool { return errors.Is(err, ErrIdentityConflict) }

// IsInvalidUniqueID reports whether err represents ErrInvalidUniqueID.
func IsInvalidUniqueID(err error) bool { return errors.Is(err, ErrInvalidUniqueID) }

// IsUnverifiableAccount reports whether err represents ErrUnverifiableAccount.
func IsUnverifiableAccount(err error) bool { return errors.Is(err, ErrUnverifiableAccount) }
