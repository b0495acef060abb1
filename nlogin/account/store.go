package account

import "context"

// InsertInput describes a new account row. Platform may be the
// unclaimed variant; exactly the bound column (if any) is written, the
// other stays NULL.
type InsertInput struct {
	LastName     string
	PasswordHash string
	LastIP       string
	UniqueID     string
	Platform     PlatformID
	Email        *string
}

// UpdateInput describes an in-place account update. Platform selects
// which identity column (if any) is re-asserted; the unclaimed variant
// leaves both platform columns untouched.
type UpdateInput struct {
	PasswordHash string
	LastIP       string
	Email        *string
	Platform     PlatformID
}

// Store is the account persistence boundary.
//
// Lookup outcomes are a strict tri-state: a found id, ErrNotFound, or
// ErrStoreUnavailable. Distinguishing the last two is mandatory —
// callers treat ErrNotFound as "safe to register" and
// ErrStoreUnavailable as "must not register".
type Store interface {
	// FindAccountID resolves a trimmed search value under the given
	// namespace mode to a canonical account id.
	//
	// SearchByName honors the store's name-lookup policy: in strict mode
	// only unclaimed rows (both platform columns NULL) match; otherwise
	// all name matches are considered and claimed rows sort first.
	FindAccountID(ctx context.Context, search string, mode SearchMode) (int64, error)

	// GetAccount fetches a full row by id. Returns ErrNotFound if absent.
	GetAccount(ctx context.Context, accountID int64) (Account, error)

	// PasswordHash returns the stored hash for an account.
	// Returns ErrNotFound if the account does not exist.
	PasswordHash(ctx context.Context, accountID int64) (string, error)

	// SetPasswordHash replaces the stored hash. The hash is assumed
	// validated/encoded by the caller. Returns ErrNotFound if the account
	// does not exist.
	SetPasswordHash(ctx context.Context, accountID int64, hash string) error

	// Exists probes whether any row has the given value in column.
	//
	// Fail-open contract: when the store cannot be reached, Exists
	// reports true. Duplicate-looking answers err toward refusing a
	// registration rather than permitting one the store could not vet.
	Exists(ctx context.Context, column Column, value string) bool

	// Insert creates a new row and returns its assigned id.
	Insert(ctx context.Context, in InsertInput) (int64, error)

	// Update rewrites the columns described by in on an existing row.
	// Returns ErrNotFound if the account does not exist.
	Update(ctx context.Context, accountID int64, in UpdateInput) error
}
