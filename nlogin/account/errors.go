package account

import (
	"errors"
	"fmt"
)

// Sentinel error kinds (stable for errors.Is and for mapping by the
// service layer).
var (
	// ErrNotFound reports a legitimate "no such identity" outcome. It is
	// not a failure: registration treats it as "safe to insert".
	ErrNotFound = errors.New("not_found")

	// ErrStoreUnavailable reports a connectivity/transient store problem.
	// Callers must abort the current operation; in particular they must
	// never treat it as "safe to insert".
	ErrStoreUnavailable = errors.New("store_unavailable")

	// ErrInvalidInput reports a malformed argument detected before any
	// store access.
	ErrInvalidInput = errors.New("invalid_input")

	// ErrConflict reports a uniqueness/constraint violation raised by the
	// store itself.
	ErrConflict = errors.New("conflict")
)

// OpError is a typed operation error with a stable Op + Kind contract.
// Kind is one of the sentinel kinds above; Msg may carry human-readable
// context and must not include secrets.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

// ConflictError reports a uniqueness conflict for a specific logical
// field ("unique_id", "mojang_id", ...).
type ConflictError struct {
	Op    string
	Field string
}

func (e ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrConflict)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrConflict, e.Field)
}

func (e ConflictError) Unwrap() error { return ErrConflict }

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsStoreUnavailable reports whether err represents ErrStoreUnavailable.
func IsStoreUnavailable(err error) bool { return errors.Is(err, ErrStoreUnavailable) }

// IsInvalidInput reports whether err represents ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsConflict reports whether err represents ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
