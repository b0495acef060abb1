package account

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local development.
//
// It mirrors PostgresStore semantics, including the name-lookup policy,
// the claimed-first tie-break, and the fail-open Exists contract.
// SetUnavailable flips the store into a simulated outage so callers can
// exercise both polarities.
type MemoryStore struct {
	mu          sync.Mutex
	nextID      int64
	rows        map[int64]*Account
	strictName  bool
	unavailable bool
}

// MemoryOption configures the store.
type MemoryOption func(*MemoryStore)

// WithMemoryStrictNameLookup mirrors WithStrictNameLookup.
func WithMemoryStrictNameLookup(strict bool) MemoryOption {
	return func(s *MemoryStore) { s.strictName = strict }
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{rows: make(map[int64]*Account)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetUnavailable toggles simulated store downtime. While set, lookups
// and writes fail with ErrStoreUnavailable and Exists fails open.
func (s *MemoryStore) SetUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = down
}

// Len returns the current row count.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// FindAccountID implements Store.
func (s *MemoryStore) FindAccountID(ctx context.Context, search string, mode SearchMode) (int64, error) {
	const op = "account.FindAccountID"

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty search value"}
	}
	if !mode.valid() {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "bad mode"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return 0, OpError{Op: op, Kind: ErrStoreUnavailable, Msg: "simulated outage"}
	}

	switch mode {
	case SearchByMojangID:
		for _, id := range s.sortedIDs() {
			a := s.rows[id]
			if a.MojangID != nil && *a.MojangID == search {
				return a.ID, nil
			}
		}
	case SearchByBedrockID:
		for _, id := range s.sortedIDs() {
			a := s.rows[id]
			if a.BedrockID != nil && *a.BedrockID == search {
				return a.ID, nil
			}
		}
	case SearchByName:
		var matches []*Account
		for _, id := range s.sortedIDs() {
			a := s.rows[id]
			if !strings.EqualFold(a.LastName, search) {
				continue
			}
			if s.strictName && (a.MojangID != nil || a.BedrockID != nil) {
				continue
			}
			matches = append(matches, a)
		}
		if len(matches) > 0 {
			if !s.strictName {
				// Claimed rows first, then lowest id.
				sort.SliceStable(matches, func(i, j int) bool {
					ci := matches[i].MojangID != nil
					cj := matches[j].MojangID != nil
					if ci != cj {
						return ci
					}
					return matches[i].ID < matches[j].ID
				})
			}
			return matches[0].ID, nil
		}
	}

	return 0, NotFound(op, "account")
}

// GetAccount implements Store.
func (s *MemoryStore) GetAccount(ctx context.Context, accountID int64) (Account, error) {
	const op = "account.GetAccount"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return Account{}, OpError{Op: op, Kind: ErrStoreUnavailable, Msg: "simulated outage"}
	}
	a, ok := s.rows[accountID]
	if !ok {
		return Account{}, NotFound(op, "account")
	}
	return cloneAccount(*a), nil
}

// PasswordHash implements Store.
func (s *MemoryStore) PasswordHash(ctx context.Context, accountID int64) (string, error) {
	const op = "account.PasswordHash"

	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return "", OpError{Op: op, Kind: ErrStoreUnavailable, Msg: "simulated outage"}
	}
	a, ok := s.rows[accountID]
	if !ok {
		return "", NotFound(op, "account")
	}
	return a.Password, nil
}

// SetPasswordHash implements Store.
func (s *MemoryStore) SetPasswordHash(ctx context.Context, accountID int64, hash string) error {
	const op = "account.SetPasswordHash"

	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(hash) == "" {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty hash"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return OpError{Op: op, Kind: ErrStoreUnavailable, Msg: "simulated outage"}
	}
	a, ok := s.rows[accountID]
	if !ok {
		return NotFound(op, "account")
	}
	a.Password = hash
	return nil
}

// Exists implements Store, including the fail-open outage contract.
func (s *MemoryStore) Exists(ctx context.Context, column Column, value string) bool {
	if !column.valid() {
		return true
	}
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return true
	}

	for _, a := range s.rows {
		if memColumnEquals(a, column, value) {
			return true
		}
	}
	return false
}

// Insert implements Store.
func (s *MemoryStore) Insert(ctx context.Context, in InsertInput) (int64, error) {
	const op = "account.Insert"

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(in.LastName) == "" {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty last_name"}
	}
	if !ValidUniqueID(in.UniqueID) {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "bad unique_id"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return 0, OpError{Op: op, Kind: ErrStoreUnavailable, Msg: "simulated outage"}
	}

	// Same backstop the relational schema provides via a unique index.
	for _, a := range s.rows {
		if a.UniqueID == in.UniqueID {
			return 0, ConflictError{Op: op, Field: "unique_id"}
		}
	}

	mojang, bedrock := platformColumns(in.Platform)

	s.nextID++
	row := &Account{
		ID:        s.nextID,
		LastName:  strings.TrimSpace(in.LastName),
		Password:  in.PasswordHash,
		LastIP:    trimToNil(in.LastIP),
		UniqueID:  in.UniqueID,
		MojangID:  mojang,
		BedrockID: bedrock,
		Email:     trimPtr(in.Email),
	}
	s.rows[row.ID] = row
	return row.ID, nil
}

// Update implements Store.
func (s *MemoryStore) Update(ctx context.Context, accountID int64, in UpdateInput) error {
	const op = "account.Update"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return OpError{Op: op, Kind: ErrStoreUnavailable, Msg: "simulated outage"}
	}
	a, ok := s.rows[accountID]
	if !ok {
		return NotFound(op, "account")
	}

	a.Password = in.PasswordHash
	a.LastIP = trimToNil(in.LastIP)
	a.Email = trimPtr(in.Email)

	switch in.Platform.Kind() {
	case PlatformMojang:
		id := in.Platform.ID()
		a.MojangID = &id
	case PlatformBedrock:
		id := in.Platform.ID()
		a.BedrockID = &id
	}
	return nil
}

func (s *MemoryStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func memColumnEquals(a *Account, column Column, value string) bool {
	switch column {
	case ColumnID:
		return strconv.FormatInt(a.ID, 10) == value
	case ColumnLastName:
		return strings.EqualFold(a.LastName, value)
	case ColumnLastIP:
		return a.LastIP != nil && *a.LastIP == value
	case ColumnUniqueID:
		return a.UniqueID == value
	case ColumnMojangID:
		return a.MojangID != nil && *a.MojangID == value
	case ColumnBedrockID:
		return a.BedrockID != nil && *a.BedrockID == value
	case ColumnEmail:
		return a.Email != nil && strings.EqualFold(*a.Email, value)
	default:
		return false
	}
}

func cloneAccount(a Account) Account {
	a.LastIP = clonePtr(a.LastIP)
	a.MojangID = clonePtr(a.MojangID)
	a.BedrockID = clonePtr(a.BedrockID)
	a.Email = clonePtr(a.Email)
	return a
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
