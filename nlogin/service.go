package nlogin

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/LeonardoRRC/nLogin-Composer/nlogin/account"
	"github.com/LeonardoRRC/nLogin-Composer/nlogin/hashalg"
)

// Service is the website-facing surface: it resolves fuzzy identifiers
// to canonical account rows, verifies and rotates credentials, and
// reconciles identity fields during registration.
//
// All operations run synchronously on the caller's goroutine and block
// on store I/O. The resolve-then-write sequence in Register is not
// atomic; see Register.
type Service struct {
	store   account.Store
	algs    *hashalg.Registry
	log     *slog.Logger
	metrics *Metrics

	ipSource  func() string
	defaultIP string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithIPSource injects the caller's network context: when Register is
// invoked without an address, the source supplies the remote address of
// the website request. Never read from ambient process state.
func WithIPSource(src func() string) Option {
	return func(s *Service) { s.ipSource = src }
}

// WithDefaultIP sets the address recorded when neither the input nor the
// injected source yields one (default "127.0.0.1").
func WithDefaultIP(ip string) Option {
	return func(s *Service) {
		if strings.TrimSpace(ip) != "" {
			s.defaultIP = strings.TrimSpace(ip)
		}
	}
}

// NewService constructs a Service over the given store and algorithm
// registry.
func NewService(store account.Store, algs *hashalg.Registry, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("nlogin: %w: nil store", ErrInvalidInput)
	}
	if algs == nil {
		return nil, fmt.Errorf("nlogin: %w: nil registry", ErrInvalidInput)
	}

	s := &Service{
		store:     store,
		algs:      algs,
		log:       slog.Default(),
		defaultIP: "127.0.0.1",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// FetchAccountID resolves a search value under the given identifier
// namespace to a canonical account id. Returns account.ErrNotFound when
// no row matches and account.ErrStoreUnavailable when the store cannot
// be reached; the two are never conflated.
func (s *Service) FetchAccountID(ctx context.Context, search string, mode account.SearchMode) (int64, error) {
	id, err := s.store.FindAccountID(ctx, search, mode)
	if account.IsStoreUnavailable(err) {
		s.metrics.storeOutage()
	}
	return id, err
}

// IsAccountRegistered probes whether an account row with the given id
// exists. Inherits the store's fail-open contract: an unreachable store
// reports true.
func (s *Service) IsAccountRegistered(ctx context.Context, accountID int64) bool {
	return s.store.Exists(ctx, account.ColumnID, strconv.FormatInt(accountID, 10))
}

// IsIPRegistered probes whether any account last used the given address.
// Inherits the store's fail-open contract.
func (s *Service) IsIPRegistered(ctx context.Context, ip string) bool {
	return s.store.Exists(ctx, account.ColumnLastIP, ip)
}

// GetHashedPassword returns the stored hash for an account.
func (s *Service) GetHashedPassword(ctx context.Context, accountID int64) (string, error) {
	return s.store.PasswordHash(ctx, accountID)
}

// GetAccount fetches the full account row for an id.
func (s *Service) GetAccount(ctx context.Context, accountID int64) (account.Account, error) {
	return s.store.GetAccount(ctx, accountID)
}

// VerifyPassword checks a plaintext password against the account's
// stored hash, routing by the hash's own format token.
//
// Outcomes:
//   - (true, nil)  match
//   - (false, nil) mismatch, or no such account
//   - (false, ErrUnverifiableAccount) the stored hash matches no known
//     algorithm — never reported as a plain mismatch
//   - (false, err) store failure (account.ErrStoreUnavailable, ...)
func (s *Service) VerifyPassword(ctx context.Context, accountID int64, password string) (bool, error) {
	hash, err := s.store.PasswordHash(ctx, accountID)
	if err != nil {
		if account.IsNotFound(err) {
			s.metrics.verification("mismatch")
			return false, nil
		}
		if account.IsStoreUnavailable(err) {
			s.metrics.storeOutage()
		}
		s.metrics.verification("error")
		return false, err
	}

	alg, err := s.algs.Resolve(hash)
	if err != nil {
		s.metrics.verification("unverifiable")
		s.log.Error("stored hash matches no known algorithm",
			"account_id", accountID)
		return false, fmt.Errorf("%w: account %d", ErrUnverifiableAccount, accountID)
	}

	ok, err := alg.Verify(password, hash)
	if err != nil {
		// Known token, undecodable body: still unverifiable, not a
		// mismatch.
		s.metrics.verification("unverifiable")
		return false, fmt.Errorf("%w: account %d: %v", ErrUnverifiableAccount, accountID, err)
	}

	if ok {
		s.metrics.verification("match")
	} else {
		s.metrics.verification("mismatch")
	}
	return ok, nil
}

// ChangePassword rewrites the account's hash using the currently
// configured write algorithm, regardless of the format the old hash was
// stored in. This is how legacy hashes migrate on rotation.
func (s *Service) ChangePassword(ctx context.Context, accountID int64, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("nlogin: %w: empty password", ErrInvalidInput)
	}

	hash, err := s.algs.Writer().Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.store.SetPasswordHash(ctx, accountID, hash); err != nil {
		if account.IsStoreUnavailable(err) {
			s.metrics.storeOutage()
		}
		return err
	}

	s.log.Info("password changed",
		"account_id", accountID,
		"algorithm", string(s.algs.WriteKind()))
	return nil
}

// RegisterInput carries the raw website registration form. MojangID and
// BedrockID are mutually exclusive; UniqueID and IP are optional and
// defaulted per the identity-resolution rules.
type RegisterInput struct {
	LastName string
	Password string
	Email    string

	// IP is the requester's address. Empty falls back to the injected
	// IP source, then to the configured default.
	IP string

	// UniqueID is the canonical 32-hex identity. When empty it defaults
	// to the platform id, or to the offline UUID of LastName.
	UniqueID string

	MojangID  string
	BedrockID string
}

// Register creates or updates the account matching the input's identity.
//
// Identity resolution, first match wins: a Mojang id searches the
// mojang_id namespace, a Bedrock id the bedrock_id namespace, otherwise
// the trimmed display name is searched under the store's name policy.
// A miss inserts a fresh row; a hit updates it, re-asserting the
// platform binding of the matched path (name-path updates leave both
// platform columns alone).
//
// The resolve and the write are two store round-trips with no
// transaction between them; a concurrent registration for the same
// identity can race. The store's unique index on unique_id surfaces
// that as account.ErrConflict rather than a duplicate row.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	name := strings.TrimSpace(in.LastName)
	mojang := strings.TrimSpace(in.MojangID)
	bedrock := strings.TrimSpace(in.BedrockID)

	if name == "" {
		s.metrics.registration("rejected")
		return fmt.Errorf("nlogin: %w: empty name", ErrInvalidInput)
	}
	if in.Password == "" {
		s.metrics.registration("rejected")
		return fmt.Errorf("nlogin: %w: empty password", ErrInvalidInput)
	}
	if mojang != "" && bedrock != "" {
		s.metrics.registration("rejected")
		return fmt.Errorf("nlogin: %w: both mojang and bedrock ids supplied", ErrIdentityConflict)
	}

	// Identity-resolution priority: Mojang id, then Bedrock id, then
	// display name. The matched path also decides the unique-id default
	// and which platform column a later update re-asserts.
	var (
		mode     account.SearchMode
		search   string
		platform account.PlatformID
		uid      = in.UniqueID
	)
	switch {
	case mojang != "":
		mode, search = account.SearchByMojangID, mojang
		platform = account.Mojang(mojang)
		if uid == "" {
			uid = mojang
		}
	case bedrock != "":
		mode, search = account.SearchByBedrockID, bedrock
		platform = account.Bedrock(bedrock)
		if uid == "" {
			uid = bedrock
		}
	default:
		mode, search = account.SearchByName, name
		platform = account.NoPlatform()
		if uid == "" {
			uid = OfflineUUID(name)
		}
	}

	uid = account.NormalizeUniqueID(uid)
	if !account.ValidUniqueID(uid) {
		s.metrics.registration("rejected")
		return fmt.Errorf("nlogin: %w: %q", ErrInvalidUniqueID, uid)
	}

	opID := ulid.Make().String()
	log := s.log.With("op_id", opID, "name", name, "mode", string(mode))

	id, err := s.store.FindAccountID(ctx, search, mode)
	switch {
	case err == nil:
		// Existing identity: update in place.
	case account.IsNotFound(err):
		id = 0
	default:
		if account.IsStoreUnavailable(err) {
			s.metrics.storeOutage()
		}
		s.metrics.registration("error")
		return err
	}

	hash, err := s.algs.Writer().Hash(in.Password)
	if err != nil {
		s.metrics.registration("error")
		return err
	}

	ip := strings.TrimSpace(in.IP)
	if ip == "" && s.ipSource != nil {
		ip = strings.TrimSpace(s.ipSource())
	}
	if ip == "" {
		ip = s.defaultIP
	}

	var email *string
	if e := strings.TrimSpace(in.Email); e != "" {
		email = &e
	}

	if id == 0 {
		newID, err := s.store.Insert(ctx, account.InsertInput{
			LastName:     name,
			PasswordHash: hash,
			LastIP:       ip,
			UniqueID:     uid,
			Platform:     platform,
			Email:        email,
		})
		if err != nil {
			if account.IsStoreUnavailable(err) {
				s.metrics.storeOutage()
			}
			s.metrics.registration("error")
			return err
		}
		s.metrics.registration("insert")
		log.Info("account registered", "account_id", newID)
		return nil
	}

	if err := s.store.Update(ctx, id, account.UpdateInput{
		PasswordHash: hash,
		LastIP:       ip,
		Email:        email,
		Platform:     platform,
	}); err != nil {
		if account.IsStoreUnavailable(err) {
			s.metrics.storeOutage()
		}
		s.metrics.registration("error")
		return err
	}
	s.metrics.registration("update")
	log.Info("account re-registered", "account_id", id)
	return nil
}
