package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection
//   via identifiers; value predicates always use typed placeholders.
// - Network-level failures map to ErrStoreUnavailable; pgx.ErrNoRows
//   maps to ErrNotFound. The two are never conflated.
// - Lookup-then-write sequences are NOT serialized here: the website
//   flow resolves an identity first and writes second, and a concurrent
//   registration can land between the two. The unique index on
//   unique_id backstops duplicate inserts as ErrConflict.
type PostgresStore struct {
	pool       *pgxpool.Pool
	schema     string
	table      string
	strictName bool
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema holding the account table
// (default "public").
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" || !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("account: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// WithTable sets the account table name (default "nlogin").
func WithTable(table string) PostgresOption {
	return func(s *PostgresStore) error {
		table = strings.TrimSpace(table)
		if table == "" || !pgIdentRe.MatchString(table) {
			return fmt.Errorf("account: invalid table identifier")
		}
		s.table = table
		return nil
	}
}

// WithStrictNameLookup restricts SearchByName to unclaimed rows: a name
// only matches accounts with neither platform column set. Verified
// platform identities then never collide with a shared display name.
func WithStrictNameLookup(strict bool) PostgresOption {
	return func(s *PostgresStore) error {
		s.strictName = strict
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with safe defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "public",
		table:  "nlogin",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("account: nil pool")
	}
	return st, nil
}

// FindAccountID resolves search under mode to an account id.
func (s *PostgresStore) FindAccountID(ctx context.Context, search string, mode SearchMode) (int64, error) {
	const op = "account.FindAccountID"

	if s == nil || s.pool == nil {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty search value"}
	}
	if !mode.valid() {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: fmt.Sprintf("bad mode %q", mode)}
	}

	t := s.ident()

	var query string
	switch mode {
	case SearchByMojangID:
		query = `SELECT id FROM ` + t + ` WHERE mojang_id = $1 LIMIT 1`
	case SearchByBedrockID:
		query = `SELECT id FROM ` + t + ` WHERE bedrock_id = $1 LIMIT 1`
	case SearchByName:
		if s.strictName {
			query = `SELECT id FROM ` + t + `
			          WHERE lower(last_name) = lower($1)
			            AND mojang_id IS NULL
			            AND bedrock_id IS NULL
			          ORDER BY id
			          LIMIT 1`
		} else {
			// Claimed rows win the tie: a premium identity holding the
			// name outranks an unclaimed one.
			query = `SELECT id FROM ` + t + `
			          WHERE lower(last_name) = lower($1)
			          ORDER BY (mojang_id IS NOT NULL) DESC, id
			          LIMIT 1`
		}
	}

	var id int64
	err := s.pool.QueryRow(ctx, query, search).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, NotFound(op, "account")
		}
		return 0, classify(op, err)
	}
	return id, nil
}

// GetAccount fetches a full row by id.
func (s *PostgresStore) GetAccount(ctx context.Context, accountID int64) (Account, error) {
	const op = "account.GetAccount"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	var out Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, last_name, password, last_ip, unique_id, mojang_id, bedrock_id, email
		   FROM `+s.ident()+`
		  WHERE id = $1`,
		accountID,
	).Scan(
		&out.ID,
		&out.LastName,
		&out.Password,
		&out.LastIP,
		&out.UniqueID,
		&out.MojangID,
		&out.BedrockID,
		&out.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFound(op, "account")
		}
		return Account{}, classify(op, err)
	}
	return out, nil
}

// PasswordHash returns the stored hash for an account.
func (s *PostgresStore) PasswordHash(ctx context.Context, accountID int64) (string, error) {
	const op = "account.PasswordHash"

	if s == nil || s.pool == nil {
		return "", OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT password FROM `+s.ident()+` WHERE id = $1`,
		accountID,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", NotFound(op, "account")
		}
		return "", classify(op, err)
	}
	return hash, nil
}

// SetPasswordHash replaces the stored hash for an account.
func (s *PostgresStore) SetPasswordHash(ctx context.Context, accountID int64, hash string) error {
	const op = "account.SetPasswordHash"

	if s == nil || s.pool == nil {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(hash) == "" {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty hash"}
	}

	ct, err := s.pool.Exec(ctx,
		`UPDATE `+s.ident()+` SET password = $1 WHERE id = $2`,
		hash, accountID,
	)
	if err != nil {
		return classify(op, err)
	}
	if ct.RowsAffected() == 0 {
		return NotFound(op, "account")
	}
	return nil
}

// Exists probes whether any row has value in column.
//
// Fail-open: any store error reports true. See Store.Exists.
func (s *PostgresStore) Exists(ctx context.Context, column Column, value string) bool {
	if s == nil || s.pool == nil || !column.valid() {
		return true
	}

	var found bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+s.ident()+` WHERE `+string(column)+` = $1)`,
		strings.TrimSpace(value),
	).Scan(&found)
	if err != nil {
		return true
	}
	return found
}

// Insert creates a new account row and returns its assigned id.
func (s *PostgresStore) Insert(ctx context.Context, in InsertInput) (int64, error) {
	const op = "account.Insert"

	if s == nil || s.pool == nil {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(in.LastName) == "" {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "empty last_name"}
	}
	if !ValidUniqueID(in.UniqueID) {
		return 0, OpError{Op: op, Kind: ErrInvalidInput, Msg: "bad unique_id"}
	}

	mojang, bedrock := platformColumns(in.Platform)

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO `+s.ident()+` (
		     last_name, password, last_ip, unique_id, mojang_id, bedrock_id, email
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7)
		   RETURNING id`,
		strings.TrimSpace(in.LastName),
		in.PasswordHash,
		trimToNil(in.LastIP),
		in.UniqueID,
		mojang,
		bedrock,
		trimPtr(in.Email),
	).Scan(&id)
	if err != nil {
		return 0, classify(op, err)
	}
	return id, nil
}

// Update rewrites the columns described by in on an existing row. The
// column set depends on which identity variant in.Platform carries:
// bound variants re-assert their own platform column, the unclaimed
// variant touches neither.
func (s *PostgresStore) Update(ctx context.Context, accountID int64, in UpdateInput) error {
	const op = "account.Update"

	if s == nil || s.pool == nil {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	set := `password = $1, last_ip = $2, email = $3`
	args := []any{in.PasswordHash, trimToNil(in.LastIP), trimPtr(in.Email)}

	switch in.Platform.Kind() {
	case PlatformMojang:
		set += `, mojang_id = $4`
		args = append(args, in.Platform.ID())
	case PlatformBedrock:
		set += `, bedrock_id = $4`
		args = append(args, in.Platform.ID())
	}
	args = append(args, accountID)

	ct, err := s.pool.Exec(ctx,
		`UPDATE `+s.ident()+` SET `+set+fmt.Sprintf(` WHERE id = $%d`, len(args)),
		args...,
	)
	if err != nil {
		return classify(op, err)
	}
	if ct.RowsAffected() == 0 {
		return NotFound(op, "account")
	}
	return nil
}

// ---- helpers ----

// ident returns the safely quoted schema-qualified table name.
func (s *PostgresStore) ident() string {
	return pgx.Identifier{s.schema, s.table}.Sanitize()
}

// NotFound standardizes not-found errors.
func NotFound(op, resource string) error {
	return OpError{Op: op, Kind: ErrNotFound, Msg: resource}
}

func platformColumns(p PlatformID) (mojang, bedrock *string) {
	switch p.Kind() {
	case PlatformMojang:
		id := p.ID()
		return &id, nil
	case PlatformBedrock:
		id := p.ID()
		return nil, &id
	default:
		return nil, nil
	}
}

func trimToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return trimToNil(*p)
}

// classify maps a pgx error to the package taxonomy. Anything the server
// did not answer (dial failures, broken pool, connection exceptions,
// shutdown states) becomes ErrStoreUnavailable; unique violations become
// ConflictError; other server-side errors pass through unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation
			return ConflictError{Op: op, Field: classifyConstraint(pgErr.ConstraintName)}
		}
		// Class 08 = connection exception, 57 = operator intervention
		// (shutdowns), 53 = insufficient resources.
		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case "08", "57", "53":
				return OpError{Op: op, Kind: ErrStoreUnavailable, Msg: pgErr.Code}
			}
		}
		return err
	}

	// No server response at all.
	return OpError{Op: op, Kind: ErrStoreUnavailable, Msg: err.Error()}
}

func classifyConstraint(name string) string {
	c := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(c, "unique_id"):
		return "unique_id"
	case strings.Contains(c, "mojang"):
		return "mojang_id"
	case strings.Contains(c, "bedrock"):
		return "bedrock_id"
	default:
		return "unique"
	}
}
