package account

import (
	"regexp"
	"strings"
)

// Account is one row of the player-account table.
//
// UniqueID is always exactly 32 lowercase hex characters (a UUID with
// the dashes stripped). MojangID and BedrockID mirror the two nullable
// platform columns; Platform() presents them as a single sum value.
type Account struct {
	ID       int64
	LastName string
	Password string // stored hash, self-describing format
	LastIP   *string
	UniqueID string
	Email    *string

	MojangID  *string
	BedrockID *string
}

// Platform folds the two nullable columns into a PlatformID.
func (a Account) Platform() PlatformID {
	switch {
	case a.MojangID != nil:
		return Mojang(*a.MojangID)
	case a.BedrockID != nil:
		return Bedrock(*a.BedrockID)
	default:
		return NoPlatform()
	}
}

// PlatformKind tags a PlatformID variant.
type PlatformKind int

const (
	// PlatformNone marks an unclaimed (offline-name) account.
	PlatformNone PlatformKind = iota
	// PlatformMojang marks an account bound to a Mojang premium UUID.
	PlatformMojang
	// PlatformBedrock marks an account bound to a Bedrock identifier.
	PlatformBedrock
)

// PlatformID is the external identity an account is bound to: none, a
// Mojang premium UUID, or a Bedrock id. An account can never carry both;
// the type makes the both-set state unrepresentable. The storage layer
// maps it back onto the mojang_id/bedrock_id nullable columns.
type PlatformID struct {
	kind PlatformKind
	id   string
}

// NoPlatform returns the unclaimed variant.
func NoPlatform() PlatformID { return PlatformID{} }

// Mojang returns a Mojang-bound PlatformID.
func Mojang(id string) PlatformID {
	return PlatformID{kind: PlatformMojang, id: strings.TrimSpace(id)}
}

// Bedrock returns a Bedrock-bound PlatformID.
func Bedrock(id string) PlatformID {
	return PlatformID{kind: PlatformBedrock, id: strings.TrimSpace(id)}
}

// Kind returns the variant tag.
func (p PlatformID) Kind() PlatformKind { return p.kind }

// ID returns the bound identifier; empty for PlatformNone.
func (p PlatformID) ID() string { return p.id }

// IsZero reports whether p is the unclaimed variant.
func (p PlatformID) IsZero() bool { return p.kind == PlatformNone }

// SearchMode selects the identifier namespace for account lookups.
type SearchMode string

const (
	// SearchByMojangID matches the mojang_id column exactly.
	SearchByMojangID SearchMode = "mojang_id"
	// SearchByBedrockID matches the bedrock_id column exactly.
	SearchByBedrockID SearchMode = "bedrock_id"
	// SearchByName matches the last_name column case-insensitively,
	// under the store's name-lookup policy.
	SearchByName SearchMode = "last_name"
)

func (m SearchMode) valid() bool {
	switch m {
	case SearchByMojangID, SearchByBedrockID, SearchByName:
		return true
	default:
		return false
	}
}

// Column names a probe-able table column for existence checks.
type Column string

// Columns accepted by Store.Exists. The closed set keeps identifiers out
// of caller control when building SQL.
const (
	ColumnID        Column = "id"
	ColumnLastName  Column = "last_name"
	ColumnLastIP    Column = "last_ip"
	ColumnUniqueID  Column = "unique_id"
	ColumnMojangID  Column = "mojang_id"
	ColumnBedrockID Column = "bedrock_id"
	ColumnEmail     Column = "email"
)

func (c Column) valid() bool {
	switch c {
	case ColumnID, ColumnLastName, ColumnLastIP, ColumnUniqueID,
		ColumnMojangID, ColumnBedrockID, ColumnEmail:
		return true
	default:
		return false
	}
}

var uniqueIDRe = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NormalizeUniqueID canonicalizes a unique id: trims whitespace, strips
// UUID dashes, and lower-cases. The result is not validated; use
// ValidUniqueID for that.
func NormalizeUniqueID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", "")
}

// ValidUniqueID reports whether s is exactly 32 lowercase hex characters.
func ValidUniqueID(s string) bool { return uniqueIDRe.MatchString(s) }
