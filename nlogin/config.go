package nlogin

import (
	"github.com/LeonardoRRC/nLogin-Composer/internal/app"
)

// Config contains runtime configuration for the library, loaded from
// environment variables. The hashing surface has its own config in the
// hashalg package.
type Config struct {
	LogLevel string

	DatabaseURL string
	DBSchema    string
	DBTable     string
	DBMaxConns  int32
	DBMinConns  int32

	// StrictNameLookup narrows display-name searches to unclaimed rows
	// (neither platform column set). With it off, claimed rows win the
	// tie when a premium identity shares a name with an offline one.
	StrictNameLookup bool

	// DefaultIP is recorded when neither the caller nor the injected IP
	// source supplies an address.
	DefaultIP string
}

// FromEnv loads Config from environment variables with defaults.
func FromEnv() Config {
	return Config{
		LogLevel: app.EnvString("NLOGIN_LOG_LEVEL", "info"),

		DatabaseURL: app.EnvString("NLOGIN_DATABASE_URL", ""),
		DBSchema:    app.EnvString("NLOGIN_DB_SCHEMA", "public"),
		DBTable:     app.EnvString("NLOGIN_DB_TABLE", "nlogin"),
		DBMaxConns:  app.EnvInt32("NLOGIN_DB_MAX_CONNS", 10),
		DBMinConns:  app.EnvInt32("NLOGIN_DB_MIN_CONNS", 0),

		StrictNameLookup: app.EnvBool("NLOGIN_STRICT_NAME_LOOKUP", false),

		DefaultIP: app.EnvString("NLOGIN_DEFAULT_IP", "127.0.0.1"),
	}
}
