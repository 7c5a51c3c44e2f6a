// Package config handles resolving configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config is the full configuration surface for the application. Every value
// is supplied via environment variables; there are no configuration flags.
type Config struct {
	// DBFilepath is the path to the SQLite database file. Defaults to a file
	// under the XDG data directory when unset. ":memory:" is accepted for
	// ephemeral databases.
	DBFilepath string `envconfig:"BOOKPLATE_DB_FILEPATH"`
	// WebAddress is the host:port the web app listens on.
	WebAddress string `envconfig:"BOOKPLATE_WEB_ADDRESS" default:"localhost:8888"`
	// SessionSecret is the key used to sign session cookies. Required.
	SessionSecret string `envconfig:"BOOKPLATE_SESSION_SECRET" required:"true"`
	// SessionTTL is how long an issued session remains valid.
	SessionTTL time.Duration `envconfig:"BOOKPLATE_SESSION_TTL" default:"24h"`
	// BcryptCost is the bcrypt work factor applied when hashing passwords.
	BcryptCost int `envconfig:"BOOKPLATE_BCRYPT_COST" default:"10"`
	// LogLevel sets the minimum slog level (DEBUG, INFO, WARN, ERROR).
	LogLevel slog.Level `envconfig:"BOOKPLATE_LOG_LEVEL" default:"INFO"`
	// DevMode enables request logging, debug output, and demo data seeding.
	DevMode bool `envconfig:"BOOKPLATE_DEV_MODE" default:"false"`
}

// Load resolves the configuration from the process environment, fills in
// defaults, and validates it for completeness.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment config: %w", err)
	}
	if cfg.DBFilepath == "" {
		cfg.DBFilepath = filepath.Join(xdg.DataHome, "bookplate", "db.sqlite")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return cfg, fmt.Errorf(
			"bcrypt cost %d out of range [%d, %d]",
			cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost,
		)
	}
	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("session TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}
