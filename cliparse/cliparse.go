package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionTTL    time.Duration
	BcryptCost    int
	AdminSetupKey string
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl string

	fs := flag.NewFlagSet("campus-vote", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&ttl, "session-ttl", "", "Absolute session lifetime, e.g. 2h")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", 0, "bcrypt cost (0 = library default)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminSetupKey, "setup-key", "", "Admin bootstrap key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "voting.db"
	}

	if ttl == "" {
		ttl = os.Getenv("SESSION_TTL")
	}
	if ttl == "" {
		// Sessions expire two hours after login
		cfg.SessionTTL = 2 * time.Hour
	} else {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid session TTL %q", ttl)
		}
		cfg.SessionTTL = d
	}

	if cfg.BcryptCost == 0 {
		if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
			cost, err := strconv.Atoi(costStr)
			if err != nil {
				return Config{}, errors.New("invalid BCRYPT_COST env variable")
			}
			cfg.BcryptCost = cost
		}
	}

	if cfg.AdminSetupKey == "" {
		cfg.AdminSetupKey = os.Getenv("ADMIN_SETUP_KEY")
	}
	// An empty setup key is allowed: it disables the create-admin endpoint.

	return cfg, nil
}
