package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	BaseURL       string
	AuthorKeySalt string
	SlugSalt      string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("askly", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "b", "", "Public base URL for detail links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AuthorKeySalt, "author-salt", "", "Author key salt (prefer env)")
	fs.StringVar(&cfg.SlugSalt, "slug-salt", "", "Detail slug salt (prefer env)")

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
			cfg.Port = 3419 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}

	// Secrets - MUST be provided
	if cfg.AuthorKeySalt == "" {
		cfg.AuthorKeySalt = os.Getenv("AUTHOR_KEY_SALT")
	}
	if cfg.AuthorKeySalt == "" {
		return Config{}, errors.New("AUTHOR_KEY_SALT required")
	}

	if cfg.SlugSalt == "" {
		cfg.SlugSalt = os.Getenv("SLUG_SALT")
	}
	if cfg.SlugSalt == "" {
		return Config{}, errors.New("SLUG_SALT required")
	}

	return cfg, nil
}
