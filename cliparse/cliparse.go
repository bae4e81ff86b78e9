package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Engine defaults. Ratings start at 1500 so new items have symmetric room
// to move in either direction.
const (
	DefaultKFactor    = 32.0
	DefaultAnonQuota  = 3
	DefaultMinVotes   = 5
	DefaultStartScore = 1500.0
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	KFactor      float64
	AnonQuota    int
	MinVotes     int
	DedupVotes   bool
	IPHashSalt   string
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("photo-faceoff", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Engine tuning
	fs.Float64Var(&cfg.KFactor, "k", 0, "Elo K-factor")
	fs.IntVar(&cfg.AnonQuota, "anon-quota", 0, "Matchup fetches allowed per anonymous identity")
	fs.IntVar(&cfg.MinVotes, "min-votes", 0, "Minimum votes for a leaderboard placement")
	fs.BoolVar(&cfg.DedupVotes, "dedup-votes", false, "Reject exact repeat votes from the same voter")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

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
			cfg.Port = 3319 // default
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

	if cfg.KFactor == 0 {
		if kStr := os.Getenv("ELO_K_FACTOR"); kStr != "" {
			k, err := strconv.ParseFloat(kStr, 64)
			if err != nil || k <= 0 {
				return Config{}, errors.New("invalid ELO_K_FACTOR env variable")
			}
			cfg.KFactor = k
		} else {
			cfg.KFactor = DefaultKFactor
		}
	}
	if cfg.KFactor < 0 {
		return Config{}, errors.New("K-factor must be positive")
	}

	if cfg.AnonQuota == 0 {
		if qStr := os.Getenv("ANON_QUOTA"); qStr != "" {
			q, err := strconv.Atoi(qStr)
			if err != nil || q < 0 {
				return Config{}, errors.New("invalid ANON_QUOTA env variable")
			}
			cfg.AnonQuota = q
		} else {
			cfg.AnonQuota = DefaultAnonQuota
		}
	}

	if cfg.MinVotes == 0 {
		if mStr := os.Getenv("MIN_VOTES"); mStr != "" {
			m, err := strconv.Atoi(mStr)
			if err != nil || m < 1 {
				return Config{}, errors.New("invalid MIN_VOTES env variable")
			}
			cfg.MinVotes = m
		} else {
			cfg.MinVotes = DefaultMinVotes
		}
	}

	if !cfg.DedupVotes {
		cfg.DedupVotes = os.Getenv("VOTE_DEDUP") == "true"
	}

	// Secrets - MUST be provided
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}
