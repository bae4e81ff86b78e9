// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: Database connection string or file path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - KFactor: Elo K-factor for rating updates (default: 32)
  - AnonQuota: Matchup fetches allowed per anonymous identity (default: 3)
  - MinVotes: Minimum votes for a community leaderboard placement (default: 5)
  - DedupVotes: Reject exact repeat votes from the same voter (default: off)
  - IPHashSalt: Secret for vote-audit IP hashing (required)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-k            Elo K-factor
	-anon-quota   Anonymous matchup allotment
	-min-votes    Leaderboard minimum vote count
	-dedup-votes  Enable repeat-vote rejection
	-ip-salt      IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ELO_K_FACTOR  → -k
	ANON_QUOTA    → -anon-quota
	MIN_VOTES     → -min-votes
	VOTE_DEDUP    → -dedup-votes ("true" to enable)
	IP_HASH_SALT  → -ip-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - IP_HASH_SALT must be provided
  - numeric tuning values must parse and be positive
*/
package cliparse
