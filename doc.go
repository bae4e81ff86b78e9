// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Photo Faceoff API server.

Photo Faceoff is a head-to-head image rating service: items live in
galleries, voters see two comparable items at a time, and each vote moves
an Elo-style skill rating that feeds confidence-adjusted leaderboards at
the gallery and community level.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=faceoff.db IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -d faceoff.db -ip-salt dev-salt

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - IP_HASH_SALT (-ip-salt): Secret for vote-audit IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - ELO_K_FACTOR (-k): Rating update step size (default: 32)
  - ANON_QUOTA (-anon-quota): Anonymous matchup fetches (default: 3)
  - MIN_VOTES (-min-votes): Community leaderboard threshold (default: 5)
  - VOTE_DEDUP (-dedup-votes): Reject exact repeat votes (default: off)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (matchup, votes, leaderboards, quota,
    gallery management) plus the pure Elo and ranking math
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Voter context extraction and token utilities
  - db: Schema creation
  - cliparse: Configuration parsing

The engine itself is stateless between requests; all durable state lives
in the SQL store, and counter updates go through relative atomic
increments rather than read-modify-write.

See package documentation for each component.
*/
package main
