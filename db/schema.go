// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the sqlite/postgres common subset; timestamps and ids
// are always supplied by the application, never by column defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Galleries (owners). public controls community-pool eligibility and is
-- re-evaluated at selection time, never cached on items.
CREATE TABLE IF NOT EXISTS gallery (
    id TEXT PRIMARY KEY,
    handle TEXT NOT NULL UNIQUE,
    public BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_gallery_public ON gallery(public);

-- Items. Soft-deleted via active=FALSE; historic votes may still reference
-- inactive items. rating/win_count/loss_count are mutated only by the vote
-- path, via relative atomic increments.
CREATE TABLE IF NOT EXISTS item (
    id TEXT PRIMARY KEY,
    gallery_id TEXT NOT NULL REFERENCES gallery(id) ON DELETE CASCADE,
    subject TEXT NOT NULL,
    media_url TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    rating REAL NOT NULL DEFAULT 1500,
    win_count INTEGER NOT NULL DEFAULT 0 CHECK (win_count >= 0),
    loss_count INTEGER NOT NULL DEFAULT 0 CHECK (loss_count >= 0),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_item_gallery_id ON item(gallery_id);
CREATE INDEX IF NOT EXISTS idx_item_active ON item(active);

-- Community ledger: cross-user win/loss counters kept apart from the
-- personal counters on item. No UNIQUE constraint on votes themselves;
-- repeat votes compound.
CREATE TABLE IF NOT EXISTS community_stat (
    item_id TEXT PRIMARY KEY REFERENCES item(id) ON DELETE CASCADE,
    wins INTEGER NOT NULL DEFAULT 0 CHECK (wins >= 0),
    losses INTEGER NOT NULL DEFAULT 0 CHECK (losses >= 0)
);

-- Votes are append-only audit facts.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    winner_id TEXT NOT NULL,
    loser_id TEXT NOT NULL,
    scope TEXT NOT NULL CHECK (scope IN ('personal', 'community')),
    voter_id TEXT,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_winner_id ON vote(winner_id);
CREATE INDEX IF NOT EXISTS idx_vote_loser_id ON vote(loser_id);
CREATE INDEX IF NOT EXISTS idx_vote_scope ON vote(scope);

-- Remaining matchup allowance per anonymous identity. Rows are seeded
-- lazily on first fetch; resets belong to the external session layer.
CREATE TABLE IF NOT EXISTS anon_quota (
    token TEXT PRIMARY KEY,
    remaining INTEGER NOT NULL CHECK (remaining >= 0),
    created_at TIMESTAMP NOT NULL
);
`
