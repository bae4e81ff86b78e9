// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

The DDL is restricted to the sqlite/postgres common subset so the same
schema runs against modernc.org/sqlite (dev, tests) and lib/pq (production).
Timestamps and ids are supplied by the application, never column defaults.

# Tables

The schema includes:

  - gallery: Owner grouping with the community visibility flag
  - item: Rateable units with rating and personal win/loss counters
  - community_stat: Cross-user win/loss ledger, one row per item
  - vote: Append-only vote records (audit + leaderboard reconstruction)
  - anon_quota: Remaining matchup allowance per anonymous identity

# Relationships

	gallery 1──* item
	item 1──1 community_stat (lazily created)
	vote rows reference items by id but carry no FK, so historic votes
	survive item deactivation and moderation

# Invariants

  - win_count, loss_count, wins, losses only increase (CHECK >= 0;
    the vote path issues relative increments only)
  - rating is mutated exclusively by the vote path
  - anon_quota.remaining never drops below zero
*/
package db
