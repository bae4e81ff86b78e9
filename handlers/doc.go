// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Photo Faceoff API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - GalleryHandler: Gallery and item record management
  - MatchupHandler: Head-to-head pair selection
  - VotingHandler: Vote recording and Elo rating updates
  - LeaderboardHandler: Confidence-adjusted rankings
  - QuotaHandler: Anonymous matchup allowance

Handlers are created via constructor functions that accept *sql.DB and Config:

	matchupHandler := handlers.NewMatchupHandler(db, cfg)

# Voting Flow

A voter fetches a pair, then reports the outcome:

	GET  /matchup?scope=personal|community → GetMatchup
	POST /votes                            → SubmitVote

Identity arrives in headers: X-Voter-ID for signed-in voters, X-Anon-Token
for anonymous ones. Anonymous matchup fetches are metered (default 3);
votes on an already-delivered pair are not.

Personal scope pairs items of one gallery across different subjects.
Community scope pairs items of two different public galleries, skipping
recently shown galleries (exclude=...) and falling back to the full pool
when the window filters too aggressively.

# Rating Update

The Elo rule is implemented in elo.go:

	winnerDelta, loserDelta := eloDeltas(winnerRating, loserRating, k)

Both deltas derive from the same pre-vote ratings and have equal magnitude.
Persistence uses relative increments (rating = rating + delta) so the
store's atomicity serializes concurrent votes on the same item.

# Ranking

The shared scoring function lives in rank.go:

	score := RankScore(wins, losses, elo)

It blends the Wilson lower bound (z=1.96) of the win proportion with a
normalized Elo, weighted 70/30, scaled to 0-1000. Every leaderboard call
site uses this one function:

	GET /leaderboard                   → public galleries, community ledger
	GET /galleries/{id}/leaderboard    → one gallery's items, personal ledger

# Quota

The anonymous allowance is a lazily seeded counter, spent by a conditional
UPDATE:

	allowed, remaining, err := CheckAndConsumeQuota(db, token, allotment)

	GET /quota → remaining allowance without consuming

# Management

Record management only; media bytes, payments, and identity live elsewhere:

	POST /galleries                    → CreateGallery
	GET  /galleries/{id}               → GetGallery
	POST /galleries/{id}/items         → AddItem
	POST /galleries/{id}/visibility    → SetVisibility
	POST /items/{id}/deactivate        → DeactivateItem (soft delete)
*/
package handlers
