// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Photo Faceoff API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Gallery and item management (record keeping only; uploads are external):

	POST /galleries                 - Create gallery
	GET  /galleries/{id}            - Gallery with its items
	POST /galleries/{id}/items      - Register item
	POST /galleries/{id}/visibility - Toggle community visibility
	POST /items/{id}/deactivate     - Soft-delete item

Voting loop (identity via X-Voter-ID / X-Anon-Token headers):

	GET  /matchup - Select a head-to-head pair
	POST /votes   - Record a vote, apply the Elo update
	GET  /quota   - Remaining anonymous allowance (non-consuming)

Leaderboards:

	GET /leaderboard                - Community gallery rankings
	GET /galleries/{id}/leaderboard - Item rankings within a gallery

# Handler Initialization

The router creates handler instances with dependency injection:

	galleryHandler := handlers.NewGalleryHandler(db, cfg)
	matchupHandler := handlers.NewMatchupHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, cfg)
	quotaHandler := handlers.NewQuotaHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
