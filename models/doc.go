// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateGalleryRequest: handle, public
  - AddItemRequest: subject, media_url
  - SetVisibilityRequest: public
  - SubmitVoteRequest: winner_id, loser_id, scope

# Response Types

Types for JSON responses:

  - CreateGalleryResponse: gallery_id
  - AddItemResponse: item_id, rating
  - MatchupResponse: available, item_a, item_b, quota_remaining
  - SubmitVoteResponse: winner_rating, loser_rating
  - LeaderboardResponse: ranked, unranked
  - GalleryLeaderboardResponse: ranked, unranked
  - QuotaResponse: remaining, unlimited
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Gallery: owner grouping with the community visibility flag
  - Item: rateable unit with rating and win/loss counters
  - Vote: append-only audit record (personal or community scope)
  - GalleryStanding / ItemStanding: confidence-adjusted leaderboard rows

# Constants

Vote scopes:

	ScopePersonal  = "personal"
	ScopeCommunity = "community"
*/
package models
