package models

import "time"

// Vote scope constants
const (
	ScopePersonal  = "personal"
	ScopeCommunity = "community"
)

// Request types

type CreateGalleryRequest struct {
	Handle string `json:"handle"`
	Public bool   `json:"public"`
}

type AddItemRequest struct {
	Subject  string `json:"subject"`
	MediaURL string `json:"media_url"`
}

type SetVisibilityRequest struct {
	Public bool `json:"public"`
}

type SubmitVoteRequest struct {
	WinnerID string `json:"winner_id"`
	LoserID  string `json:"loser_id"`
	Scope    string `json:"scope"`
}

// Response types

type CreateGalleryResponse struct {
	GalleryID string `json:"gallery_id"`
}

type AddItemResponse struct {
	ItemID string  `json:"item_id"`
	Rating float64 `json:"rating"`
}

type SubmitVoteResponse struct {
	WinnerRating float64 `json:"winner_rating"`
	LoserRating  float64 `json:"loser_rating"`
}

type QuotaResponse struct {
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

// MatchupItem is one side of a head-to-head pair. MediaURL is opaque to the
// engine; it is whatever the upload pipeline stored.
type MatchupItem struct {
	ItemID    string  `json:"item_id"`
	GalleryID string  `json:"gallery_id"`
	Handle    string  `json:"handle"`
	Subject   string  `json:"subject"`
	MediaURL  string  `json:"media_url"`
	Rating    float64 `json:"rating"`
}

// MatchupResponse carries either a pair or an empty-state reason.
// An unavailable matchup is not an error: the client shows a "need more
// items" state instead of a pair.
type MatchupResponse struct {
	Available      bool         `json:"available"`
	Reason         string       `json:"reason,omitempty"`
	ItemA          *MatchupItem `json:"item_a,omitempty"`
	ItemB          *MatchupItem `json:"item_b,omitempty"`
	QuotaRemaining *int         `json:"quota_remaining,omitempty"`
}

// Domain types

type Gallery struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID        string    `json:"id"`
	GalleryID string    `json:"gallery_id"`
	Subject   string    `json:"subject"`
	MediaURL  string    `json:"media_url"`
	Active    bool      `json:"active"`
	Rating    float64   `json:"rating"`
	WinCount  int       `json:"win_count"`
	LossCount int       `json:"loss_count"`
	CreatedAt time.Time `json:"created_at"`
}

type GalleryWithItems struct {
	Gallery Gallery `json:"gallery"`
	Items   []Item  `json:"items"`
}

// Vote is an append-only audit record. It is never mutated after insert.
type Vote struct {
	ID        string    `json:"id"`
	WinnerID  string    `json:"winner_id"`
	LoserID   string    `json:"loser_id"`
	Scope     string    `json:"scope"`
	VoterID   *string   `json:"voter_id,omitempty"`
	IPHash    *string   `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// Leaderboard types

type GalleryStanding struct {
	GalleryID  string     `json:"gallery_id"`
	Handle     string     `json:"handle"`
	Score      *int       `json:"score,omitempty"` // nil when zero votes
	WinRate    float64    `json:"win_rate"`
	TotalVotes int        `json:"total_votes"`
	VotesLabel string     `json:"votes_label"`
	Rating     float64    `json:"rating"`
	LastVoteAt *time.Time `json:"last_vote_at,omitempty"`
	Rank       int        `json:"rank,omitempty"` // 1-indexed; 0 for unranked
}

type ItemStanding struct {
	ItemID     string     `json:"item_id"`
	Subject    string     `json:"subject"`
	MediaURL   string     `json:"media_url"`
	Score      *int       `json:"score,omitempty"`
	WinRate    float64    `json:"win_rate"`
	TotalVotes int        `json:"total_votes"`
	VotesLabel string     `json:"votes_label"`
	Rating     float64    `json:"rating"`
	LastVoteAt *time.Time `json:"last_vote_at,omitempty"`
	Rank       int        `json:"rank,omitempty"`
}

type LeaderboardResponse struct {
	MinVotes int               `json:"min_votes"`
	Ranked   []GalleryStanding `json:"ranked"`
	Unranked []GalleryStanding `json:"unranked"`
}

type GalleryLeaderboardResponse struct {
	GalleryID string         `json:"gallery_id"`
	Ranked    []ItemStanding `json:"ranked"`
	Unranked  []ItemStanding `json:"unranked"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
