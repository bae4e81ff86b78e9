// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/photo-faceoff/auth"
	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/middleware"
	"github.com/danielhkuo/photo-faceoff/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// SubmitVote handles POST /votes
// Applies the Elo update to both items through relative atomic increments,
// bumps the community ledger for community-scope votes, and appends the
// audit record. Validation happens before any write: a vote either applies
// to both items or to neither.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.WinnerID == "" || req.LoserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "winner_id and loser_id are required")
		return
	}
	if req.WinnerID == req.LoserID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "winner_id and loser_id must differ")
		return
	}
	if req.Scope != models.ScopePersonal && req.Scope != models.ScopeCommunity {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scope must be personal or community")
		return
	}

	voter := auth.FromRequest(r)

	// Repeat votes compound by default; dedup is opt-in and only meaningful
	// for signed-in voters.
	if h.cfg.DedupVotes && voter.Authenticated() {
		var exists bool
		err := h.db.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM vote
				WHERE voter_id = $1 AND winner_id = $2 AND loser_id = $3
			)
		`, voter.VoterID, req.WinnerID, req.LoserID).Scan(&exists)
		if err != nil {
			slog.Error("failed to check duplicate vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if exists {
			middleware.ErrorResponse(w, http.StatusConflict, "Vote already recorded")
			return
		}
	}

	// Both item updates ride one transaction so a store failure mid-vote
	// never leaves a half-applied pair.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	winnerRating, ok := h.loadRating(w, tx, req.WinnerID)
	if !ok {
		return
	}
	loserRating, ok := h.loadRating(w, tx, req.LoserID)
	if !ok {
		return
	}

	winnerDelta, loserDelta := eloDeltas(winnerRating, loserRating, h.cfg.KFactor)

	// The rating is shared across scopes, but the win/loss ledgers are
	// disjoint: personal votes bump the counters on item, community votes
	// bump community_stat, and neither touches the other. Relative
	// increments leave serialization to the store; no read-then-write of
	// counters at this layer.
	winnerUpdate := `
		UPDATE item SET rating = rating + $1, win_count = win_count + 1
		WHERE id = $2
		RETURNING rating`
	loserUpdate := `
		UPDATE item SET rating = rating + $1, loss_count = loss_count + 1
		WHERE id = $2
		RETURNING rating`
	if req.Scope == models.ScopeCommunity {
		winnerUpdate = `
		UPDATE item SET rating = rating + $1
		WHERE id = $2
		RETURNING rating`
		loserUpdate = winnerUpdate
	}

	var newWinnerRating float64
	err = tx.QueryRow(winnerUpdate, winnerDelta, req.WinnerID).Scan(&newWinnerRating)
	if err != nil {
		slog.Error("failed to update winner", "error", err, "item_id", req.WinnerID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	var newLoserRating float64
	err = tx.QueryRow(loserUpdate, loserDelta, req.LoserID).Scan(&newLoserRating)
	if err != nil {
		slog.Error("failed to update loser", "error", err, "item_id", req.LoserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	if req.Scope == models.ScopeCommunity {
		if err := bumpCommunityStat(tx, req.WinnerID, 1, 0); err != nil {
			slog.Error("failed to bump community wins", "error", err, "item_id", req.WinnerID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
			return
		}
		if err := bumpCommunityStat(tx, req.LoserID, 0, 1); err != nil {
			slog.Error("failed to bump community losses", "error", err, "item_id", req.LoserID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
			return
		}
	}

	// Append the immutable audit record
	var voterID *string
	if voter.Authenticated() {
		voterID = &voter.VoterID
	}
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	_, err = tx.Exec(`
		INSERT INTO vote (id, winner_id, loser_id, scope, voter_id, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), req.WinnerID, req.LoserID, req.Scope, voterID, ipHash, time.Now())
	if err != nil {
		slog.Error("failed to insert vote record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded",
		"winner_id", req.WinnerID,
		"loser_id", req.LoserID,
		"scope", req.Scope,
		"winner_rating", newWinnerRating,
		"loser_rating", newLoserRating,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		WinnerRating: newWinnerRating,
		LoserRating:  newLoserRating,
	})
}

// loadRating reads an item's pre-vote rating and rejects unknown or
// inactive references. Writes the HTTP error itself and reports ok=false.
func (h *VotingHandler) loadRating(w http.ResponseWriter, tx *sql.Tx, itemID string) (float64, bool) {
	var rating float64
	var active bool
	err := tx.QueryRow(`
		SELECT rating, active FROM item WHERE id = $1
	`, itemID).Scan(&rating, &active)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown item: "+itemID)
		return 0, false
	}
	if err != nil {
		slog.Error("failed to query item", "error", err, "item_id", itemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return 0, false
	}
	if !active {
		middleware.ErrorResponse(w, http.StatusConflict, "Item is inactive: "+itemID)
		return 0, false
	}

	return rating, true
}

func bumpCommunityStat(tx *sql.Tx, itemID string, wins, losses int) error {
	_, err := tx.Exec(`
		INSERT INTO community_stat (item_id, wins, losses)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE
		SET wins = community_stat.wins + $4, losses = community_stat.losses + $5
	`, itemID, wins, losses, wins, losses)
	return err
}
