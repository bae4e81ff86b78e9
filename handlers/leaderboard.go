// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/middleware"
	"github.com/danielhkuo/photo-faceoff/models"
)

type LeaderboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLeaderboardHandler(db *sql.DB, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, cfg: cfg}
}

// GetCommunityLeaderboard handles GET /leaderboard?min_votes=N
// Ranks public galleries by the confidence-adjusted RankScore over their
// community ledger. Recomputed from the store on every read; nothing is
// materialized. Galleries under min_votes land in the unranked bucket, and
// zero-vote galleries carry no score at all.
func (h *LeaderboardHandler) GetCommunityLeaderboard(w http.ResponseWriter, r *http.Request) {
	minVotes := h.cfg.MinVotes
	if raw := r.URL.Query().Get("min_votes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "min_votes must be a positive integer")
			return
		}
		minVotes = parsed
	}

	rows, err := h.db.Query(`
		SELECT g.id, g.handle,
		       COALESCE(SUM(cs.wins), 0),
		       COALESCE(SUM(cs.losses), 0),
		       COALESCE(AVG(i.rating), 1500)
		FROM gallery g
		JOIN item i ON i.gallery_id = g.id AND i.active = TRUE
		LEFT JOIN community_stat cs ON cs.item_id = i.id
		WHERE g.public = TRUE
		GROUP BY g.id, g.handle
	`)
	if err != nil {
		slog.Error("failed to query community standings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	var standings []models.GalleryStanding
	for rows.Next() {
		var s models.GalleryStanding
		var wins, losses int
		if err := rows.Scan(&s.GalleryID, &s.Handle, &wins, &losses, &s.Rating); err != nil {
			slog.Error("failed to scan gallery standing", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		s.TotalVotes = wins + losses
		s.VotesLabel = humanize.Comma(int64(s.TotalVotes))
		if s.TotalVotes > 0 {
			s.WinRate = float64(wins) / float64(s.TotalVotes)
			score := RankScore(wins, losses, s.Rating)
			s.Score = &score
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read gallery standings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	lastVotes, err := h.lastVotesByGallery(models.ScopeCommunity)
	if err != nil {
		slog.Error("failed to query last vote times", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for i := range standings {
		if at, ok := lastVotes[standings[i].GalleryID]; ok {
			t := at
			standings[i].LastVoteAt = &t
		}
	}

	ranked, unranked := splitGalleryStandings(standings, minVotes)

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		MinVotes: minVotes,
		Ranked:   ranked,
		Unranked: unranked,
	})
}

// GetGalleryLeaderboard handles GET /galleries/{id}/leaderboard
// Ranks one gallery's items by their personal win/loss ledger. No minimum
// vote gate here; only zero-vote items are left unranked.
func (h *LeaderboardHandler) GetGalleryLeaderboard(w http.ResponseWriter, r *http.Request) {
	galleryID := r.PathValue("id")
	if galleryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gallery id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM gallery WHERE id = $1)
	`, galleryID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query gallery", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Gallery not found")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, subject, media_url, rating, win_count, loss_count
		FROM item
		WHERE gallery_id = $1 AND active = TRUE
	`, galleryID)
	if err != nil {
		slog.Error("failed to query items", "error", err, "gallery_id", galleryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	var standings []models.ItemStanding
	for rows.Next() {
		var s models.ItemStanding
		var wins, losses int
		if err := rows.Scan(&s.ItemID, &s.Subject, &s.MediaURL, &s.Rating, &wins, &losses); err != nil {
			slog.Error("failed to scan item standing", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		s.TotalVotes = wins + losses
		s.VotesLabel = humanize.Comma(int64(s.TotalVotes))
		if s.TotalVotes > 0 {
			s.WinRate = float64(wins) / float64(s.TotalVotes)
			score := RankScore(wins, losses, s.Rating)
			s.Score = &score
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read item standings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	lastVotes, err := h.lastVotesByItem(galleryID)
	if err != nil {
		slog.Error("failed to query last vote times", "error", err, "gallery_id", galleryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for i := range standings {
		if at, ok := lastVotes[standings[i].ItemID]; ok {
			t := at
			standings[i].LastVoteAt = &t
		}
	}

	ranked, unranked := splitItemStandings(standings)

	middleware.JSONResponse(w, http.StatusOK, models.GalleryLeaderboardResponse{
		GalleryID: galleryID,
		Ranked:    ranked,
		Unranked:  unranked,
	})
}

// lastVotesByGallery maps gallery id to its most recent vote timestamp in
// the given scope. The max is folded in Go so timestamps round-trip the
// same way on both drivers.
func (h *LeaderboardHandler) lastVotesByGallery(scope string) (map[string]time.Time, error) {
	rows, err := h.db.Query(`
		SELECT i.gallery_id, v.created_at
		FROM vote v
		JOIN item i ON i.id IN (v.winner_id, v.loser_id)
		WHERE v.scope = $1
	`, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return foldLastVotes(rows)
}

// lastVotesByItem maps item id to its most recent vote timestamp across
// both scopes, for one gallery's items.
func (h *LeaderboardHandler) lastVotesByItem(galleryID string) (map[string]time.Time, error) {
	rows, err := h.db.Query(`
		SELECT i.id, v.created_at
		FROM vote v
		JOIN item i ON i.id IN (v.winner_id, v.loser_id)
		WHERE i.gallery_id = $1
	`, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return foldLastVotes(rows)
}

func foldLastVotes(rows *sql.Rows) (map[string]time.Time, error) {
	last := make(map[string]time.Time)
	for rows.Next() {
		var key string
		var at time.Time
		if err := rows.Scan(&key, &at); err != nil {
			return nil, err
		}
		if at.After(last[key]) {
			last[key] = at
		}
	}
	return last, rows.Err()
}

// splitGalleryStandings separates ranked entries (votes >= minVotes) from
// the unranked bucket and orders both. Ties break on vote count, then the
// most recent vote, then id for stability.
func splitGalleryStandings(standings []models.GalleryStanding, minVotes int) (ranked, unranked []models.GalleryStanding) {
	ranked = []models.GalleryStanding{}
	unranked = []models.GalleryStanding{}
	for _, s := range standings {
		if s.TotalVotes >= minVotes {
			ranked = append(ranked, s)
		} else {
			unranked = append(unranked, s)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if *a.Score != *b.Score {
			return *a.Score > *b.Score
		}
		if a.TotalVotes != b.TotalVotes {
			return a.TotalVotes > b.TotalVotes
		}
		if la, lb := lastVoteOrZero(a.LastVoteAt), lastVoteOrZero(b.LastVoteAt); !la.Equal(lb) {
			return la.After(lb)
		}
		return a.GalleryID < b.GalleryID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	sort.Slice(unranked, func(i, j int) bool {
		a, b := unranked[i], unranked[j]
		if a.TotalVotes != b.TotalVotes {
			return a.TotalVotes > b.TotalVotes
		}
		return a.Handle < b.Handle
	})

	return ranked, unranked
}

// splitItemStandings is the item-level counterpart; only zero-vote items
// go unranked.
func splitItemStandings(standings []models.ItemStanding) (ranked, unranked []models.ItemStanding) {
	ranked = []models.ItemStanding{}
	unranked = []models.ItemStanding{}
	for _, s := range standings {
		if s.TotalVotes > 0 {
			ranked = append(ranked, s)
		} else {
			unranked = append(unranked, s)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if *a.Score != *b.Score {
			return *a.Score > *b.Score
		}
		if a.TotalVotes != b.TotalVotes {
			return a.TotalVotes > b.TotalVotes
		}
		if la, lb := lastVoteOrZero(a.LastVoteAt), lastVoteOrZero(b.LastVoteAt); !la.Equal(lb) {
			return la.After(lb)
		}
		return a.ItemID < b.ItemID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	sort.Slice(unranked, func(i, j int) bool {
		return unranked[i].Subject < unranked[j].Subject
	})

	return ranked, unranked
}

func lastVoteOrZero(at *time.Time) time.Time {
	if at == nil {
		return time.Time{}
	}
	return *at
}
