// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/danielhkuo/photo-faceoff/auth"
	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/middleware"
	"github.com/danielhkuo/photo-faceoff/models"
)

// ErrNotEnoughItems signals an empty matchup pool. It is surfaced to the
// client as an empty state, never as an HTTP failure.
var ErrNotEnoughItems = errors.New("not enough items for a matchup")

const ReasonNotEnoughItems = "not_enough_items"

type MatchupHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMatchupHandler(db *sql.DB, cfg cliparse.Config) *MatchupHandler {
	return &MatchupHandler{db: db, cfg: cfg}
}

// poolItem is one eligible item in a matchup pool.
type poolItem struct {
	id        string
	galleryID string
	handle    string
	subject   string
	mediaURL  string
	rating    float64
}

// GetMatchup handles GET /matchup?scope=personal|community
// Personal scope needs gallery_id; community scope accepts exclude=g1,g2,...
// (the session layer's rolling window of recently shown galleries).
// Selection never mutates rating state; the only write on this path is the
// anonymous quota decrement.
func (h *MatchupHandler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = models.ScopeCommunity
	}
	if scope != models.ScopePersonal && scope != models.ScopeCommunity {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scope must be personal or community")
		return
	}

	voter := auth.FromRequest(r)

	// Gate unauthenticated callers; signed-in voters are unbounded.
	var quotaRemaining *int
	if !voter.Authenticated() {
		if voter.AnonToken == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "X-Anon-Token header required")
			return
		}

		allowed, remaining, err := CheckAndConsumeQuota(h.db, voter.AnonToken, h.cfg.AnonQuota)
		if err != nil {
			slog.Error("failed to consume anon quota", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !allowed {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in to keep voting")
			return
		}
		quotaRemaining = &remaining
	}

	var (
		pool    []poolItem
		groupOf func(poolItem) string
	)

	switch scope {
	case models.ScopePersonal:
		galleryID := r.URL.Query().Get("gallery_id")
		if galleryID == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "gallery_id is required for personal scope")
			return
		}

		var err error
		pool, err = h.personalPool(galleryID)
		if err != nil {
			slog.Error("failed to load personal pool", "error", err, "gallery_id", galleryID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		// Pair across different subjects within the gallery when possible
		groupOf = func(it poolItem) string { return it.subject }

	case models.ScopeCommunity:
		full, err := h.communityPool()
		if err != nil {
			slog.Error("failed to load community pool", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		// Community matchups need two distinct public galleries to exist
		// before any exclusion filtering applies.
		if countGalleries(full) < 2 {
			h.emptyState(w, quotaRemaining)
			return
		}

		pool = filterExcluded(full, parseExcluded(r.URL.Query().Get("exclude")))
		if len(pool) < 2 {
			// Exclusion window emptied the pool; drop it and reselect
			pool = full
		}

		// Pair across different galleries when possible
		groupOf = func(it poolItem) string { return it.galleryID }
	}

	itemA, itemB, err := pickPair(pool, groupOf)
	if errors.Is(err, ErrNotEnoughItems) {
		h.emptyState(w, quotaRemaining)
		return
	}
	if err != nil {
		slog.Error("failed to pick matchup pair", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to select matchup")
		return
	}

	slog.Info("matchup selected", "scope", scope, "item_a", itemA.id, "item_b", itemB.id)

	middleware.JSONResponse(w, http.StatusOK, models.MatchupResponse{
		Available:      true,
		ItemA:          toMatchupItem(itemA),
		ItemB:          toMatchupItem(itemB),
		QuotaRemaining: quotaRemaining,
	})
}

func (h *MatchupHandler) emptyState(w http.ResponseWriter, quotaRemaining *int) {
	middleware.JSONResponse(w, http.StatusOK, models.MatchupResponse{
		Available:      false,
		Reason:         ReasonNotEnoughItems,
		QuotaRemaining: quotaRemaining,
	})
}

// personalPool loads the active items of one gallery.
func (h *MatchupHandler) personalPool(galleryID string) ([]poolItem, error) {
	rows, err := h.db.Query(`
		SELECT i.id, i.gallery_id, g.handle, i.subject, i.media_url, i.rating
		FROM item i
		JOIN gallery g ON i.gallery_id = g.id
		WHERE i.gallery_id = $1 AND i.active = TRUE
	`, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPool(rows)
}

// communityPool loads active items of public galleries. Gallery visibility
// is re-evaluated here on every selection, never cached on items.
func (h *MatchupHandler) communityPool() ([]poolItem, error) {
	rows, err := h.db.Query(`
		SELECT i.id, i.gallery_id, g.handle, i.subject, i.media_url, i.rating
		FROM item i
		JOIN gallery g ON i.gallery_id = g.id
		WHERE i.active = TRUE AND g.public = TRUE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPool(rows)
}

func scanPool(rows *sql.Rows) ([]poolItem, error) {
	var pool []poolItem
	for rows.Next() {
		var it poolItem
		if err := rows.Scan(&it.id, &it.galleryID, &it.handle, &it.subject, &it.mediaURL, &it.rating); err != nil {
			return nil, err
		}
		pool = append(pool, it)
	}
	return pool, rows.Err()
}

// pickPair draws the first item uniformly, then the second uniformly from
// the pool excluding the first item's group; if the rest of the pool shares
// the first item's group, any other item qualifies. Draws are unweighted by
// rating: coverage over competitive seeding.
func pickPair(pool []poolItem, groupOf func(poolItem) string) (poolItem, poolItem, error) {
	if len(pool) < 2 {
		return poolItem{}, poolItem{}, ErrNotEnoughItems
	}

	first := pool[rand.IntN(len(pool))]

	candidates := make([]poolItem, 0, len(pool)-1)
	for _, it := range pool {
		if groupOf(it) != groupOf(first) {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		for _, it := range pool {
			if it.id != first.id {
				candidates = append(candidates, it)
			}
		}
	}

	second := candidates[rand.IntN(len(candidates))]
	return first, second, nil
}

func parseExcluded(raw string) map[string]bool {
	excluded := make(map[string]bool)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			excluded[id] = true
		}
	}
	return excluded
}

func filterExcluded(pool []poolItem, excluded map[string]bool) []poolItem {
	if len(excluded) == 0 {
		return pool
	}
	filtered := make([]poolItem, 0, len(pool))
	for _, it := range pool {
		if !excluded[it.galleryID] {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func countGalleries(pool []poolItem) int {
	seen := make(map[string]bool)
	for _, it := range pool {
		seen[it.galleryID] = true
	}
	return len(seen)
}

func toMatchupItem(it poolItem) *models.MatchupItem {
	return &models.MatchupItem{
		ItemID:    it.id,
		GalleryID: it.galleryID,
		Handle:    it.handle,
		Subject:   it.subject,
		MediaURL:  it.mediaURL,
		Rating:    it.rating,
	}
}
