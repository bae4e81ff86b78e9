// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/photo-faceoff/auth"
	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/middleware"
	"github.com/danielhkuo/photo-faceoff/models"
)

type QuotaHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuotaHandler(db *sql.DB, cfg cliparse.Config) *QuotaHandler {
	return &QuotaHandler{db: db, cfg: cfg}
}

// GetQuota handles GET /quota
// Reads the remaining allowance without consuming it.
func (h *QuotaHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	voter := auth.FromRequest(r)

	// Authenticated callers are never metered
	if voter.Authenticated() {
		middleware.JSONResponse(w, http.StatusOK, models.QuotaResponse{
			Remaining: 0,
			Unlimited: true,
		})
		return
	}

	if voter.AnonToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Anon-Token header required")
		return
	}

	remaining := h.cfg.AnonQuota
	err := h.db.QueryRow(`
		SELECT remaining FROM anon_quota WHERE token = $1
	`, voter.AnonToken).Scan(&remaining)

	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query quota", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuotaResponse{
		Remaining: remaining,
	})
}

// CheckAndConsumeQuota atomically spends one matchup fetch for an anonymous
// identity. The row is seeded lazily at the configured allotment; the
// decrement is a single conditional UPDATE so concurrent fetches against the
// same token cannot overspend. Resets belong to the external session layer.
func CheckAndConsumeQuota(db *sql.DB, token string, allotment int) (allowed bool, remaining int, err error) {
	_, err = db.Exec(`
		INSERT INTO anon_quota (token, remaining, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO NOTHING
	`, token, allotment, time.Now())
	if err != nil {
		return false, 0, err
	}

	res, err := db.Exec(`
		UPDATE anon_quota SET remaining = remaining - 1
		WHERE token = $1 AND remaining > 0
	`, token)
	if err != nil {
		return false, 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	err = db.QueryRow(`
		SELECT remaining FROM anon_quota WHERE token = $1
	`, token).Scan(&remaining)
	if err != nil {
		return false, 0, err
	}

	return affected > 0, remaining, nil
}
