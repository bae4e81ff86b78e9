// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/middleware"
	"github.com/danielhkuo/photo-faceoff/models"
)

type GalleryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewGalleryHandler(db *sql.DB, cfg cliparse.Config) *GalleryHandler {
	return &GalleryHandler{db: db, cfg: cfg}
}

// CreateGallery handles POST /galleries
func (h *GalleryHandler) CreateGallery(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGalleryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Handle = strings.TrimSpace(req.Handle)
	if req.Handle == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "handle is required")
		return
	}
	if len(req.Handle) < 2 || len(req.Handle) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "handle must be 2-50 characters")
		return
	}

	galleryID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO gallery (id, handle, public, created_at)
		VALUES ($1, $2, $3, $4)
	`, galleryID, req.Handle, req.Public, time.Now())

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key") {
			middleware.ErrorResponse(w, http.StatusConflict, "Handle already taken")
			return
		}
		slog.Error("failed to insert gallery", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create gallery")
		return
	}

	slog.Info("gallery created", "gallery_id", galleryID, "handle", req.Handle, "public", req.Public)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGalleryResponse{
		GalleryID: galleryID,
	})
}

// AddItem handles POST /galleries/{id}/items
// Registers an already-uploaded media object as a rateable item. The
// media_url comes from the external upload pipeline; this server never
// touches media bytes.
func (h *GalleryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	galleryID := r.PathValue("id")
	if galleryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gallery id is required")
		return
	}

	var req models.AddItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.MediaURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "media_url is required")
		return
	}
	if req.Subject == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "subject is required")
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

	itemID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO item (id, gallery_id, subject, media_url, active, rating, win_count, loss_count, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, 0, 0, $6)
	`, itemID, galleryID, req.Subject, req.MediaURL, cliparse.DefaultStartScore, time.Now())

	if err != nil {
		slog.Error("failed to insert item", "error", err, "gallery_id", galleryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add item")
		return
	}

	slog.Info("item added", "item_id", itemID, "gallery_id", galleryID, "subject", req.Subject)

	middleware.JSONResponse(w, http.StatusCreated, models.AddItemResponse{
		ItemID: itemID,
		Rating: cliparse.DefaultStartScore,
	})
}

// SetVisibility handles POST /galleries/{id}/visibility
// Flips community-pool eligibility for the whole gallery. Selection reads
// the flag live, so no item state needs touching here.
func (h *GalleryHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	galleryID := r.PathValue("id")
	if galleryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gallery id is required")
		return
	}

	var req models.SetVisibilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.db.Exec(`
		UPDATE gallery SET public = $1 WHERE id = $2
	`, req.Public, galleryID)
	if err != nil {
		slog.Error("failed to update gallery visibility", "error", err, "gallery_id", galleryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update visibility")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Gallery not found")
		return
	}

	slog.Info("gallery visibility updated", "gallery_id", galleryID, "public", req.Public)

	middleware.JSONResponse(w, http.StatusOK, models.Gallery{
		ID:     galleryID,
		Public: req.Public,
	})
}

// DeactivateItem handles POST /items/{id}/deactivate
// Soft delete: the item drops out of every selection pool but historic
// vote records referencing it stay intact.
func (h *GalleryHandler) DeactivateItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item id is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE item SET active = FALSE WHERE id = $1
	`, itemID)
	if err != nil {
		slog.Error("failed to deactivate item", "error", err, "item_id", itemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to deactivate item")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}

	slog.Info("item deactivated", "item_id", itemID)

	w.WriteHeader(http.StatusNoContent)
}

// GetGallery handles GET /galleries/{id}
// Returns the gallery and all of its items, inactive ones included, for
// the owner's management view.
func (h *GalleryHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	galleryID := r.PathValue("id")
	if galleryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gallery id is required")
		return
	}

	var gallery models.Gallery
	err := h.db.QueryRow(`
		SELECT id, handle, public, created_at FROM gallery WHERE id = $1
	`, galleryID).Scan(&gallery.ID, &gallery.Handle, &gallery.Public, &gallery.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Gallery not found")
		return
	}
	if err != nil {
		slog.Error("failed to query gallery", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, gallery_id, subject, media_url, active, rating, win_count, loss_count, created_at
		FROM item
		WHERE gallery_id = $1
		ORDER BY created_at, id
	`, galleryID)
	if err != nil {
		slog.Error("failed to query items", "error", err, "gallery_id", galleryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.GalleryID, &it.Subject, &it.MediaURL, &it.Active,
			&it.Rating, &it.WinCount, &it.LossCount, &it.CreatedAt); err != nil {
			slog.Error("failed to scan item", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GalleryWithItems{
		Gallery: gallery,
		Items:   items,
	})
}
