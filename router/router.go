// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/handlers"
	"github.com/danielhkuo/photo-faceoff/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	galleryHandler := handlers.NewGalleryHandler(db, cfg)
	matchupHandler := handlers.NewMatchupHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, cfg)
	quotaHandler := handlers.NewQuotaHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Gallery and item management
	mux.HandleFunc("POST /galleries", middleware.WithLogging(galleryHandler.CreateGallery))
	mux.HandleFunc("GET /galleries/{id}", middleware.WithLogging(galleryHandler.GetGallery))
	mux.HandleFunc("POST /galleries/{id}/items", middleware.WithLogging(galleryHandler.AddItem))
	mux.HandleFunc("POST /galleries/{id}/visibility", middleware.WithLogging(galleryHandler.SetVisibility))
	mux.HandleFunc("POST /items/{id}/deactivate", middleware.WithLogging(galleryHandler.DeactivateItem))

	// Voting loop
	mux.HandleFunc("GET /matchup", middleware.WithLogging(matchupHandler.GetMatchup))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /quota", middleware.WithLogging(quotaHandler.GetQuota))

	// Leaderboards
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboardHandler.GetCommunityLeaderboard))
	mux.HandleFunc("GET /galleries/{id}/leaderboard", middleware.WithLogging(leaderboardHandler.GetGalleryLeaderboard))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("photo-faceoff API v1"))
	})

	return mux
}
