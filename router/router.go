// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/isoloir/cliparse"
	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/election"
	"github.com/danielhkuo/isoloir/handlers"
	"github.com/danielhkuo/isoloir/identity"
	"github.com/danielhkuo/isoloir/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(conn *db.DB, cfg cliparse.Config) http.Handler {
	store := identity.NewStore(conn)
	svc := election.NewService(conn, store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, cfg)
	voteHandler := handlers.NewVoteHandler(svc)
	ballotHandler := handlers.NewBallotHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Heartbeat("/health"))
	r.Use(chimw.Timeout(requestTimeout))

	// Accounts (public)
	r.Post("/api/electeurs/inscription", middleware.WithLogging(authHandler.Register))
	r.Post("/api/auth/electeur", middleware.WithLogging(authHandler.LoginElecteur))
	r.Post("/api/auth/admin", middleware.WithLogging(authHandler.LoginAdmin))

	// Votes and options (public reads)
	r.Get("/api/votes", middleware.WithLogging(voteHandler.ListVotes))
	r.Get("/api/vote/actif", middleware.WithLogging(voteHandler.ActiveVote))
	r.Get("/api/options", middleware.WithLogging(voteHandler.ListAllOptions))
	r.Get("/api/options/vote", middleware.WithLogging(voteHandler.ListVoteOptions))

	// Ballot box. Casting is never logged with anything that could identify the caller.
	r.Post("/api/voter", middleware.WithAnonymousLogging(ballotHandler.CastBallot))
	r.Get("/api/bulletins", middleware.WithLogging(ballotHandler.ListBulletins))
	r.Get("/api/bulletins/count", middleware.WithLogging(ballotHandler.CountBulletins))

	// Results (sealed until the tally)
	r.Get("/api/resultats", middleware.WithLogging(resultsHandler.Resultats))
	r.Get("/api/statistiques", middleware.WithLogging(resultsHandler.Statistiques))

	// Elector session
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireElecteur(cfg.SessionKeySalt))
		r.Post("/api/jeton", middleware.WithLogging(ballotHandler.RequestJeton))
	})

	// Administration
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(cfg.SessionKeySalt))
		r.Post("/api/votes", middleware.WithLogging(voteHandler.CreateVote))
		r.Post("/api/votes/statut", middleware.WithLogging(voteHandler.ChangeStatut))
		r.Post("/api/options", middleware.WithLogging(voteHandler.AddOption))
		r.Post("/api/options/supprimer", middleware.WithLogging(voteHandler.DeleteOption))
		r.Post("/api/decompte", middleware.WithLogging(resultsHandler.Decompte))
		r.Get("/api/electeurs", middleware.WithLogging(authHandler.ListElecteurs))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("isoloir API v1"))
	})

	return r
}
