// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/isoloir/election"
	"github.com/danielhkuo/isoloir/middleware"
	"github.com/danielhkuo/isoloir/models"
)

type ResultsHandler struct {
	svc *election.Service
}

func NewResultsHandler(svc *election.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// Decompte handles POST /api/decompte (admin).
// The first call on a terminated vote counts the bulletins; later calls
// return the stored tally with deja_calcule set.
func (h *ResultsHandler) Decompte(w http.ResponseWriter, r *http.Request) {
	var req models.DecompteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.VoteID == 0 {
		badRequest(w, "vote_id is required")
		return
	}

	resultats, deja, err := h.svc.ComputeOrFetchResults(r.Context(), req.VoteID)
	if err != nil {
		writeError(w, err)
		return
	}
	audit(r, "decompte requested", "vote_id", req.VoteID, "deja_calcule", deja)

	middleware.JSONResponse(w, http.StatusOK, models.DecompteResponse{
		Success:        true,
		Resultats:      resultats,
		DejaCalcule:    deja,
		TotalBulletins: election.TotalBulletins(resultats),
		Gagnants:       election.Winners(resultats),
	})
}

// Resultats handles GET /api/resultats. Only tallied votes appear.
func (h *ResultsHandler) Resultats(w http.ResponseWriter, r *http.Request) {
	resultats, err := h.svc.ListResults(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultatsResponse{
		Success:   true,
		Resultats: resultats,
	})
}

// Statistiques handles GET /api/statistiques[?vote_id=]
func (h *ResultsHandler) Statistiques(w http.ResponseWriter, r *http.Request) {
	voteID, ok := queryVoteID(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Statistics(r.Context(), voteID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatistiquesResponse{
		Success:      true,
		Statistiques: stats,
	})
}
