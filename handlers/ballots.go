// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/isoloir/election"
	"github.com/danielhkuo/isoloir/middleware"
	"github.com/danielhkuo/isoloir/models"
)

type BallotHandler struct {
	svc *election.Service
}

func NewBallotHandler(svc *election.Service) *BallotHandler {
	return &BallotHandler{svc: svc}
}

// RequestJeton handles POST /api/jeton (elector session)
func (h *BallotHandler) RequestJeton(w http.ResponseWriter, r *http.Request) {
	var req models.JetonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.ElecteurID == 0 || req.VoteID == 0 {
		badRequest(w, "electeur_id and vote_id are required")
		return
	}

	// An elector can only ask for their own jeton
	sessionID, ok := middleware.ElecteurID(r.Context())
	if !ok || sessionID != req.ElecteurID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Forbidden", "session does not match electeur_id")
		return
	}

	jeton, err := h.svc.IssueToken(r.Context(), req.ElecteurID, req.VoteID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.JetonResponse{
		Success: true,
		Jeton:   jeton,
	})
}

// CastBallot handles POST /api/voter. No session: the jeton is the only credential.
func (h *BallotHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	var req models.VoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.Jeton == "" {
		badRequest(w, "jeton is required")
		return
	}

	// A missing option_id is left to the service so the jeton is judged first

	bulletinID, err := h.svc.CastBallot(r.Context(), req.Jeton, req.OptionID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoterResponse{
		Success:    true,
		BulletinID: bulletinID,
	})
}

// ListBulletins handles GET /api/bulletins[?vote_id=]
func (h *BallotHandler) ListBulletins(w http.ResponseWriter, r *http.Request) {
	voteID, ok := queryVoteID(w, r)
	if !ok {
		return
	}

	bulletins, err := h.svc.ListBulletins(r.Context(), voteID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BulletinsResponse{
		Success:   true,
		Bulletins: bulletins,
	})
}

// CountBulletins handles GET /api/bulletins/count[?vote_id=]
func (h *BallotHandler) CountBulletins(w http.ResponseWriter, r *http.Request) {
	voteID, ok := queryVoteID(w, r)
	if !ok {
		return
	}

	count, err := h.svc.CountBulletins(r.Context(), voteID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{
		Success: true,
		Count:   count,
	})
}
