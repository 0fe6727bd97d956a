// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/isoloir/election"
	"github.com/danielhkuo/isoloir/middleware"
	"github.com/danielhkuo/isoloir/models"
)

type VoteHandler struct {
	svc *election.Service
}

func NewVoteHandler(svc *election.Service) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// CreateVote handles POST /api/votes (admin)
func (h *VoteHandler) CreateVote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	vote, err := h.svc.CreateVote(r.Context(), req.Titre, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	audit(r, "vote created", "vote_id", vote.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Success: true,
		Vote:    &vote,
	})
}

// ChangeStatut handles POST /api/votes/statut (admin)
func (h *VoteHandler) ChangeStatut(w http.ResponseWriter, r *http.Request) {
	var req models.ChangeStatutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.ID == 0 || req.Statut == "" {
		badRequest(w, "id and statut are required")
		return
	}

	vote, err := h.svc.TransitionStatus(r.Context(), req.ID, req.Statut)
	if err != nil {
		writeError(w, err)
		return
	}
	audit(r, "vote status changed", "vote_id", vote.ID, "statut", vote.Statut)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Success: true,
		Vote:    &vote,
	})
}

// ListVotes handles GET /api/votes
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.svc.ListVotes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{
		Success: true,
		Votes:   votes,
	})
}

// ActiveVote handles GET /api/vote/actif. vote is null when nothing is active.
func (h *VoteHandler) ActiveVote(w http.ResponseWriter, r *http.Request) {
	vote, err := h.svc.GetActiveVote(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Success: true,
		Vote:    vote,
	})
}

// AddOption handles POST /api/options (admin)
func (h *VoteHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	var req models.AddOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.VoteID == 0 {
		badRequest(w, "vote_id is required")
		return
	}

	opt, err := h.svc.AddOption(r.Context(), req.VoteID, req.Libelle, req.Description, req.Photo)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.OptionResponse{
		Success: true,
		Option:  opt,
	})
}

// DeleteOption handles POST /api/options/supprimer (admin)
func (h *VoteHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}
	if req.ID == 0 {
		badRequest(w, "id is required")
		return
	}

	if err := h.svc.DeleteOption(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ListVoteOptions handles GET /api/options/vote?vote_id=
func (h *VoteHandler) ListVoteOptions(w http.ResponseWriter, r *http.Request) {
	voteID, ok := queryVoteID(w, r)
	if !ok {
		return
	}
	if voteID == 0 {
		badRequest(w, "vote_id is required")
		return
	}

	options, err := h.svc.ListOptions(r.Context(), voteID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{
		Success: true,
		Options: options,
	})
}

// ListAllOptions handles GET /api/options
func (h *VoteHandler) ListAllOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.svc.ListAllOptions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{
		Success: true,
		Options: options,
	})
}

// queryVoteID reads the optional vote_id query parameter. It writes the 400
// itself and returns false when the value is not a positive integer.
func queryVoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("vote_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "vote_id must be a positive integer")
		return 0, false
	}
	return id, true
}
