// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/isoloir/auth"
	"github.com/danielhkuo/isoloir/cliparse"
	"github.com/danielhkuo/isoloir/identity"
	"github.com/danielhkuo/isoloir/middleware"
	"github.com/danielhkuo/isoloir/models"
)

type AuthHandler struct {
	store *identity.Store
	cfg   cliparse.Config
}

func NewAuthHandler(store *identity.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg}
}

// Register handles POST /api/electeurs/inscription
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	e, err := h.store.Register(r.Context(), req.Nom, req.Prenom, req.Email, req.MotDePasse)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Success: true,
		ID:      e.ID,
	})
}

// LoginElecteur handles POST /api/auth/electeur
func (h *AuthHandler) LoginElecteur(w http.ResponseWriter, r *http.Request) {
	var req models.ElecteurLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	e, err := h.store.AuthenticateElecteur(r.Context(), req.Email, req.MotDePasse)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElecteurLoginResponse{
		Success:    true,
		Electeur:   e,
		CleSession: auth.GenerateSessionKey(auth.RoleElecteur, e.ID, h.cfg.SessionKeySalt),
	})
}

// LoginAdmin handles POST /api/auth/admin
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		badRequest(w, "Invalid JSON")
		return
	}

	a, err := h.store.AuthenticateAdmin(r.Context(), req.Username, req.MotDePasse)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Success:  true,
		Admin:    a,
		CleAdmin: auth.GenerateSessionKey(auth.RoleAdmin, a.ID, h.cfg.SessionKeySalt),
	})
}

// ListElecteurs handles GET /api/electeurs (admin)
func (h *AuthHandler) ListElecteurs(w http.ResponseWriter, r *http.Request) {
	electeurs, err := h.store.ListElecteurs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElecteursResponse{
		Success:   true,
		Electeurs: electeurs,
	})
}
