// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	r.Get("/api/votes", middleware.WithLogging(handler))

Logs the chi request id, method, path, client address, status and
duration_ms.

Ballot casting uses the reduced form, which records method, path and
status only:

	r.Post("/api/voter", middleware.WithAnonymousLogging(handler))

# Sessions

	r.Use(middleware.RequireAdmin(cfg.SessionKeySalt))
	r.Use(middleware.RequireElecteur(cfg.SessionKeySalt))

Keys are read from X-Admin-Key and X-Electeur-Key. The authenticated id
is available through AdminID and ElecteurID.

# CORS Middleware

	r.Use(middleware.CORS)

Allows GET, POST and OPTIONS with Content-Type and both session headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, "AlreadyIssued", "message")

	var req models.VoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "BadRequest", "Invalid JSON")
		return
	}

Bodies are capped at 1 MiB.
*/
package middleware
