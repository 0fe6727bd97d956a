// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/election"
	"github.com/danielhkuo/isoloir/identity"
	"github.com/danielhkuo/isoloir/middleware"
)

// apiError is the wire form of a domain error
type apiError struct {
	err    error
	status int
	code   string
}

// Ordered: the first matching entry wins
var apiErrors = []apiError{
	{election.ErrAlreadyIssued, http.StatusConflict, "AlreadyIssued"},
	{election.ErrUnknownToken, http.StatusNotFound, "UnknownToken"},
	{election.ErrTokenAlreadyUsed, http.StatusConflict, "TokenAlreadyUsed"},
	{election.ErrInvalidOption, http.StatusBadRequest, "InvalidOption"},
	{election.ErrVoteNotActive, http.StatusConflict, "VoteNotActive"},
	{election.ErrIllegalTransition, http.StatusConflict, "IllegalTransition"},
	{election.ErrInvalidState, http.StatusConflict, "InvalidState"},
	{election.ErrNotYetTerminated, http.StatusConflict, "NotYetTerminated"},
	{election.ErrVoteNotFound, http.StatusNotFound, "VoteNotFound"},
	{election.ErrOptionNotFound, http.StatusNotFound, "OptionNotFound"},
	{election.ErrUnknownElecteur, http.StatusNotFound, "UnknownElecteur"},
	{election.ErrEmptyField, http.StatusBadRequest, "EmptyField"},
	{identity.ErrEmailTaken, http.StatusConflict, "EmailTaken"},
	{identity.ErrInvalidCredentials, http.StatusUnauthorized, "InvalidCredentials"},
	{identity.ErrElecteurNotFound, http.StatusNotFound, "UnknownElecteur"},
	{identity.ErrMissingField, http.StatusBadRequest, "EmptyField"},
	{db.ErrStorage, http.StatusServiceUnavailable, "Storage"},
}

// writeError maps err onto the response envelope. Unknown errors become a
// generic 500 so internal details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	for _, e := range apiErrors {
		if errors.Is(err, e.err) {
			if e.status >= http.StatusInternalServerError {
				slog.Error("storage failure", "error", err)
				middleware.ErrorResponse(w, e.status, e.code, e.err.Error())
				return
			}
			middleware.ErrorResponse(w, e.status, e.code, err.Error())
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal", "Internal error")
}

func badRequest(w http.ResponseWriter, message string) {
	middleware.ErrorResponse(w, http.StatusBadRequest, "BadRequest", message)
}

// audit records an administrative action with the admin id from the session
func audit(r *http.Request, action string, args ...any) {
	adminID, _ := middleware.AdminID(r.Context())
	slog.Info(action, append([]any{"admin_id", adminID}, args...)...)
}
