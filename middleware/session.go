// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/danielhkuo/isoloir/auth"
)

// Session headers
const (
	HeaderAdminKey    = "X-Admin-Key"
	HeaderElecteurKey = "X-Electeur-Key"
)

type contextKey int

const (
	adminIDKey contextKey = iota
	electeurIDKey
)

// RequireAdmin rejects requests without a valid X-Admin-Key and stores the
// admin id in the request context
func RequireAdmin(salt string) func(http.Handler) http.Handler {
	return requireSession(auth.RoleAdmin, HeaderAdminKey, adminIDKey, salt)
}

// RequireElecteur rejects requests without a valid X-Electeur-Key and stores
// the elector id in the request context
func RequireElecteur(salt string) func(http.Handler) http.Handler {
	return requireSession(auth.RoleElecteur, HeaderElecteurKey, electeurIDKey, salt)
}

func requireSession(role, header string, key contextKey, salt string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := r.Header.Get(header)
			if value == "" {
				ErrorResponse(w, http.StatusUnauthorized, "Unauthorized", header+" header required")
				return
			}

			id, err := auth.ValidateSessionKey(role, value, salt)
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid "+header)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, id)))
		})
	}
}

// AdminID returns the authenticated admin id set by RequireAdmin
func AdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

// ElecteurID returns the authenticated elector id set by RequireElecteur
func ElecteurID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(electeurIDKey).(int64)
	return id, ok
}
