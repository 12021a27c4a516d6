package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/equiledger/backend/internal/access"
	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/service"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Authenticate requires a bearer token. A missing header is 401; a
// header that is present but does not verify is 403, preserving the
// upstream clients' expectations.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		token := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			token = parts[1]
		}

		claims, err := h.tokens.VerifySession(token)
		if err != nil {
			writeError(w, http.StatusForbidden, "Access denied. Invalid bearer token.")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFrom(r *http.Request) *service.SessionClaims {
	claims, _ := r.Context().Value(claimsContextKey).(*service.SessionClaims)
	return claims
}

// caller builds the access identity from the verified token claims.
// The email needed for account-ownership comparison is not in the
// token, so it is resolved from the caller's own stored record.
func (h *Handler) caller(r *http.Request) (access.Caller, error) {
	claims := claimsFrom(r)
	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return access.Caller{}, err
	}
	return access.Caller{ID: user.ID, Email: user.Email, Role: claims.Role}, nil
}

// expenseCaller is the id-keyed identity for expense routes; no store
// round trip is needed since expenses compare owners by account id.
func expenseCaller(r *http.Request) access.Caller {
	claims := claimsFrom(r)
	return access.Caller{ID: claims.UserID, Role: claims.Role}
}

func callerRole(r *http.Request) model.Role {
	return claimsFrom(r).Role
}
