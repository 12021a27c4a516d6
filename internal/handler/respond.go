package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("could not encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps a service error to one HTTP response. notFoundMsg
// names the resource for 404s; internal error text never reaches the
// client.
func respondError(w http.ResponseWriter, err error, notFoundMsg string) {
	if msg, ok := apperr.IsValidation(err); ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	switch {
	case errors.Is(err, apperr.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "User with this email already exists.")
	case errors.Is(err, apperr.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, apperr.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, apperr.ErrInvalidToken):
		writeError(w, http.StatusForbidden, "Access denied. Invalid bearer token.")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(w, http.StatusForbidden, "Access denied. You do not have the required permissions.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		logrus.Errorf("internal error: %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
