package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/service"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID        int64      `json:"id"`
	FName     string     `json:"fname"`
	SName     string     `json:"sname"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Token     string     `json:"token,omitempty"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}
	if err := h.validate.Struct(&in); err != nil {
		logrus.Warnf("missing required fields for creating user: %s", in.Email)
		writeError(w, http.StatusBadRequest, "First name, surname, email, password, and date of birth are required.")
		return
	}

	user, token, err := h.auth.Register(r.Context(), &in)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	writeJSON(w, http.StatusCreated, userSummary{
		ID:        user.ID,
		FName:     user.FName,
		SName:     user.SName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: &user.CreatedAt,
		Token:     token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		logrus.Warn("missing email or password for login attempt")
		writeError(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	user, token, err := h.auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, userSummary{
		ID:    user.ID,
		FName: user.FName,
		SName: user.SName,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

func (h *Handler) DashboardLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		logrus.Warn("missing email or password for dashboard login attempt")
		writeError(w, http.StatusBadRequest, "Authentication requirements not fulfilled.")
		return
	}

	user, token, err := h.auth.DashboardLogin(r.Context(), creds.Email, creds.Password)
	if err != nil {
		// every dashboard refusal reads the same to the client
		writeError(w, http.StatusUnauthorized, "Authentication requirements not fulfilled.")
		return
	}

	writeJSON(w, http.StatusOK, userSummary{
		ID:    user.ID,
		FName: user.FName,
		SName: user.SName,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	users, err := h.users.GetAll(r.Context(), caller)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	logrus.Info("fetched all users")
	writeJSON(w, http.StatusOK, map[string][]model.User{"all_users": users})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Current email is required.")
		return
	}

	var update service.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	caller, err := h.caller(r)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	user, err := h.users.Update(r.Context(), caller, email, &update)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, userSummary{
		ID:        user.ID,
		FName:     user.FName,
		SName:     user.SName,
		Email:     user.Email,
		Role:      user.Role,
		UpdatedAt: &user.UpdatedAt,
	})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required.")
		return
	}

	caller, err := h.caller(r)
	if err != nil {
		respondError(w, err, "User not found.")
		return
	}

	if err = h.users.Delete(r.Context(), caller, email); err != nil {
		respondError(w, err, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully."})
}

func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	if !callerRole(r).Elevated() {
		writeError(w, http.StatusForbidden, "Access denied. You do not have the required role.")
		return
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		logrus.Warn("email is required for inviting a user")
		writeError(w, http.StatusBadRequest, "Email is required.")
		return
	}

	if err := h.auth.Invite(r.Context(), payload.Email); err != nil {
		respondError(w, err, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation email sent successfully."})
}

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required.")
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), payload.Email); err != nil {
		respondError(w, err, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset email sent."})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Token == "" || payload.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Token and new password are required.")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), payload.Token, payload.NewPassword); err != nil {
		respondError(w, err, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully."})
}
