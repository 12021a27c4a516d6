// Package handler is the HTTP adapter: it frames requests and
// responses, derives the caller from the bearer token, and delegates
// every decision to the services underneath.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/service"
)

type Handler struct {
	auth     service.Authorization
	users    service.Users
	expenses service.Expenses
	tokens   *service.Tokens
	uploads  *Uploads
	validate *validator.Validate

	corsOrigin string
}

func NewHandler(auth service.Authorization, users service.Users, expenses service.Expenses,
	tokens *service.Tokens, uploads *Uploads, corsOrigin string) *Handler {
	return &Handler{
		auth:       auth,
		users:      users,
		expenses:   expenses,
		tokens:     tokens,
		uploads:    uploads,
		validate:   validator.New(),
		corsOrigin: corsOrigin,
	}
}

func (h *Handler) Router() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Logger)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{h.corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	mux.Get("/", h.Hello)

	mux.Route("/users", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Post("/login", h.Login)
		r.Post("/dashboard-login", h.DashboardLogin)
		r.Post("/request-password-reset", h.RequestPasswordReset)
		r.Post("/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)
			r.Get("/", h.GetAllUsers)
			r.Post("/invite", h.Invite)
			r.Get("/{id}", h.GetUser)
			r.Get("/email/{email}", h.GetUserByEmail)
			r.Put("/email/{email}", h.UpdateUser)
			r.Delete("/email/{email}", h.DeleteUser)
		})
	})

	mux.Route("/expenses", func(r chi.Router) {
		r.Use(h.Authenticate)
		r.Get("/", h.ListExpenses)
		r.Post("/", h.CreateExpense)
		r.Get("/{id}", h.GetExpense)
		r.Put("/{id}", h.UpdateExpense)
		r.Delete("/{id}", h.DeleteExpense)
	})

	mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploads.Dir()))))

	return mux
}

func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Hello, welcome to EquiLedger!"))
	logrus.Info("root endpoint was accessed")
}
