package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/config"
	"github.com/equiledger/backend/internal/handler"
	"github.com/equiledger/backend/internal/repository"
	"github.com/equiledger/backend/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		logrus.Fatalf("could not parse config: %s", err)
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	pool, err := repository.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("unable to initialize store: %s", err)
	}
	defer pool.Close()

	userRepo := repository.NewUserPostgres(pool)
	expenseRepo := repository.NewExpensePostgres(pool)

	tokens := service.NewTokens(cfg.JWTSecret)
	mailer := service.NewSMTPMailer(&cfg.SMTP)
	authService := service.NewAuth(userRepo, tokens, mailer, cfg.FrontendURL)
	userService := service.NewUser(userRepo)
	expenseService := service.NewExpense(expenseRepo)

	uploads, err := handler.NewUploads(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logrus.Fatalf("could not prepare upload dir: %s", err)
	}

	h := handler.NewHandler(authService, userService, expenseService, tokens, uploads, cfg.CORSOrigin)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h.Router(),
	}

	go func() {
		logrus.Infof("server running on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown error: %s", err)
	}
}
