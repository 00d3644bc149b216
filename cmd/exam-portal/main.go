// main is the entry point of the ANARC exam portal.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open (and migrate) the SQLite database, seed the exam catalogue
//  4. Build the token manager and the admit card generator
//  5. Register all HTTP routes and start the server in a goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/exam-portal --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/exam-portal
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/admitcard"
	"github.com/aanand-mishra/exam-portal/internal/auth"
	"github.com/aanand-mishra/exam-portal/internal/config"
	"github.com/aanand-mishra/exam-portal/internal/http/handlers/account"
	"github.com/aanand-mishra/exam-portal/internal/http/handlers/exam"
	"github.com/aanand-mishra/exam-portal/internal/http/handlers/registration"
	"github.com/aanand-mishra/exam-portal/internal/http/handlers/student"
	"github.com/aanand-mishra/exam-portal/internal/http/middleware"
	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting exam-portal",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Handlers only see the storage.Storage interface.
	db, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.SeedExams(storage.DefaultExams()); err != nil {
		log.Error("failed to seed exams", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	// ── 4. Auth and Admit Cards ───────────────────────────────────────────
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, time.Now)
	if err != nil {
		log.Error("failed to initialise auth", slog.String("error", err.Error()))
		os.Exit(1)
	}

	generator := admitcard.NewGenerator(
		admitcard.Layout{
			Organization: cfg.AdmitCard.Organization,
			Institution:  cfg.AdmitCard.Institution,
		},
		&admitcard.AssetLoader{
			LogoPath: cfg.AdmitCard.LogoPath,
			StampURL: cfg.AdmitCard.StampURL,
			Client:   &http.Client{Timeout: cfg.AdmitCard.FetchTimeout},
		},
		time.Now,
	)

	if cfg.Auth.AdminKey == "" {
		log.Warn("auth.admin_key is empty, registration review is disabled")
	}

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   POST /api/auth/signup               → create account + registration
	//   POST /api/auth/login                → exchange credentials for a token
	//   GET  /api/exams                     → list exams
	//   GET  /api/exams/{id}                → one exam
	//   GET  /api/me                        → profile               (student)
	//   PUT  /api/me                        → update profile        (student)
	//   PUT  /api/me/password               → change password       (student)
	//   GET  /api/me/dashboard              → registration summary  (student)
	//   GET  /api/me/admit-card             → admit card PDF        (student)
	//   POST /api/me/registrations          → register for an exam  (student)
	//   PUT  /api/registrations/{id}/status → review a registration (admin)
	router := http.NewServeMux()

	router.HandleFunc("POST /api/auth/signup", account.Signup(db, time.Now))
	router.HandleFunc("POST /api/auth/login", account.Login(db, tokens))

	router.HandleFunc("GET /api/exams", exam.GetList(db))
	router.HandleFunc("GET /api/exams/{id}", exam.GetByID(db))

	router.HandleFunc("GET /api/me", middleware.RequireStudent(tokens, student.GetProfile(db)))
	router.HandleFunc("PUT /api/me", middleware.RequireStudent(tokens, student.UpdateProfile(db, time.Now)))
	router.HandleFunc("PUT /api/me/password", middleware.RequireStudent(tokens, account.ChangePassword(db, time.Now)))
	router.HandleFunc("GET /api/me/dashboard", middleware.RequireStudent(tokens, student.GetDashboard(db)))
	router.HandleFunc("GET /api/me/admit-card", middleware.RequireStudent(tokens, student.DownloadAdmitCard(db, generator)))
	router.HandleFunc("POST /api/me/registrations", middleware.RequireStudent(tokens, student.RegisterForExam(db, time.Now)))

	router.HandleFunc("PUT /api/registrations/{id}/status",
		middleware.RequireAdmin(cfg.Auth.AdminKey, registration.UpdateStatus(db)))

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown; that
		// is the normal exit path, not an error.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered so the signal is not missed if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
