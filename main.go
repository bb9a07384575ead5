// Entry point of the DevConnect API. It loads configuration, opens the
// database pool, runs migrations, wires services into handlers, sets up the
// chi router with middleware, and starts the HTTP server with graceful
// shutdown.
//
// @title DevConnect API
// @version 1.0
// @description Social profile network: users, profiles, posts, and a Github repository proxy.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
// @description Paste the JWT returned by /api/users or /api/auth
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
	"github.com/user/devconnect-go/config"
	"github.com/user/devconnect-go/db"
	_ "github.com/user/devconnect-go/docs" // Generated Swagger docs
	"github.com/user/devconnect-go/github"
	"github.com/user/devconnect-go/posts"
	"github.com/user/devconnect-go/profiles"
	"github.com/user/devconnect-go/students"
)

func main() {
	// .env is a development convenience; production sets real env vars.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.EnableExtensions(pool); err != nil {
		log.Fatalf("Failed to enable extensions: %v", err)
	}

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: services get the pool and config, handlers
	// get the services.
	authService := auth.NewAuthService(pool, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	profileService := profiles.NewProfileService(pool)
	profileHandlers := profiles.NewHandlers(profileService)

	postService := posts.NewPostService(pool)
	postHandlers := posts.NewHandlers(postService)

	studentService := students.NewStudentService(pool)
	studentHandlers := students.NewHandlers(studentService)

	githubClient := github.NewClient(*cfg.Github)
	githubHandlers := github.NewHandlers(githubClient)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
		ExposedHeaders:   []string{auth.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that reports through the apperror envelope so even a
	// crashed handler answers with the standard error shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("Server Error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "API running")
	})

	// Registration lives under /api/users for historical client compatibility.
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", authHandlers.HandleRegister())
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", authHandlers.HandleLogin())
		r.Group(func(r chi.Router) {
			r.Use(auth.TokenMiddleware(cfg.Auth))
			r.Get("/", authHandlers.HandleGetCurrentUser())
		})
	})

	// Profile routes mix public reads with token-gated writes, so the gate is
	// applied per-group rather than on the whole prefix.
	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", profileHandlers.HandleListProfiles())
		r.Get("/user/{user_id}", profileHandlers.HandleGetProfileByUser())
		r.Get("/github/{username}", githubHandlers.HandleListRepos())

		r.Group(func(r chi.Router) {
			r.Use(auth.TokenMiddleware(cfg.Auth))
			r.Get("/me", profileHandlers.HandleGetOwnProfile())
			r.Post("/", profileHandlers.HandleUpsertProfile())
			r.Delete("/", profileHandlers.HandleDeleteAccount())
			r.Put("/experience", profileHandlers.HandleAddExperience())
			r.Delete("/experience/{exp_id}", profileHandlers.HandleRemoveExperience())
			r.Put("/education", profileHandlers.HandleAddEducation())
			r.Delete("/education/{edu_id}", profileHandlers.HandleRemoveEducation())
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Use(auth.TokenMiddleware(cfg.Auth))
		postHandlers.RegisterRoutes(r)
	})

	r.Route("/api/student", func(r chi.Router) {
		r.Use(auth.TokenMiddleware(cfg.Auth))
		studentHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware, kept here
// to avoid pulling handler helpers into main.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
