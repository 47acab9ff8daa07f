// Command inkstream runs the blog backend: user registration/login with
// cookie-based session tokens and post endpoints with cover image upload to
// an S3-compatible media store.
//
// @title Inkstream API
// @version 1.0
// @description Minimal blog backend with cookie-based session tokens.
// @BasePath /
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

	"github.com/user/inkstream-go/apperror"
	"github.com/user/inkstream-go/auth"
	"github.com/user/inkstream-go/config"
	"github.com/user/inkstream-go/db"
	_ "github.com/user/inkstream-go/docs" // swagger spec registration
	"github.com/user/inkstream-go/posts"
	s3storage "github.com/user/inkstream-go/storage/s3"
)

func main() {
	// .env support for development; production sets variables directly.
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

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	media, err := s3storage.New(s3storage.Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Endpoint:        cfg.Storage.Endpoint,
		UsePathStyle:    cfg.Storage.UsePathStyle,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create media storage backend: %v", err)
	}

	// Manual dependency injection: repositories into services, services into
	// handlers.
	tokens := auth.NewTokenService(*cfg.Auth)
	authService := auth.NewAuthService(auth.NewPostgresUserRepository(pool), tokens)
	authHandlers := auth.NewHandlers(authService)

	postService := posts.NewPostService(posts.NewPostgresPostRepository(pool), media, cfg.Storage.UploadFolder)
	postHandlers := posts.NewPostHandlers(postService)

	r := chi.NewRouter()

	// Global middleware. Chi requires all middleware to be registered before
	// any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that answers in the apperror response shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public routes
	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())
	r.Post("/logout", authHandlers.HandleLogout())
	r.Get("/post", postHandlers.HandleListPosts())
	r.Get("/post/{id}", postHandlers.HandleGetPost())

	// Routes requiring a valid session token cookie
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/profile", authHandlers.HandleProfile())
		r.Post("/post", postHandlers.HandleCreatePost())
		r.Put("/post", postHandlers.HandleUpdatePost())
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

	// Graceful shutdown on SIGINT/SIGTERM.
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

// writeError is a local helper for the panic recovery middleware; it keeps
// panic responses in the same shape as handler errors.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
