package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/unibazaar/unibazaar-api/internal/config"
	"github.com/unibazaar/unibazaar-api/internal/domain/approval"
	"github.com/unibazaar/unibazaar-api/internal/domain/auth"
	"github.com/unibazaar/unibazaar-api/internal/domain/item"
	"github.com/unibazaar/unibazaar-api/internal/domain/notification"
	"github.com/unibazaar/unibazaar-api/internal/domain/user"
	"github.com/unibazaar/unibazaar-api/internal/domain/wallet"
	"github.com/unibazaar/unibazaar-api/internal/middleware"
	"github.com/unibazaar/unibazaar-api/internal/pkg/database"
	"github.com/unibazaar/unibazaar-api/internal/pkg/jwt"
	"github.com/unibazaar/unibazaar-api/internal/pkg/logger"
	"github.com/unibazaar/unibazaar-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting UniBazaar API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	itemRepo := item.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	itemCache := item.NewCache(redisClient)

	// ---------- WebSocket hub ----------
	hub := notification.NewHub(redisClient)
	go hub.Run()
	defer hub.Close()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, auth.NewTokenStore(redisClient))
	walletService := wallet.NewService(walletRepo)
	itemService := item.NewService(itemRepo, itemCache)
	notificationService := notification.NewService(notificationRepo, hub)
	approvalService := approval.NewService(db, walletService, itemRepo, approval.DefaultFeeSchedule, notificationService, itemCache)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	walletHandler := wallet.NewHandler(walletService)
	itemHandler := item.NewHandler(itemService)
	approvalHandler := approval.NewHandler(approvalService)
	notificationHandler := notification.NewHandler(notificationService, hub)
	userHandler := user.NewHandler(userRepo)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint; browsers can't set headers on the socket handshake,
	// so the token arrives as a query parameter.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(notificationHandler.Connect)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			response.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/wallet", walletHandler.Routes(authMiddleware))
		r.Mount("/items", approvalHandler.Routes(authMiddleware, itemHandler))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))

		r.Mount("/admin/items", approvalHandler.AdminRoutes(authMiddleware, middleware.RequireAdmin()))
		r.Mount("/admin/users", userHandler.AdminRoutes(authMiddleware, middleware.RequireAdmin()))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
