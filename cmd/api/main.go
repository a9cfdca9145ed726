package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/roamly/roamly-go/internal/config"
	"github.com/roamly/roamly-go/internal/graph"
	"github.com/roamly/roamly-go/internal/handler"
	"github.com/roamly/roamly-go/internal/middleware"
	"github.com/roamly/roamly-go/internal/repository"
	"github.com/roamly/roamly-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.MongoURI)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())

	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			slog.Warn("creating user indexes failed", "error", err)
		}
		if err := tripRepo.EnsureIndexes(ctx); err != nil {
			slog.Warn("creating trip indexes failed", "error", err)
		}
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	tripService := service.NewTripService(tripRepo)
	travelService := service.NewTravelService(cfg.RapidAPIKey, cfg.OpenWeatherAPIKey)

	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler(tripService)

	schema, err := graph.NewSchema(travelService)
	if err != nil {
		slog.Error("building graphql schema failed", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/auth/profile", authHandler.HandleGetProfile)
		r.Put("/api/auth/profile", authHandler.HandleUpdateProfile)
		r.Put("/api/auth/change-password", authHandler.HandleChangePassword)

		r.Post("/api/trips", tripHandler.HandleCreateTrip)
		r.Get("/api/trips", tripHandler.HandleListTrips)
		r.Get("/api/trips/upcoming", tripHandler.HandleUpcomingTrips)
		r.Get("/api/trips/past", tripHandler.HandlePastTrips)
		r.Get("/api/trips/{tripId}", tripHandler.HandleGetTrip)
		r.Put("/api/trips/{tripId}", tripHandler.HandleUpdateTrip)
		r.Delete("/api/trips/{tripId}", tripHandler.HandleDeleteTrip)
		r.Post("/api/trips/{tripId}/tips", tripHandler.HandleAddTip)
	})

	r.Handle("/graphql", graph.Handler(schema))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
