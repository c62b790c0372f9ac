package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fridgeraiders/backend/config"
	"github.com/fridgeraiders/backend/internal/api"
	"github.com/fridgeraiders/backend/internal/database"
	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/router"
	"github.com/fridgeraiders/backend/internal/service"
	"github.com/fridgeraiders/backend/internal/session"
	"github.com/fridgeraiders/backend/internal/spoonacular"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	mode := "development"
	if config.IsProduction() {
		mode = "production"
	}
	logg, err := logger.New(mode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logg.Fatal("failed to connect to database", "error", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		logg.Fatal("failed to connect to redis", "error", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewManager(session.NewRedisStore(rdb), sessionTTL, logg)

	spoon := spoonacular.New(cfg.APIKey, logg, spoonacular.WithBaseURL(cfg.APIBaseURL))

	authService := service.NewAuthService(db, spoon)
	recipeService := service.NewRecipeService(db)
	prefService := service.NewPreferenceService(db)
	profileService := service.NewProfileService(db)

	engine := router.Setup(cfg.TemplatesGlob, db, sessions, router.Handlers{
		Auth:     api.NewAuthHandler(authService, logg),
		Recipe:   api.NewRecipeHandler(recipeService, prefService, spoon, logg),
		Profile:  api.NewProfileHandler(profileService, prefService, logg),
		Shopping: api.NewShoppingHandler(spoon, logg),
		Health:   api.NewHealthHandler(db, rdb),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logg.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", "error", err)
	}

	if err := rdb.Close(); err != nil {
		logg.Error("closing redis failed", "error", err)
	}
}
