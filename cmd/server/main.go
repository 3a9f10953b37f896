package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/tunelibre/cancionero/internal/gateway"
	"github.com/tunelibre/cancionero/internal/gateway/middleware"
	"github.com/tunelibre/cancionero/internal/modules/favorites"
	"github.com/tunelibre/cancionero/internal/modules/songs"
	"github.com/tunelibre/cancionero/internal/modules/users"
	"github.com/tunelibre/cancionero/internal/shared/infrastructure/config"
	"github.com/tunelibre/cancionero/internal/shared/infrastructure/database"
	"github.com/tunelibre/cancionero/pkg/migration"
)

func main() {
	cfg := config.Load()

	log.Println("Connecting to DB...")
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database connected successfully")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := migration.AutoMigrate(cfg.Database.URL(), cfg.Server.MigrationsPath, logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is cache-only; run without it when unreachable.
	var redisClient *redis.Client
	if client, err := database.NewRedis(cfg.Redis); err != nil {
		log.Printf("Redis unavailable, running without song cache: %v", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	usersModule := users.NewModule(db)
	songsModule := songs.NewModule(db, redisClient)
	favoritesModule := favorites.NewModule(db, usersModule.UserFinder(), songsModule.SongFinder())

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		UserHandler:     usersModule.HTTPHandler(),
		SongHandler:     songsModule.HTTPHandler(),
		FavoriteHandler: favoritesModule.HTTPHandler(),
	})

	var handler http.Handler = mux
	handler = middleware.PrometheusMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler, cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
