package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/film-catalog/internal/config"     // Internal config loader
	"github.com/iliyamo/film-catalog/internal/database"   // MySQL connection helper
	"github.com/iliyamo/film-catalog/internal/handler"    // HTTP handlers
	"github.com/iliyamo/film-catalog/internal/middleware" // Rate limiting and caching middleware
	"github.com/iliyamo/film-catalog/internal/queue"      // Film event consumer
	"github.com/iliyamo/film-catalog/internal/repository" // Data access layer
	"github.com/iliyamo/film-catalog/internal/router"     // Route registration
	"github.com/iliyamo/film-catalog/internal/tmdb"       // Remote metadata client
)

func main() {
	// .env is optional; in containers the environment is injected directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limit disabled")
	}

	films := repository.NewFilmRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	catalog := tmdb.New(cfg.TmdbBaseURL, cfg.TmdbAPIKey)

	filmH := handler.NewFilmHandler(films)
	remoteH := handler.NewRemoteHandler(catalog)
	authH := handler.NewAuthHandler(cfg, users, tokens)

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterFilms(e, filmH, cfg.JWTSecret, cacheMW)
	router.RegisterRemote(e, remoteH, cacheMW)

	// The consumer reconnects on its own; it never takes the server down.
	go func() {
		if err := queue.StartFilmEventsConsumer(); err != nil {
			log.Printf("film events consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
