// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/LeonLav77/photoroullete-backend/internal/cache"
	"github.com/LeonLav77/photoroullete-backend/internal/connection"
	"github.com/LeonLav77/photoroullete-backend/internal/database"
	"github.com/LeonLav77/photoroullete-backend/internal/game"
	"github.com/LeonLav77/photoroullete-backend/internal/handlers"
	"github.com/LeonLav77/photoroullete-backend/internal/lobby"
	"github.com/LeonLav77/photoroullete-backend/internal/middleware"
	"github.com/LeonLav77/photoroullete-backend/internal/router"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Optional collaborators: the engine runs without either, keeping local
	// development a single binary.
	var archive game.Archiver
	if os.Getenv("PG_HOST") != "" {
		pool, err := database.Connect(context.Background())
		if err != nil {
			log.Fatalf("database connect: %v", err)
		}
		defer pool.Close()
		archive = database.NewArchive(pool)
		logger.Info("finished-game archive enabled")
	} else {
		logger.Warn("PG_HOST not set, finished games will not be persisted")
	}

	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		logger.Info("game action history queue enabled")
	}

	// Every registry is built exactly once here and injected by reference.
	hub := handlers.NewHub(logger)
	connections := connection.NewRegistry()
	lobbies := lobby.NewRegistry(connections, hub, logger)
	games := game.NewManager(game.ConfigFromEnv(), lobbies, hub, archive, logger)
	rt := router.New(connections, lobbies, games, hub, logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, hub, rt),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
