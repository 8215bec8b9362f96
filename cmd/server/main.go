package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/reading-list/internal/config"
	"github.com/iliyamo/reading-list/internal/database"
	"github.com/iliyamo/reading-list/internal/handler"
	"github.com/iliyamo/reading-list/internal/queue"
	"github.com/iliyamo/reading-list/internal/repository"
	"github.com/iliyamo/reading-list/internal/router"
	"github.com/iliyamo/reading-list/internal/seed"
	queue_publisher "github.com/iliyamo/reading-list/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepo(db)
	books := repository.NewBookRepo(db)
	shelves := repository.NewShelfRepo(db)

	if cfg.SeedOnStart {
		if err := seed.Books(ctx, books, cfg.BooksSeedFile); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; cache disables itself
	cacheCfg := config.LoadCacheConfig()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterBooks(e,
		handler.NewBookHandler(cfg, books, shelves, rdb, cacheCfg, queue_publisher.PublishShelfUpdated),
		cfg, users)

	// Background consumer mirrors shelf events into logs/shelf.log.
	go func() {
		if err := queue.StartShelfConsumer(); err != nil {
			log.Printf("shelf consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
