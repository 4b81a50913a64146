package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/config"
	"github.com/iliyamo/lost-and-found/internal/database"
	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/queue"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/router"
)

func main() {
	// A .env file is optional; real environments export variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis is optional; a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}

	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)
	claims := repository.NewClaimRepo(db)

	e := echo.New()
	e.HideBanner = true
	router.Register(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewItemHandler(items),
		handler.NewClaimHandler(claims, items),
		cfg, rdb)

	// Background consumer turning activity events into log lines.  It
	// reconnects on its own and never takes the API down with it.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
