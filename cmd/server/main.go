package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/config"
	"github.com/docfest/festival-management/internal/database"
	"github.com/docfest/festival-management/internal/handler"
	"github.com/docfest/festival-management/internal/middleware"
	"github.com/docfest/festival-management/internal/queue"
	"github.com/docfest/festival-management/internal/repository"
	"github.com/docfest/festival-management/internal/router"
	"github.com/docfest/festival-management/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// Seed the bootstrap admin on an empty users table.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := database.EnsureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	cancel()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	docs := repository.NewDocumentaryRepo(db)
	screenings := repository.NewScreeningRepo(db)
	juryMembers := repository.NewJuryMemberRepo(db)
	ratings := repository.NewRatingRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	adminH := handler.NewAdminUserHandler(users)
	docH := handler.NewDocumentaryHandler(docs)
	screeningH := handler.NewScreeningHandler(screenings, docs, service.NewQueuePublisher())
	juryH := handler.NewJuryMemberHandler(juryMembers)
	ratingH := handler.NewRatingHandler(ratings, screenings, juryMembers)

	e := echo.New()

	// Redis-backed rate limiting and response caching degrade to
	// pass-through when Redis is unavailable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(screenings), config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, adminH, juryH, cfg.JWTSecret)
	router.RegisterStaff(e, docH, screeningH, juryH, ratingH, cfg.JWTSecret)

	// Background consumer logging published screenings.
	go func() {
		if err := queue.StartScheduleConsumer(); err != nil {
			log.Printf("schedule consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
