package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/reservation"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBPool())
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	menu := repository.NewMenuRepo(db)

	publisher := queue.NewPublisher()
	svc := reservation.New(store, publisher, reservation.NewAbuseScorer(), cfg.ReservationPolicy(), nil)

	// The mail consumer drains confirmation events in the background
	// and keeps reconnecting on broker failure.  Delivery is best
	// effort: a dead broker never blocks bookings.
	go func() {
		if err := queue.StartReservationConsumer(queue.LogMailer{}); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()

	// Redis backs rate limiting and the public response cache.  When
	// the client is nil both middlewares become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e,
		handler.NewMenuHandler(menu),
		handler.NewAvailabilityHandler(svc),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	router.RegisterReservations(e, handler.NewReservationHandler(svc), cfg.JWTSecret)
	router.RegisterStaff(e, handler.NewStaffHandler(svc), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
