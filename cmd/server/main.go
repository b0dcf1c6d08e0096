package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-room-booking/internal/app"
	"github.com/iliyamo/cinema-room-booking/internal/config"
	"github.com/iliyamo/cinema-room-booking/internal/database"
	"github.com/iliyamo/cinema-room-booking/internal/handler"
	"github.com/iliyamo/cinema-room-booking/internal/middleware"
	"github.com/iliyamo/cinema-room-booking/internal/queue"
	"github.com/iliyamo/cinema-room-booking/internal/repository"
	"github.com/iliyamo/cinema-room-booking/internal/router"
	"github.com/iliyamo/cinema-room-booking/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := app.NewLogger(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(database.Config{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	consumables := repository.NewConsumableRepo(db)
	formulas := repository.NewFormulaRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	publisher := service.NewPublisher(cfg.AMQPURL, log)
	invalidator := middleware.NewCacheInvalidator(cacheCfg, rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(cfg, rooms, bookings, consumables, formulas)
	customerH := handler.NewCustomerHandler(cfg, rooms, bookings, consumables, formulas, publisher, invalidator)
	adminH := handler.NewAdminHandler(cfg, rooms, bookings, consumables, invalidator)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.RegisterHealth(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheCfg, rlCfg, rdb)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret, rlCfg, rdb)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	if cfg.AMQPURL != "" {
		go queue.StartBookingConsumer(cfg.AMQPURL, log.Named("consumer"))
	}
	go sweep(log.Named("sweep"), bookings, tokens)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// sweep periodically completes past bookings and purges expired
// refresh tokens. Both operations are idempotent, so a missed or
// doubled tick is harmless.
func sweep(log *zap.Logger, bookings *repository.BookingRepo, tokens *repository.TokenRepo) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if n, err := bookings.CompletePast(ctx, time.Now().UTC()); err != nil {
			log.Warn("complete past bookings failed", zap.Error(err))
		} else if n > 0 {
			log.Info("completed past bookings", zap.Int64("count", n))
		}
		if n, err := tokens.PurgeExpired(ctx, 24*time.Hour); err != nil {
			log.Warn("purge refresh tokens failed", zap.Error(err))
		} else if n > 0 {
			log.Info("purged expired refresh tokens", zap.Int64("count", n))
		}
		cancel()
	}
}
