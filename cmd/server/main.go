package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/SChakraborty04/KiitEats/internal/config"
	"github.com/SChakraborty04/KiitEats/internal/database"
	"github.com/SChakraborty04/KiitEats/internal/handler"
	"github.com/SChakraborty04/KiitEats/internal/logger"
	"github.com/SChakraborty04/KiitEats/internal/mailer"
	"github.com/SChakraborty04/KiitEats/internal/middleware"
	"github.com/SChakraborty04/KiitEats/internal/queue"
	"github.com/SChakraborty04/KiitEats/internal/repository"
	"github.com/SChakraborty04/KiitEats/internal/router"
	"github.com/SChakraborty04/KiitEats/internal/service"
)

func main() {
	// .env is optional; real deployments pass env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		zlog.Fatal("database open failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		zlog.Fatal("migrate failed", zap.Error(err))
	}
	if err := database.Seed(ctx, db, cfg.VendorSeedSecret, cfg.BcryptCost); err != nil {
		cancel()
		zlog.Fatal("seed failed", zap.Error(err))
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		zlog.Warn("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	courts := repository.NewFoodCourtRepo(db)
	inventory := repository.NewInventoryRepo(db)
	orders := repository.NewOrderRepo(db)
	dashboard := repository.NewDashboardRepo(db)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, zlog)
	publisher := service.NewOrderPublisher(zlog)

	authH := handler.NewAuthHandler(users, mail)
	catalogH := handler.NewCatalogHandler(courts, inventory)
	orderH := handler.NewOrderHandler(users, orders, dashboard, publisher)
	vendorH := handler.NewVendorHandler(courts, orders, inventory, cfg.JWTSecret, cfg.VendorTokenTTL, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics())

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	rateLimit := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterCustomer(e, authH, catalogH, orderH, cache, rateLimit)
	router.RegisterVendor(e, vendorH, cfg.JWTSecret)

	go queue.StartOrderConsumer(zlog)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
