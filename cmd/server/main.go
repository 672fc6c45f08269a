package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vikram110703/booking-airbnb-backend/internal/auth"
	"github.com/vikram110703/booking-airbnb-backend/internal/cache"
	"github.com/vikram110703/booking-airbnb-backend/internal/config"
	"github.com/vikram110703/booking-airbnb-backend/internal/db"
	"github.com/vikram110703/booking-airbnb-backend/internal/handler"
	"github.com/vikram110703/booking-airbnb-backend/internal/logger"
	"github.com/vikram110703/booking-airbnb-backend/internal/repository"
	"github.com/vikram110703/booking-airbnb-backend/internal/router"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs

// @title Booking API
// @version 1.0
// @description Rental marketplace API: accounts, listings, reservations and photo uploads.
// @host localhost:4000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	// Prices render as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, caching and token revocation disabled")
	}
	cancelPing()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("create upload dir")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	placeRepo := repository.NewPlaceRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cfg.BcryptCost)
	placeService := service.NewPlaceService(placeRepo, cacheClient)
	bookingService := service.NewBookingService(bookingRepo, placeRepo)
	photoService := service.NewPhotoService(cfg.UploadDir, service.PhotoOptions{
		FetchTimeout: cfg.FetchTimeout,
		FetchRate:    cfg.FetchRate,
	})

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		authService,
		handler.NewAuthHandler(authService, jwtService.TTL(), cfg.CookieSecure),
		handler.NewPlaceHandler(placeService),
		handler.NewBookingHandler(bookingService),
		handler.NewUploadHandler(photoService),
	)

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
