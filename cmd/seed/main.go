package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vikram110703/booking-airbnb-backend/internal/auth"
	"github.com/vikram110703/booking-airbnb-backend/internal/cache"
	"github.com/vikram110703/booking-airbnb-backend/internal/config"
	"github.com/vikram110703/booking-airbnb-backend/internal/db"
	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/logger"
	"github.com/vikram110703/booking-airbnb-backend/internal/model"
	"github.com/vikram110703/booking-airbnb-backend/internal/repository"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

// SeedData is the layout of the seed file.
type SeedData struct {
	Host struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"host"`
	Places []SeedPlace `json:"places"`
}

// SeedPlace is one demo listing.
type SeedPlace struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       string   `json:"price"`
}

func main() {
	source := flag.String("file", "seed/places.json", "seed file path or http(s) URL")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log.Info().Msg("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	data, err := loadSeed(*source)
	if err != nil {
		log.Fatal().Err(err).Str("source", *source).Msg("load seed data")
	}
	log.Info().Int("places", len(data.Places)).Str("source", *source).Msg("seed data loaded")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	authService := service.NewAuthService(
		repository.NewUserRepository(gormDB),
		auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		auth.NewTokenStore(cacheClient),
		cfg.BcryptCost,
	)
	placeService := service.NewPlaceService(repository.NewPlaceRepository(gormDB), cacheClient)

	created, skipped, err := seed(context.Background(), authService, placeService, data)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("seed completed")
}

// loadSeed reads the seed file from disk or over HTTP.
func loadSeed(source string) (*SeedData, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch seed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		r = f
	}
	defer r.Close()

	var data SeedData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &data, nil
}

// seed makes sure the demo host exists, then creates any listing it does not own yet.
// Listings are matched by title so reruns do not duplicate them.
func seed(ctx context.Context, authService service.AuthService, placeService service.PlaceService, data *SeedData) (created int, skipped int, err error) {
	_, err = authService.Register(ctx, data.Host.Name, data.Host.Email, data.Host.Password)
	if err != nil && !errors.Is(err, apperrors.ErrDuplicateEmail) {
		return 0, 0, fmt.Errorf("register host: %w", err)
	}

	_, host, err := authService.Login(ctx, data.Host.Email, data.Host.Password)
	if err != nil {
		return 0, 0, fmt.Errorf("login host: %w", err)
	}
	ownerID := host.ID

	existing, err := placeService.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, 0, fmt.Errorf("list host places: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, p := range existing {
		titles[p.Title] = true
	}

	for _, sp := range data.Places {
		if titles[sp.Title] {
			skipped++
			continue
		}
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			log.Warn().Str("title", sp.Title).Str("price", sp.Price).Msg("skipping place with invalid price")
			skipped++
			continue
		}
		if _, err := placeService.CreatePlace(ctx, ownerID, model.PlaceAttributes{
			Title:       sp.Title,
			Address:     sp.Address,
			Photos:      sp.Photos,
			Description: sp.Description,
			Perks:       sp.Perks,
			ExtraInfo:   sp.ExtraInfo,
			CheckIn:     sp.CheckIn,
			CheckOut:    sp.CheckOut,
			MaxGuests:   sp.MaxGuests,
			Price:       price,
		}); err != nil {
			return created, skipped, fmt.Errorf("create place %q: %w", sp.Title, err)
		}
		titles[sp.Title] = true
		created++
	}

	log.Info().Str("host", host.Email).Msg("host ready")
	return created, skipped, nil
}
