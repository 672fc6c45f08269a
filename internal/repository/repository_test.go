package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vikram110703/booking-airbnb-backend/internal/db"
	"github.com/vikram110703/booking-airbnb-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func TestUserRepository(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	user := &model.User{Name: "A", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	t.Run("FindByEmail returns the stored user", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)
	})

	t.Run("FindByID of unknown id is record not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("duplicate email violates the unique index", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Name: "B", Email: "a@x.com", PasswordHash: "other"})
		assert.Error(t, err)
	})
}

func TestPlaceRepository(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewPlaceRepository(gormDB)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()

	cabin := &model.Place{
		OwnerID:   owner,
		Title:     "Cabin",
		Photos:    []string{"b.png", "a.png"},
		Perks:     []string{"wifi", "parking"},
		CheckIn:   "14:00",
		CheckOut:  "11:00",
		MaxGuests: 4,
		Price:     decimal.NewFromInt(100),
	}
	require.NoError(t, repo.Create(ctx, cabin))
	time.Sleep(2 * time.Millisecond)
	loft := &model.Place{OwnerID: other, Title: "Loft", MaxGuests: 2, Price: decimal.NewFromInt(80)}
	require.NoError(t, repo.Create(ctx, loft))

	t.Run("FindByID keeps photo order and perks", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cabin.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"b.png", "a.png"}, found.Photos)
		assert.Equal(t, []string{"wifi", "parking"}, found.Perks)
		assert.True(t, decimal.NewFromInt(100).Equal(found.Price))
	})

	t.Run("ListByOwner filters by owner", func(t *testing.T) {
		places, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Cabin", places[0].Title)
	})

	t.Run("List returns every place in creation order", func(t *testing.T) {
		places, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "Cabin", places[0].Title)
		assert.Equal(t, "Loft", places[1].Title)
	})

	t.Run("FindByIDs skips unknown ids", func(t *testing.T) {
		places, err := repo.FindByIDs(ctx, []uuid.UUID{loft.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, loft.ID, places[0].ID)
	})

	t.Run("Update writes attributes but never the owner", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cabin.ID)
		require.NoError(t, err)
		found.Title = "Cabin by the lake"
		found.Perks = nil
		found.OwnerID = other
		require.NoError(t, repo.Update(ctx, found))

		reloaded, err := repo.FindByID(ctx, cabin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cabin by the lake", reloaded.Title)
		assert.Empty(t, reloaded.Perks)
		assert.Equal(t, owner, reloaded.OwnerID)
	})
}

func TestBookingRepository_ListByUser(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewBookingRepository(gormDB)
	ctx := context.Background()

	guest := uuid.New()
	placeID := uuid.New()
	checkIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mine := &model.Booking{
		PlaceID: placeID, UserID: guest, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
		NumberOfGuests: 2, Name: "A", Phone: "555", Price: decimal.NewFromInt(200),
	}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, &model.Booking{
		PlaceID: placeID, UserID: uuid.New(), CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1),
		NumberOfGuests: 1, Name: "B", Phone: "556",
	}))

	bookings, err := repo.ListByUser(ctx, guest)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, mine.ID, bookings[0].ID)
	assert.Equal(t, placeID, bookings[0].PlaceID)
	assert.Nil(t, bookings[0].Place)
}
