package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/model"
)

func cabinAttributes() model.PlaceAttributes {
	return model.PlaceAttributes{
		Title:     "Cabin",
		Address:   "1 Lake Rd",
		Photos:    []string{"a.png", "b.png"},
		Perks:     []string{"wifi"},
		CheckIn:   "14:00",
		CheckOut:  "11:00",
		MaxGuests: 4,
		Price:     decimal.NewFromInt(100),
	}
}

func TestPlaceService_CreatePlace(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name          string
		mutate        func(*model.PlaceAttributes)
		expectedError error
	}{
		{name: "valid listing", mutate: func(*model.PlaceAttributes) {}},
		{name: "missing title", mutate: func(a *model.PlaceAttributes) { a.Title = "  " }, expectedError: apperrors.ErrValidation},
		{name: "zero guests", mutate: func(a *model.PlaceAttributes) { a.MaxGuests = 0 }, expectedError: apperrors.ErrValidation},
		{name: "negative price", mutate: func(a *model.PlaceAttributes) { a.Price = decimal.NewFromInt(-1) }, expectedError: apperrors.ErrValidation},
		{name: "bad check-in time", mutate: func(a *model.PlaceAttributes) { a.CheckIn = "2pm" }, expectedError: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPlaceRepository)
			if tt.expectedError == nil {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Place")).Return(nil)
			}
			svc := NewPlaceService(mockRepo, nil)

			attrs := cabinAttributes()
			tt.mutate(&attrs)
			place, err := svc.CreatePlace(context.Background(), owner, attrs)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, place)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, owner, place.OwnerID)
			assert.Equal(t, "Cabin", place.Title)
			assert.Equal(t, []string{"a.png", "b.png"}, place.Photos)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPlaceService_GetByID(t *testing.T) {
	mockRepo := new(MockPlaceRepository)
	svc := NewPlaceService(mockRepo, nil)
	missing := uuid.New()

	mockRepo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), missing)
	assert.ErrorIs(t, err, apperrors.ErrPlaceNotFound)
}

func TestPlaceService_UpdatePlace(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()

	existing := func() *model.Place {
		p := &model.Place{ID: uuid.New(), OwnerID: owner}
		p.Apply(cabinAttributes())
		return p
	}

	t.Run("non-owner is forbidden and nothing is written", func(t *testing.T) {
		mockRepo := new(MockPlaceRepository)
		place := existing()
		mockRepo.On("FindByID", mock.Anything, place.ID).Return(place, nil)
		svc := NewPlaceService(mockRepo, nil)

		attrs := cabinAttributes()
		attrs.Title = "Hijacked"
		updated, err := svc.UpdatePlace(context.Background(), intruder, place.ID, attrs)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, updated)
		assert.Equal(t, "Cabin", place.Title)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown place", func(t *testing.T) {
		mockRepo := new(MockPlaceRepository)
		id := uuid.New()
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
		svc := NewPlaceService(mockRepo, nil)

		_, err := svc.UpdatePlace(context.Background(), owner, id, cabinAttributes())
		assert.ErrorIs(t, err, apperrors.ErrPlaceNotFound)
	})

	t.Run("owner update persists exactly the submitted values and is idempotent", func(t *testing.T) {
		mockRepo := new(MockPlaceRepository)
		place := existing()
		originalID := place.ID
		mockRepo.On("FindByID", mock.Anything, place.ID).Return(place, nil)
		mockRepo.On("Update", mock.Anything, place).Return(nil)
		svc := NewPlaceService(mockRepo, nil)

		attrs := model.PlaceAttributes{
			Title:     "Cabin by the lake",
			Photos:    []string{"c.png"},
			Perks:     []string{},
			MaxGuests: 6,
			Price:     decimal.RequireFromString("149.50"),
		}

		first, err := svc.UpdatePlace(context.Background(), owner, place.ID, attrs)
		require.NoError(t, err)
		snapshot := *first

		second, err := svc.UpdatePlace(context.Background(), owner, place.ID, attrs)
		require.NoError(t, err)

		assert.Equal(t, snapshot, *second)
		assert.Equal(t, originalID, second.ID)
		assert.Equal(t, owner, second.OwnerID)
		assert.Equal(t, "Cabin by the lake", second.Title)
		assert.Equal(t, "", second.Address)
		assert.Equal(t, []string{"c.png"}, second.Photos)
		assert.True(t, decimal.RequireFromString("149.50").Equal(second.Price))
		mockRepo.AssertNumberOfCalls(t, "Update", 2)
	})
}

func TestPlaceService_Lists(t *testing.T) {
	owner := uuid.New()
	mockRepo := new(MockPlaceRepository)
	mockRepo.On("ListByOwner", mock.Anything, owner).Return([]model.Place{{Title: "Cabin", OwnerID: owner}}, nil)
	mockRepo.On("List", mock.Anything).Return(nil, nil)
	svc := NewPlaceService(mockRepo, nil)

	mine, err := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
