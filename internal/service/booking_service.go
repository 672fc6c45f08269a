package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/model"
	"github.com/vikram110703/booking-airbnb-backend/internal/repository"
)

// BookingService handles reservations.
type BookingService interface {
	CreateBooking(ctx context.Context, requesterID, placeID uuid.UUID, stay model.StayDetails) (*model.Booking, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	placeRepo   repository.PlaceRepository
}

// NewBookingService creates a new booking service.
func NewBookingService(bookingRepo repository.BookingRepository, placeRepo repository.PlaceRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		placeRepo:   placeRepo,
	}
}

func validateStay(stay model.StayDetails, place *model.Place) error {
	if stay.CheckIn.IsZero() || stay.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", apperrors.ErrValidation)
	}
	if !stay.CheckOut.After(stay.CheckIn) {
		return fmt.Errorf("%w: checkOut must be after checkIn", apperrors.ErrValidation)
	}
	if stay.NumberOfGuests <= 0 {
		return fmt.Errorf("%w: numberOfGuests must be positive", apperrors.ErrValidation)
	}
	if stay.NumberOfGuests > place.MaxGuests {
		return fmt.Errorf("%w: place allows at most %d guests", apperrors.ErrValidation, place.MaxGuests)
	}
	if strings.TrimSpace(stay.Name) == "" || strings.TrimSpace(stay.Phone) == "" {
		return fmt.Errorf("%w: name and phone are required", apperrors.ErrValidation)
	}
	if stay.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// CreateBooking reserves a place for the requester.
// The place is read from the store, bypassing the listing cache, so guest
// limits are checked against the latest saved listing.
func (s *bookingService) CreateBooking(ctx context.Context, requesterID, placeID uuid.UUID, stay model.StayDetails) (*model.Booking, error) {
	place, err := s.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("find place: %w", err)
	}

	if err := validateStay(stay, place); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		PlaceID:        placeID,
		UserID:         requesterID,
		CheckIn:        stay.CheckIn,
		CheckOut:       stay.CheckOut,
		NumberOfGuests: stay.NumberOfGuests,
		Name:           strings.TrimSpace(stay.Name),
		Phone:          strings.TrimSpace(stay.Phone),
		Price:          stay.Price,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// ListByRequester lists the requester's bookings with each place resolved.
// Places are loaded in one batched lookup; a booking whose place no longer
// exists is returned with a nil Place.
func (s *bookingService) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return []model.Booking{}, nil
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	seen := make(map[uuid.UUID]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.PlaceID]; ok {
			continue
		}
		seen[b.PlaceID] = struct{}{}
		ids = append(ids, b.PlaceID)
	}

	places, err := s.placeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve places: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Place, len(places))
	for i := range places {
		byID[places[i].ID] = &places[i]
	}

	for i := range bookings {
		bookings[i].Place = byID[bookings[i].PlaceID]
	}
	return bookings, nil
}
