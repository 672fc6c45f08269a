package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vikram110703/booking-airbnb-backend/internal/model"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

// BookingHandler handles reservation endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingRequest represents a reservation request.
// Dates accept either a plain date (2006-01-02) or RFC 3339.
type BookingRequest struct {
	Place          string          `json:"place" validate:"required,uuid"`
	CheckIn        string          `json:"checkIn" validate:"required"`
	CheckOut       string          `json:"checkOut" validate:"required"`
	NumberOfGuests int             `json:"numberOfGuests" validate:"min=1"`
	Name           string          `json:"name" validate:"required"`
	Phone          string          `json:"phone" validate:"required"`
	Price          decimal.Decimal `json:"price"`
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// CreateBooking godoc
// @Summary Reserve a place for the session user
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body BookingRequest true "Reservation"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	requester, err := requesterID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	placeID, err := uuid.Parse(req.Place)
	if err != nil {
		return invalidRequest("invalid place")
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return invalidRequest("invalid checkIn")
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return invalidRequest("invalid checkOut")
	}

	booking, err := h.bookingService.CreateBooking(c.Request().Context(), requester, placeID, model.StayDetails{
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		Name:           req.Name,
		Phone:          req.Phone,
		Price:          req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// ListBookings godoc
// @Summary Reservations of the session user with their places
// @Tags bookings
// @Produce json
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c echo.Context) error {
	requester, err := requesterID(c)
	if err != nil {
		return writeError(c, err)
	}

	bookings, err := h.bookingService.ListByRequester(c.Request().Context(), requester)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}
