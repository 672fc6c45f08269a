package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vikram110703/booking-airbnb-backend/internal/model"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

// PlaceHandler handles listing endpoints.
type PlaceHandler struct {
	placeService service.PlaceService
}

// NewPlaceHandler creates a new place handler.
func NewPlaceHandler(placeService service.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// PlaceRequest is the body of create and update.
// The web client sends photos as addedPhotos; photos is accepted too.
type PlaceRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title" validate:"required"`
	Address     string          `json:"address"`
	AddedPhotos []string        `json:"addedPhotos"`
	Photos      []string        `json:"photos"`
	Description string          `json:"description"`
	Perks       []string        `json:"perks"`
	ExtraInfo   string          `json:"extraInfo"`
	CheckIn     string          `json:"checkIn"`
	CheckOut    string          `json:"checkOut"`
	MaxGuests   int             `json:"maxGuests" validate:"min=1"`
	Price       decimal.Decimal `json:"price"`
}

func (r PlaceRequest) attributes() model.PlaceAttributes {
	photos := r.AddedPhotos
	if photos == nil {
		photos = r.Photos
	}
	return model.PlaceAttributes{
		Title:       r.Title,
		Address:     r.Address,
		Photos:      photos,
		Description: r.Description,
		Perks:       r.Perks,
		ExtraInfo:   r.ExtraInfo,
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MaxGuests:   r.MaxGuests,
		Price:       r.Price,
	}
}

// CreatePlace godoc
// @Summary Create a listing owned by the session user
// @Tags places
// @Accept json
// @Produce json
// @Param request body PlaceRequest true "Listing"
// @Success 200 {object} model.Place
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /places [post]
func (h *PlaceHandler) CreatePlace(c echo.Context) error {
	ownerID, err := requesterID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req PlaceRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	place, err := h.placeService.CreatePlace(c.Request().Context(), ownerID, req.attributes())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}

// UserPlaces godoc
// @Summary Listings owned by the session user
// @Tags places
// @Produce json
// @Success 200 {array} model.Place
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /user-places [get]
func (h *PlaceHandler) UserPlaces(c echo.Context) error {
	ownerID, err := requesterID(c)
	if err != nil {
		return writeError(c, err)
	}

	places, err := h.placeService.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, places)
}

// GetPlace godoc
// @Summary Fetch one listing
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} model.Place
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /places/{id} [get]
func (h *PlaceHandler) GetPlace(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	place, err := h.placeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}

// UpdatePlace godoc
// @Summary Update a listing; owner only
// @Tags places
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Param request body PlaceRequest true "Listing"
// @Success 200 {object} model.Place
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /places/{id} [put]
func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
	requester, err := requesterID(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req PlaceRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest("invalid request body")
	}
	if req.ID != "" && req.ID != id.String() {
		return invalidRequest("body id does not match path")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	place, err := h.placeService.UpdatePlace(c.Request().Context(), requester, id, req.attributes())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}

// ListPlaces godoc
// @Summary All listings
// @Tags places
// @Produce json
// @Success 200 {array} model.Place
// @Router /places [get]
func (h *PlaceHandler) ListPlaces(c echo.Context) error {
	places, err := h.placeService.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, places)
}
