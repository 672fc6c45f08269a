package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vikram110703/booking-airbnb-backend/internal/model"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	tokenTTL     time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned next to the session cookie.
type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// Test godoc
// @Summary Liveness check
// @Tags meta
// @Produce json
// @Success 200 {string} string
// @Router /test [get]
func (h *AuthHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, " api is working ")
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login and receive the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	c.SetCookie(sessionCookie(token, h.tokenTTL, h.cookieSecure))
	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
	})
}

// Profile godoc
// @Summary Current session user, or null when logged out
// @Tags auth
// @Produce json
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	profile, err := h.authService.Profile(c.Request().Context(), sessionToken(c))
	if err != nil {
		return writeError(c, err)
	}
	if profile == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, profile)
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {boolean} boolean
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), sessionToken(c)); err != nil {
		return writeError(c, err)
	}
	c.SetCookie(sessionCookie("", 0, h.cookieSecure))
	return c.JSON(http.StatusOK, true)
}
