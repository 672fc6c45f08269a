package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vikram110703/booking-airbnb-backend/docs"
	"github.com/vikram110703/booking-airbnb-backend/internal/config"
	"github.com/vikram110703/booking-airbnb-backend/internal/handler"
	"github.com/vikram110703/booking-airbnb-backend/internal/metrics"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

const defaultUploadLimit = "100M"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	placeHandler *handler.PlaceHandler,
	bookingHandler *handler.BookingHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.FrontendURLs,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Warn()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(metrics.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	// Public routes
	e.GET("/test", authHandler.Test)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/profile", authHandler.Profile)
	e.POST("/logout", authHandler.Logout)
	e.POST("/upload-by-link", uploadHandler.UploadByLink)
	uploadLimit := cfg.UploadLimit
	if uploadLimit == "" {
		uploadLimit = defaultUploadLimit
	}
	e.POST("/upload", uploadHandler.Upload, middleware.BodyLimit(uploadLimit))
	e.GET("/places", placeHandler.ListPlaces)
	e.GET("/places/:id", placeHandler.GetPlace)

	// Secured routes (require a valid session cookie)
	session := handler.RequireSession(authService)

	e.POST("/places", placeHandler.CreatePlace, session)
	e.PUT("/places/:id", placeHandler.UpdatePlace, session)
	e.GET("/user-places", placeHandler.UserPlaces, session)
	e.POST("/bookings", bookingHandler.CreateBooking, session)
	e.GET("/bookings", bookingHandler.ListBookings, session)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
