package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vikram110703/booking-airbnb-backend/internal/auth"
	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "token"
	claimsContextKey  = "session"
)

// RequireSession rejects requests without a valid session cookie before the handler runs.
func RequireSession(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.ValidateToken(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				err = apperrors.ErrMissingToken
			}
			return writeError(c, err)
		},
	})
}

// requesterID returns the user behind the validated session.
func requesterID(c echo.Context) (uuid.UUID, error) {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return uuid.Nil, apperrors.ErrMissingToken
	}
	return claims.Subject(), nil
}

// sessionToken reads the raw cookie value; empty when absent.
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func sessionCookie(value string, ttl time.Duration, secure bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}

// writeError maps a domain error to its HTTP response. Server-side failures are logged.
func writeError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  "INVALID_REQUEST",
	})
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// parseID parses a path parameter holding a UUID.
func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}
