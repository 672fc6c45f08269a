package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vikram110703/booking-airbnb-backend/internal/auth"
	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/model"
	"github.com/vikram110703/booking-airbnb-backend/internal/repository"
)

// AuthService handles registration, login and session validation.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
	Profile(ctx context.Context, token string) (*model.Profile, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	bcryptCost int
}

// NewAuthService creates a new authentication service.
// bcryptCost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		bcryptCost: bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidPassword
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// ValidateToken verifies a session token and rejects logged-out ones.
func (s *authService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	// Sessions stay usable while redis is down; only a confirmed revocation rejects.
	revoked, err := s.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.Warn().Err(err).Str("jti", claims.ID).Msg("revocation lookup failed, accepting token")
		revoked = false
	}
	if revoked {
		return nil, fmt.Errorf("%w: logged out", apperrors.ErrInvalidToken)
	}

	return claims, nil
}

// Profile returns the identity behind a session token.
// A missing token is not an error: the caller is simply anonymous and gets nil.
func (s *authService) Profile(ctx context.Context, token string) (*model.Profile, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user.Profile(), nil
}

// Logout revokes a still-valid token until its natural expiry.
// Missing or already invalid tokens need no revocation.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}

	return s.tokenStore.RevokeToken(ctx, claims.ID, s.jwtService.RemainingTTL(claims))
}
