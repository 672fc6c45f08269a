package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vikram110703/booking-airbnb-backend/internal/auth"
	apperrors "github.com/vikram110703/booking-airbnb-backend/internal/errors"
	"github.com/vikram110703/booking-airbnb-backend/internal/model"
)

func newTestAuthService(repo *MockUserRepository, store *MockTokenStore) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService, store, bcrypt.MinCost), jwtService
}

func hashedUser(t *testing.T, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: uuid.New(), Name: "A", Email: email, PasswordHash: string(hash)}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			userName: "A",
			email:    " A@X.com ",
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "email already registered",
			userName: "A",
			email:    "a@x.com",
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name:     "unique index violation from a concurrent registration",
			userName: "A",
			email:    "a@x.com",
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name:          "missing password",
			userName:      "A",
			email:         "a@x.com",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc, _ := newTestAuthService(mockRepo, new(MockTokenStore))

			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "a@x.com", user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	stored := hashedUser(t, "a@x.com", "p")

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(stored, nil)
			},
		},
		{
			name:     "user not found",
			email:    "nobody@x.com",
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockTokenStore)
			tt.setupMock(mockRepo)
			svc, _ := newTestAuthService(mockRepo, mockStore)

			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, token)
				assert.Equal(t, stored.ID, user.ID)

				mockStore.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
				claims, err := svc.ValidateToken(context.Background(), token)
				require.NoError(t, err)
				assert.Equal(t, stored.ID, claims.Subject())
				assert.Equal(t, "a@x.com", claims.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockStore := new(MockTokenStore)
	svc, jwtService := newTestAuthService(new(MockUserRepository), mockStore)

	token, err := jwtService.GenerateToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, apperrors.ErrMissingToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "abc.def.ghi")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		mockStore.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()
		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("revocation lookup failure accepts the token", func(t *testing.T) {
		mockStore.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, errors.New("redis: connection refused")).Once()
		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
	})
}

func TestAuthService_Profile(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "A", Email: "a@x.com", PasswordHash: "secret"}

	t.Run("no token yields a nil profile", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc, _ := newTestAuthService(mockRepo, new(MockTokenStore))

		profile, err := svc.Profile(context.Background(), "")
		assert.NoError(t, err)
		assert.Nil(t, profile)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("valid token yields the user without credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockTokenStore)
		svc, jwtService := newTestAuthService(mockRepo, mockStore)
		token, err := jwtService.GenerateToken(user.ID, user.Email)
		require.NoError(t, err)

		mockStore.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
		mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		profile, err := svc.Profile(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, &model.Profile{ID: user.ID, Name: "A", Email: "a@x.com"}, profile)
	})

	t.Run("invalid token is an error, not a nil profile", func(t *testing.T) {
		svc, _ := newTestAuthService(new(MockUserRepository), new(MockTokenStore))

		profile, err := svc.Profile(context.Background(), "garbage")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		assert.Nil(t, profile)
	})
}

func TestAuthService_Logout(t *testing.T) {
	mockStore := new(MockTokenStore)
	svc, jwtService := newTestAuthService(new(MockUserRepository), mockStore)

	token, err := jwtService.GenerateToken(uuid.New(), "a@x.com")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	mockStore.On("RevokeToken", mock.Anything, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), token))
	assert.NoError(t, svc.Logout(context.Background(), ""))
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))

	mockStore.AssertNumberOfCalls(t, "RevokeToken", 1)
}
