package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"motorlog/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newProtectedEcho(jwtService *JWTService, userRepo *MockUserRepository) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		identity, err := CurrentIdentity(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]string{"email": identity.Email})
	}, TokenGuard(jwtService), IdentityLoader(userRepo))
	return e
}

func TestAuthGate_TokenFromHeader(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "a@x.com")
	assert.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "a@x.com"}, nil)

	e := newProtectedEcho(jwtService, userRepo)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestAuthGate_TokenFromCookie(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "a@x.com")
	assert.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "a@x.com"}, nil)

	e := newProtectedEcho(jwtService, userRepo)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthGate_MissingToken(t *testing.T) {
	e := newProtectedEcho(NewJWTService("test-secret"), new(MockUserRepository))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGate_InvalidToken(t *testing.T) {
	e := newProtectedEcho(NewJWTService("test-secret"), new(MockUserRepository))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGate_UserDeletedAfterTokenIssued(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "a@x.com")
	assert.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

	e := newProtectedEcho(jwtService, userRepo)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	userRepo.AssertExpectations(t)
}
