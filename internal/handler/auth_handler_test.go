package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"motorlog/internal/auth"
	"motorlog/internal/errors"
	"motorlog/internal/model"
)

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAccountService) Profile(ctx context.Context, identity auth.Identity) (*model.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Register", mock.Anything, "Ann", "a@x.com", "Abc12345!").Return(&model.User{Email: "a@x.com"}, nil)

		h := NewAuthHandler(svc, false)
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/signup",
			strings.NewReader(`{"name":"Ann","email":"a@x.com","password":"Abc12345!"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := h.Signup(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		// No sensitive data echoed back.
		assert.NotContains(t, rec.Body.String(), "Abc12345!")
		svc.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Register", mock.Anything, "Ann", "a@x.com", "Abc12345!").Return(nil, errors.ErrUserExists)

		h := NewAuthHandler(svc, false)
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/signup",
			strings.NewReader(`{"name":"Ann","email":"a@x.com","password":"Abc12345!"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := h.Signup(e.NewContext(req, rec))
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		h := NewAuthHandler(new(MockAccountService), false)
		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPost, "/api/signup",
			strings.NewReader(`{"name":"Ann"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := h.Signup(e.NewContext(req, rec))
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := new(MockAccountService)
	svc.On("Login", mock.Anything, "a@x.com", "Abc12345!").Return("the-token", &model.User{Email: "a@x.com"}, nil)

	h := NewAuthHandler(svc, false)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"a@x.com","password":"Abc12345!"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "the-token")

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.TokenCookieName, cookie.Name)
	assert.Equal(t, "the-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(auth.TokenExpiry.Seconds()), cookie.MaxAge)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	svc := new(MockAccountService)
	svc.On("Login", mock.Anything, "missing@x.com", "Abc12345!").Return("", nil, errors.ErrUserNotFound)

	h := NewAuthHandler(svc, false)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"missing@x.com","password":"Abc12345!"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(new(MockAccountService), false)
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()

	err := h.Logout(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.TokenCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
}
