package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"motorlog/internal/auth"
	"motorlog/internal/config"
	"motorlog/internal/handler"
	"motorlog/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	vehicleHandler *handler.VehicleHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)

	// Secured routes: token verified first, then the identity loader confirms
	// the user record still exists.
	secured := api.Group("", auth.TokenGuard(jwtService), auth.IdentityLoader(userRepo))

	secured.POST("/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)

	secured.GET("/vehicles", vehicleHandler.List)
	secured.POST("/vehicles", vehicleHandler.Create)
	secured.GET("/vehicles/:registrationNumber", vehicleHandler.Get)
	secured.PUT("/vehicles/:registrationNumber", vehicleHandler.Update)
	secured.DELETE("/vehicles/:registrationNumber", vehicleHandler.Delete)

	registerPages(e)
}

// registerPages wires the browser-facing paths with redirect-based access
// control: unauthenticated visits to a private page go to /login,
// authenticated visits to a public-only page go to /dashboard.
func registerPages(e *echo.Echo) {
	pages := e.Group("", PageGate())
	pages.GET("/", pagePlaceholder("home"))
	pages.GET("/dashboard", pagePlaceholder("dashboard"))
	pages.GET("/login", pagePlaceholder("login"))
	pages.GET("/signup", pagePlaceholder("signup"))
}

// PageGate returns middleware implementing the page-level redirect rules.
// Presence of the token cookie is what is checked, not its validity; an
// expired cookie still fails on the first API call.
func PageGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			isPublic := path == "/login" || path == "/signup"

			hasToken := false
			if cookie, err := c.Cookie(auth.TokenCookieName); err == nil && cookie.Value != "" {
				hasToken = true
			}

			if isPublic && hasToken {
				return c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
			}
			if !isPublic && !hasToken {
				return c.Redirect(http.StatusTemporaryRedirect, "/login")
			}
			return next(c)
		}
	}
}

func pagePlaceholder(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"page": name})
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
