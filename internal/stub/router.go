// Package stub hosts an in-memory implementation of the marketplace API
// contract, so the client can be developed and end-to-end tested without the
// real backend or any external service.
package stub

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/stub/handler"
	"github.com/agrowork/agrowork-cli/internal/stub/middleware"
	"github.com/agrowork/agrowork-cli/internal/stub/store"
)

// NewRouter builds the Echo instance with the full contract registered.
func NewRouter(st *store.Store, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = newHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("agrowork_stub"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(st, jwtSecret, tokenTTL)
	orderHandler := handler.NewOrderHandler(st, log)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register/farmer", authHandler.RegisterFarmer)
	e.POST("/auth/register/laborer", authHandler.RegisterLaborer)

	// --- Order routes ---
	orders := e.Group("/orders", authMiddleware)
	orders.POST("", orderHandler.Create, middleware.RequireRole(domain.RoleFarmer))
	orders.GET("/my-orders", orderHandler.MyOrders, middleware.RequireRole(domain.RoleLaborer))
	orders.GET("/my-placed-orders", orderHandler.MyPlacedOrders, middleware.RequireRole(domain.RoleFarmer))
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, middleware.RequireRole(domain.RoleFarmer, domain.RoleLaborer))

	// --- Laborer directory ---
	e.GET("/laborers", orderHandler.Laborers, authMiddleware, middleware.RequireRole(domain.RoleFarmer))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}
