package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Liveness probe. No business logic, no dependencies.
func registerHealthRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "payments",
		})
	})
}
