package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	app := fiber.New()
	app.Get("/ok", NewHealthHandler("dev", up, up).HealthCheck)
	app.Get("/degraded", NewHealthHandler("dev", up, down).HealthCheck)
	app.Get("/", NewHealthHandler("prod", up, up).Root)

	status, body := send(t, app, http.MethodGet, "/ok", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = send(t, app, http.MethodGet, "/degraded", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unhealthy", checks["redis"])

	_, body = send(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, "prod", body["mode"])
}
