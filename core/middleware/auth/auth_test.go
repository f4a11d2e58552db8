package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{ApiKey: key}))
	app.Get("/runs", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/runs", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestNew(t *testing.T) {
	t.Run("Empty Key Disables Auth", func(t *testing.T) {
		app := setupApp("")
		resp, err := app.Test(httptest.NewRequest("POST", "/runs", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Read Requests Pass Without Key", func(t *testing.T) {
		app := setupApp("secret")
		resp, err := app.Test(httptest.NewRequest("GET", "/runs", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Mutating Request Without Key Is Rejected", func(t *testing.T) {
		app := setupApp("secret")
		resp, err := app.Test(httptest.NewRequest("POST", "/runs", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Mutating Request With Wrong Key Is Rejected", func(t *testing.T) {
		app := setupApp("secret")
		req := httptest.NewRequest("POST", "/runs", nil)
		req.Header.Set(Header, "nope")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Mutating Request With Key Passes", func(t *testing.T) {
		app := setupApp("secret")
		req := httptest.NewRequest("POST", "/runs", nil)
		req.Header.Set(Header, "secret")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
