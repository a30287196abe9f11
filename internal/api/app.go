package api

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/minithello/internal/config"
	"github.com/lk16/minithello/internal/middleware"
	"github.com/lk16/minithello/internal/policy"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 4 * 1024 // Requests only carry a move
)

// BuildApp creates the fiber app serving lookups on a solved table.
func BuildApp(cfg *config.ServerConfig, player *policy.Player) *fiber.App {
	app := fiber.New(fiber.Config{
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup solved table and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("player", player)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging(os.Stderr))

	// Setup all routes
	SetupRoutes(app)

	return app
}
