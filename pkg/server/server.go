package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/tracebase/datamarket/pkg/config"
	"github.com/tracebase/datamarket/pkg/contract"
	"github.com/tracebase/datamarket/pkg/service"
)

// Launch runs the catalog server until the context is cancelled or the
// listener fails.
func Launch(ctx context.Context, cfg config.Config) error {
	app := fiber.New(fiber.Config{
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "datamarket/" + cfg.Version,
		DisableStartupMessage: true,
	})

	app.Use(compress.New())
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
	}))
	app.Use(logger.New(logger.Config{
		Format: "${status} - ${latency} ${method} ${path}\n",
		Output: logrus.StandardLogger().Writer(),
	}))

	apiApp, err := newAPIApp(cfg)
	if err != nil {
		return err
	}
	app.Mount("/api", apiApp)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.SendString(cfg.Version)
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			logrus.Errorf("Failed to gracefully shutdown catalog server: %v", err)
		}
	}()

	logrus.Infof("Catalog server listening on %s", cfg.Address)

	if err := app.Listen(cfg.Address); err != nil {
		return fmt.Errorf("failed to start catalog server: %w", err)
	}
	return nil
}

// newAPIApp builds the sub-app mounted at /api: the catalog routes plus the
// error handler translating contract errors into status codes and JSON
// bodies.
func newAPIApp(cfg config.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *contract.Error
			if !errors.As(err, &e) {
				code := contract.ErrorCodeInternalError

				var f *fiber.Error
				if errors.As(err, &f) {
					switch f.Code {
					case fiber.StatusBadRequest:
						code = contract.ErrorCodeBadRequest
					case fiber.StatusNotFound:
						code = contract.ErrorCodeResourceDoesNotExist
					}
				}

				e = contract.NewError(code, err.Error())
			}

			var fn func(format string, args ...any)

			switch e.StatusCode() {
			case fiber.StatusBadRequest:
				fn = logrus.Infof
			case fiber.StatusNotFound:
				fn = logrus.Debugf
			default:
				fn = logrus.Errorf
			}

			fn("Error encountered in %s %s: %s", c.Method(), c.Path(), err)

			return c.Status(e.StatusCode()).JSON(e)
		},
	})

	parser := NewHTTPRequestParser()

	catalogService, err := service.NewCatalogService(logrus.StandardLogger(), cfg)
	if err != nil {
		return nil, err
	}

	registerCatalogRoutes(catalogService, parser, app)

	return app, nil
}
