package apiserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/expected-so/canonicallog"
	"github.com/gofiber/fiber/v2"
	"github.com/wharfdock/wharfd/internal/types"
)

// Server exposes the container resource model as a JSON API. All resource
// payloads use the lowerCamelCase wire contract from core/types.
type Server struct {
	log     *slog.Logger
	service types.ContainerService
	config  *types.Config
	app     *fiber.App
}

func New(service types.ContainerService, config *types.Config) *Server {
	return &Server{
		log:     slog.With(slog.String("component", "apiserver")),
		service: service,
		config:  config,
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting api server", slog.String("addr", s.config.APIAddr))

	app := fiber.New(fiber.Config{
		AppName:               "wharfd",
		DisableStartupMessage: true,
	})
	app.Use(s.newCanonicalLogMiddleware())

	containers := app.Group("/v1").Group("/containers")
	containers.Get("/", s.handleListContainers)
	containers.Post("/", s.handleCreateContainer)
	containers.Put("/", s.handleApplyContainer)
	containers.Get("/:name", s.handleGetContainer)
	containers.Delete("/:name", s.handleDeleteContainer)
	containers.Put("/:name/status", s.handleUpdateContainerStatus)
	containers.Get("/:name/logs-available", s.handleContainerLogsAvailable)

	s.app = app
	go func() {
		if err := app.Listen(s.config.APIAddr); err != nil {
			s.log.Error("api server stopped", slog.Any("error", err))
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down api server")
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) newCanonicalLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logContext := canonicallog.NewLogLine(c.Context())
		startedAt := time.Now()
		canonicallog.LogAttr(logContext, slog.String("method", c.Method()))
		canonicallog.LogAttr(logContext, slog.String("path", c.Path()))

		err := c.Next()

		canonicallog.LogAttr(logContext, slog.Int("status", c.Response().StatusCode()))
		canonicallog.LogDuration(logContext, time.Now().Sub(startedAt))
		canonicallog.PrintLine(logContext, "api-request")

		return err
	}
}
