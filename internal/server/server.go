package server

import (
	"context"

	"backend-trailmap/internal/auth"
	"backend-trailmap/internal/catalog"
	"backend-trailmap/internal/config"
	"backend-trailmap/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

// RebuildFunc re-runs the full ingest/enrich/build pipeline. The result
// replaces the served catalog only when the rebuild succeeds.
type RebuildFunc func(ctx context.Context) (*catalog.Catalog, error)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	Redis   *redis.Client
	Holder  *catalog.Holder
	Stream  *stream.Hub
	rebuild RebuildFunc
}

func NewServer(cfg config.Config, redisClient *redis.Client, holder *catalog.Holder, rebuild RebuildFunc) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:     app,
		Cfg:     cfg,
		Redis:   redisClient,
		Holder:  holder,
		Stream:  stream.NewHub(redisClient, holder, cfg.MapFitPadding),
		rebuild: rebuild,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "routes": s.Holder.Get().Len()})
	})

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Cfg.AdminPasswordHash))
	registerRouteHandlers(s.App.Group("/routes"), s)
	registerTrackHandlers(s.App.Group("/tracks"), s)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)

	admin := s.App.Group("/admin", auth.JWTMiddleware(s.Cfg.JWTSecret))
	admin.Post("/reload", s.handleReload)
}
