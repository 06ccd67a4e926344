package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-trailmap/internal/catalog"
	"backend-trailmap/internal/config"
	"backend-trailmap/internal/db"
	"backend-trailmap/internal/server"
	"backend-trailmap/internal/track"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	buildCatalog    func(context.Context, config.Config, *pgxpool.Pool) (*catalog.Catalog, error)
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, *pgxpool.Pool, *redis.Client, *catalog.Catalog, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		buildCatalog:    buildCatalog,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.Printf("postgres connection failed: %v", err)
	}

	rdb := deps.connectRedis(cfg)

	// A catalog that cannot be built is fatal: a ParseError or a
	// duplicate slug aborts startup rather than serving half a site.
	cat, err := deps.buildCatalog(context.Background(), cfg, pg)
	if err != nil {
		log.Printf("catalog build failed: %v", err)
		return
	}
	log.Printf("catalog built with %d routes", cat.Len())

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, pg, rdb, cat, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

// buildCatalog runs the full pipeline: ingest the tracks directory,
// enrich each track, load authored metadata and join the two.
func buildCatalog(ctx context.Context, cfg config.Config, pg *pgxpool.Pool) (*catalog.Catalog, error) {
	files, err := track.LoadDir(cfg.TracksDir)
	if err != nil {
		return nil, err
	}

	var src catalog.Source
	if pg != nil {
		src = catalog.NewPostgresSource(pg)
	} else {
		src = catalog.FileSource{Path: cfg.RoutesFile}
	}
	meta, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.Build(files, meta)
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, cat *catalog.Catalog, signals <-chan os.Signal, listen ListenFunc) error {
	holder := catalog.NewHolder(cat)
	rebuild := func(ctx context.Context) (*catalog.Catalog, error) {
		return buildCatalog(ctx, cfg, pg)
	}
	srv := server.NewServer(cfg, rdb, holder, rebuild)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if pg != nil {
		pg.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
