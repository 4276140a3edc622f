package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"geositemap/internal/config"
	"geositemap/internal/handler"
	"geositemap/internal/site"
	"geositemap/internal/sitemap"
	"geositemap/internal/store"
	"geositemap/pkg/logger"
	"geositemap/pkg/ping"
)

type Application struct {
	configPath string
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "config/dev.yaml", "Configuration file path")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.SetGlobalLogger(logger.New(cfg.Logger))
	lg := logger.GetLogger().WithField("component", "server")

	siteCfg, err := site.New(cfg.Site)
	if err != nil {
		return fmt.Errorf("build site config: %w", err)
	}

	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	urls := sitemap.NewURLBuilder(siteCfg)
	h := handler.New(
		siteCfg,
		db,
		sitemap.NewEstimator(db, cfg.Sitemap.PageCapacity, cfg.Sitemap.MinFiles,
			cfg.Sitemap.MaxFiles, cfg.Sitemap.DefaultFileCount),
		sitemap.NewCityPager(db, urls, cfg.Sitemap.BatchSize, cfg.Sitemap.MaxBatches),
		sitemap.NewRenderer(siteCfg, urls),
		cfg.Sitemap.PageCapacity,
		cfg.Sitemap.MaxFiles,
	)

	srv := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	srv.Use(recover.New())
	h.Register(srv)

	if cfg.Ping.Enabled {
		go ping.New(cfg.Ping.Endpoints, time.Duration(cfg.Ping.TimeoutMs)*time.Millisecond).
			NotifyAll(siteCfg.SiteRoot + "/sitemap.xml")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		lg.WithField("addr", addr).Info("sitemap server listening")
		errCh <- srv.Listen(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		lg.WithField("signal", sig.String()).Info("shutdown signal received")
	}

	if err := srv.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	lg.Info("server stopped")
	return nil
}
