package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/vinted-search/internal/api/handlers"
	"github.com/donaldgifford/vinted-search/internal/api/middleware"
	"github.com/donaldgifford/vinted-search/internal/config"
	"github.com/donaldgifford/vinted-search/internal/engine"
	"github.com/donaldgifford/vinted-search/internal/notify"
	"github.com/donaldgifford/vinted-search/internal/telemetry"
	"github.com/donaldgifford/vinted-search/internal/vinted"
)

var errShuttingDown = errors.New("shutting down")

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and the watch scheduler",
		RunE:  runServe,
	}
}

// routerDeps are the services exposed over HTTP.
type routerDeps struct {
	client  vinted.VintedClient
	limiter *vinted.RateLimiter
	watches handlers.WatchRunner
	ready   handlers.ReadyFunc
}

// newRouter wires middleware, probes, metrics and the Huma API onto Echo.
func newRouter(log *slog.Logger, deps routerDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(deps.ready)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("vinted-search API", Version))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(deps.client))
	handlers.RegisterBrandsRoutes(api, handlers.NewBrandsHandler(deps.client))
	handlers.RegisterCookiesRoutes(api, handlers.NewCookiesHandler(deps.client))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(deps.limiter))
	if deps.watches != nil {
		handlers.RegisterWatchRoutes(api, handlers.NewWatchesHandler(deps.watches))
	}

	return e
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notifications.Discord.Enabled {
		return notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(log)
}

func watchesFromConfig(cfg *config.Config) []engine.Watch {
	watches := make([]engine.Watch, 0, len(cfg.Watches))
	for _, w := range cfg.Watches {
		watches = append(watches, engine.Watch{Name: w.Name, URL: w.URL, Params: w.Params})
	}
	return watches
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	shutdownTracing, err := telemetry.Setup(cmd.Context(), &cfg.Tracing, Version, log)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("flushing traces failed", "error", err)
		}
	}()

	client, limiter := newVintedClient(cfg, log)
	eng := engine.NewEngine(client, newNotifier(cfg, log), watchesFromConfig(cfg),
		engine.WithLogger(log),
		engine.WithStaggerOffset(cfg.Schedule.StaggerOffset),
		engine.WithMaxSeen(cfg.Schedule.MaxSeen))

	sched, err := engine.NewScheduler(eng, cfg.Schedule.PollInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	var draining atomic.Bool
	e := newRouter(log, routerDeps{
		client:  client,
		limiter: limiter,
		watches: eng,
		ready: func() error {
			if draining.Load() {
				return errShuttingDown
			}
			return nil
		},
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.Watches) > 0 {
		sched.Start()
		log.Info("watch polling enabled",
			"watches", len(cfg.Watches),
			"interval", cfg.Schedule.PollInterval,
			"next_poll", sched.NextPoll())
	} else {
		log.Info("no watches configured, scheduler idle")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "default_variant", cfg.Vinted.DefaultVariant)

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			<-sched.Stop().Done()
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")
	draining.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	schedDone := sched.Stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	awaitBackground(shutdownCtx, schedDone.Done(), client.Wait, log)

	log.Info("server stopped")
	return nil
}

// awaitBackground waits for the running watch poll and then for background
// cookie refreshes, giving up when ctx expires. wait is only called once
// the poll has finished, so no new refresh can start while it runs.
func awaitBackground(ctx context.Context, pollDone <-chan struct{}, wait func(), log *slog.Logger) bool {
	select {
	case <-pollDone:
	case <-ctx.Done():
		log.Warn("watch poll still running at shutdown")
		return false
	}

	refreshed := make(chan struct{})
	go func() {
		wait()
		close(refreshed)
	}()

	select {
	case <-refreshed:
		return true
	case <-ctx.Done():
		log.Warn("cookie refresh still running at shutdown")
		return false
	}
}
