package internal

import (
	"context"
	"emojicounter/internal/controllers"
	"emojicounter/internal/providers"
	"emojicounter/internal/services"
	"emojicounter/internal/statistic/interfaces"
	"emojicounter/internal/structures"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

// BotSession is the part of *discordgo.Session the app drives.
type BotSession interface {
	Open() error
	Close() error
}

type App struct {
	WebServer   *http.Server
	conf        *structures.Config
	logger      providers.Logger
	session     BotSession
	snapshotter interfaces.SnapshotterInterface
}

func NewApp(session *discordgo.Session, bot *controllers.BotController, healthController *controllers.HealthController, service services.EmojiServiceInterface, snapshotter interfaces.SnapshotterInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	bot.Register(session)
	providers.RegisterGuildGauge(conf, service)

	app := &App{
		conf:        conf,
		logger:      logger,
		session:     session,
		snapshotter: snapshotter,
	}
	if conf.WebServer.Enabled {
		app.WebServer = newWebServer(healthController, conf, router, metrics)
	}
	return app
}

func newWebServer(healthController *controllers.HealthController, conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *http.Server {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}
	instrumentedAPI := providers.MetricsMiddleware(metrics, providers.CompressionMiddleware(apiMux))

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &http.Server{
		Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run restores snapshots, connects to Discord and blocks until SIGINT or
// SIGTERM, then disconnects and flushes every guild to disk.
func (app *App) Run() error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	if err := app.snapshotter.Restore(); err != nil {
		app.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	if err := app.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	app.logger.Infof(providers.TypeApp, "Bot connected")

	serverErr := make(chan error, 1)
	if app.WebServer != nil {
		go func() {
			app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
			if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	return errors.Join(runErr, app.shutdown())
}

// shutdown stops event delivery before the final flush, so no handler writes
// a snapshot after it. The logger is closed last.
func (app *App) shutdown() error {
	defer app.logger.Close()

	var errs []error
	if app.session != nil {
		if err := app.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close discord session: %w", err))
		}
	}
	if app.WebServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.WebServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := app.snapshotter.Persist(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		app.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	return errors.Join(errs...)
}
