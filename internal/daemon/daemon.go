package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkvote-app/linkvote/internal/api"
	"github.com/linkvote-app/linkvote/internal/app/events"
	"github.com/linkvote-app/linkvote/internal/app/game"
	"github.com/linkvote-app/linkvote/internal/app/lockops"
	"github.com/linkvote-app/linkvote/internal/app/reset"
	"github.com/linkvote-app/linkvote/internal/health"
	"github.com/linkvote-app/linkvote/internal/infra/chaster"
	"github.com/linkvote-app/linkvote/internal/infra/journal"
)

// Daemon is the backend runtime. It wires together all services.
type Daemon struct {
	Config     Config
	Client     chaster.Client
	Gateway    *lockops.Gateway
	Dispatcher *events.Dispatcher
	ResetJob   *reset.Job
	Scheduler  *reset.Scheduler
	Journal    *journal.DB
	Health     *health.Checker
	Server     *api.Server

	cancel context.CancelFunc
}

// New creates and initializes a Daemon from the loaded configuration.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	if cfg.Secrets.APIKey == "" {
		log.Printf("[daemon] WARNING: CHASTER_API_KEY not set, remote calls will fail")
	}

	client := chaster.New(chaster.Options{
		BaseURL:  cfg.Chaster.BaseURL,
		APIKey:   cfg.Secrets.APIKey,
		ClientID: cfg.Secrets.ClientID,
	})
	gateway := lockops.NewGateway(client)
	selector := game.NewSelector()
	dispatcher := events.NewDispatcher(client, gateway, selector)
	job := reset.NewJob(client, gateway, cfg.Chaster.ExtensionSlug)

	srv := api.NewServer(client, dispatcher, gateway, job)
	srv.SetCORSOrigins(cfg.API.CORSOrigins)
	srv.SetBasicAuth(cfg.Secrets.BasicAuthUser, cfg.Secrets.BasicAuthPass)
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}

	d := &Daemon{
		Config:     cfg,
		Client:     client,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		ResetJob:   job,
		Scheduler:  reset.NewScheduler(job, cfg.ResetHour()),
		Server:     srv,
	}

	if cfg.Journal.Enabled {
		j, err := journal.Open(Home())
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		d.Journal = j
		srv.SetJournal(j)
	}

	baseURL := cfg.Chaster.BaseURL
	if baseURL == "" {
		baseURL = chaster.DefaultBaseURL
	}
	d.Health = health.NewChecker(d.Journal, cfg.Secrets.APIKey, baseURL)
	srv.SetHealth(d.Health)

	return d, nil
}

// Serve starts the HTTP server and the daily reset scheduler, blocking
// until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Scheduler.Run(ctx)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		if d.Journal != nil {
			_ = d.Journal.Close()
		}
	}()

	log.Printf("[daemon] serving on http://%s", addr)
	if d.Config.Metrics.Enabled {
		log.Printf("[daemon] metrics at http://%s/metrics", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Journal != nil {
		_ = d.Journal.Close()
	}
}
