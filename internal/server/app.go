// Package server assembles the PromptDesk backend: storage, services, the
// HTTP API, the gRPC health endpoint and optional S3 backups.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/dbx"
	"github.com/dmitrijs2005/promptdesk/internal/logging"
	"github.com/dmitrijs2005/promptdesk/internal/server/backup"
	"github.com/dmitrijs2005/promptdesk/internal/server/config"
	"github.com/dmitrijs2005/promptdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/promptdesk/internal/server/relay"
	"github.com/dmitrijs2005/promptdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/promptdesk/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/promptdesk/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	dialect dbx.Dialect
	redis   *redis.Client
	handler http.Handler
}

// NewApp validates c, opens and migrates the database and wires the
// services into the HTTP router. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(w, c.LogFormat, c.LogLevel)

	db, dialect, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var rdb *redis.Client
	if c.RedisURL != "" {
		opts, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("redis url: %w", err)
		}
		rdb = redis.NewClient(opts)
	}

	opts := relay.DefaultOptions()
	opts.Model = c.CompletionModel
	opts.Timeout = c.CompletionTimeout
	completer, err := relay.NewOllamaCompleter(c.CompletionURL, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	handler, err := httpapi.NewRouter(httpapi.Deps{
		Config:  c,
		Logger:  logger,
		Users:   services.NewUserService(db, rm, c),
		Prompts: services.NewPromptService(db, rm, c),
		Relay:   relay.New(completer, logger),
		DB:      db,
		Redis:   rdb,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("router: %w", err)
	}

	return &App{config: c, logger: logger, db: db, dialect: dialect, redis: rdb, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	// leave headroom over the completion timeout so slow replies still land
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.handler, app.logger,
		app.config.CompletionTimeout+30*time.Second)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db, 0)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBackups(ctx context.Context) {
	client, err := backup.NewS3Client(ctx, app.config)
	if err != nil {
		app.logger.Error(ctx, "backup disabled", "error", err)
		return
	}
	s := backup.NewSnapshotter(app.db, app.dialect, client, app.config.S3Bucket, app.logger)
	if err := s.Run(ctx, app.config.BackupInterval); err != nil {
		app.logger.Error(ctx, "backup disabled", "error", err)
	}
}

// Run starts every component and blocks until ctx is cancelled, a signal
// arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	if app.config.BackupInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startBackups(ctx)
		}()
	}

	wg.Wait()

	if app.redis != nil {
		_ = app.redis.Close()
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
