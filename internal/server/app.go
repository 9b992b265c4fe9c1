// Package server wires configuration, storage, services and the HTTP
// transport into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/auth"
	"github.com/dmitrijs2005/aycode/internal/server/config"
	"github.com/dmitrijs2005/aycode/internal/server/httpserver"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aycode/internal/server/services"
)

const generatedKeySize = 32

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	server      *httpserver.HTTPServer
}

// NewApp opens and migrates the database and builds every service. The
// signing key is read here once; an empty key is replaced by a random one.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, m, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	key := []byte(c.SecretKey)
	if len(key) == 0 {
		key = common.GenerateRandByteArray(generatedKeySize)
		logger.Warn(ctx, "no secret key configured, using a random one; sessions will not survive a restart")
	}

	tokens, err := auth.NewTokenManager(key, c.TokenValidityDuration, nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("token manager init error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("password hasher init error: %w", err)
	}

	us := services.NewUserService(db, m, tokens, hasher, c.RequestTimeout, logger)
	ps := services.NewProblemService(db, m, c.RequestTimeout, logger)

	srv := httpserver.NewHTTPServer(httpserver.Options{
		Address:           c.EndpointAddrHTTP,
		CookieSecure:      c.CookieSecure,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		ShutdownTimeout:   c.ShutdownTimeout,
	}, logger, us, ps)

	return &App{config: c, logger: logger, db: db, userService: us, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) bootstrapAdmin(ctx context.Context) {
	if app.config.AdminEmail == "" {
		return
	}

	err := app.userService.PromoteByEmail(ctx, app.config.AdminEmail)
	switch {
	case err == nil:
		app.logger.Info(ctx, "admin bootstrap complete", "email", app.config.AdminEmail)
	case errors.Is(err, common.ErrSubjectNotFound):
		app.logger.Warn(ctx, "admin bootstrap skipped, user not registered", "email", app.config.AdminEmail)
	default:
		app.logger.Error(ctx, "admin bootstrap failed", "error", err)
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.bootstrapAdmin(ctx)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
