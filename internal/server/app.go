// Package server wires the alumnet API: PostgreSQL repositories, the Redis
// verification code store, services and the HTTP server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/alumnet/internal/logging"
	"github.com/dmitrijs2005/alumnet/internal/server/config"
	"github.com/dmitrijs2005/alumnet/internal/server/mailer"
	"github.com/dmitrijs2005/alumnet/internal/server/otp"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumnet/internal/server/rest"
	"github.com/dmitrijs2005/alumnet/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Seams for tests.
var (
	logWriter      io.Writer = os.Stdout
	openPostgres             = repomanager.OpenPostgres
	openRedis                = otp.NewRedisClient
	newRepoManager           = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	server *rest.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogrus(logWriter, c.LogLevel)

	if c.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	rc, err := openRedis(ctx, c.RedisURL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	codes := otp.NewRedisStore(rc, c.OTPValidityDuration, c.OTPMaxAttempts)
	mail := mailer.NewLogMailer(logger.With("module", "mailer"))

	us := services.NewUserService(db, rm, codes, mail, logger.With("module", "users"), c)
	js := services.NewJobService(db, rm)

	handler := rest.NewHandler(us, js, rest.NewMetrics(), logger.With("module", "rest"))
	srv := rest.NewHTTPServer(c.EndpointAddr, handler.Router(), logger)

	return &App{config: c, logger: logger, db: db, redis: rc, server: srv}, nil
}

// Run serves until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "bye")
	return nil
}

func (app *App) Close() error {
	return errors.Join(app.redis.Close(), app.db.Close())
}
