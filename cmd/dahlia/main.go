package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/dahlia/config"
	"github.com/Ramsey-B/dahlia/internal/repositories/accountdetail"
	"github.com/Ramsey-B/dahlia/internal/repositories/callanalytics"
	"github.com/Ramsey-B/dahlia/internal/services/consolidation"
	"github.com/Ramsey-B/dahlia/pkg/database"
	"github.com/Ramsey-B/dahlia/pkg/logging"
	"github.com/Ramsey-B/dahlia/pkg/middleware"
	accountdetailroutes "github.com/Ramsey-B/dahlia/pkg/routes/accountdetail"
	callanalyticsroutes "github.com/Ramsey-B/dahlia/pkg/routes/callanalytics"
	consolidatedroutes "github.com/Ramsey-B/dahlia/pkg/routes/consolidated"
	"github.com/Ramsey-B/dahlia/pkg/routes/health"
	"github.com/Ramsey-B/dahlia/pkg/startup"
	"github.com/Ramsey-B/dahlia/pkg/store"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
	"github.com/Ramsey-B/dahlia/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bind config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.PrettyLogs})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	if _, err := utils.Validate(cfg); err != nil {
		logger.WithError(err).Error("Invalid configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := tracing.InitProvider(ctx, cfg.AppName, tracing.OTLPConfig{
			Endpoint: cfg.TracingOTLPEndpoint,
			Protocol: cfg.TracingOTLPProtocol,
			Insecure: cfg.TracingOTLPInsecure,
		})
		if err != nil {
			logger.WithError(err).Error("Failed to initialize tracing")
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Warn("Failed to shut down tracing")
			}
		}()
	}

	dbDep := &databaseDependency{cfg: cfg, logger: logger}
	httpDep := &httpServerDependency{cfg: cfg, logger: logger, db: dbDep}

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(dbDep)
	boot.AddDependency(httpDep)

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}

	logger.WithField("port", cfg.Port).Infof("%s is running on port %d", cfg.AppName, cfg.Port)

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := boot.Stop(stopCtx); err != nil {
		logger.WithError(err).Error("Shutdown failed")
		os.Exit(1)
	}
}

// databaseDependency owns the connection pool and runs migrations on start.
type databaseDependency struct {
	cfg    config.Config
	logger ectologger.Logger
	dbx    *sqlx.DB
	db     database.DB
}

func (d *databaseDependency) GetName() string {
	return "database"
}

func (d *databaseDependency) DependsOn() []string {
	return nil
}

func (d *databaseDependency) Start(ctx context.Context) error {
	dbx, err := database.Connect(ctx, d.logger, database.ConnectConfig{
		Driver:          d.cfg.DatabaseDriver,
		Host:            d.cfg.DatabaseHost,
		Port:            d.cfg.DatabasePort,
		UserName:        d.cfg.DatabaseUserName,
		Password:        d.cfg.DatabasePassword,
		Name:            d.cfg.DatabaseName,
		SSLMode:         d.cfg.DatabaseSSLMode,
		RetryCount:      d.cfg.DatabaseReconnectRetryCount,
		MaxOpenConns:    d.cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    d.cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: d.cfg.DatabaseConnMaxLifetime,
	})
	if err != nil {
		return err
	}

	d.dbx = dbx
	d.db = database.NewDatabaseInstance(dbx, d.logger)

	driver, err := migratepg.WithInstance(dbx.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrations := database.NewMigrationService(d.logger, &database.MigrationConfig{
		MigrationFolderPath: d.cfg.DatabaseMigrationFolderPath,
		Version:             uint(d.cfg.DatabaseMigrationVersion),
		Force:               d.cfg.DatabaseMigrationForce,
		AutoRollback:        d.cfg.DatabaseMigrationAutoRollback,
	})
	return migrations.Migrate(d.cfg.DatabaseName, driver)
}

func (d *databaseDependency) Stop(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// httpServerDependency wires the DI container, routes, and the echo server.
type httpServerDependency struct {
	cfg    config.Config
	logger ectologger.Logger
	db     *databaseDependency
	echo   *echo.Echo
}

func (h *httpServerDependency) GetName() string {
	return "http-server"
}

func (h *httpServerDependency) DependsOn() []string {
	return []string{"database"}
}

func (h *httpServerDependency) Start(ctx context.Context) error {
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return fmt.Errorf("failed to create DI container: %w", err)
	}

	recordStore := store.NewRecordStore(h.db.db, h.logger)
	accountRepo := accountdetail.NewRepository(recordStore, h.logger)
	analyticsRepo := callanalytics.NewRepository(recordStore, h.logger)
	consolidationService := consolidation.NewService(h.logger, accountRepo, analyticsRepo, h.cfg.StoreLookupTimeout)

	if err := ectoinject.RegisterInstance[ectologger.Logger](container, h.logger); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[database.DB](container, h.db.db); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[store.Gateway](container, recordStore); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[accountdetail.AccountDetailRepository](container, accountRepo); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[callanalytics.CallAnalyticsRepository](container, analyticsRepo); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[consolidation.ConsolidationService](container, consolidationService); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(h.logger)

	e.Use(otelecho.Middleware(h.cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(h.logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: h.cfg.AllowOrigins,
		AllowMethods: h.cfg.AllowMethods,
	}))

	checker := health.NewChecker(h.db.db, "1.0.0")
	checker.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	principals := map[string]string{h.cfg.APIToken: h.cfg.AuthPrincipal}
	api := e.Group("", middleware.Authentication(h.logger, h.cfg.APITokenHeader, principals))
	accountdetailroutes.Register(api)
	callanalyticsroutes.Register(api)
	consolidatedroutes.Register(api)

	e.Server.ReadTimeout = time.Duration(h.cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(h.cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(h.cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.ReadHeaderTimeout = time.Duration(h.cfg.ReadHeaderTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = h.cfg.MaxHeaderBytes

	h.echo = e

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", h.cfg.Port)); err != nil && err != http.ErrServerClosed {
			h.logger.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()

	checker.SetReady(true)
	return nil
}

func (h *httpServerDependency) Stop(ctx context.Context) error {
	if h.echo == nil {
		return nil
	}
	return h.echo.Shutdown(ctx)
}
