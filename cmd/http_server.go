package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/auth"
	authpg "github.com/novahq/nova-admin/internal/auth/postgres"
	"github.com/novahq/nova-admin/internal/channel"
	channelpg "github.com/novahq/nova-admin/internal/channel/postgres"
	"github.com/novahq/nova-admin/internal/core/events"
	"github.com/novahq/nova-admin/internal/group"
	grouppg "github.com/novahq/nova-admin/internal/group/postgres"
	"github.com/novahq/nova-admin/internal/pagesetting"
	pagesettingpg "github.com/novahq/nova-admin/internal/pagesetting/postgres"
	"github.com/novahq/nova-admin/internal/permission"
	permissionpg "github.com/novahq/nova-admin/internal/permission/postgres"
	"github.com/novahq/nova-admin/internal/sports"
	sportspg "github.com/novahq/nova-admin/internal/sports/postgres"
	"github.com/novahq/nova-admin/internal/transport/rest"
	"github.com/novahq/nova-admin/internal/user"
	userpg "github.com/novahq/nova-admin/internal/user/postgres"
	"github.com/novahq/nova-admin/internal/weather"
	weatherpg "github.com/novahq/nova-admin/internal/weather/postgres"
	"github.com/novahq/nova-admin/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Gate     *auth.AccessGate
	Bus      *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Gate, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen, bus, config.Security.BCryptCost, lg)
	userService := user.NewService(userpg.NewUserRepository(gormDB), config.Security.BCryptCost, lg)
	groupService := group.NewService(grouppg.NewGroupRepository(gormDB), lg)
	permissionService := permission.NewService(permissionpg.NewPermissionRepository(gormDB), lg)
	channelService := channel.NewService(channelpg.NewChannelRepository(gormDB), lg)
	pageSettingService := pagesetting.NewService(pagesettingpg.NewPageSettingRepository(gormDB), lg)
	sportsService := sports.NewService(sportspg.NewSportsRepository(gormDB), lg)

	weatherProvider := weather.NewHTTPProvider(config.Weather, lg)
	weatherService := weather.NewService(weatherpg.NewLocationRepository(gormDB), weatherProvider, bus, lg)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		User:        user.NewHandler(userService),
		Group:       group.NewHandler(groupService),
		Permission:  permission.NewHandler(permissionService),
		Channel:     channel.NewHandler(channelService),
		PageSetting: pagesetting.NewHandler(pageSettingService),
		Weather:     weather.NewHandler(weatherService),
		Sports:      sports.NewHandler(sportsService),
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Gate:     auth.NewAccessGate(lg),
		Bus:      bus,
		Logger:   lg,
	}, nil
}

// initDB opens the plain connection used by the health endpoint.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGormDB opens the ORM connection the repositories run on.
func initGormDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(cfg.Source), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open orm connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying db: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return gormDB, nil
}
