package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"sk-barangay-service/internal/app/middleware"
	"sk-barangay-service/internal/app/routes"
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/infrastructure/cache"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/infrastructure/storage"
	Logger "sk-barangay-service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sk-barangay",
	Short: "SK barangay information system API",
	Long: `REST API for the barangay information system: residents, households,
incidents, community services, staff accounts and site branding.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
	RunE:              runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads .env and configures logging before any subcommand runs
func bootstrap(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		Logger.Warning("could not load .env file: %v", err)
	}

	cfg := config.GetConfig()
	if err := Logger.SetupLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}
	defer pool.Close()

	if err := migrate(pool, cfg.DBMigrationMode); err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create upload storage: %w", err)
	}

	var redisClient *redis.Client
	if cfg.OTPStore != "memory" {
		redisClient = cache.NewRedisClient(cfg)
		defer redisClient.Close()
	}

	serviceContainer := container.NewServiceContainer(container.Dependencies{
		DB:      pool.GetDB(),
		Config:  cfg,
		Redis:   redisClient,
		Storage: store,
	})
	ensureAdmin(ctx, serviceContainer, cfg)

	metrics := middleware.NewMetrics()
	if sqlDB, err := pool.GetDB().DB(); err == nil {
		metrics.RegisterDB(sqlDB)
	}

	router := routes.SetupRouter(serviceContainer, metrics)
	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("server listening on http://0.0.0.0:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case sig := <-quit:
		Logger.Info("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensureAdmin creates the bootstrap admin account on an empty users table
func ensureAdmin(ctx context.Context, c *container.ServiceContainer, cfg *config.Config) {
	userService := c.GetService("user").(services.InterfaceUserService)
	created, err := userService.EnsureAdmin(ctx, cfg.DefaultAdminEmployeeID, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword)
	if err != nil {
		Logger.Error("ensure default admin: %v", err)
		return
	}
	if created {
		Logger.Info("created default admin account %s", cfg.DefaultAdminEmployeeID)
	}
}

func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		Logger.WithFields(stats).Info("database pool ready")
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.WithFields(map[string]interface{}{
		"cpus":            runtime.NumCPU(),
		"goroutines":      runtime.NumGoroutine(),
		"alloc_mib":       m.Alloc / 1024 / 1024,
		"total_alloc_mib": m.TotalAlloc / 1024 / 1024,
		"sys_mib":         m.Sys / 1024 / 1024,
	}).Info("system info")
}
