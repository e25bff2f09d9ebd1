package main

import (
	"fmt"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/infrastructure/mail"
	"sk-barangay-service/internal/infrastructure/storage"
	Logger "sk-barangay-service/pkg/logger"

	"github.com/spf13/cobra"
)

var migrationMode string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.GetConfig()
		pool, err := database.NewConnectionPool(cfg)
		if err != nil {
			return fmt.Errorf("create connection pool: %w", err)
		}
		defer pool.Close()

		mode := migrationMode
		if mode == "" {
			mode = cfg.DBMigrationMode
		}
		return migrate(pool, mode)
	},
}

var (
	adminEmployeeID string
	adminEmail      string
	adminPassword   string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the bootstrap admin account when no admin exists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.GetConfig()
		pool, err := database.NewConnectionPool(cfg)
		if err != nil {
			return fmt.Errorf("create connection pool: %w", err)
		}
		defer pool.Close()

		if err := migrate(pool, "auto"); err != nil {
			return err
		}
		store, err := storage.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("create upload storage: %w", err)
		}

		if adminEmployeeID == "" {
			adminEmployeeID = cfg.DefaultAdminEmployeeID
		}
		if adminEmail == "" {
			adminEmail = cfg.DefaultAdminEmail
		}
		userService := services.NewUserService(pool.GetDB(), cfg, mail.NewMailer(cfg), store)
		created, err := userService.EnsureAdmin(cmd.Context(), adminEmployeeID, adminEmail, adminPassword)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if !created {
			Logger.Info("an admin account already exists, nothing to do")
			return nil
		}
		Logger.Info("created admin account %s", adminEmployeeID)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationMode, "mode", "", `migration mode: "auto" or "drop" (defaults to DB_MIGRATION_MODE)`)

	createAdminCmd.Flags().StringVar(&adminEmployeeID, "employee-id", "", "employee id of the admin (defaults to DEFAULT_ADMIN_EMPLOYEE_ID)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email of the admin (defaults to DEFAULT_ADMIN_EMAIL)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password; a temporary one is generated and must be changed when empty")
}

// migrate brings the schema up to date. "drop" removes every table first,
// "none" leaves the schema alone, anything else runs AutoMigrate.
func migrate(pool *database.ConnectionPool, mode string) error {
	db := pool.GetDB()

	switch mode {
	case "none":
		Logger.Info("skipping schema migration")
		return nil
	case "drop":
		Logger.Warning("running in drop mode, all tables will be dropped and recreated")
		for _, table := range models.TableNames() {
			if err := db.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("drop table %s: %w", table, err)
			}
		}
	default:
		Logger.Info("running auto migration, only new tables and columns are added")
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("database migration completed")
	return nil
}
