package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/cmd/cli/commands"
	"github.com/mbaillet/vet-planner/internal/config"
	"github.com/mbaillet/vet-planner/pkg/postgres"
	"github.com/mbaillet/vet-planner/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
	db  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Vet Planner CLI - Manage the clinic day grid",
		Long:  `A CLI tool for clinic staff: view the daily schedule grid, manage bookings, recurring slot blocks, slot assignments and veterinarian absences.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if db != nil {
				db.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ViewDayCmd(app))
	rootCmd.AddCommand(commands.AddBookingCmd(app))
	rootCmd.AddCommand(commands.SetBookingStatusCmd(app))
	rootCmd.AddCommand(commands.MoveBookingCmd(app))
	rootCmd.AddCommand(commands.AddBlockCmd(app))
	rootCmd.AddCommand(commands.UpdateBlockCmd(app))
	rootCmd.AddCommand(commands.ListBlocksCmd(app))
	rootCmd.AddCommand(commands.RemoveBlockCmd(app))
	rootCmd.AddCommand(commands.AssignSlotCmd(app))
	rootCmd.AddCommand(commands.UnassignSlotCmd(app))
	rootCmd.AddCommand(commands.ResolveSlotCmd(app))
	rootCmd.AddCommand(commands.AddAbsenceCmd(app))
	rootCmd.AddCommand(commands.ListAbsencesCmd(app))
	rootCmd.AddCommand(commands.RemoveAbsenceCmd(app))
	rootCmd.AddCommand(commands.SetScheduleCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully", zap.String("clinic_id", cfg.ClinicID))

	logger.Info("Connecting to database")
	db, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Running migrations")
	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Cfg = cfg
	app.Database = db
	app.Logger = logger
	app.Ctx = ctx

	return nil
}
