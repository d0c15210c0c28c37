package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"greenmart/internal/usecase"
	"greenmart/internal/wire"
	"greenmart/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Serve flags
	autoMigrate bool
	autoSeed    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API and block until SIGINT or SIGTERM.

Examples:
  greenmart serve                        # Postgres from DB_* settings
  STORE=memory greenmart serve --seed    # Throwaway in-memory shop with demo data
  greenmart serve --migrate              # Create missing tables first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Apply the schema before serving (postgres only)")
	serveCmd.Flags().BoolVar(&autoSeed, "seed", false, "Insert demo categories and products before serving")
}

func runServe(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	rt.log.Info("Starting application",
		zap.String("app", rt.config.App.Name),
		zap.String("port", rt.config.App.Port),
		zap.String("store", rt.config.App.Store),
		zap.Bool("debug", rt.config.App.Debug),
	)

	if autoMigrate && rt.db != nil {
		if err := database.Migrate(ctx, rt.db); err != nil {
			return err
		}
		rt.log.Info("Schema applied")
	}

	if autoSeed {
		if _, err := usecase.SeedCatalog(ctx, rt.repo, rt.log); err != nil {
			return err
		}
	}

	tokenSvc, err := rt.tokenService()
	if err != nil {
		return err
	}

	app := wire.Wiring(rt.repo, tokenSvc, rt.config, rt.log)

	return APIServer(ctx, app.Router, rt.config.App.Port, rt.log)
}
