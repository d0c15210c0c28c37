package cmd

import (
	"errors"
	"fmt"

	"greenmart/pkg/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long: `Create every table and index the API needs. Existing tables are left
untouched, so the command is safe to run on every deploy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if rt.db == nil {
			return errors.New("migrate needs STORE=postgres")
		}

		if err := database.Migrate(cmd.Context(), rt.db); err != nil {
			return err
		}

		rt.log.Info("Schema applied")
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
