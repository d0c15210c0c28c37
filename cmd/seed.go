package cmd

import (
	"fmt"

	"greenmart/internal/usecase"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo categories and products",
	Long: `Insert the demo catalog (Plants, Flowers, Seeds and their products).
Rows that already exist are skipped, so running it twice adds nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		result, err := usecase.SeedCatalog(cmd.Context(), rt.repo, rt.log)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seed completed: %d categories and %d products added.\n",
			result.Categories, result.Products)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
