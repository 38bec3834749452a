// file: cmd/import.go
// version: 1.0.0
// guid: 2f8c1f6a-7e0b-4f3d-9c2a-5b8d4e6f1a3c

package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/acikyardim/yardim-paneli/internal/config"
	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/importer"
)

// importCmd loads beneficiaries from a CSV file into the store.
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import beneficiaries from a CSV file",
	Long: `Import beneficiary records from a CSV file. The file must carry a
header row with at least a "name" column; recognized columns are
name, national_id, phone, email, address, city, status, household_size
and notes. Rows that fail validation are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, _ := cmd.Flags().GetString("org")
		if orgID == "" {
			orgID = config.AppConfig.DefaultOrgID
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Importing %s into org %q\n", args[0], orgID)

		bar := progressbar.Default(-1, "importing rows")
		result, err := importer.ImportBeneficiaries(f, database.GlobalStore, orgID, func(row int) {
			bar.Add(1)
		})
		bar.Finish()
		fmt.Println()
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d beneficiaries, skipped %d rows\n", result.Imported, result.Skipped)
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("org", "", "organization id to import into (default from config)")
}
