// file: cmd/diagnostics.go
// version: 2.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/pebble/v2"
	"github.com/spf13/cobra"

	"github.com/acikyardim/yardim-paneli/internal/config"
	"github.com/acikyardim/yardim-paneli/internal/database"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting and repairing the panel database.",
	}

	cleanupSessionsCmd = &cobra.Command{
		Use:   "cleanup-sessions",
		Short: "Remove expired and revoked sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			return runCleanupSessions(force)
		},
	}

	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Inspect stored records",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			prefix, _ := cmd.Flags().GetString("prefix")
			raw, _ := cmd.Flags().GetBool("raw")
			return runDiagnosticsQuery(limit, prefix, raw)
		},
	}
)

func init() {
	cleanupSessionsCmd.Flags().Bool("yes", false, "Skip confirmation prompt")

	queryCmd.Flags().Int("limit", 5, "Number of records to display")
	queryCmd.Flags().String("prefix", "beneficiary:", "Key prefix to inspect when --raw is set")
	queryCmd.Flags().Bool("raw", false, "Show raw Pebble key/value data (Pebble only)")

	diagnosticsCmd.AddCommand(cleanupSessionsCmd)
	diagnosticsCmd.AddCommand(queryCmd)
}

func ensureDiagnosticsStore() (func(), error) {
	if err := database.InitializeStore(
		config.AppConfig.DatabaseType,
		config.AppConfig.DatabasePath,
	); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		database.CloseStore()
	}
	return cleanup, nil
}

func runCleanupSessions(force bool) error {
	closer, err := ensureDiagnosticsStore()
	if err != nil {
		return err
	}
	defer closer()

	fmt.Printf("Cleaning sessions in %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

	if !force {
		confirmed, err := promptYesNo("Delete expired and revoked sessions")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted. No sessions deleted.")
			return nil
		}
	}

	deleted, err := database.GlobalStore.DeleteExpiredSessions(time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	fmt.Printf("Deleted %d sessions.\n", deleted)
	return nil
}

func runDiagnosticsQuery(limit int, prefix string, raw bool) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}

	if raw {
		if config.AppConfig.DatabaseType != "pebble" {
			return fmt.Errorf("raw inspection is only available for Pebble databases")
		}
		return runRawPebbleQuery(limit, prefix)
	}

	closer, err := ensureDiagnosticsStore()
	if err != nil {
		return err
	}
	defer closer()

	beneficiaries, err := database.GlobalStore.ListBeneficiaries(config.AppConfig.DefaultOrgID)
	if err != nil {
		return fmt.Errorf("failed to fetch beneficiaries: %w", err)
	}
	if len(beneficiaries) == 0 {
		fmt.Println("No beneficiaries found.")
		return nil
	}
	if len(beneficiaries) > limit {
		beneficiaries = beneficiaries[:limit]
	}

	for i, b := range beneficiaries {
		fmt.Printf("%2d. ID: %s\n", i+1, b.ID)
		fmt.Printf("    Name: %s\n", b.Name)
		fmt.Printf("    City: %s\n", b.City)
		fmt.Printf("    Status: %s\n", b.Status)
		fmt.Println("---")
	}

	return nil
}

func runRawPebbleQuery(limit int, prefix string) error {
	db, err := pebble.Open(config.AppConfig.DatabasePath, &pebble.Options{
		FormatMajorVersion: pebble.FormatNewest,
	})
	if err != nil {
		return fmt.Errorf("failed to open Pebble database: %w", err)
	}
	defer db.Close()

	iterOpts := &pebble.IterOptions{}
	if prefix != "" {
		iterOpts.LowerBound = []byte(prefix)
		iterOpts.UpperBound = append([]byte(prefix), 0xFF)
	}

	iter, err := db.NewIter(iterOpts)
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	ok := iter.First()
	if prefix != "" {
		ok = iter.SeekGE([]byte(prefix))
	}

	for ; ok && iter.Valid(); ok = iter.Next() {
		fmt.Printf("Key: %s\n", string(iter.Key()))
		val := iter.Value()
		fmt.Printf("Value length: %d bytes\n", len(val))
		preview := truncateString(string(val), 500)
		fmt.Printf("Value preview: %s\n", preview)
		fmt.Println("---")

		count++
		if count >= limit {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	if count == 0 {
		fmt.Println("No keys matched the requested prefix.")
	}

	return nil
}

func promptYesNo(action string) (bool, error) {
	fmt.Printf("%s? Type 'yes' to confirm: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes", nil
}

func truncateString(in string, max int) string {
	if len(in) <= max {
		return in
	}
	return in[:max] + "..."
}
