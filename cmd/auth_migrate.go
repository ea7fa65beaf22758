package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/ui"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Encrypt a legacy plaintext auth config",
	Long: `Encrypts a plaintext auth config in place.

Reading the config with any command migrates it as well; this command does
it explicitly and reports what happened.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting migrate command")

	spinner, cleanup := startSpinner(cmd, "Checking auth config...")
	defer cleanup()

	result, err := workflows.Migrate(context.Background(), workflows.MigrateOptions{Settings: Settings})
	if err != nil {
		return spinner.Fail(formatStoreError(err))
	}

	if result.Migrated {
		spinner.FinalMSG = ui.Done("Encrypted legacy auth config " + ui.Path.Sprint(result.Path))
		return nil
	}

	spinner.FinalMSG = ui.Note(ui.Path.Sprint(result.Path) + " is already encrypted")
	return nil
}
