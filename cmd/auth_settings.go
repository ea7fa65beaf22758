package cmd

import (
	"context"
	"errors"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/configs"
	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/ui"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var settingsForce bool

func init() {
	settingsInitCmd.Flags().BoolVarP(&settingsForce, "force", "f", false, "overwrite an existing settings file")

	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// resetSettingsCommandState resets the settings commands' global state for testing.
func resetSettingsCommandState() {
	settingsForce = false
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage where the auth config, key and audit log live",
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective settings to the settings file",
	Long: `Writes the current effective settings (defaults, settings file and
WEBUI_AUTH_* environment overrides) as TOML, so they stay fixed for later
runs.`,
	RunE: runSettingsInit,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(Settings)
	},
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting settings init command")

	path := configs.SettingsPath(settingsFile)

	spinner, cleanup := startSpinner(cmd, "Writing settings...")
	defer cleanup()

	err := workflows.InitSettings(context.Background(), workflows.InitSettingsOptions{
		Settings: Settings,
		Path:     path,
		Force:    settingsForce,
	})
	if errors.Is(err, kerrors.ErrSettingsExist) {
		return spinner.Fail(ui.Lines(
			ui.Warn(ui.Path.Sprint(path)+" already exists"),
			ui.Hint("Use "+ui.Code.Sprint("--force")+" to overwrite it"),
		))
	}
	if err != nil {
		return spinner.Fail(ui.Failed("Failed to write settings: " + err.Error()))
	}

	spinner.FinalMSG = ui.Done("Settings written to " + ui.Path.Sprint(path))
	return nil
}
