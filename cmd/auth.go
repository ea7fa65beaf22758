package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/configs"
	logger "github.com/PolarWolf314/triplo-webui/internal/logging"
)

// ErrReported is returned by commands that have already printed their own
// failure message. main exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

var (
	verbose      bool
	debug        bool
	settingsFile string

	Logger   logger.Logger
	Settings *configs.Settings

	AuthCmd = &cobra.Command{
		Use:   "auth",
		Short: "Manage the encrypted Web UI credentials",
		Long: `Reads and writes the encrypted auth config used by the Web UI and noVNC.

The config is stored as an authenticated envelope next to a 32-byte key.
Legacy plaintext configs are encrypted the first time they are read.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing auth command with verbose=%t, debug=%t", verbose, debug)

			path := configs.SettingsPath(settingsFile)
			Logger.Debugf("Loading settings from %s", path)

			s, err := configs.LoadSettings(path)
			if err != nil {
				return err
			}
			Settings = s

			Logger.Debugf("Auth file: %s", Settings.AuthFile)
			Logger.Debugf("Key backend: %s (key file %s)", Settings.KeyBackend, Settings.KeyFile)
			return nil
		},
	}
)

func init() {
	AuthCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	AuthCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	AuthCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default $WEBUI_AUTH_SETTINGS or ~/.config/Triplo AI/webui-auth.toml)")

	AuthCmd.AddCommand(dumpCmd)
	AuthCmd.AddCommand(writeJSONCmd)
	AuthCmd.AddCommand(setCmd)
	AuthCmd.AddCommand(migrateCmd)
	AuthCmd.AddCommand(checkCmd)
	AuthCmd.AddCommand(htpasswdCmd)
	AuthCmd.AddCommand(logCmd)
	AuthCmd.AddCommand(settingsCmd)
}

// Helper functions for testing

// GetAuthCmd returns the AuthCmd for testing.
func GetAuthCmd() *cobra.Command {
	return AuthCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	settingsFile = ""
	Settings = nil
	resetDumpCommandState()
	resetWriteJSONCommandState()
	resetSetCommandState()
	resetCheckCommandState()
	resetHtpasswdCommandState()
	resetLogCommandState()
	resetSettingsCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
