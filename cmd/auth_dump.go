package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var (
	dumpPretty       bool
	dumpAllowMissing bool
	dumpBootstrap    bool
	dumpYAML         bool
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpPretty, "pretty", false, "pretty-print JSON output")
	dumpCmd.Flags().BoolVar(&dumpAllowMissing, "allow-missing", false, "exit successfully when the config file has not been created yet")
	dumpCmd.Flags().BoolVar(&dumpBootstrap, "bootstrap", false, "create the config with a generated admin password when it is missing")
	dumpCmd.Flags().BoolVar(&dumpYAML, "yaml", false, "print YAML instead of JSON")
}

// resetDumpCommandState resets the dump command's global state for testing.
func resetDumpCommandState() {
	dumpPretty = false
	dumpAllowMissing = false
	dumpBootstrap = false
	dumpYAML = false
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the decrypted auth config",
	Long: `Decrypts the auth config and prints it to stdout.

A legacy plaintext config is encrypted in place before it is printed.

Examples:
  triplo-webui auth dump --pretty
  triplo-webui auth dump --allow-missing   # no output and exit 0 if absent
  triplo-webui auth dump --bootstrap       # create defaults on first run`,
	RunE: runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting dump command")

	format := workflows.FormatJSON
	if dumpYAML {
		format = workflows.FormatYAML
	}

	result, err := workflows.Dump(context.Background(), workflows.DumpOptions{
		Settings:     Settings,
		Pretty:       dumpPretty,
		AllowMissing: dumpAllowMissing,
		Bootstrap:    dumpBootstrap,
		Format:       format,
	})
	if err != nil {
		Logger.Debugf("Loading %s failed: %v", Settings.AuthFile, err)
		if errors.Is(err, kerrors.ErrConfigNotFound) {
			return reportf(cmd, "Auth config not found")
		}
		return reportf(cmd, "Failed to load auth config: %v", err)
	}

	if result.Missing {
		Logger.Infof("Auth config %s does not exist", Settings.AuthFile)
		return nil
	}

	Logger.Infof("Loaded auth config from %s (%s)", Settings.AuthFile, result.Source)
	if result.Source == secrets.SourceLegacy {
		Logger.Warnf("Encrypted legacy plaintext auth config %s", Settings.AuthFile)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(result.Output))
	return nil
}
