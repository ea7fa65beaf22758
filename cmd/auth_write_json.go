package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var writeJSONData string

func init() {
	writeJSONCmd.Flags().StringVar(&writeJSONData, "data", "", "inline JSON payload; defaults to stdin")
}

// resetWriteJSONCommandState resets the write-json command's global state for testing.
func resetWriteJSONCommandState() {
	writeJSONData = ""
}

var writeJSONCmd = &cobra.Command{
	Use:   "write-json",
	Short: "Encrypt a JSON object read from stdin or --data",
	Long: `Replaces the auth config with the given JSON object.

Examples:
  echo '{"webui":{"username":"admin","password":"pw"}}' | triplo-webui auth write-json
  triplo-webui auth write-json --data '{"webui":{"username":"admin","password":"pw"}}'`,
	RunE: runWriteJSON,
}

func runWriteJSON(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting write-json command")

	var data []byte
	if cmd.Flags().Changed("data") {
		Logger.Debugf("Reading payload from --data")
		data = []byte(writeJSONData)
	} else {
		Logger.Debugf("Reading payload from stdin")
		input, err := readInput(cmd)
		if err != nil {
			return reportf(cmd, "Failed to read JSON payload: %v", err)
		}
		data = input
	}

	err := workflows.WriteJSON(context.Background(), workflows.WriteJSONOptions{
		Settings: Settings,
		Data:     data,
	})
	switch {
	case err == nil:
		Logger.Infof("Auth config written to %s", Settings.AuthFile)
		return nil
	case errors.Is(err, kerrors.ErrNoPayload):
		return reportf(cmd, "No JSON payload provided")
	case errors.Is(err, kerrors.ErrInvalidPayload):
		return reportf(cmd, "Invalid JSON payload: %v", err)
	default:
		return reportf(cmd, "Failed to save auth config: %v", err)
	}
}
