package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/credentials"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var (
	checkService string
	checkUser    string
)

func init() {
	checkCmd.Flags().StringVar(&checkService, "service", string(credentials.ServiceWebUI), "service to check (webui or novnc)")
	checkCmd.Flags().StringVar(&checkUser, "user", "", "username to check")
	_ = checkCmd.MarkFlagRequired("user")
}

// resetCheckCommandState resets the check command's global state for testing.
func resetCheckCommandState() {
	checkService = string(credentials.ServiceWebUI)
	checkUser = ""
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a username and password",
	Long: `Checks a login against the stored credentials. The password is read
from stdin, or prompted for on a terminal.

Exits 0 when the credentials match and 1 otherwise.

Examples:
  printf '%s' "$PASSWORD" | triplo-webui auth check --service novnc --user admin`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting check command")

	service, err := credentials.ParseService(checkService)
	if err != nil {
		return reportf(cmd, "%s", formatStoreError(err))
	}

	password, err := readSecret(cmd, "Password: ")
	if err != nil {
		return reportf(cmd, "Failed to read password: %v", err)
	}

	result, err := workflows.Check(context.Background(), workflows.CheckOptions{
		Settings: Settings,
		Service:  service,
		Username: checkUser,
		Password: password,
	})
	if err != nil {
		return reportf(cmd, "%s", formatStoreError(err))
	}

	if !result.Match {
		Logger.Infof("Credentials for %s do not match", service)
		return reportf(cmd, "Credentials do not match")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}
