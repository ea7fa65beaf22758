package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/credentials"
	"github.com/PolarWolf314/triplo-webui/internal/ui"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var (
	htpasswdService string
	htpasswdOut     string
)

func init() {
	htpasswdCmd.Flags().StringVar(&htpasswdService, "service", string(credentials.ServiceNoVNC), "service whose account is exported (webui or novnc)")
	htpasswdCmd.Flags().StringVarP(&htpasswdOut, "out", "o", "", "htpasswd file to write")
	_ = htpasswdCmd.MarkFlagRequired("out")
}

// resetHtpasswdCommandState resets the htpasswd command's global state for testing.
func resetHtpasswdCommandState() {
	htpasswdService = string(credentials.ServiceNoVNC)
	htpasswdOut = ""
}

var htpasswdCmd = &cobra.Command{
	Use:   "htpasswd",
	Short: "Write a basic-auth file for the reverse proxy",
	Long: `Writes a bcrypt htpasswd file for the account a service accepts, for
reverse proxies that protect noVNC with basic auth.

Examples:
  triplo-webui auth htpasswd --out /etc/nginx/novnc.htpasswd
  triplo-webui auth htpasswd --service webui --out ./webui.htpasswd`,
	RunE: runHtpasswd,
}

func runHtpasswd(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting htpasswd command")

	spinner, cleanup := startSpinner(cmd, "Writing htpasswd file...")
	defer cleanup()

	service, err := credentials.ParseService(htpasswdService)
	if err != nil {
		return spinner.Fail(formatStoreError(err))
	}

	result, err := workflows.Htpasswd(context.Background(), workflows.HtpasswdOptions{
		Settings:   Settings,
		Service:    service,
		OutputPath: htpasswdOut,
	})
	if err != nil {
		return spinner.Fail(formatStoreError(err))
	}

	spinner.FinalMSG = ui.Done("Wrote " + ui.Highlight.Sprint(result.Username) +
		" to " + ui.Path.Sprint(result.OutputPath))
	return nil
}
