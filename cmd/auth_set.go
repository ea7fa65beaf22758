package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/credentials"
	"github.com/PolarWolf314/triplo-webui/internal/ui"
	"github.com/PolarWolf314/triplo-webui/internal/utils"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var (
	setWebUIUser string
	setWebUIPass string
	setNoVNCUser string
	setNoVNCPass string
	setNoVNCSync string
)

func init() {
	setCmd.Flags().StringVar(&setWebUIUser, "webui-user", "", "Web UI username")
	setCmd.Flags().StringVar(&setWebUIPass, "webui-pass", "", "Web UI password (prompted if omitted on a terminal)")
	setCmd.Flags().StringVar(&setNoVNCUser, "novnc-user", "", "noVNC username (defaults to the Web UI username)")
	setCmd.Flags().StringVar(&setNoVNCPass, "novnc-pass", "", "noVNC password (defaults to the Web UI password)")
	setCmd.Flags().StringVar(&setNoVNCSync, "novnc-sync", "true", "whether noVNC reuses Web UI credentials (true or false)")
	_ = setCmd.MarkFlagRequired("webui-user")
}

// resetSetCommandState resets the set command's global state for testing.
func resetSetCommandState() {
	setWebUIUser = ""
	setWebUIPass = ""
	setNoVNCUser = ""
	setNoVNCPass = ""
	setNoVNCSync = "true"
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write credentials provided via flags",
	Long: `Replaces the auth config with a Web UI account and a noVNC account.

With --novnc-sync true (the default) noVNC accepts the Web UI account.

Examples:
  triplo-webui auth set --webui-user admin --webui-pass s3cret
  triplo-webui auth set --webui-user admin --novnc-sync false --novnc-user viewer`,
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting set command")

	var sync bool
	switch setNoVNCSync {
	case "true":
		sync = true
	case "false":
		sync = false
	default:
		return fmt.Errorf("invalid --novnc-sync %q: must be true or false", setNoVNCSync)
	}

	webuiPass, err := flagOrPrompt(cmd, "webui-pass", setWebUIPass, "Web UI password: ")
	if err != nil {
		return err
	}

	novncUser := setNoVNCUser
	if !cmd.Flags().Changed("novnc-user") {
		novncUser = setWebUIUser
	}

	novncPass := setNoVNCPass
	if !cmd.Flags().Changed("novnc-pass") {
		if sync {
			novncPass = webuiPass
		} else if novncPass, err = flagOrPrompt(cmd, "novnc-pass", "", "noVNC password: "); err != nil {
			return err
		}
	}

	creds := credentials.Credentials{
		WebUI: credentials.Account{Username: setWebUIUser, Password: webuiPass},
		NoVNC: credentials.NoVNC{
			UseWebUICredentials: sync,
			Account:             credentials.Account{Username: novncUser, Password: novncPass},
		},
	}

	spinner, cleanup := startSpinner(cmd, "Saving credentials...")
	defer cleanup()

	err = workflows.Set(context.Background(), workflows.SetOptions{
		Settings:    Settings,
		Credentials: creds,
	})
	if err != nil {
		return spinner.Fail(ui.Failed("Failed to save auth config: " + err.Error()))
	}

	Logger.Debugf("noVNC sync=%t, noVNC user=%s", sync, novncUser)
	spinner.FinalMSG = ui.Done("Credentials saved to " + ui.Path.Sprint(Settings.AuthFile))
	return nil
}

// flagOrPrompt returns the flag value when it was given, otherwise prompts
// for it on a terminal.
func flagOrPrompt(cmd *cobra.Command, name, value, prompt string) (string, error) {
	if cmd.Flags().Changed(name) {
		return value, nil
	}
	if !utils.Interactive(cmd.InOrStdin()) {
		return "", fmt.Errorf("--%s is required when stdin is not a terminal", name)
	}
	return utils.PromptSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
}
