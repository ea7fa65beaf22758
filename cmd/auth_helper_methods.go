package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/ui"
	"github.com/PolarWolf314/triplo-webui/internal/utils"
)

// progress is a running spinner. Its FinalMSG is printed when the command
// finishes: to stdout for a result, or to stderr once Fail has been called.
type progress struct {
	*spinner.Spinner
	failed bool
}

// Fail sets msg as the final message, marks it as a failure and returns
// ErrReported.
func (p *progress) Fail(msg string) error {
	p.FinalMSG = msg
	p.failed = true
	return ErrReported
}

// startSpinner creates and starts a spinner on the command's error stream
// when not in verbose or debug mode, so stdout stays clean for data.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(cmd *cobra.Command, message string) (*progress, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	p := &progress{Spinner: s}

	cleanup := func() {
		finalMsg := ""
		if p.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(p.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			p.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg == "" {
			return
		}
		if p.failed {
			fmt.Fprint(cmd.ErrOrStderr(), finalMsg)
		} else {
			fmt.Fprint(cmd.OutOrStdout(), finalMsg)
		}
	}

	return p, cleanup
}

// reportf prints a failure message to the command's error stream and returns
// ErrReported.
func reportf(cmd *cobra.Command, format string, args ...any) error {
	fmt.Fprintln(cmd.ErrOrStderr(), fmt.Sprintf(format, args...))
	return ErrReported
}

// readInput returns piped input, or nil when stdin is an interactive terminal.
func readInput(cmd *cobra.Command) ([]byte, error) {
	return utils.ReadPiped(cmd.InOrStdin())
}

// readSecret returns a secret piped on stdin, minus its trailing newline, or
// prompts for it on a terminal.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	data, err := readInput(cmd)
	if err != nil {
		return "", err
	}
	if data == nil {
		return utils.PromptSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// formatStoreError formats an auth config error for display to the user.
func formatStoreError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrConfigNotFound):
		return ui.Lines(
			ui.Failed("Auth config not found"),
			ui.Hint("Run "+ui.Code.Sprint("triplo-webui auth set")+" to create it"),
		)

	case errors.Is(err, kerrors.ErrIntegrity):
		return ui.Lines(
			ui.Failed("The auth config failed its integrity check"),
			ui.Hint("It was modified, or the key in "+ui.Path.Sprint(Settings.KeyFile)+" is not the one it was written with"),
		)

	case errors.Is(err, kerrors.ErrKeyFormat):
		return ui.Failed("The auth key is unusable: " + err.Error())

	case errors.Is(err, kerrors.ErrUnsupportedVersion),
		errors.Is(err, kerrors.ErrMalformedEnvelope),
		errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Failed("The auth config cannot be read: " + err.Error())

	case errors.Is(err, kerrors.ErrUnknownService):
		return ui.Lines(
			ui.Failed(err.Error()),
			ui.Hint("Use "+ui.Code.Sprint("webui")+" or "+ui.Code.Sprint("novnc")),
		)

	default:
		return ui.Failed(err.Error())
	}
}
