package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/ui"
	"github.com/PolarWolf314/triplo-webui/internal/workflows"
)

var (
	logLimit      int
	logReverse    bool
	logUser       string
	logOperations []string
	logService    string
	logOutcome    string
	logSince      string
	logUntil      string
	logJSON       bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "show only the N most recent matching entries")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by system user")
	logCmd.Flags().StringSliceVar(&logOperations, "operation", nil, "filter by operation (dump, write-json, set, migrate, check, htpasswd)")
	logCmd.Flags().StringVar(&logService, "service", "", "filter by service (webui or novnc)")
	logCmd.Flags().StringVar(&logOutcome, "outcome", "", "filter check entries by outcome (match or mismatch)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "print entries as a JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperations = nil
	logService = ""
	logOutcome = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show who read or changed the auth config",
	Long: `Prints the audit trail of auth commands: who ran them, when, and
against which config. Secret values are never recorded.

Examples:
  triplo-webui auth log -n 20 --reverse
  triplo-webui auth log --operation set,write-json
  triplo-webui auth log --operation check --outcome mismatch --since 2024-01-01
  triplo-webui auth log --json`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Settings:   Settings,
		Limit:      logLimit,
		Reverse:    logReverse,
		User:       logUser,
		Operations: logOperations,
		Service:    logService,
		Outcome:    logOutcome,
		Since:      logSince,
		Until:      logUntil,
	})
	if errors.Is(err, kerrors.ErrInvalidDateFormat) {
		return reportf(cmd, "%s", ui.Failed(err.Error()))
	}
	if err != nil {
		return err
	}

	Logger.Debugf("%d of %d entries in %s selected", len(result.Entries), result.Total, result.LogPath)

	out := cmd.OutOrStdout()
	if logJSON {
		return writeLogJSON(out, result.Entries)
	}

	switch {
	case result.Total == 0:
		fmt.Fprintln(out, "No audit log entries found.")
		return nil
	case len(result.Entries) == 0:
		fmt.Fprintln(out, "No audit log entries found matching the filters.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
	return w.Flush()
}

func writeLogJSON(out io.Writer, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding audit entries: %w", err)
	}
	return nil
}
