package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triplo-webui/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "triplo-webui",
	Short: "Triplo Web UI - credential tooling for the Web UI and noVNC.",
	Long: `triplo-webui manages the encrypted credentials that protect the
Triplo AI Web UI and its noVNC viewer.

Usage:
  triplo-webui <command> [flags]

Available Commands:
  auth    Read, write and verify the encrypted auth config

Run 'triplo-webui help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("triplo-webui", "", true).Print()
		fmt.Println("Run 'triplo-webui --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.AuthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
