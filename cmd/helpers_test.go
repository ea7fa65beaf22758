package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/triplo-webui/internal/configs"
	logger "github.com/PolarWolf314/triplo-webui/internal/logging"
)

// testPaths are the files a test CLI run reads and writes.
type testPaths struct {
	AuthFile string
	KeyFile  string
	AuditLog string
	Settings string
}

// setupTestEnvironment points every WEBUI_AUTH_* override at a temp directory.
func setupTestEnvironment(t *testing.T) testPaths {
	t.Helper()
	dir := t.TempDir()
	paths := testPaths{
		AuthFile: filepath.Join(dir, "webui-auth.json"),
		KeyFile:  filepath.Join(dir, "webui-auth.key"),
		AuditLog: filepath.Join(dir, "webui-auth-audit.jsonl"),
		Settings: filepath.Join(dir, "webui-auth.toml"),
	}

	t.Setenv(configs.EnvAuthFile, paths.AuthFile)
	t.Setenv(configs.EnvKeyFile, paths.KeyFile)
	t.Setenv(configs.EnvAuditLog, paths.AuditLog)
	t.Setenv(configs.EnvKeyBackend, configs.KeyBackendFile)
	t.Setenv(configs.EnvSettingsFile, paths.Settings)
	t.Setenv("NO_COLOR", "1")

	t.Cleanup(ResetGlobalState)
	return paths
}

// resetFlags restores every flag under c to its default and clears its
// changed state, which cobra keeps between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes "triplo-webui auth <args>" with stdin as input and returns
// what was written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	authCmd := GetAuthCmd()
	ResetGlobalState()
	resetFlags(authCmd)
	SetLogger(logger.Logger{})

	rootCmd := &cobra.Command{
		Use:           "triplo-webui",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.AddCommand(authCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"auth"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
