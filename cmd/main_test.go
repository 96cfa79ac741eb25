package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupWorkspace runs the test inside a temp dir holding a minimal config.yaml.
func setupWorkspace(t *testing.T, extraConfig string) string {
	t.Helper()
	dir := t.TempDir()
	configContent := "log:\n  level: error\n  format: console\n" + extraConfig
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o644))

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	oldCfg := cfg
	oldLogger := zap.L()
	t.Cleanup(func() {
		os.Chdir(origDir) //nolint:errcheck
		cfg = oldCfg
		zap.ReplaceGlobals(oldLogger)
	})
	return dir
}

// resetFlags restores every flag on cmd to its default so commands can be
// executed repeatedly within one process.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	})
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range []*cobra.Command{submitCmd, quoteCmd, clientsListCmd, clientsExportCmd, clientsImportCmd, plansCmd, servicesCmd, migrateCmd} {
		resetFlags(c)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}
