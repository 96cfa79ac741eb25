package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"submit", "quote", "clients", "plans", "services", "serve", "migrate"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestClientsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range clientsCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["export"])
	assert.True(t, names["import"])
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "concierge", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestProfileCommands_Flags(t *testing.T) {
	for _, c := range []string{"submit", "quote"} {
		cmd, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		for _, name := range []string{"file", "first-name", "net-worth", "goal", "service", "format"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%s should have --%s", c, name)
		}
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestExportCommand_Flags(t *testing.T) {
	flag := clientsExportCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "csv", flag.DefValue)
	assert.NotNil(t, clientsExportCmd.Flags().ShorthandLookup("o"))
}

func TestRootCmd_PersistentPreRunE_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir) //nolint:errcheck

	oldCfg := cfg
	cfg = nil
	defer func() { cfg = oldCfg }()

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "client_intakes.json", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestRootCmd_PersistentPreRunE_WithValidConfig(t *testing.T) {
	setupWorkspace(t, "store:\n  driver: sqlite\n  database_url: intakes.db\n")
	cfg = nil

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "intakes.db", cfg.Store.DatabaseURL)
}

func TestRootCmd_PersistentPreRunE_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantMsg string
	}{
		{"invalid yaml", "invalid: [yaml: bad", "load config"},
		{"unknown driver", "store:\n  driver: mongo\n", "validate config"},
		{"sqlite without dsn", "store:\n  driver: sqlite\n", "validate config"},
		{"bad log level", "log:\n  level: NOT_A_LEVEL\n", "init logger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(tt.config), 0o644))

			origDir, _ := os.Getwd()
			require.NoError(t, os.Chdir(tmpDir))
			defer os.Chdir(origDir) //nolint:errcheck

			oldCfg := cfg
			defer func() { cfg = oldCfg }()

			err := rootCmd.PersistentPreRunE(rootCmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRootCmd_PersistentPostRun_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		rootCmd.PersistentPostRun(rootCmd, nil)
	})
}
