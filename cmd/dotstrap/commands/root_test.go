package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotstrap/dotstrap/cmd/dotstrap/commands"
	"github.com/dotstrap/dotstrap/pkg/testutil"
)

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	rootCmd := commands.NewRootCmd()

	expected := []string{"up", "down", "status", "links", "version"}
	for _, name := range expected {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, "command %q must exist", name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootCmd_UpDryRunEndToEnd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile("gitconfig", "[user]")
	env.CreateRepoFile(".dotstrap.toml", `
log_file = "none"

[[links]]
source = "gitconfig"
target = "~/.gitconfig"
`)

	rootCmd := commands.NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"up", "--dry-run"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "would be performed")

	// Preview left the home directory untouched.
	_, err := os.Lstat(filepath.Join(env.HomeDir, ".gitconfig"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootCmd_StatusRuns(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile("vimrc", "set nocompatible")
	env.CreateRepoFile(".dotstrap.toml", `
log_file = "none"

[[links]]
source = "vimrc"
target = "~/.vimrc"
`)

	rootCmd := commands.NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"status"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "needs update:")
}
