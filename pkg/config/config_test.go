package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotstrap/dotstrap/pkg/config"
	"github.com/dotstrap/dotstrap/pkg/testutil"
)

func TestLoad_Defaults(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	cfg, err := config.Load(env.RepoRoot)
	require.NoError(t, err)

	assert.False(t, cfg.DryRun)
	assert.Equal(t, 0, cfg.Verbose)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, env.RepoRoot, cfg.RepoRoot)
	assert.Empty(t, cfg.Links)
}

func TestLoad_TOMLRepoConfig(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile(".dotstrap.toml", `
log_file = "none"

[[links]]
source = "gitconfig"
target = "~/.gitconfig"

[[links]]
source = "vimrc"
target = "~/.vimrc"
`)

	cfg, err := config.Load(env.RepoRoot)
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.LogFile)
	require.Len(t, cfg.Links, 2)
	assert.Equal(t, config.LinkSpec{Source: "gitconfig", Target: "~/.gitconfig"}, cfg.Links[0])
	assert.Equal(t, config.LinkSpec{Source: "vimrc", Target: "~/.vimrc"}, cfg.Links[1])
}

func TestLoad_YAMLRepoConfig(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile(".dotstrap.yaml", `
verbose: 2
links:
  - source: zshrc
    target: ~/.zshrc
`)

	cfg, err := config.Load(env.RepoRoot)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Verbose)
	require.Len(t, cfg.Links, 1)
	assert.Equal(t, config.LinkSpec{Source: "zshrc", Target: "~/.zshrc"}, cfg.Links[0])
}

func TestLoad_TOMLWinsOverYAML(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile(".dotstrap.toml", `verbose = 1`)
	env.CreateRepoFile(".dotstrap.yaml", `verbose: 3`)

	cfg, err := config.Load(env.RepoRoot)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Verbose)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile(".dotstrap.toml", `
dry_run = false
log_file = "/from/file.log"
`)
	t.Setenv("DOTSTRAP_DRY_RUN", "true")
	t.Setenv("DOTSTRAP_LOG_FILE", "none")

	cfg, err := config.Load(env.RepoRoot)
	require.NoError(t, err)

	assert.True(t, cfg.DryRun)
	assert.Equal(t, "none", cfg.LogFile)
}

func TestLoad_MissingRepoIsFine(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	missing := filepath.Join(env.TempDir, "not-there")

	_, err := os.Stat(missing)
	require.True(t, os.IsNotExist(err))

	cfg, err := config.Load(missing)
	require.NoError(t, err)
	assert.Equal(t, missing, cfg.RepoRoot)
}
