package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/paths"
	"github.com/dotstrap/dotstrap/pkg/testutil"
)

func TestNew_ResolutionOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	t.Run("explicit argument wins", func(t *testing.T) {
		explicit := filepath.Join(env.TempDir, "elsewhere")
		p, err := paths.New(explicit)
		require.NoError(t, err)
		assert.Equal(t, explicit, p.RepoRoot())
	})

	t.Run("environment variable is next", func(t *testing.T) {
		p, err := paths.New("")
		require.NoError(t, err)
		assert.Equal(t, env.RepoRoot, p.RepoRoot())
	})

	t.Run("falls back to ~/dotfiles", func(t *testing.T) {
		t.Setenv(paths.EnvRepoRoot, "")
		p, err := paths.New("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(env.HomeDir, "dotfiles"), p.RepoRoot())
	})
}

func TestWellKnownLocations(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	p, err := paths.New("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(env.RepoRoot, ".links"), p.LedgerPath())
	assert.Equal(t, filepath.Join(os.TempDir(), "dotstrap-bootstrap.lock"), p.LockPath())
	assert.Equal(t, env.HomeDir, p.HomeDir())

	roots := p.ScanRoots()
	require.Len(t, roots, 3)
	assert.Equal(t, env.HomeDir, roots[0])
	assert.Equal(t, filepath.Join(env.HomeDir, ".config"), roots[1])
	assert.Equal(t, filepath.Join(env.HomeDir, ".local", "bin"), roots[2])
}

func TestResolveSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	p, err := paths.New("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(env.RepoRoot, "gitconfig"), p.ResolveSource("gitconfig"))
	assert.Equal(t, "/abs/path", p.ResolveSource("/abs/path"))
}

func TestResolveTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	p, err := paths.New("")
	require.NoError(t, err)

	got, err := p.ResolveTarget("~/.gitconfig")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.HomeDir, ".gitconfig"), got)

	got, err = p.ResolveTarget(".vimrc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.HomeDir, ".vimrc"), got)

	got, err = p.ResolveTarget("/etc/motd")
	require.NoError(t, err)
	assert.Equal(t, "/etc/motd", got)

	_, err = p.ResolveTarget("~other/.vimrc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRepoRootHomeExpansion(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	p, err := paths.New("~/my-dotfiles")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.HomeDir, "my-dotfiles"), p.RepoRoot())
}
