// Package testutil provides isolated test environments: a temp home
// directory, a managed repository and the environment variables that
// point dotstrap at them.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/dotstrap/dotstrap/pkg/filesystem"
	"github.com/dotstrap/dotstrap/pkg/types"
)

// TestEnvironment is a real-filesystem sandbox under t.TempDir with
// HOME and DOTSTRAP_REPO pointing into it.
type TestEnvironment struct {
	RepoRoot string
	HomeDir  string
	TempDir  string
	FS       types.FS

	t *testing.T
}

// NewTestEnvironment creates the sandbox and redirects HOME, the XDG
// directories and DOTSTRAP_REPO into it for the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		RepoRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:  filepath.Join(tempDir, "home"),
		TempDir:  tempDir,
		FS:       filesystem.NewOS(),
		t:        t,
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("DOTSTRAP_REPO", env.RepoRoot)
	// Isolate the lock and dry-run counter locations too.
	t.Setenv("TMPDIR", tempDir)
	t.Setenv("DOTSTRAP_SESSION_PID", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(env.HomeDir, ".local", "share"))

	// adrg/xdg caches its values at init time.
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	for _, dir := range []string{env.RepoRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	return env
}

// CreateRepoFile writes a file inside the repository and returns its
// absolute path.
func (env *TestEnvironment) CreateRepoFile(name, content string) string {
	env.t.Helper()
	return env.createFile(filepath.Join(env.RepoRoot, name), content)
}

// CreateHomeFile writes a file inside the home directory and returns
// its absolute path.
func (env *TestEnvironment) CreateHomeFile(name, content string) string {
	env.t.Helper()
	return env.createFile(filepath.Join(env.HomeDir, name), content)
}

func (env *TestEnvironment) createFile(path, content string) string {
	env.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
