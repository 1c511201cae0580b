package execute_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/execute"
)

func TestRunner_PreviewDoesNotExecute(t *testing.T) {
	counter := newTempCounter(t)
	var out bytes.Buffer
	runner := execute.New(execute.Options{DryRun: true, Counter: counter, Stdout: &out})

	marker := filepath.Join(t.TempDir(), "marker")
	require.NoError(t, runner.Run("touch", marker))

	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err), "preview must not run the command")
	assert.Contains(t, out.String(), "[dry-run] touch "+marker)
	assert.Equal(t, []string{"touch " + marker}, runner.Changes())

	count, err := counter.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRunner_RealModeExecutes(t *testing.T) {
	var out bytes.Buffer
	runner := execute.New(execute.Options{Stdout: &out})

	marker := filepath.Join(t.TempDir(), "marker")
	require.NoError(t, runner.Run("touch", marker))

	_, err := os.Stat(marker)
	assert.NoError(t, err)
	assert.Empty(t, runner.Changes())
}

func TestRunner_VerboseEchoesCommand(t *testing.T) {
	var out bytes.Buffer
	runner := execute.New(execute.Options{Verbose: true, Stdout: &out})

	require.NoError(t, runner.Run("true"))
	assert.Contains(t, out.String(), "true")
	assert.NotContains(t, out.String(), "[dry-run]")
}

func TestRunner_PropagatesExitStatus(t *testing.T) {
	runner := execute.New(execute.Options{Stdout: &bytes.Buffer{}})

	err := runner.Run("sh", "-c", "exit 3")
	require.Error(t, err)
	assert.True(t, dserrors.IsErrorCode(err, dserrors.ErrExecFailed))

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "exit status must survive wrapping")
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRunner_DoRoutesMutations(t *testing.T) {
	counter := newTempCounter(t)
	var out bytes.Buffer

	t.Run("preview records without applying", func(t *testing.T) {
		runner := execute.New(execute.Options{DryRun: true, Counter: counter, Stdout: &out})
		applied := false
		require.NoError(t, runner.Do("ln -s a b", func() error {
			applied = true
			return nil
		}))
		assert.False(t, applied)
		assert.Contains(t, out.String(), "[dry-run] ln -s a b")

		count, err := counter.Summarize()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("real mode applies and propagates errors", func(t *testing.T) {
		runner := execute.New(execute.Options{Stdout: &out})
		applied := false
		require.NoError(t, runner.Do("ln -s a b", func() error {
			applied = true
			return nil
		}))
		assert.True(t, applied)

		boom := errors.New("boom")
		assert.ErrorIs(t, runner.Do("rm c", func() error { return boom }), boom)
	})
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"/usr/local/bin/tool", "/usr/local/bin/tool"},
		{"~/dotfiles", "~/dotfiles"},
		{"", "''"},
		{"has space", "'has space'"},
		{"it's", `'it'\''s'`},
		{"a;b", "'a;b'"},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, execute.ShellQuote(tt.in), "input %q", tt.in)
	}
}

func TestShellJoin(t *testing.T) {
	assert.Equal(t, "mv 'my file' /tmp/dest", execute.ShellJoin([]string{"mv", "my file", "/tmp/dest"}))
}
