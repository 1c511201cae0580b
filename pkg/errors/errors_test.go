package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotstrap/dotstrap/pkg/errors"
)

func TestNewAndError(t *testing.T) {
	err := errors.New(errors.ErrLockContention, "lock is held")
	assert.Equal(t, "[LOCK_CONTENTION] lock is held", err.Error())
	assert.Equal(t, errors.ErrLockContention, errors.GetErrorCode(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := errors.Wrapf(cause, errors.ErrFileAccess, "cannot remove %s", "/home/u/.vimrc")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "FILE_ACCESS")
	assert.Contains(t, err.Error(), "/home/u/.vimrc")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrLedgerWrite, "cannot write %s", ".links")

	assert.True(t, errors.IsErrorCode(err, errors.ErrLedgerWrite))
	assert.False(t, errors.IsErrorCode(err, errors.ErrLedgerRead))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrLedgerWrite))

	// Codes survive another layer of wrapping.
	outer := fmt.Errorf("deploy failed: %w", err)
	assert.True(t, errors.IsErrorCode(outer, errors.ErrLedgerWrite))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrLockContention, "lock is held").
		WithDetail("pid", 4242).
		WithDetail("path", "/tmp/dotstrap-bootstrap.lock")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, 4242, details["pid"])
	assert.Equal(t, "/tmp/dotstrap-bootstrap.lock", details["path"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestGetErrorCodeUnknown(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}
