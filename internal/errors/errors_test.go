package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/mutker/oserr/internal/errors"
)

func TestFactory(t *testing.T) {
	f := errors.New()

	err := f.New(errors.ErrResourceBusy)
	assert.Equal(t, errors.ErrResourceBusy, err.Code())
	assert.Equal(t, "Resource is busy", err.Error())

	cause := stderrors.New("disk full")
	wrapped := f.Wrap(errors.ErrRecordJournal, cause)
	assert.Equal(t, "Failed to record journal entry: disk full", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))

	withMsg := f.WithMessage(errors.ErrInvalidArgument, "base must be 0 or 2..36")
	assert.Equal(t, "base must be 0 or 2..36", withMsg.Error())

	withData := f.WithData(errors.ErrUnknownDomain, "posix")
	assert.Equal(t, "Unknown error domain: posix", withData.Error())
	assert.Equal(t, "posix", withData.GetData())
}

func TestWithMessageKeepsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.New().Wrap(errors.ErrOperationFailed, cause).WithMessage("unlink failed")

	assert.Equal(t, errors.ErrOperationFailed, err.Code())
	assert.Equal(t, "unlink failed: boom", err.Error())
	assert.Same(t, cause, err.Unwrap())
}

func TestUnknownCodeMessage(t *testing.T) {
	assert.Equal(t, "custom_code", errors.GetErrorMessage("custom_code"))
}
