package errors

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandErrorf(t *testing.T) {
	cause := goerrors.New("unknown output style \"json\"")
	err := NewCommandErrorf(ExitFailure, "invalid arguments: %w", cause)

	assert.Equal(t, ExitFailure, err.ExitCode)
	assert.Equal(t, "invalid arguments: unknown output style \"json\"", err.Error())
	assert.True(t, goerrors.Is(err, cause))
}

func TestVerificationFailedErrorUnwrap(t *testing.T) {
	err := NewCommandError(&VerificationFailedError{Failed: 2, Total: 5}, ExitFailure)

	var verificationErr *VerificationFailedError
	assert.True(t, goerrors.As(err, &verificationErr))
	assert.Equal(t, "verification failed: 2 of 5 checks failed", err.Error())
}
