package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	CodeInvalidMessage = "HREFLANG_COMMAND_INVALID"
	CodeCanceled       = "HREFLANG_COMMAND_CANCELED"
	CodeTimeout        = "HREFLANG_COMMAND_TIMEOUT"
	CodeFailed         = "HREFLANG_COMMAND_FAILED"
)

// Skipped reports that a command had nothing to do, for example because tag
// injection is switched off. Handler.Execute turns it into a nil error and a
// skipped telemetry status.
func Skipped(reason string) error {
	return &skipError{reason: reason}
}

// SkipReason returns the reason carried by an error built with Skipped.
func SkipReason(err error) (string, bool) {
	var skip *skipError
	if errors.As(err, &skip) {
		return skip.reason, true
	}
	return "", false
}

type skipError struct {
	reason string
}

func (e *skipError) Error() string {
	return "command skipped: " + e.reason
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid command message").
		WithTextCode(CodeInvalidMessage)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(CodeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
		WithTextCode(CodeCanceled)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(CodeFailed)
}
