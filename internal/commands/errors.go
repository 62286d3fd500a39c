package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors raised by the command layer. Validation
// failures always carry CodeValidation. Execution errors that already carry
// a go-errors category, such as DOCUMENT_PARSE_FAILED from the generator,
// are returned unchanged.
const (
	CodeValidation     = "COMMAND_VALIDATION_FAILED"
	CodeContextCancel  = "COMMAND_CONTEXT_CANCELED"
	CodeContextTimeout = "COMMAND_CONTEXT_TIMEOUT"
	CodeContextError   = "COMMAND_CONTEXT_ERROR"
	CodeExecuteFailed  = "COMMAND_EXECUTION_FAILED"
)

type stage int

const (
	stageValidate stage = iota
	stageContext
	stageExecute
)

func classify(s stage, err error) error {
	if err == nil {
		return nil
	}
	if s == stageValidate {
		// Wrap clones an existing go-errors value and keeps its category,
		// so both fields are set on the result.
		wrapped := goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed")
		wrapped.Category = goerrors.CategoryValidation
		return wrapped.WithTextCode(CodeValidation)
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	category, code, message := goerrors.CategoryCommand, CodeExecuteFailed, "command execution failed"
	switch s {
	case stageContext:
		switch {
		case errors.Is(err, context.Canceled):
			code, message = CodeContextCancel, "command execution cancelled"
		case errors.Is(err, context.DeadlineExceeded):
			code, message = CodeContextTimeout, "command execution deadline exceeded"
		default:
			code, message = CodeContextError, "command context error"
		}
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}
