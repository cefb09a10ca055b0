package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/cadence/pkg/application"
)

// CLIError wraps application errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known application errors into CLIErrors with actionable
// hints. Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, application.ErrNotInitialized):
		return NewCLIError("workspace not initialized", "Run 'cadence init' to create a workspace", err)
	case errors.Is(err, application.ErrAlreadyInitialized):
		return NewCLIError("workspace already initialized", "Remove the .cadence directory to start over", err)
	case errors.Is(err, application.ErrChannelNotFound):
		return NewCLIError("channel not found", "Run 'cadence channel list' to see known channels", err)
	case errors.Is(err, application.ErrChannelArchived):
		return NewCLIError("channel is archived", "Run 'cadence channel restore <name>' to reactivate it", err)
	case errors.Is(err, application.ErrDuplicateChannel):
		return NewCLIError("channel name already taken", "Pick a different name or archive the existing channel", err)
	case errors.Is(err, application.ErrTemplateNotFound):
		return NewCLIError("template not found", "Run 'cadence template list' to see known templates", err)
	case errors.Is(err, application.ErrTaskNotFound):
		return NewCLIError("task not found", "Run 'cadence status' to list this week's tasks", err)
	case errors.Is(err, application.ErrSchedulingConflict):
		return NewCLIError("task overlaps an existing task", "Run 'cadence slots' to find a free block, or pass --force", err)
	case errors.Is(err, application.ErrSuggestionNotFound):
		return NewCLIError("suggestion not found", "Run 'cadence suggest' to regenerate suggestions", err)
	}

	return err
}
