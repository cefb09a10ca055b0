package application

import "errors"

// Sentinel errors returned by the application services. The CLI maps these
// to user-facing messages and exit codes.
var (
	ErrNotInitialized     = errors.New("workspace not initialized")
	ErrAlreadyInitialized = errors.New("workspace already initialized")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrChannelArchived    = errors.New("channel is archived")
	ErrDuplicateChannel   = errors.New("channel with this name already exists")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrSchedulingConflict = errors.New("task overlaps an existing task")
	ErrSuggestionNotFound = errors.New("suggestion not found")
)
