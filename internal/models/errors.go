package models

// ErrorType identifies the pipeline step where a run failed.
type ErrorType string

const (
	// Provision step
	ErrProvisionFailed ErrorType = "provision_failed"
	ErrGitNotFound     ErrorType = "git_not_found"

	// Execute step
	ErrFetchFailed   ErrorType = "fetch_failed"
	ErrWriteFailed   ErrorType = "write_failed"
	ErrScriptFailed  ErrorType = "script_failed"
	ErrScriptTimeout ErrorType = "script_timeout"

	// Publish step
	ErrPublishFailed ErrorType = "publish_failed"
	ErrPushRejected  ErrorType = "push_rejected"

	// Catch-all
	ErrInternalError ErrorType = "internal_error"
)
