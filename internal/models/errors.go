package models

import "fmt"

// The pipeline reports failures through four error classes. Handlers
// match on them with errors.As and map each class to one user-facing
// message; everything else is treated as an internal error.

// ConfigurationError reports invalid or missing startup configuration,
// such as the API key for the selected provider. It is fatal: the
// model-calling path refuses to start until the configuration is fixed.
type ConfigurationError struct {
	Field   string
	Message string
}

func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// InputError reports a submission rejected before the pipeline runs,
// like an empty job description or a missing upload.
type InputError struct {
	Field   string
	Message string
}

func NewInputError(field, message string) *InputError {
	return &InputError{Field: field, Message: message}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

// ExtractionError reports an uploaded document that could not be
// parsed or yielded no usable content. The submission aborts before
// any prompt is composed.
type ExtractionError struct {
	Reason string
	Err    error
}

func NewExtractionError(reason string, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Err: err}
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ServiceError reports a failed call to the external model provider:
// transport failure, non-success status or an empty response. The user
// sees a generic failure and may resubmit; nothing is retried.
type ServiceError struct {
	Provider string
	Err      error
}

func NewServiceError(provider string, err error) *ServiceError {
	return &ServiceError{Provider: provider, Err: err}
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
