package errx

import "errors"

// Error is the base error type for humane-errors tooling.
type Error struct {
	code        string
	description string
	message     string
	context     map[string]any
	cause       error
	base        error
	data        map[string]any
	stack       Stack
}

// New creates a new Error with the provided code, description, and message.
func New(code, description, message string) *Error {
	return build(code, description, message, nil, 1)
}

// Wrap creates a new Error and attaches a cause error.
func Wrap(code, description, message string, cause error) *Error {
	return build(code, description, message, cause, 1)
}

// build captures the stack starting skip frames above its caller.
func build(code, description, message string, cause error, skip int) *Error {
	return &Error{
		code:        code,
		description: description,
		message:     message,
		cause:       cause,
		data:        make(map[string]any),
		stack:       captureStack(skip + 1),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.message != "" {
		return e.message
	}
	if e.description != "" {
		return e.description
	}
	if e.code != "" {
		return e.code
	}
	return "error"
}

// Unwrap returns the immediate wrapped error (cause).
// This follows Go's error wrapping convention where Unwrap() returns
// the direct cause, not the base sentinel.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is implements error matching for sentinel errors.
// This allows errors.Is(err, sentinel) to match the base sentinel
// even though Unwrap() returns the cause.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if e.base != nil && errors.Is(e.base, target) {
		return true
	}
	return errors.Is(e.cause, target)
}

// Code returns the stable error code.
func (e *Error) Code() string {
	if e == nil {
		return ""
	}
	return e.code
}

// Description returns the category description.
func (e *Error) Description() string {
	if e == nil {
		return ""
	}
	return e.description
}

// Message returns the text shown for this error alone: the message, or the
// description or code when the message is empty. Cause text is never included.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.Error()
}

// Context returns a copy of the structured context.
func (e *Error) Context() map[string]any {
	if e == nil || len(e.context) == 0 {
		return nil
	}
	return cloneContext(e.context)
}

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Base returns the sentinel base error, if any.
func (e *Error) Base() error {
	if e == nil {
		return nil
	}
	return e.base
}

// Data returns the instance's side storage. Values written here live exactly
// as long as the error does and are never copied to clones.
func (e *Error) Data() map[string]any {
	if e == nil {
		return nil
	}
	return e.data
}

// StackTrace returns the stack captured when the error was constructed, one
// frame per line.
func (e *Error) StackTrace() string {
	if e == nil {
		return ""
	}
	return e.stack.String()
}

// WithContext adds a context key/value pair.
// Returns a new error with the added context to avoid mutating the original.
func (e *Error) WithContext(key string, value any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if clone.context == nil {
		clone.context = make(map[string]any)
	}
	clone.context[key] = value
	return clone
}

// WithContextMap merges a context map into the error context.
// Always returns a clone, even if ctx is empty.
func (e *Error) WithContextMap(ctx map[string]any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if len(ctx) > 0 {
		if clone.context == nil {
			clone.context = make(map[string]any, len(ctx))
		}
		for key, value := range ctx {
			clone.context[key] = value
		}
	}
	return clone
}

// WithBase sets the sentinel base error used for errors.Is matching.
// Returns a new error with the base set to avoid mutating the original.
func (e *Error) WithBase(base error) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.base = base
	return clone
}

// clone copies everything except the side storage, which belongs to the
// original instance.
func (e *Error) clone() *Error {
	var ctx map[string]any
	if len(e.context) > 0 {
		ctx = cloneContext(e.context)
	}
	return &Error{
		code:        e.code,
		description: e.description,
		message:     e.message,
		cause:       e.cause,
		base:        e.base,
		context:     ctx,
		data:        make(map[string]any),
		stack:       e.stack,
	}
}

func cloneContext(ctx map[string]any) map[string]any {
	clone := make(map[string]any, len(ctx))
	for key, value := range ctx {
		clone[key] = value
	}
	return clone
}
