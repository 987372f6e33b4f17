package errx

import "strings"

// Aggregate groups several independent failures under one message.
// Unwrap() []error exposes the children to errors.Is/As and to fan-out
// traversal.
type Aggregate struct {
	message string
	errs    []error
	data    map[string]any
	stack   Stack
}

// Join returns an *Aggregate over the non-nil errs, in order. Like
// errors.Join, it returns a nil error when every err is nil.
func Join(message string, errs ...error) error {
	nz := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			nz = append(nz, err)
		}
	}
	if len(nz) == 0 {
		return nil
	}
	return &Aggregate{
		message: message,
		errs:    nz,
		data:    make(map[string]any),
		stack:   captureStack(1),
	}
}

// Error returns the aggregate's message, or the children's messages joined by
// newlines when no message was given.
func (a *Aggregate) Error() string {
	if a == nil {
		return ""
	}
	if a.message != "" {
		return a.message
	}
	parts := make([]string, 0, len(a.errs))
	for _, err := range a.errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

// Message returns the aggregate's message, or its children's messages joined
// by newlines when the message is empty.
func (a *Aggregate) Message() string {
	return a.Error()
}

// Unwrap returns a copy of the children.
func (a *Aggregate) Unwrap() []error {
	if a == nil {
		return nil
	}
	out := make([]error, len(a.errs))
	copy(out, a.errs)
	return out
}

// Data returns the aggregate's side storage.
func (a *Aggregate) Data() map[string]any {
	if a == nil {
		return nil
	}
	return a.data
}

// StackTrace returns the stack captured by Join, one frame per line.
func (a *Aggregate) StackTrace() string {
	if a == nil {
		return ""
	}
	return a.stack.String()
}
