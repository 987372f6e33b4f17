package humane

// ErrorContext pairs an annotated error found in a chain with its annotation.
// It does not own the error.
type ErrorContext struct {
	Err        error
	Annotation Annotation
}

// FailureMode is the annotation's failure mode.
func (c ErrorContext) FailureMode() string { return c.Annotation.failureMode }

// Suggestions returns a copy of the annotation's suggestions.
func (c ErrorContext) Suggestions() []string { return c.Annotation.Suggestions() }

// Member is the function that attached the annotation.
func (c ErrorContext) Member() string { return c.Annotation.location.Member }

// File is the source file where the annotation was attached.
func (c ErrorContext) File() string { return c.Annotation.location.File }

// Line is the line within File where the annotation was attached.
func (c ErrorContext) Line() int { return c.Annotation.location.Line }
