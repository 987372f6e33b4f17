package errx

// Every helper here captures the stack starting at its own caller.

// CreateByCode creates an Error using the provided code, description, and message.
// This is a convenience function equivalent to New() or Wrap().
func CreateByCode(code, description, message string, cause error) *Error {
	return build(code, description, message, cause, 1)
}

// FromSentinel creates an Error from a sentinel error and optional message/cause.
// The sentinel's category is resolved through lookup; unknown sentinels fall
// back to the CLI category.
func FromSentinel(sentinel error, lookup func(error) (code, description string), message string, cause error) *Error {
	code, desc := lookup(sentinel)
	if code == "" {
		code = CodeCLI
		desc = DescCLI
	}
	return build(code, desc, message, cause, 1).WithBase(sentinel)
}

// ForCode creates an Error for a registered code, using the registry
// description. Unregistered codes keep an empty description.
func ForCode(code, message string, cause error) *Error {
	desc, _ := DescriptionFor(code)
	return build(code, desc, message, cause, 1)
}

// CLI creates a CLI/argument validation error with code 70000.
func CLI(message string) *Error {
	return build(CodeCLI, DescCLI, message, nil, 1)
}

// WrapCLI wraps a cause with a CLI/argument validation error.
func WrapCLI(message string, cause error) *Error {
	return build(CodeCLI, DescCLI, message, cause, 1)
}

// Chain creates a chain description error with code 71000.
func Chain(message string) *Error {
	return build(CodeChain, DescChain, message, nil, 1)
}

// WrapChain wraps a cause with a chain description error.
func WrapChain(message string, cause error) *Error {
	return build(CodeChain, DescChain, message, cause, 1)
}

// WrapRender wraps a cause with a report rendering error.
func WrapRender(message string, cause error) *Error {
	return build(CodeRender, DescRender, message, cause, 1)
}
