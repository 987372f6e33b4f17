// Package errx provides structured, code-based errors for humane-errors tooling.
//
// Each error carries:
//   - A stable 5-digit error code (e.g., "71000" for chain description errors)
//   - A category description (e.g., "Chain description error")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//   - Per-instance side storage (Data) for out-of-band annotations
//   - The stack captured at construction
//
// Error codes follow a scheme where the first two digits represent the domain:
//   - 70xxx: CLI/argument validation errors
//   - 71xxx: Chain description errors
//   - 72xxx: Report rendering errors
//   - 79xxx: Configuration errors
//
// Aggregate (built with Join) groups independent failures and exposes them
// through Unwrap() []error.
//
// Formatting with %+v prints the native multi-line representation: type and
// message, context, stack frames and then every cause introduced by " ---> ".
//
// Example usage:
//
//	err := errx.WrapChain("failed to load chain", ioErr).
//		WithContext("path", "chain.yaml").
//		WithBase(sentinelErr)
//
//	if errors.Is(err, sentinelErr) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Printf("%+v\n", err)           // Native representation with stack
package errx
