// Package humane attaches human-readable context to errors and renders it.
//
// An annotation is a failure mode ("what this means for the user") plus an
// ordered list of suggestions ("how to fix it"). It is stored on the error
// instance itself, so the error keeps its identity, message and stack:
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//		return nil, humane.Attach(err, "The configuration file could not be read.",
//			"Check that the file exists and is readable.")
//	}
//
// Errors implementing Storage (such as errx.Error) keep the annotation in
// their own side storage. Other pointer errors are tracked by address in a
// package-level table until they are garbage collected. Value errors are
// left unannotated.
//
// Contexts walks a chain breadth-first and yields every annotated error,
// descending into aggregates (Unwrap() []error or Errors() []error) sibling by
// sibling. Render turns the primary chain into a report:
//
//	*errx.Error: failed to start
//	   at main.run in /src/app/main.go:line 17
//
//	This was caused by:
//	*fs.PathError: The configuration file could not be read. (open app.yaml: no such file or directory)
//	   at /src/app/config.go:line 42
//
//	This was caused by:
//	syscall.Errno: no such file or directory
//
//
//	Suggestions:
//	   - Check that the file exists and is readable.
//
//	Original Exception:
//	*errx.Error: failed to start
//	...
//
// A chain without annotations renders as its plain %+v form.
package humane
