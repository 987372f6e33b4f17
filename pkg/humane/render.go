package humane

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilError is returned by Render when it is given a nil error.
var ErrNilError = errors.New("humane: cannot render a nil error")

// Render explains err as a layered report: one entry per error on the primary
// cause chain, the de-duplicated suggestions of every annotated entry, and
// err's own %+v representation under "Original Exception:".
//
// When nothing on the primary chain is annotated, Render returns err's %+v
// representation unchanged.
func Render(err error) (string, error) {
	if isNil(err) {
		return "", ErrNilError
	}

	r := report{root: err}
	annotated := false
	for current := err; !isNil(current); current = primaryCause(current) {
		if a, ok := Lookup(current); ok {
			annotated = true
			r.causes = append(r.causes, fmt.Sprintf("%T: %s (%s)\n   at %s:line %d",
				current, a.failureMode, messageOf(current), a.location.File, a.location.Line))
			r.suggestions.add(a.suggestions...)
			continue
		}
		line := fmt.Sprintf("%T: %s\n%s", current, messageOf(current), firstStackLine(current))
		r.causes = append(r.causes, strings.TrimRight(line, " \t\r\n"))
	}

	if !annotated {
		return native(err), nil
	}
	return r.String(), nil
}

// String is Render for callers that have no use for the error: it returns ""
// for a nil err.
func String(err error) string {
	s, rerr := Render(err)
	if rerr != nil {
		return ""
	}
	return s
}

type report struct {
	root        error
	causes      []string
	suggestions dedup
}

func (r *report) String() string {
	var b strings.Builder

	b.WriteString(r.causes[0])
	b.WriteString("\n\n")

	for _, cause := range r.causes[1:] {
		b.WriteString("This was caused by:\n")
		b.WriteString(cause)
		b.WriteString("\n\n")
	}

	if len(r.suggestions.items) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range r.suggestions.items {
			b.WriteString("   - ")
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\nOriginal Exception:\n")
	b.WriteString(native(r.root))
	b.WriteByte('\n')

	return b.String()
}

// messageOf prefers an error's own message over Error(), which for wrapping
// errors usually repeats the cause.
func messageOf(err error) string {
	if m, ok := err.(interface{ Message() string }); ok {
		return m.Message()
	}
	return err.Error()
}

func firstStackLine(err error) string {
	st, ok := err.(interface{ StackTrace() string })
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(st.StackTrace(), "\n")
	return first
}

// native is the error's default human-readable representation.
func native(err error) string {
	return fmt.Sprintf("%+v", err)
}
