package errx

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// UserString returns a user-safe error message.
// It extracts the most user-friendly message from an errx.Error,
// falling back to the standard error message for non-errx errors.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.message != "" {
			return e.message
		}
		if e.description != "" {
			return e.description
		}
		if e.code != "" {
			return e.code
		}
	}
	return err.Error()
}

// IsError checks if the given error is an errx.Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// DebugString returns a verbose error string with codes, context, and chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Error:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, typed, typed.Error()))
			if typed.code != "" {
				b.WriteString(fmt.Sprintf(" | code=%s", typed.code))
			}
			if typed.description != "" {
				b.WriteString(fmt.Sprintf(" | description=%q", typed.description))
			}
			if typed.message != "" {
				b.WriteString(fmt.Sprintf(" | message=%q", typed.message))
			}
			if len(typed.context) > 0 {
				b.WriteString(" | context={")
				b.WriteString(formatContext(typed.context))
				b.WriteByte('}')
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, item.Error()))
		}
	}
	return b.String()
}

// Format implements fmt.Formatter.
//
//	%v, %s  the message
//	%q      the quoted message
//	%+v     the native multi-line form: type and message, context, stack,
//	        then each cause introduced by " ---> "
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e != nil {
			writeNative(s, e)
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}

// Format implements fmt.Formatter with the same verbs as Error.Format.
func (a *Aggregate) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && a != nil {
			writeNative(s, a)
			return
		}
		_, _ = io.WriteString(s, a.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", a.Error())
	default:
		_, _ = io.WriteString(s, a.Error())
	}
}

// writeNative writes err and everything below it. errx types are expanded
// field by field; foreign errors print their own %+v when they implement
// fmt.Formatter and "<type>: <message>" otherwise, followed by their causes.
func writeNative(w io.Writer, err error) {
	switch typed := err.(type) {
	case *Error:
		_, _ = fmt.Fprintf(w, "%T: %s", typed, typed.Error())
		if len(typed.context) > 0 {
			_, _ = fmt.Fprintf(w, "\n   with %s", formatContext(typed.context))
		}
		if st := typed.stack.String(); st != "" {
			_, _ = io.WriteString(w, "\n"+st)
		}
		if typed.cause != nil {
			_, _ = io.WriteString(w, "\n ---> ")
			writeNative(w, typed.cause)
		}
	case *Aggregate:
		_, _ = fmt.Fprintf(w, "%T: %s", typed, typed.Error())
		if st := typed.stack.String(); st != "" {
			_, _ = io.WriteString(w, "\n"+st)
		}
		for i, child := range typed.errs {
			_, _ = fmt.Fprintf(w, "\n ---> (%d of %d) ", i+1, len(typed.errs))
			writeNative(w, child)
		}
	case fmt.Formatter:
		_, _ = fmt.Fprintf(w, "%+v", typed)
	default:
		_, _ = fmt.Fprintf(w, "%T: %s", err, err.Error())
		children := unwrapAll(err)
		for i, child := range children {
			if child == nil {
				continue
			}
			if len(children) > 1 {
				_, _ = fmt.Fprintf(w, "\n ---> (%d of %d) ", i+1, len(children))
			} else {
				_, _ = io.WriteString(w, "\n ---> ")
			}
			writeNative(w, child)
		}
	}
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func formatContext(ctx map[string]any) string {
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, ctx[key]))
	}
	return strings.Join(parts, ", ")
}
