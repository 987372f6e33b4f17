package chain

import (
	"fmt"

	"go.uber.org/multierr"

	"humane-errors/pkg/errx"
)

// DefaultMaxDepth bounds how deeply nodes may nest.
const DefaultMaxDepth = 64

// Option configures Validate and Build.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate reports every problem in doc at once. Each problem is an
// *errx.Error with ErrInvalidDocument as its base and the node path in its
// context; multierr.Errors splits the result.
func Validate(doc *Document, opts ...Option) error {
	o := newOptions(opts)
	if doc == nil || doc.Root == nil {
		return problem("root", "root is required")
	}
	return validateNode(doc.Root, "root", 1, o.maxDepth)
}

func validateNode(n *Node, path string, depth, maxDepth int) error {
	if n == nil {
		return problem(path, "node is empty")
	}
	if depth > maxDepth {
		return problem(path, fmt.Sprintf("nesting exceeds the maximum depth of %d", maxDepth))
	}

	var err error
	switch n.EffectiveKind() {
	case KindErrx:
		if n.Code != "" && !errx.IsValidCode(n.Code) {
			err = multierr.Append(err, problem(path, fmt.Sprintf("unknown error code %q", n.Code)))
		}
		if len(n.Causes) > 0 {
			err = multierr.Append(err, problem(path, "causes is only allowed on join nodes"))
		}
	case KindPlain:
		if n.Message == "" {
			err = multierr.Append(err, problem(path, "message is required for plain nodes"))
		}
		if n.Code != "" {
			err = multierr.Append(err, problem(path, "code is only allowed on errx nodes"))
		}
		if len(n.Causes) > 0 {
			err = multierr.Append(err, problem(path, "causes is only allowed on join nodes"))
		}
	case KindJoin:
		if n.Code != "" {
			err = multierr.Append(err, problem(path, "code is only allowed on errx nodes"))
		}
		if n.Cause != nil {
			err = multierr.Append(err, problem(path, "join nodes take causes, not cause"))
		}
		if len(n.Causes) == 0 {
			err = multierr.Append(err, problem(path, "join nodes need at least one cause"))
		}
	default:
		err = multierr.Append(err, problem(path, fmt.Sprintf("unknown kind %q", n.Kind)))
	}

	if a := n.Annotation; a != nil {
		if a.FailureMode == "" {
			err = multierr.Append(err, problem(path+".annotation", "failure_mode is required"))
		}
		if a.Line < 0 {
			err = multierr.Append(err, problem(path+".annotation", "line must not be negative"))
		}
	}

	if n.Cause != nil {
		err = multierr.Append(err, validateNode(n.Cause, path+".cause", depth+1, maxDepth))
	}
	for i, c := range n.Causes {
		err = multierr.Append(err, validateNode(c, fmt.Sprintf("%s.causes[%d]", path, i), depth+1, maxDepth))
	}
	return err
}

func problem(path, msg string) error {
	return errx.Chain(path + ": " + msg).
		WithBase(ErrInvalidDocument).
		WithContext("path", path)
}
