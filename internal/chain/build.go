package chain

import (
	"errors"
	"fmt"

	"humane-errors/pkg/errx"
	"humane-errors/pkg/humane"
)

const unknownLocation = "<unknown>"

// Build validates root and constructs its error tree bottom-up. Annotated
// nodes are attached with the location they describe, not the location of
// Build. The second result is the validation failure, if any.
func Build(root *Node, opts ...Option) (built error, err error) {
	if err := Validate(&Document{Root: root}, opts...); err != nil {
		return nil, err
	}
	return build(root), nil
}

func build(n *Node) error {
	var out error
	switch n.EffectiveKind() {
	case KindPlain:
		if n.Cause == nil {
			out = errors.New(n.Message)
		} else {
			out = fmt.Errorf("%s: %w", n.Message, build(n.Cause))
		}
	case KindJoin:
		children := make([]error, 0, len(n.Causes))
		for _, c := range n.Causes {
			children = append(children, build(c))
		}
		if n.Message == "" {
			out = errors.Join(children...)
		} else {
			out = errx.Join(n.Message, children...)
		}
	default:
		code := n.Code
		if code == "" {
			code = errx.CodeCLI
		}
		var cause error
		if n.Cause != nil {
			cause = build(n.Cause)
		}
		out = errx.ForCode(code, n.Message, cause)
	}

	if a := n.Annotation; a != nil {
		out = humane.AttachAt(out, location(a), a.FailureMode, a.Suggestions...)
	}
	return out
}

func location(a *Annotation) humane.Location {
	loc := humane.Location{Member: a.Member, File: a.File, Line: a.Line}
	if loc.Member == "" {
		loc.Member = unknownLocation
	}
	if loc.File == "" {
		loc.File = unknownLocation
	}
	return loc
}
