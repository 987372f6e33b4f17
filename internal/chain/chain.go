// Package chain loads YAML descriptions of error trees and builds annotated
// errors from them.
//
//	root:
//	  code: "71000"
//	  message: could not load the chain
//	  annotation:
//	    failure_mode: The chain description is unusable.
//	    suggestions: [Check the file for typos.]
//	  cause:
//	    kind: plain
//	    message: unexpected end of input
package chain

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"humane-errors/pkg/errx"
)

// Kind selects the error type a Node builds.
type Kind string

const (
	// KindErrx builds an *errx.Error with the node's code. It is the default.
	KindErrx Kind = "errx"
	// KindPlain builds errors.New, or fmt.Errorf with %w when there is a cause.
	KindPlain Kind = "plain"
	// KindJoin builds errx.Join when the node has a message and errors.Join
	// otherwise.
	KindJoin Kind = "join"
)

// Document is a parsed chain description.
type Document struct {
	Root *Node `yaml:"root"`
}

// Node describes one error in the tree.
type Node struct {
	Kind       Kind        `yaml:"kind,omitempty"`
	Code       string      `yaml:"code,omitempty"`
	Message    string      `yaml:"message,omitempty"`
	Annotation *Annotation `yaml:"annotation,omitempty"`
	Cause      *Node       `yaml:"cause,omitempty"`
	Causes     []*Node     `yaml:"causes,omitempty"`
}

// Annotation is attached to the node's error once it is built. File and
// Member default to "<unknown>" when omitted.
type Annotation struct {
	FailureMode string   `yaml:"failure_mode"`
	Suggestions []string `yaml:"suggestions,omitempty"`
	File        string   `yaml:"file,omitempty"`
	Line        int      `yaml:"line,omitempty"`
	Member      string   `yaml:"member,omitempty"`
}

// EffectiveKind is the node's kind with the default applied.
func (n *Node) EffectiveKind() Kind {
	if n.Kind == "" {
		return KindErrx
	}
	return n.Kind
}

var (
	// ErrEmptyDocument is returned by Parse for input without a document.
	ErrEmptyDocument = errors.New("chain description is empty")
	// ErrInvalidDocument is the base of every validation problem.
	ErrInvalidDocument = errors.New("invalid chain description")
)

// Parse decodes a chain description. Unknown fields are rejected. The result
// is not validated.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errx.Chain("failed to parse chain description").WithBase(ErrEmptyDocument)
		}
		return nil, errx.WrapChain("failed to parse chain description", err)
	}
	return &doc, nil
}

// LoadFile reads and parses the chain description at path.
func LoadFile(path string) (*Document, error) {
	// #nosec G304 -- path is supplied by the user on the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.WrapChain("failed to read chain description", err).WithContext("path", path)
	}
	doc, err := Parse(data)
	if err != nil {
		var e *errx.Error
		if errors.As(err, &e) {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}
