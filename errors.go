package facet

import (
	"errors"
	"fmt"
)

// Kind categorizes engine failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInitialization
	KindRendering
	KindInputParsing
	KindLayoutCalculation
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindInitialization:
		return "initialization"
	case KindRendering:
		return "rendering"
	case KindInputParsing:
		return "input-parsing"
	case KindLayoutCalculation:
		return "layout-calculation"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Error is an engine failure tagged with a Kind and, where the failure is
// attributable to a specific element, that element.
type Error struct {
	Kind Kind
	Node Element
	Err  error
}

func (e *Error) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("%s: node %d: %v", e.Kind, e.Node.ID(), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf creates a tagged error. node may be nil.
func errorf(kind Kind, node Element, format string, args ...any) *Error {
	return &Error{Kind: kind, Node: node, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of err, or KindUnknown if err carries no tag.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NodeOf returns the element err is attributed to, or nil.
func NodeOf(err error) Element {
	var e *Error
	if errors.As(err, &e) {
		return e.Node
	}
	return nil
}
