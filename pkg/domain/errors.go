package domain

import (
	"errors"
	"fmt"
)

// Sentinels for the error taxonomy. Typed errors below match them with errors.Is.
var (
	// ErrParse is returned when an input is missing, unreadable or not well-formed XML.
	ErrParse = errors.New("parse error")

	// ErrMalformedElement is returned when an `F` or `P` text does not tokenize as expected.
	ErrMalformedElement = errors.New("malformed element")

	// ErrInvalidPoint is returned when a `P` element fails id or coordinate validation.
	ErrInvalidPoint = errors.New("invalid point")

	// ErrDanglingReference is returned when a face names a point ID that does not exist.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrCacheMiss is returned by a CentroidCache when the key is unknown.
	ErrCacheMiss = errors.New("cache miss")
)

// ParseError wraps a failure to read or parse an XML input.
type ParseError struct {
	Path string // File path, empty for in-memory input
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MalformedElementError reports an `F` or `P` element whose text has the wrong arity or type.
type MalformedElementError struct {
	Tag    string // Element tag name
	Text   string // The offending raw text
	Reason string
}

func (e *MalformedElementError) Error() string {
	return fmt.Sprintf("malformed <%s> element %q: %s", e.Tag, e.Text, e.Reason)
}

func (e *MalformedElementError) Is(target error) bool { return target == ErrMalformedElement }

// InvalidPointError reports a `P` element rejected by the Extractor.
type InvalidPointError struct {
	Element string // The serialized offending element
	Reason  string
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("invalid point entry %s: %s", e.Element, e.Reason)
}

func (e *InvalidPointError) Is(target error) bool { return target == ErrInvalidPoint }

// DanglingReferenceError reports a face naming a point ID absent from the mapping.
type DanglingReferenceError struct {
	Face    Face
	Missing int
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("face %v references non-existent point ID %d", e.Face, e.Missing)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

// Kind returns a stable label for err, used by metrics and transport adapters.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrMalformedElement):
		return "malformed_element"
	case errors.Is(err, ErrInvalidPoint):
		return "invalid_point"
	case errors.Is(err, ErrDanglingReference):
		return "dangling_reference"
	default:
		return "other"
	}
}

// IsInputError reports whether err was caused by the input document rather than the environment.
func IsInputError(err error) bool {
	switch Kind(err) {
	case "parse", "malformed_element", "invalid_point", "dangling_reference":
		return true
	}
	return false
}
