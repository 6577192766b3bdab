// Package errors defines the error kinds reported by the premis packages.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by errors.Is against the concrete error types below.
var (
	ErrConstruction  = errors.New("premis: construction error")
	ErrNotFound      = errors.New("premis: not found")
	ErrAmbiguousPath = errors.New("premis: ambiguous path")
	ErrDecode        = errors.New("premis: decode error")
)

// ConstructionError reports an entity that could not be assembled from its
// arguments: a missing required field, an unknown argument, or arguments
// that conflict with each other.
type ConstructionError struct {
	Kind    string // entity kind, e.g. "event"
	Field   string // offending argument or field path
	Message string
	Err     error // underlying cause, if any
}

func (e *ConstructionError) Error() string {
	msg := fmt.Sprintf("premis: cannot construct %s: field %q: %s", e.Kind, e.Field, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConstruction) hold.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// NotFoundError reports a name that matches nothing in an entity kind's
// schema, or a derived view whose source structure is absent.
type NotFoundError struct {
	Kind    string
	Name    string
	Message string // optional detail
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("premis: %s has no field %q", e.Kind, e.Name)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AmbiguousPathError reports a name that matches more than one full path.
type AmbiguousPathError struct {
	Kind       string
	Name       string
	Candidates []string // sorted full paths
}

func (e *AmbiguousPathError) Error() string {
	return fmt.Sprintf("premis: %s field %q is ambiguous, candidates: %s",
		e.Kind, e.Name, strings.Join(e.Candidates, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousPath) hold.
func (e *AmbiguousPathError) Is(target error) bool { return target == ErrAmbiguousPath }

// DecodeError reports an XML element that does not map onto a canonical tree.
type DecodeError struct {
	Path    string // slash-separated wire path of the offending element
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "premis: decode error: " + e.Message
	}
	return fmt.Sprintf("premis: decode error at %s: %s", e.Path, e.Message)
}

// Is makes errors.Is(err, ErrDecode) hold.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
