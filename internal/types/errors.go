package types

import (
	"fmt"
	"strings"
)

// AssignError is the closed taxonomy every Assign failure belongs to.
// Every member is a named struct with an Error() string and a
// constructor.
type AssignError interface {
	error
	Loc() SourceLoc
}

// AssignFailed is the root every failure is wrapped into at the top level
// of Assign, unless the failure already is an AssignFailed.
type AssignFailed struct {
	L, R   Type
	LocVal SourceLoc
	Causes []error
}

func NewAssignFailed(l, r Type, loc SourceLoc, causes ...error) *AssignFailed {
	return &AssignFailed{L: l, R: r, LocVal: loc, Causes: causes}
}

func (e *AssignFailed) Loc() SourceLoc { return e.LocVal }

func (e *AssignFailed) Error() string {
	msg := fmt.Sprintf("cannot assign %s to %s", e.R.String(), e.L.String())
	if len(e.Causes) == 0 {
		return msg
	}
	parts := make([]string, len(e.Causes))
	for i, c := range e.Causes {
		parts[i] = c.Error()
	}
	return msg + ": " + strings.Join(parts, "; ")
}

func (e *AssignFailed) Unwrap() []error { return e.Causes }

// UnionError collects the failures of a union rule: for a Union on the
// left, every alternative that rejected R; for a Union on the right, every
// alternative L did not accept.
type UnionError struct {
	LocVal SourceLoc
	Errors []error
}

func NewUnionError(loc SourceLoc, errs []error) *UnionError {
	return &UnionError{LocVal: loc, Errors: errs}
}

func (e *UnionError) Loc() SourceLoc { return e.LocVal }

func (e *UnionError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, c := range e.Errors {
		parts[i] = c.Error()
	}
	return "union alternatives failed: " + strings.Join(parts, "; ")
}

func (e *UnionError) Unwrap() []error { return e.Errors }

// IntersectionError reports the first intersection part that rejected R.
type IntersectionError struct {
	LocVal SourceLoc
	Cause  error
}

func NewIntersectionError(loc SourceLoc, cause error) *IntersectionError {
	return &IntersectionError{LocVal: loc, Cause: cause}
}

func (e *IntersectionError) Loc() SourceLoc { return e.LocVal }

func (e *IntersectionError) Error() string {
	return "intersection part rejected: " + e.Cause.Error()
}

func (e *IntersectionError) Unwrap() error { return e.Cause }

// MissingFields lists TypeLit/Interface members R had no matching member
// for.
type MissingFields struct {
	LocVal SourceLoc
	Fields []TypeElement
}

func NewMissingFields(loc SourceLoc, fields []TypeElement) *MissingFields {
	return &MissingFields{LocVal: loc, Fields: fields}
}

func (e *MissingFields) Loc() SourceLoc { return e.LocVal }

func (e *MissingFields) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.String()
	}
	return "missing fields: " + strings.Join(names, ", ")
}

// ConstructorRequired reports that L required a constructor signature R's
// Class did not declare.
type ConstructorRequired struct {
	LocVal SourceLoc
	Lhs    Type
	Rhs    Type
}

func NewConstructorRequired(loc SourceLoc, lhs, rhs Type) *ConstructorRequired {
	return &ConstructorRequired{LocVal: loc, Lhs: lhs, Rhs: rhs}
}

func (e *ConstructorRequired) Loc() SourceLoc { return e.LocVal }

func (e *ConstructorRequired) Error() string {
	return fmt.Sprintf("%s requires a constructor signature %s does not declare", e.Lhs.String(), e.Rhs.String())
}

// AssignedWrapperToPrimitive reports a boxed wrapper (Boolean/String/
// Number) assigned to its unboxed primitive counterpart.
type AssignedWrapperToPrimitive struct {
	LocVal SourceLoc
}

func NewAssignedWrapperToPrimitive(loc SourceLoc) *AssignedWrapperToPrimitive {
	return &AssignedWrapperToPrimitive{LocVal: loc}
}

func (e *AssignedWrapperToPrimitive) Loc() SourceLoc { return e.LocVal }

func (e *AssignedWrapperToPrimitive) Error() string {
	return "cannot assign boxed wrapper type to primitive"
}

// CannotAssignToThis reports an attempt to assign into the `this` type.
type CannotAssignToThis struct {
	LocVal SourceLoc
}

func NewCannotAssignToThis(loc SourceLoc) *CannotAssignToThis {
	return &CannotAssignToThis{LocVal: loc}
}

func (e *CannotAssignToThis) Loc() SourceLoc { return e.LocVal }

func (e *CannotAssignToThis) Error() string { return "cannot assign to this" }

// Errors aggregates the outcome of Structural Member Assignment: zero or
// more per-member mismatches plus an optional trailing MissingFields.
type Errors struct {
	LocVal SourceLoc
	Errs   []error
}

func NewErrors(loc SourceLoc, errs []error) *Errors {
	return &Errors{LocVal: loc, Errs: errs}
}

func (e *Errors) Loc() SourceLoc { return e.LocVal }

func (e *Errors) Error() string {
	parts := make([]string, len(e.Errs))
	for i, c := range e.Errs {
		parts[i] = c.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) Unwrap() []error { return e.Errs }

// Unimplemented signals a (L, R) pair outside the implemented subset: a
// pair the dispatch table has no rule for and which also failed the
// Phase E structural fallback, an Enum with mixed string and numeric
// initializers, a member kind that structural member assignment does not
// check against a Class or ClassInstance, or a query that exceeded
// Config.MaxRecursionDepth. It is an internal "I don't know" rather than a
// definite "no". Callers must never treat this as success.
type Unimplemented struct {
	LocVal SourceLoc
	Left   Type
	Right  Type
}

func NewUnimplemented(loc SourceLoc, left, right Type) *Unimplemented {
	return &Unimplemented{LocVal: loc, Left: left, Right: right}
}

func (e *Unimplemented) Loc() SourceLoc { return e.LocVal }

func (e *Unimplemented) Error() string {
	return fmt.Sprintf("assignability of %s from %s is unimplemented", e.Left.String(), e.Right.String())
}

var (
	_ AssignError = (*AssignFailed)(nil)
	_ AssignError = (*UnionError)(nil)
	_ AssignError = (*IntersectionError)(nil)
	_ AssignError = (*MissingFields)(nil)
	_ AssignError = (*ConstructorRequired)(nil)
	_ AssignError = (*AssignedWrapperToPrimitive)(nil)
	_ AssignError = (*CannotAssignToThis)(nil)
	_ AssignError = (*Errors)(nil)
	_ AssignError = (*Unimplemented)(nil)
)
