package change

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyApplied is returned by Apply on a change that was applied and
	// not yet reverted.
	ErrAlreadyApplied = errors.New("change already applied")
	// ErrNotApplied is returned by Revert on a change that is not applied.
	ErrNotApplied = errors.New("change not applied")
)

// Direction selects whether a Step performs or undoes its mutation.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Change is a reversible edit.
type Change interface {
	Description() string
	Apply() error
	Revert() error
}

// Typed is a Change bound to a target of type T.
type Typed[T any] interface {
	Change
	Target() T
}

// Step is a single mutation that can run in either direction. A Step may
// capture state when run Forward for use when run Backward.
type Step interface {
	Run(d Direction) error
}

// Primitive is a Change performing a single Step.
type Primitive[T any] struct {
	target      T
	description string
	step        Step
	applied     bool
}

// New returns a Change that runs step against target.
func New[T any](target T, description string, step Step) *Primitive[T] {
	return &Primitive[T]{target: target, description: description, step: step}
}

func (p *Primitive[T]) Target() T           { return p.target }
func (p *Primitive[T]) Description() string { return p.description }

// Step returns the underlying mutation.
func (p *Primitive[T]) Step() Step { return p.step }

func (p *Primitive[T]) Apply() error {
	if p.applied {
		return fmt.Errorf("%s: %w", p.description, ErrAlreadyApplied)
	}
	if err := p.step.Run(Forward); err != nil {
		return fmt.Errorf("%s: %w", p.description, err)
	}
	p.applied = true
	return nil
}

func (p *Primitive[T]) Revert() error {
	if !p.applied {
		return fmt.Errorf("%s: %w", p.description, ErrNotApplied)
	}
	if err := p.step.Run(Backward); err != nil {
		return fmt.Errorf("%s: %w", p.description, err)
	}
	p.applied = false
	return nil
}

// NoChange is a Change that does nothing. Its description explains why the
// requested operation could not be made.
type NoChange[T any] struct {
	target      T
	description string
}

// None returns a NoChange for target.
func None[T any](target T, description string) *NoChange[T] {
	return &NoChange[T]{target: target, description: description}
}

// Nonef is None with a formatted description.
func Nonef[T any](target T, format string, args ...any) *NoChange[T] {
	return None(target, fmt.Sprintf(format, args...))
}

func (n *NoChange[T]) Target() T           { return n.target }
func (n *NoChange[T]) Description() string { return n.description }
func (n *NoChange[T]) Apply() error        { return nil }
func (n *NoChange[T]) Revert() error       { return nil }
func (n *NoChange[T]) noChange()           {}

type noChanger interface {
	noChange()
}

// IsNoChange reports whether c is a NoChange.
func IsNoChange(c Change) bool {
	_, ok := c.(noChanger)
	return ok
}

// Failed is a Change for an operation that violates a graph invariant. Its
// Apply always returns the error and leaves the graph untouched.
type Failed[T any] struct {
	target      T
	description string
	err         error
}

// Fail returns a Failed change for target.
func Fail[T any](target T, description string, err error) *Failed[T] {
	return &Failed[T]{target: target, description: description, err: err}
}

func (f *Failed[T]) Target() T           { return f.target }
func (f *Failed[T]) Description() string { return f.description }
func (f *Failed[T]) Apply() error        { return fmt.Errorf("%s: %w", f.description, f.err) }
func (f *Failed[T]) Revert() error       { return fmt.Errorf("%s: %w", f.description, ErrNotApplied) }
