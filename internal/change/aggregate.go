package change

import "fmt"

// Aggregate applies a list of changes in order and reverts them in reverse
// order.
type Aggregate[T any] struct {
	target      T
	description string
	changes     []Change
	applied     bool
}

// Compose returns an Aggregate of changes bound to target.
func Compose[T any](target T, description string, changes ...Change) *Aggregate[T] {
	return &Aggregate[T]{target: target, description: description, changes: changes}
}

func (a *Aggregate[T]) Target() T           { return a.target }
func (a *Aggregate[T]) Description() string { return a.description }

// Changes returns the composed changes in apply order.
func (a *Aggregate[T]) Changes() []Change { return a.changes }

func (a *Aggregate[T]) Apply() error {
	if a.applied {
		return fmt.Errorf("%s: %w", a.description, ErrAlreadyApplied)
	}
	for i, c := range a.changes {
		if err := c.Apply(); err != nil {
			if rbErr := revertAll(a.changes[:i]); rbErr != nil {
				return fmt.Errorf("%s: %w (rollback failed: %v)", a.description, err, rbErr)
			}
			return fmt.Errorf("%s: %w", a.description, err)
		}
	}
	a.applied = true
	return nil
}

func (a *Aggregate[T]) Revert() error {
	if !a.applied {
		return fmt.Errorf("%s: %w", a.description, ErrNotApplied)
	}
	if err := revertAll(a.changes); err != nil {
		return fmt.Errorf("%s: %w", a.description, err)
	}
	a.applied = false
	return nil
}

func revertAll(changes []Change) error {
	for i := len(changes) - 1; i >= 0; i-- {
		if err := changes[i].Revert(); err != nil {
			return err
		}
	}
	return nil
}

// Flatten returns the leaf changes of c in apply order, descending into
// nested aggregates.
func Flatten(c Change) []Change {
	type composite interface{ Changes() []Change }
	agg, ok := c.(composite)
	if !ok {
		return []Change{c}
	}
	var leaves []Change
	for _, sub := range agg.Changes() {
		leaves = append(leaves, Flatten(sub)...)
	}
	return leaves
}
