package change

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/officegraph/internal/model"
)

var (
	// ErrNotFound is returned when a step's item is missing from its list.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicate is returned when inserting an item already in its list.
	ErrDuplicate = errors.New("item already present")
	// ErrNotConnected is returned when disconnecting an unconnected link.
	ErrNotConnected = errors.New("connection not connected")
)

// Assign sets *Ptr to After. The previous value is captured when run Forward
// and restored when run Backward.
type Assign[V any] struct {
	Ptr   *V
	After V

	before V
}

func (s *Assign[V]) Run(d Direction) error {
	if d == Forward {
		s.before = *s.Ptr
		*s.Ptr = s.After
		return nil
	}
	*s.Ptr = s.before
	return nil
}

// Insert adds Item to a name-sorted sibling list and re-sorts it.
type Insert[T model.Named] struct {
	List *[]T
	Item T

	before []T
}

func (s *Insert[T]) Run(d Direction) error {
	if d == Backward {
		*s.List = s.before
		return nil
	}
	for _, existing := range *s.List {
		if any(existing) == any(s.Item) {
			return fmt.Errorf("insert %q: %w", s.Item.NodeName(), ErrDuplicate)
		}
	}
	s.before = *s.List
	next := append(slices.Clone(s.before), s.Item)
	model.SortByName(next)
	*s.List = next
	return nil
}

// Remove deletes Item from a list, keeping the order of the rest.
type Remove[T comparable] struct {
	List *[]T
	Item T

	before []T
}

func (s *Remove[T]) Run(d Direction) error {
	if d == Backward {
		*s.List = s.before
		return nil
	}
	idx := slices.Index(*s.List, s.Item)
	if idx < 0 {
		return ErrNotFound
	}
	s.before = *s.List
	*s.List = slices.Delete(slices.Clone(s.before), idx, idx+1)
	return nil
}

// Resort sorts a sibling list by name, restoring the prior order on Backward.
type Resort[T model.Named] struct {
	List *[]T

	before []T
}

func (s *Resort[T]) Run(d Direction) error {
	if d == Backward {
		*s.List = s.before
		return nil
	}
	s.before = *s.List
	next := slices.Clone(s.before)
	model.SortByName(next)
	*s.List = next
	return nil
}

// Link connects Conn between Source and Target.
type Link struct {
	Conn   *model.Connection
	Source model.Node
	Target model.Node
}

func (s *Link) Run(d Direction) error {
	if d == Forward {
		return s.Conn.Connect(s.Source, s.Target)
	}
	s.Conn.Remove()
	return nil
}

// Unlink disconnects Conn, remembering its endpoints and list positions so
// that running Backward reconnects it exactly where it was.
type Unlink struct {
	Conn *model.Connection

	source model.Node
	target model.Node
	pos    model.Position
}

func (s *Unlink) Run(d Direction) error {
	if d == Backward {
		return s.Conn.ConnectAt(s.source, s.target, s.pos)
	}
	if !s.Conn.IsConnected() {
		return fmt.Errorf("%s: %w", s.Conn, ErrNotConnected)
	}
	s.source = s.Conn.Source()
	s.target = s.Conn.Target()
	s.pos = s.Conn.Remove()
	return nil
}

// Sequence runs its steps in order Forward and in reverse order Backward.
// A failing step during Forward undoes the steps before it.
type Sequence []Step

func (s Sequence) Run(d Direction) error {
	if d == Backward {
		for i := len(s) - 1; i >= 0; i-- {
			if err := s[i].Run(Backward); err != nil {
				return err
			}
		}
		return nil
	}
	for i, step := range s {
		if err := step.Run(Forward); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = s[j].Run(Backward)
			}
			return err
		}
	}
	return nil
}

// Append adds Item to the end of an unsorted list.
type Append[T comparable] struct {
	List *[]T
	Item T

	before []T
}

func (s *Append[T]) Run(d Direction) error {
	if d == Backward {
		*s.List = s.before
		return nil
	}
	if slices.Contains(*s.List, s.Item) {
		return ErrDuplicate
	}
	s.before = *s.List
	*s.List = append(slices.Clone(s.before), s.Item)
	return nil
}
