// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"slices"
	"strconv"
	"strings"
)

// SortByName sorts items by name, case-sensitive, keeping the relative order
// of equal names.
func SortByName[T Named](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return strings.Compare(a.NodeName(), b.NodeName())
	})
}

// IsSortedByName reports whether names are in strictly ascending order.
func IsSortedByName[T Named](items []T) bool {
	for i := 1; i < len(items); i++ {
		if items[i-1].NodeName() >= items[i].NodeName() {
			return false
		}
	}
	return true
}

// FindByName returns the first item with the given name.
func FindByName[T Named](items []T, name string) (T, bool) {
	for _, item := range items {
		if item.NodeName() == name {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Names returns the names of items in order.
func Names[T Named](items []T) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.NodeName()
	}
	return names
}

// NameAllocator hands out synthetic names of the form <prefix><n>. It is
// owned by an Office so that separate graphs never share a counter.
type NameAllocator struct {
	next map[string]int
}

// NewNameAllocator returns an allocator whose counters start at 1.
func NewNameAllocator() *NameAllocator {
	return &NameAllocator{next: make(map[string]int)}
}

// Next returns the next name for prefix that is not in use.
func (a *NameAllocator) Next(prefix string, inUse func(string) bool) string {
	if a.next == nil {
		a.next = make(map[string]int)
	}
	n := a.next[prefix]
	for {
		n++
		name := prefix + strconv.Itoa(n)
		if inUse == nil || !inUse(name) {
			a.next[prefix] = n
			return name
		}
	}
}
