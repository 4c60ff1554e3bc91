// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"errors"
	"fmt"
	"strings"
)

// Scope is the lifetime of a managed object.
type Scope string

const (
	ScopeProcess  Scope = "PROCESS"
	ScopeThread   Scope = "THREAD"
	ScopeFunction Scope = "FUNCTION"
)

// ErrUnknownScope is returned for scope values outside the vocabulary.
var ErrUnknownScope = errors.New("unknown managed object scope")

// ParseScope converts a persisted scope, case-insensitively.
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ToUpper(strings.TrimSpace(s)))
	if !scope.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
	return scope, nil
}

// Valid reports whether the scope is one of the known values.
func (s Scope) Valid() bool {
	switch s {
	case ScopeProcess, ScopeThread, ScopeFunction:
		return true
	}
	return false
}
