// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"strings"
)

// FunctionPath identifies a function within a section: the names of the
// sub-sections leading to it, below the section's root, and the function
// name itself.
type FunctionPath struct {
	SubSections []string
	Function    string
}

// ParseFunctionPath parses a dotted path such as "orders.validate.check".
// The last element names the function.
func ParseFunctionPath(path string) (FunctionPath, error) {
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return FunctionPath{}, fmt.Errorf("invalid function path %q: empty element", path)
		}
	}
	return FunctionPath{
		SubSections: parts[:len(parts)-1],
		Function:    parts[len(parts)-1],
	}, nil
}

func (p FunctionPath) String() string {
	return strings.Join(append(append([]string{}, p.SubSections...), p.Function), ".")
}

// Resolve walks the path from the section root and returns the function if
// it exists.
func (p FunctionPath) Resolve(s *Section) (*Function, bool) {
	sub := s.SubSection
	if sub == nil {
		return nil, false
	}
	for _, name := range p.SubSections {
		next, ok := FindByName(sub.SubSections, name)
		if !ok {
			return nil, false
		}
		sub = next
	}
	return FindByName(sub.Functions, p.Function)
}
