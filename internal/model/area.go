// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// GovernanceArea is a rectangle; a governance governs every section whose
// position falls inside one of its areas. Width and Height may be negative
// when the rectangle was drawn from its far corner.
type GovernanceArea struct {
	X, Y          int
	Width, Height int
}

// Bounds returns the normalized rectangle with left <= right and
// top <= bottom.
func (a *GovernanceArea) Bounds() (left, top, right, bottom int) {
	left, right = a.X, a.X+a.Width
	if left > right {
		left, right = right, left
	}
	top, bottom = a.Y, a.Y+a.Height
	if top > bottom {
		top, bottom = bottom, top
	}
	return left, top, right, bottom
}

// Contains reports whether (x, y) lies inside the area. All four edges are
// inclusive.
func (a *GovernanceArea) Contains(x, y int) bool {
	left, top, right, bottom := a.Bounds()
	return x >= left && x <= right && y >= top && y <= bottom
}
