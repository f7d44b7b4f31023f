// seehuhn.de/go/cvpdf - a hand-built PDF encoder for résumé text
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package tounicode builds the ToUnicode CMap which lets PDF viewers
// recover the text shown by Identity-H encoded composite fonts.
//
// Text is shown using UTF-16BE character codes, so every character code
// maps back to the same UTF-16BE sequence.
package tounicode

import (
	"iter"
	"slices"

	"golang.org/x/exp/maps"
)

// Inventory is the sorted set of all Unicode code points used in a
// document.
type Inventory []rune

// Collect returns the code points which occur in any of the given texts.
// Invalid UTF-8 is recorded as U+FFFD, which is how it will be shown.
func Collect(texts iter.Seq[string]) Inventory {
	set := make(map[rune]struct{})
	for s := range texts {
		for _, r := range s {
			set[r] = struct{}{}
		}
	}
	inv := maps.Keys(set)
	slices.Sort(inv)
	return inv
}

// Contains reports whether r is in the inventory.
func (inv Inventory) Contains(r rune) bool {
	_, found := slices.BinarySearch(inv, r)
	return found
}

// hasSupplementary reports whether the inventory contains code points
// outside the Basic Multilingual Plane.
func (inv Inventory) hasSupplementary() bool {
	return len(inv) > 0 && inv[len(inv)-1] > 0xFFFF
}
