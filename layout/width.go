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

package layout

import "unicode/utf8"

// WidthFactor is the assumed width of every character, as a fraction of
// the font size.
const WidthFactor = 0.6

// EstimateWidth returns the approximate width of s when set in the given
// font size.  Every Unicode code point counts as one character.
func EstimateWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * WidthFactor
}
