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

import "strings"

// Wrap breaks s into fragments of at most budget characters.
//
// Lines are broken at the last space within the first budget+1
// characters.  If there is no such space, the line is cut after budget
// characters.  Spaces at fragment boundaries are removed.  The result
// always has at least one element; for the empty string this is "".
func Wrap(s string, budget int) []string {
	budget = max(budget, 1)

	var res []string
	rest := []rune(s)
	for len(rest) > budget {
		cut := budget
		for i := budget; i > 0; i-- {
			if rest[i] == ' ' {
				cut = i
				break
			}
		}
		res = append(res, strings.TrimRight(string(rest[:cut]), " "))
		rest = []rune(strings.TrimLeft(string(rest[cut:]), " "))
	}
	if len(rest) > 0 || len(res) == 0 {
		res = append(res, string(rest))
	}
	return res
}
