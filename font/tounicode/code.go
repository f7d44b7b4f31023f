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

package tounicode

import (
	"fmt"

	utf16enc "golang.org/x/text/encoding/unicode"
)

var utf16be = utf16enc.UTF16(utf16enc.BigEndian, utf16enc.IgnoreBOM)

// Encode converts s into the UTF-16BE byte sequence used as character
// codes for Identity-H fonts.  Characters outside the Basic Multilingual
// Plane use four bytes, two for each half of the surrogate pair.
func Encode(s string) ([]byte, error) {
	res, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("UTF-16 encoding of %q: %w", s, err)
	}
	return res, nil
}

// Hex returns the upper-case hexadecimal representation of a character
// code, without the enclosing angle brackets.
func Hex(code []byte) string {
	return fmt.Sprintf("%X", code)
}

// CodeHex returns the hexadecimal character code for the code point r.
func CodeHex(r rune) (string, error) {
	code, err := Encode(string(r))
	if err != nil {
		return "", err
	}
	return Hex(code), nil
}
