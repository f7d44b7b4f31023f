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
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"unicode/utf16"
)

// Mapping is one bfchar entry of a ToUnicode CMap.
type Mapping struct {
	Code string // upper-case hex
	Text string
}

// Blocks returns the bfchar blocks of a ToUnicode CMap, in the order they
// appear in the file.  Only the subset of the CMap syntax produced by
// [Write] is understood.
func Blocks(data []byte) ([][]Mapping, error) {
	m := bodyRegexp.FindSubmatch(data)
	if m == nil {
		return nil, ErrInvalid
	}
	body := m[1]

	var res [][]Mapping
	for _, m := range bfcharRegexp.FindAllSubmatch(body, -1) {
		declared, err := strconv.Atoi(string(m[1]))
		if err != nil {
			return nil, ErrInvalid
		}

		var block []Mapping
		inner := m[2]
		for len(inner) > 0 {
			var code, val []byte
			inner, code, err = parseHex(inner)
			if err != nil {
				return nil, err
			}
			inner, val, err = parseHex(inner)
			if err != nil {
				return nil, err
			}
			text, err := decodeUTF16(val)
			if err != nil {
				return nil, err
			}
			block = append(block, Mapping{
				Code: string(bytes.ToUpper(code)),
				Text: text,
			})
		}
		if len(block) != declared {
			return nil, errors.New("tounicode: wrong bfchar count")
		}
		res = append(res, block)
	}
	return res, nil
}

func parseHex(buf []byte) ([]byte, []byte, error) {
	m := hexRegexp.FindSubmatch(buf)
	if m == nil {
		return nil, nil, ErrInvalid
	}
	return buf[len(m[0]):], m[1], nil
}

func decodeUTF16(hex []byte) (string, error) {
	if len(hex)%4 != 0 {
		return "", ErrInvalid
	}
	var s []uint16
	for len(hex) > 0 {
		x, err := strconv.ParseUint(string(hex[:4]), 16, 16)
		if err != nil {
			return "", ErrInvalid
		}
		s = append(s, uint16(x))
		hex = hex[4:]
	}
	return string(utf16.Decode(s)), nil
}

// ErrInvalid is returned when a CMap cannot be parsed.
var ErrInvalid = errors.New("tounicode: invalid CMap")

var (
	bodyRegexp   = regexp.MustCompile(`(?is)\bbegincmap\b\s*(.+?)\s*\bendcmap\b`)
	bfcharRegexp = regexp.MustCompile(`(?is)(\d+)\s+beginbfchar\b\s*(.*?)\bendbfchar\b`)
	hexRegexp    = regexp.MustCompile(`^<([0-9a-fA-F]*)>\s*`)
)
