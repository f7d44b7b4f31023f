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

package document

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/cvpdf/font/cidfont"
	"seehuhn.de/go/cvpdf/font/loader"
	"seehuhn.de/go/cvpdf/layout"
)

// Content returns the content stream for one page.
//
// The stream contains a single text object.  For every line, the text
// matrix is set to the start of the line, the font is selected and the
// text is shown.
func Content(p layout.Page, fonts []*cidfont.Font) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString("BT\n")
	for _, line := range p.Lines {
		f, err := fontFor(line.Font, fonts)
		if err != nil {
			return nil, err
		}
		operand, err := cidfont.ShowText(line.Text)
		if err != nil {
			return nil, err
		}

		m := matrix.Translate(line.X, line.Y)
		for _, x := range m {
			buf.WriteString(formatNumber(x))
			buf.WriteByte(' ')
		}
		buf.WriteString("Tm\n")

		err = f.Name.PDF(buf)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(' ')
		buf.WriteString(formatNumber(line.Size))
		buf.WriteString(" Tf\n")

		buf.WriteString(operand)
		buf.WriteString(" Tj\n")
	}
	buf.WriteString("ET")
	return buf.Bytes(), nil
}

func fontFor(role layout.FontRole, fonts []*cidfont.Font) (*cidfont.Font, error) {
	var r loader.Role
	switch role {
	case layout.Regular:
		r = loader.Regular
	case layout.Bold:
		r = loader.Bold
	default:
		return nil, fmt.Errorf("document: unknown font role %s", role)
	}
	if int(r) >= len(fonts) || fonts[r] == nil {
		return nil, fmt.Errorf("document: no %s font", role)
	}
	return fonts[r], nil
}

// formatNumber formats x for use in a content stream, with at most two
// decimal places.
func formatNumber(x float64) string {
	x = math.Round(x*100) / 100
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
