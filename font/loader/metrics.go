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

package loader

import (
	"bytes"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt"
)

// Metrics holds the font descriptor values of a font, in PDF glyph space
// units.
type Metrics struct {
	Flags       Flags
	FontBBox    rect.Rect
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	StemV       float64
}

// DefaultMetrics is used for fonts which cannot be parsed.
// The values suit Noto Sans.
var DefaultMetrics = Metrics{
	Flags:     FlagNonsymbolic,
	FontBBox:  rect.Rect{LLx: -600, LLy: -300, URx: 1200, URy: 1000},
	Ascent:    1069,
	Descent:   -293,
	CapHeight: 714,
	StemV:     80,
}

// Describe reads the PostScript name and the metrics of a TrueType font.
func Describe(data []byte) (string, *Metrics, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}
	if !info.IsGlyf() {
		return "", nil, ErrNotTrueType
	}

	var flags Flags
	if info.IsFixedPitch() {
		flags |= FlagFixedPitch
	}
	if info.IsSerif {
		flags |= FlagSerif
	}
	flags |= FlagNonsymbolic
	if info.IsScript {
		flags |= FlagScript
	}
	if info.IsItalic {
		flags |= FlagItalic
	}

	stemV := 80.
	if info.IsBold {
		stemV = 120
	}

	qv := 1000 * info.FontMatrix[3]
	m := &Metrics{
		Flags:       flags,
		FontBBox:    info.FontBBoxPDF().Rounded(),
		ItalicAngle: math.Round(info.ItalicAngle*10) / 10,
		Ascent:      math.Round(float64(info.Ascent) * qv),
		Descent:     math.Round(float64(info.Descent) * qv),
		CapHeight:   math.Round(float64(info.CapHeight) * qv),
		StemV:       stemV,
	}
	return info.PostScriptName(), m, nil
}

// Flags represents PDF Font Descriptor Flags.
// See section 9.8.2 of PDF 32000-1:2008.
type Flags uint32

// Possible values for PDF Font Descriptor Flags.
const (
	FlagFixedPitch  Flags = 1 << 0 // All glyphs have the same width.
	FlagSerif       Flags = 1 << 1 // Glyphs have serifs.
	FlagSymbolic    Flags = 1 << 2 // Font contains glyphs outside the Adobe standard Latin character set.
	FlagScript      Flags = 1 << 3 // Glyphs resemble cursive handwriting.
	FlagNonsymbolic Flags = 1 << 5 // Font uses the Adobe standard Latin character set or a subset of it.
	FlagItalic      Flags = 1 << 6 // Glyphs have dominant vertical strokes that are slanted.
)
