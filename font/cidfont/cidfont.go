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

// Package cidfont embeds TrueType programs as composite fonts.
//
// Every font is written as a chain of four objects: the FontFile2 stream
// holding the verbatim font program, the font descriptor, a CIDFontType2
// dictionary and finally the Type0 font dictionary.  Fonts use the
// Identity-H encoding, so that every two-byte character code is used
// directly as a CID, and the CIDs are mapped to glyphs by the identity.
//
// All fonts of a document share one ToUnicode CMap, see [EmbedToUnicode].
package cidfont

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/cvpdf/font/loader"
	"seehuhn.de/go/cvpdf/font/tounicode"
	"seehuhn.de/go/cvpdf/pdf"
)

// DefaultWidth is the glyph width used for all CIDs, in PDF glyph space
// units.
const DefaultWidth = 600

// Encoding is the name of the CMap used by all fonts.
const Encoding = "Identity-H"

// ROS is the character collection of the CIDFonts.
var ROS = &cid.SystemInfo{
	Registry: "Adobe",
	Ordering: "Identity",
}

// Font is a composite font embedded in a PDF file.
type Font struct {
	// Name is the resource name used in content streams.
	Name pdf.Name

	// Ref is the reference to the Type0 font dictionary.
	Ref pdf.Reference

	Program *loader.Program

	// ToUnicode is the reference to the shared ToUnicode CMap.
	ToUnicode pdf.Reference
}

// EmbedToUnicode adds the ToUnicode CMap for the inventory to the arena.
func EmbedToUnicode(a *pdf.Arena, inv tounicode.Inventory) (pdf.Reference, error) {
	data, err := tounicode.CMap(inv)
	if err != nil {
		return 0, err
	}
	return a.Add(&pdf.Stream{Data: data}), nil
}

// Embed adds the objects for the font program to the arena.
// The objects are added in the order FontFile2, FontDescriptor, CIDFont,
// Type0 font.
func Embed(a *pdf.Arena, prog *loader.Program, name pdf.Name, toUnicode pdf.Reference) (*Font, error) {
	if prog == nil || len(prog.Data) == 0 {
		return nil, &loader.FontError{Role: roleOf(prog), Err: loader.ErrMissingFont}
	}
	if name == "" {
		return nil, errors.New("cidfont: missing resource name")
	}
	if toUnicode == 0 {
		return nil, errors.New("cidfont: missing ToUnicode CMap")
	}

	baseFont := pdf.Name(prog.PostScriptName)
	m := prog.Metrics
	if m == nil {
		m = &loader.DefaultMetrics
	}

	fontFile := a.Add(&pdf.Stream{
		Dict: pdf.Dict{
			"Length1": pdf.Integer(len(prog.Data)),
		},
		Data: prog.Data,
	})

	fd := pdf.Dict{
		"Type":     pdf.Name("FontDescriptor"),
		"FontName": baseFont,
		"Flags":    pdf.Integer(m.Flags),
		"FontBBox": pdf.Array{
			Number(m.FontBBox.LLx),
			Number(m.FontBBox.LLy),
			Number(m.FontBBox.URx),
			Number(m.FontBBox.URy),
		},
		"ItalicAngle": Number(m.ItalicAngle),
		"Ascent":      Number(m.Ascent),
		"Descent":     Number(m.Descent),
		"CapHeight":   Number(m.CapHeight),
		"StemV":       Number(m.StemV),
		"FontFile2":   fontFile,
	}
	fdRef := a.Add(fd)

	cidFont := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("CIDFontType2"),
		"BaseFont": baseFont,
		"CIDSystemInfo": pdf.Dict{
			"Registry":   pdf.String(ROS.Registry),
			"Ordering":   pdf.String(ROS.Ordering),
			"Supplement": pdf.Integer(ROS.Supplement),
		},
		"FontDescriptor": fdRef,
		"DW":             pdf.Integer(DefaultWidth),
		"CIDToGIDMap":    pdf.Name("Identity"),
	}
	cidFontRef := a.Add(cidFont)

	fontDict := pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        baseFont + "-" + Encoding,
		"Encoding":        pdf.Name(Encoding),
		"DescendantFonts": pdf.Array{cidFontRef},
		"ToUnicode":       toUnicode,
	}
	ref := a.Add(fontDict)

	return &Font{
		Name:      name,
		Ref:       ref,
		Program:   prog,
		ToUnicode: toUnicode,
	}, nil
}

func roleOf(prog *loader.Program) loader.Role {
	if prog == nil {
		return loader.Regular
	}
	return prog.Role
}

// Number converts x into a PDF number.  Integral values are written as
// integers, other values are rounded to two decimal places.
func Number(x float64) pdf.Object {
	x = math.Round(x*100) / 100
	if x == math.Trunc(x) && math.Abs(x) < 1<<31 {
		return pdf.Integer(x)
	}
	return pdf.Real(x)
}

// ShowText returns the operand for the Tj operator which shows s.
func ShowText(s string) (string, error) {
	code, err := tounicode.Encode(s)
	if err != nil {
		return "", err
	}
	return "<" + tounicode.Hex(code) + ">", nil
}

// ResourceName returns the resource name for the n-th font of a page,
// starting at 0.
func ResourceName(n int) pdf.Name {
	return pdf.Name("F" + strconv.Itoa(n+1))
}

// String returns a short description of the font, for logging.
func (f *Font) String() string {
	return fmt.Sprintf("%s %s (%d bytes)", f.Name, f.Program.PostScriptName, len(f.Program.Data))
}
