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

// Package cvpdf encodes résumé text as a PDF file.
//
// The PDF file is assembled by hand: the text is split into lines and
// classified, wrapped and distributed over pages, and then written using
// two embedded TrueType fonts.  The fonts are embedded as composite fonts
// with Identity-H encoding, together with a ToUnicode CMap so that the
// text can be searched and copied.
//
// An [Encoder] is created once, with a [loader.Provider] for the font
// programs, and can then be used to encode any number of texts:
//
//	enc, err := cvpdf.NewEncoder(loader.Dir("assets/fonts"), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := enc.Encode("Jane Doe\n\nEXPERIENCE:\nSenior Engineer at Acme")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The first non-empty line of the text is the name, which is set in bold
// and centered.  Lines ending in a colon, and lines written in capital
// letters, are section headings and are set in bold.  All other lines are
// body text.
//
// Output is deterministic: encoding the same text with the same fonts
// always gives the same bytes.
package cvpdf
