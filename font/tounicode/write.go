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
	"io"
	"text/template"

	"seehuhn.de/go/postscript/cid"
)

// ChunkSize is the maximal number of mappings in one bfchar block.
const ChunkSize = 100

// ROS is the character collection of the generated CMap.
var ROS = &cid.SystemInfo{
	Registry: "Adobe",
	Ordering: "UCS",
}

// Name is the name of the generated CMap.
const Name = "Adobe-Identity-UCS"

type cmapData struct {
	ROS       *cid.SystemInfo
	Name      string
	CodeSpace [][2]string
	Chunks    [][]string
}

// Write writes a ToUnicode CMap for the inventory to w.
//
// Every code point is mapped with a bfchar entry, from its UTF-16BE
// character code to the same UTF-16BE sequence.  If all code points are
// in the Basic Multilingual Plane, the code space is <0000> <FFFF>.
// Otherwise surrogate pairs are given their own four-byte code space
// range.
func Write(w io.Writer, inv Inventory) error {
	codes := make([]string, len(inv))
	for i, r := range inv {
		code, err := CodeHex(r)
		if err != nil {
			return err
		}
		codes[i] = code
	}

	data := &cmapData{
		ROS:    ROS,
		Name:   Name,
		Chunks: chunks(codes, ChunkSize),
	}
	if inv.hasSupplementary() {
		data.CodeSpace = [][2]string{
			{"0000", "D7FF"},
			{"D800DC00", "DBFFDFFF"},
			{"E000", "FFFF"},
		}
	} else {
		data.CodeSpace = [][2]string{{"0000", "FFFF"}}
	}

	return toUnicodeTmpl.Execute(w, data)
}

// CMap returns the ToUnicode CMap for the inventory.
func CMap(inv Inventory) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := Write(buf, inv)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chunks[T any](x []T, size int) [][]T {
	var res [][]T
	for len(x) >= size {
		res = append(res, x[:size])
		x = x[size:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

var toUnicodeTmpl = template.Must(template.New("CMap").Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo <<
/Registry ({{.ROS.Registry}})
/Ordering ({{.ROS.Ordering}})
/Supplement {{.ROS.Supplement}}
>> def
/CMapName /{{.Name}} def
/CMapType 2 def
{{len .CodeSpace}} begincodespacerange
{{range .CodeSpace -}}
<{{index . 0}}> <{{index . 1}}>
{{end -}}
endcodespacerange
{{range .Chunks -}}
{{len .}} beginbfchar
{{range . -}}
<{{.}}> <{{.}}>
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
