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

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// makeTestArena builds a minimal one-page document.
func makeTestArena() (*Arena, Reference) {
	a := &Arena{}
	catalog := a.Alloc()
	pages := a.Alloc()

	content := a.Add(&Stream{
		Data: []byte("BT\n/F1 24 Tf\n30 30 Td\n(Hello World) Tj\nET"),
	})
	font := a.Add(Dict{
		"Type":     Name("Font"),
		"Subtype":  Name("Type1"),
		"BaseFont": Name("Helvetica"),
	})
	page := a.Add(Dict{
		"Type":      Name("Page"),
		"Parent":    pages,
		"MediaBox":  Array{Integer(0), Integer(0), Integer(200), Integer(100)},
		"Contents":  content,
		"Resources": Dict{"Font": Dict{"F1": font}},
	})

	a.Put(pages, Dict{
		"Type":  Name("Pages"),
		"Kids":  Array{page},
		"Count": Integer(1),
	})
	a.Put(catalog, Dict{
		"Type":  Name("Catalog"),
		"Pages": pages,
	})
	return a, catalog
}

func TestArena(t *testing.T) {
	a := &Arena{}
	r1 := a.Alloc()
	r2 := a.Add(Integer(2))
	if r1 != 1 || r2 != 2 {
		t.Fatalf("wrong references %d, %d", r1, r2)
	}
	if a.Get(r1) != nil {
		t.Error("allocated slot is not empty")
	}
	if err := a.Put(r1, Integer(1)); err != nil {
		t.Fatal(err)
	}
	if err := a.Put(r1, Integer(1)); !errors.Is(err, ErrAlreadyWritten) {
		t.Errorf("double Put: got %v", err)
	}
	if err := a.Put(3, Integer(3)); err == nil {
		t.Error("Put with unallocated reference succeeded")
	}
	if err := a.Put(0, Integer(3)); err == nil {
		t.Error("Put with zero reference succeeded")
	}
	if a.Len() != 2 {
		t.Errorf("wrong length %d", a.Len())
	}
}

func TestWriteRoundTrip(t *testing.T) {
	a, catalog := makeTestArena()
	data, err := Encode(a, catalog, V1_4)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
		t.Errorf("wrong header %q", data[:10])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Error("missing EOF marker")
	}

	sum, err := Check(data)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Size != a.Len()+1 {
		t.Errorf("wrong /Size %d, expected %d", sum.Size, a.Len()+1)
	}
	if sum.Root != catalog {
		t.Errorf("wrong root %d", sum.Root)
	}
	if sum.Streams != 1 {
		t.Errorf("found %d streams, expected 1", sum.Streams)
	}
	for i, off := range sum.Offsets {
		header := fmt.Sprintf("%d 0 obj\n", i+1)
		if !bytes.HasPrefix(data[off:], []byte(header)) {
			t.Errorf("offset %d does not point to %q", off, header)
		}
	}
	if !bytes.HasPrefix(data[sum.XRefPos:], []byte("xref\n0 6\n")) {
		t.Errorf("startxref does not point to the xref table")
	}
}

func TestWriteDeterministic(t *testing.T) {
	a1, c1 := makeTestArena()
	a2, c2 := makeTestArena()
	d1, err := Encode(a1, c1, V1_7)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Encode(a2, c2, V1_7)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(d1, d2); d != "" {
		t.Error(d)
	}
}

func TestWriteUnfilled(t *testing.T) {
	a, catalog := makeTestArena()
	missing := a.Alloc()

	buf := &bytes.Buffer{}
	err := Write(buf, a, catalog, V1_4)
	var unfilled *UnfilledError
	if !errors.As(err, &unfilled) {
		t.Fatalf("expected UnfilledError, got %v", err)
	}
	if unfilled.Ref != missing {
		t.Errorf("wrong reference %d in error", unfilled.Ref)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written despite error", buf.Len())
	}
}

func TestWriteMissingCatalog(t *testing.T) {
	a := &Arena{}
	a.Add(Integer(1))
	_, err := Encode(a, 5, V1_4)
	if err == nil {
		t.Error("missing catalog not detected")
	}

	_, err = Encode(a, 1, Version(0))
	if err == nil {
		t.Error("invalid version not detected")
	}
}

func TestXRefEntryWidth(t *testing.T) {
	a, catalog := makeTestArena()
	data, err := Encode(a, catalog, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := Check(data)
	if err != nil {
		t.Fatal(err)
	}

	table := string(data[sum.XRefPos:])
	table = table[:strings.Index(table, "trailer")]
	lines := strings.SplitAfter(table, "\n")
	// "xref", "0 6", then six entries, then an empty tail
	entries := lines[2 : len(lines)-1]
	if len(entries) != a.Len()+1 {
		t.Fatalf("wrong number of xref entries: %d", len(entries))
	}
	for _, e := range entries {
		if len(e) != 20 {
			t.Errorf("xref entry %q has length %d", e, len(e))
		}
	}
}

func TestCheckMalformed(t *testing.T) {
	a, catalog := makeTestArena()
	data, err := Encode(a, catalog, V1_4)
	if err != nil {
		t.Fatal(err)
	}

	contentLen := len(a.Get(3).(*Stream).Data)
	wrongLength := []byte(fmt.Sprintf("/Length %d\n", contentLen-1))
	rightLength := []byte(fmt.Sprintf("/Length %d\n", contentLen))

	cases := map[string][]byte{
		"no header":    data[1:],
		"no EOF":       bytes.TrimSuffix(data, []byte("%%EOF\n")),
		"shifted":      bytes.Replace(data, []byte("1 0 obj"), []byte(" 1 0 obj"), 1),
		"wrong length": bytes.Replace(data, rightLength, wrongLength, 1),
	}
	for name, corrupt := range cases {
		if bytes.Equal(corrupt, data) {
			t.Fatalf("%s: test data unchanged", name)
		}
		_, err := Check(corrupt)
		var malformed *MalformedFileError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: expected MalformedFileError, got %v", name, err)
		}
	}
}
