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
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCollect(t *testing.T) {
	inv := Collect(slices.Values([]string{"bab", "", "Aé", "😀a"}))
	want := Inventory{'A', 'a', 'b', 'é', '😀'}
	if d := cmp.Diff(want, inv); d != "" {
		t.Error(d)
	}
	if !inv.Contains('é') || inv.Contains('c') {
		t.Error("Contains is wrong")
	}

	if inv := Collect(slices.Values([]string{""})); len(inv) != 0 {
		t.Errorf("empty text gave %d code points", len(inv))
	}
}

func TestEncode(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", ""},
		{"A", "0041"},
		{"Jane", "004A0061006E0065"},
		{"é", "00E9"},
		{"€", "20AC"},
		{"😀", "D83DDE00"},
	}
	for _, test := range cases {
		code, err := Encode(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := Hex(code); got != test.out {
			t.Errorf("%q: got %s, want %s", test.in, got, test.out)
		}
	}

	// the encoded length is measured in bytes, not in characters
	code, _ := Encode("a😀")
	if len(code) != 6 {
		t.Errorf("wrong length %d", len(code))
	}
}

func TestCMapChunks(t *testing.T) {
	for _, n := range []int{0, 1, 99, 100, 101, 250} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			inv := make(Inventory, n)
			for i := range inv {
				inv[i] = rune(0x4E00 + i)
			}
			data, err := CMap(inv)
			if err != nil {
				t.Fatal(err)
			}

			blocks, err := Blocks(data)
			if err != nil {
				t.Fatal(err)
			}
			wantBlocks := (n + ChunkSize - 1) / ChunkSize
			if len(blocks) != wantBlocks {
				t.Errorf("got %d blocks, want %d", len(blocks), wantBlocks)
			}

			var got []rune
			for _, block := range blocks {
				if len(block) > ChunkSize {
					t.Errorf("block with %d entries", len(block))
				}
				for _, m := range block {
					r := []rune(m.Text)
					if len(r) != 1 {
						t.Fatalf("mapping %v has %d code points", m, len(r))
					}
					code, _ := CodeHex(r[0])
					if m.Code != code {
						t.Errorf("code %s maps to %q", m.Code, m.Text)
					}
					got = append(got, r[0])
				}
			}
			if d := cmp.Diff([]rune(inv), got, cmpopts.EquateEmpty()); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestCMapText(t *testing.T) {
	data, err := CMap(Inventory{'A', 'é'})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{
		"/CMapName /Adobe-Identity-UCS def",
		"/Registry (Adobe)",
		"/Ordering (UCS)",
		"1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n",
		"2 beginbfchar\n<0041> <0041>\n<00E9> <00E9>\nendbfchar\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
	if !bytes.HasSuffix(data, []byte("end\nend\n")) {
		t.Error("CMap not terminated")
	}
}

func TestCMapSupplementary(t *testing.T) {
	data, err := CMap(Inventory{'A', '😀'})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "3 begincodespacerange\n<0000> <D7FF>\n<D800DC00> <DBFFDFFF>\n<E000> <FFFF>\n") {
		t.Error("missing surrogate code space")
	}
	blocks, err := Blocks(data)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]Mapping{{{"0041", "A"}, {"D83DDE00", "😀"}}}
	if d := cmp.Diff(want, blocks); d != "" {
		t.Error(d)
	}
}
