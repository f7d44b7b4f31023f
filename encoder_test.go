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

package cvpdf

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/cvpdf/font/loader"
	"seehuhn.de/go/cvpdf/font/tounicode"
	"seehuhn.de/go/cvpdf/layout"
	"seehuhn.de/go/cvpdf/pdf"
	"seehuhn.de/go/cvpdf/text"
)

var testFonts = loader.Static{
	loader.Regular: []byte("synthetic regular font"),
	loader.Bold:    []byte("synthetic bold font"),
}

var testInputs = []string{
	"",
	"Jane Doe\n\nEXPERIENCE:\nSenior Engineer at Acme",
	"Jürgen Müßig\r\nÜBERSICHT\r\n\tEntwicklung von Software für Zahnärzte  ",
	"李小龙\n经历:\n工程师 😀",
	strings.Repeat("supercalifragilisticexpialidocious", 10),
	strings.Repeat("word ", 2000),
}

func newTestEncoder(t *testing.T, opt *Options) *Encoder {
	t.Helper()
	enc, err := NewEncoder(testFonts, opt)
	if err != nil {
		t.Fatal(err)
	}
	return enc
}

func TestRoundTrip(t *testing.T) {
	enc := newTestEncoder(t, nil)
	for i, in := range testInputs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			data, err := enc.Encode(in)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
				t.Error("wrong file header")
			}
			sum, err := pdf.Check(data)
			if err != nil {
				t.Fatal(err)
			}
			if len(sum.Offsets) != sum.Size-1 {
				t.Errorf("%d offsets for /Size %d", len(sum.Offsets), sum.Size)
			}
			for j, off := range sum.Offsets {
				header := fmt.Sprintf("%d 0 obj", j+1)
				if !bytes.HasPrefix(data[off:], []byte(header)) {
					t.Errorf("xref entry %d does not point to %q", j+1, header)
				}
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	enc1 := newTestEncoder(t, nil)
	enc2 := newTestEncoder(t, nil)
	for _, in := range testInputs {
		d1, err := enc1.Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		d2, err := enc2.Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(d1, d2) {
			t.Errorf("output for %.20q differs between runs", in)
		}
	}
}

func TestConcurrent(t *testing.T) {
	enc := newTestEncoder(t, nil)
	want := make([][]byte, len(testInputs))
	for i, in := range testInputs {
		data, err := enc.Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		want[i] = data
	}

	var wg sync.WaitGroup
	errs := make(chan error, 4*len(testInputs))
	for range 4 {
		for i, in := range testInputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				data, err := enc.Encode(in)
				if err != nil {
					errs <- err
				} else if !bytes.Equal(data, want[i]) {
					errs <- fmt.Errorf("input %d: different output", i)
				}
			}()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestClassificationExample(t *testing.T) {
	enc := newTestEncoder(t, nil)
	data, err := enc.Encode("Jane Doe\n\nEXPERIENCE:\nSenior Engineer at Acme")
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "/Count 1\n") || strings.Count(s, "/Type /Page\n") != 1 {
		t.Error("expected exactly one page")
	}

	// name and heading in bold, body text in the regular font
	for _, want := range []string{
		"/F2 14 Tf\n" + hexOf(t, "Jane Doe") + " Tj\n",
		"/F2 12 Tf\n" + hexOf(t, "EXPERIENCE:") + " Tj\n",
		"/F1 12 Tf\n" + hexOf(t, "Senior Engineer at Acme") + " Tj\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
	if hexOf(t, "Jane") != "<004A0061006E0065>" {
		t.Error("wrong show-text operand")
	}
}

func hexOf(t *testing.T, s string) string {
	t.Helper()
	code, err := tounicode.Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	return "<" + tounicode.Hex(code) + ">"
}

func TestPagination(t *testing.T) {
	enc := newTestEncoder(t, nil)
	for _, n := range []int{1, 40, 41, 79, 80, 81, 400} {
		lines := make([]string, n)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i)
		}
		data, err := enc.Encode(strings.Join(lines, "\n"))
		if err != nil {
			t.Fatal(err)
		}
		pages := (n + 39) / 40
		s := string(data)
		if got := strings.Count(s, "/Type /Page\n"); got != pages {
			t.Errorf("%d lines: %d page objects, want %d", n, got, pages)
		}
		if !strings.Contains(s, fmt.Sprintf("/Count %d\n", pages)) {
			t.Errorf("%d lines: wrong /Count", n)
		}
	}
}

func TestCodePointCoverage(t *testing.T) {
	enc := newTestEncoder(t, nil)
	engine, err := layout.NewEngine(nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, in := range testInputs {
		data, err := enc.Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		blocks, err := tounicode.Blocks(data)
		if err != nil {
			t.Fatal(err)
		}

		var got []rune
		for _, block := range blocks {
			if len(block) > tounicode.ChunkSize {
				t.Errorf("%d: bfchar block with %d entries", i, len(block))
			}
			for _, m := range block {
				got = append(got, []rune(m.Text)...)
			}
		}

		want := tounicode.Collect(layout.Texts(engine.Layout(text.Prepare(in))))
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if d := cmp.Diff([]rune(want), got); d != "" {
			t.Errorf("%d: %s", i, d)
		}
	}
}

func TestHardWrap(t *testing.T) {
	enc := newTestEncoder(t, nil)
	word := strings.Repeat("x", 100)
	data, err := enc.Encode("Jane Doe\n" + word)
	if err != nil {
		t.Fatal(err)
	}
	first := "<" + strings.Repeat("0078", 65) + "> Tj"
	second := "<" + strings.Repeat("0078", 35) + "> Tj"
	s := string(data)
	if !strings.Contains(s, first) || !strings.Contains(s, second) {
		t.Error("long word not split at the line budget")
	}
}

func TestEmptyInput(t *testing.T) {
	enc := newTestEncoder(t, nil)
	for _, in := range []string{"", "  \n\t\n"} {
		data, err := enc.Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pdf.Check(data); err != nil {
			t.Fatal(err)
		}
		s := string(data)
		if !strings.Contains(s, "/Count 1\n") {
			t.Errorf("%q: expected a single page", in)
		}
	}

	data, _ := enc.Encode("")
	content := "stream\nBT\n1 0 0 1 72 720 Tm\n/F1 12 Tf\n<> Tj\nET\nendstream"
	if !strings.Contains(string(data), content) {
		t.Error("unexpected content stream for empty input")
	}

	reject := newTestEncoder(t, &Options{Empty: RejectEmpty})
	for _, in := range []string{"", " ", "\n\n", " \t"} {
		data, err := reject.Encode(in)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("%q: expected ErrEmptyInput, got %v", in, err)
		}
		if data != nil {
			t.Errorf("%q: data returned despite error", in)
		}
	}
	if _, err := reject.Encode("x"); err != nil {
		t.Error(err)
	}
}

func TestMissingFont(t *testing.T) {
	cases := map[string]loader.Provider{
		"nil":     nil,
		"no bold": loader.Static{loader.Regular: []byte("font")},
		"no data": loader.Static{},
	}
	for name, p := range cases {
		enc, err := NewEncoder(p, nil)
		if !errors.Is(err, loader.ErrMissingFont) {
			t.Errorf("%s: expected ErrMissingFont, got %v", name, err)
		}
		if enc != nil {
			t.Errorf("%s: encoder created without fonts", name)
		}
	}
}

func TestOptions(t *testing.T) {
	bad := []*Options{
		{Version: pdf.Version(99)},
		{Empty: EmptyPolicy(5)},
		{Layout: &layout.Config{}},
	}
	for i, opt := range bad {
		if _, err := NewEncoder(testFonts, opt); err == nil {
			t.Errorf("%d: invalid options accepted", i)
		}
	}

	cfg := layout.DefaultConfig()
	cfg.Paper = layout.A4
	enc := newTestEncoder(t, &Options{Layout: cfg, Version: pdf.V1_7})
	data, err := enc.Encode("Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.7\n")) {
		t.Error("wrong version")
	}
	if !bytes.Contains(data, []byte("/MediaBox [0 0 595.28 841.89]")) {
		t.Error("wrong paper size")
	}
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	enc := newTestEncoder(t, &Options{Logger: logger})
	_, err := enc.Encode("Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"font loaded", "pages=1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output misses %q", want)
		}
	}
}

func TestGoFonts(t *testing.T) {
	enc, err := NewEncoder(loader.GoFonts{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := enc.Encode(testInputs[1])
	if err != nil {
		t.Fatal(err)
	}
	sum, err := pdf.Check(data)
	if err != nil {
		t.Fatal(err)
	}
	// ToUnicode, two font files, one page
	if sum.Streams != 4 {
		t.Errorf("found %d streams", sum.Streams)
	}
}

type countingWriter struct{ n int }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func TestEncodeTo(t *testing.T) {
	reject := newTestEncoder(t, &Options{Empty: RejectEmpty})
	w := &countingWriter{}
	if err := reject.EncodeTo(w, ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if w.n != 0 {
		t.Errorf("%d bytes written despite error", w.n)
	}

	if err := reject.EncodeTo(w, "Jane Doe"); err != nil {
		t.Fatal(err)
	}
	if w.n == 0 {
		t.Error("nothing written")
	}
}
