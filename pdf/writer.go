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
	"io"
)

// Write serialises the objects in a, in order of increasing object number,
// followed by the cross-reference table and the trailer.  The object root
// is recorded as the document catalog.
//
// All consistency checks are done before the first byte is written, so
// that a failed call leaves w untouched.  Errors from w itself can of
// course still cause a truncated file.
func Write(w io.Writer, a *Arena, root Reference, ver Version) error {
	verString, err := ver.ToString()
	if err != nil {
		return err
	}
	if a.Get(root) == nil {
		return errors.New("missing /Catalog")
	}
	err = a.check()
	if err != nil {
		return err
	}

	pw := &posWriter{w: w}

	// The comment line with four high-bit bytes marks the file as binary.
	_, err = fmt.Fprintf(pw, "%%PDF-%s\n%%\x80\x80\x80\x80\n", verString)
	if err != nil {
		return err
	}

	offsets := make([]int64, len(a.slots))
	for i, obj := range a.slots {
		offsets[i] = pw.pos
		err = writeIndirect(pw, Reference(i+1), obj)
		if err != nil {
			return err
		}
	}

	xRefPos := pw.pos
	err = writeXRefTable(pw, offsets)
	if err != nil {
		return err
	}

	trailer := Dict{
		"Size": Integer(len(offsets) + 1),
		"Root": root,
	}
	_, err = pw.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	err = trailer.PDF(pw)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pw, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	return err
}

// Encode is like [Write], but returns the file contents as a byte slice.
// On error, no data is returned.
func Encode(a *Arena, root Reference, ver Version) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := Write(buf, a, root, ver)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeIndirect(w io.Writer, ref Reference, obj Object) error {
	_, err := fmt.Fprintf(w, "%d 0 obj\n", ref.Number())
	if err != nil {
		return err
	}
	err = obj.PDF(w)
	if err != nil {
		return fmt.Errorf("object %d: %w", ref.Number(), err)
	}
	_, err = w.Write([]byte("\nendobj\n"))
	return err
}

// writeXRefTable writes a classic cross-reference table with a single
// subsection.  Every entry is exactly 20 bytes long.
func writeXRefTable(w io.Writer, offsets []int64) error {
	_, err := fmt.Fprintf(w, "xref\n0 %d\n", len(offsets)+1)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("0000000000 65535 f\r\n"))
	if err != nil {
		return err
	}
	for _, pos := range offsets {
		_, err = fmt.Fprintf(w, "%010d %05d n\r\n", pos, 0)
		if err != nil {
			return err
		}
	}
	return nil
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
