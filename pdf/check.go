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
	"regexp"
	"slices"
	"strconv"
)

// Summary describes the structure of a PDF file, as found by [Check].
type Summary struct {
	// Version is the version from the file header, e.g. "1.4".
	Version string

	// Size is the value of /Size in the trailer, i.e. the number of
	// cross-reference entries including the free entry for object 0.
	Size int

	// Root is the object number of the document catalog.
	Root Reference

	// XRefPos is the byte offset of the "xref" keyword.
	XRefPos int64

	// Offsets gives the byte offset of object i+1.
	Offsets []int64

	// Streams is the number of stream objects found.
	Streams int
}

var (
	headerRegexp  = regexp.MustCompile(`^%PDF-(\d\.\d)\r?\n`)
	subsecRegexp  = regexp.MustCompile(`^xref\r?\n0 (\d+)\r?\n`)
	sizeRegexp    = regexp.MustCompile(`/Size\s+(\d+)`)
	rootRegexp    = regexp.MustCompile(`/Root\s+(\d+)\s+0\s+R`)
	streamRegexp  = regexp.MustCompile(`>>\s*stream(\r\n|\n)`)
	lengthRegexp  = regexp.MustCompile(`/Length\s+(\d+)\s`)
	endstmRegexp  = regexp.MustCompile(`^(\r\n|\n|\r)?endstream`)
	xrefRowRegexp = regexp.MustCompile(`^(\d{10}) (\d{5}) ([nf])( \n| \r|\r\n)$`)
)

// Check reads back a complete PDF file, as written by [Write], and verifies
// the structural invariants of the file:
//
//   - the file starts with a version header and ends with %%EOF,
//   - startxref points to a cross-reference table with a single subsection,
//   - the trailer /Size equals the number of table entries,
//   - every in-use entry points to the start of the matching "N 0 obj" line,
//   - the /Length of every stream equals the number of bytes between the
//     "stream" and "endstream" keywords.
//
// Check only understands the subset of PDF produced by this module.
func Check(data []byte) (*Summary, error) {
	m := headerRegexp.FindSubmatch(data)
	if m == nil {
		return nil, &MalformedFileError{Err: errors.New("missing PDF header")}
	}
	res := &Summary{Version: string(m[1])}

	tail := bytes.TrimRight(data, "\r\n")
	if !bytes.HasSuffix(tail, []byte("%%EOF")) {
		return nil, &MalformedFileError{
			Pos: int64(len(data)),
			Err: errors.New("missing %%EOF marker"),
		}
	}

	sxPos := bytes.LastIndex(data, []byte("startxref"))
	if sxPos < 0 {
		return nil, &MalformedFileError{Err: errors.New("startxref not found")}
	}
	sxFields := bytes.Fields(data[sxPos+len("startxref") : len(tail)-len("%%EOF")])
	if len(sxFields) != 1 {
		return nil, &MalformedFileError{
			Pos: int64(sxPos),
			Err: errors.New("malformed startxref section"),
		}
	}
	xRefPos, err := strconv.ParseInt(string(sxFields[0]), 10, 64)
	if err != nil || xRefPos <= 0 || xRefPos >= int64(sxPos) {
		return nil, &MalformedFileError{
			Pos: int64(sxPos),
			Err: errors.New("invalid xref position"),
		}
	}
	res.XRefPos = xRefPos

	m = subsecRegexp.FindSubmatch(data[xRefPos:])
	if m == nil {
		return nil, &MalformedFileError{
			Pos: xRefPos,
			Err: errors.New("startxref does not point to an xref table"),
		}
	}
	n, _ := strconv.Atoi(string(m[1]))
	if n < 1 {
		return nil, &MalformedFileError{Pos: xRefPos, Err: errors.New("empty xref table")}
	}
	pos := xRefPos + int64(len(m[0]))
	for i := 0; i < n; i++ {
		if pos+20 > int64(sxPos) {
			return nil, &MalformedFileError{Pos: pos, Err: errors.New("truncated xref table")}
		}
		row := xrefRowRegexp.FindSubmatch(data[pos : pos+20])
		if row == nil {
			return nil, &MalformedFileError{
				Pos: pos,
				Err: fmt.Errorf("malformed xref entry %d", i),
			}
		}
		inUse := row[3][0] == 'n'
		if (i == 0) == inUse {
			return nil, &MalformedFileError{
				Pos: pos,
				Err: fmt.Errorf("unexpected xref entry type for object %d", i),
			}
		}
		if i > 0 {
			off, _ := strconv.ParseInt(string(row[1]), 10, 64)
			res.Offsets = append(res.Offsets, off)
		}
		pos += 20
	}

	trailerStart := bytes.Index(data[pos:sxPos], []byte("trailer"))
	if trailerStart < 0 {
		return nil, &MalformedFileError{Pos: pos, Err: errors.New("missing trailer")}
	}
	trailer := data[pos+int64(trailerStart) : sxPos]
	m = sizeRegexp.FindSubmatch(trailer)
	if m == nil {
		return nil, &MalformedFileError{Pos: pos, Err: errors.New("trailer without /Size")}
	}
	res.Size, _ = strconv.Atoi(string(m[1]))
	if res.Size != n {
		return nil, &MalformedFileError{
			Pos: pos,
			Err: fmt.Errorf("trailer /Size %d does not match %d xref entries", res.Size, n),
		}
	}
	m = rootRegexp.FindSubmatch(trailer)
	if m == nil {
		return nil, &MalformedFileError{Pos: pos, Err: errors.New("trailer without /Root")}
	}
	root, _ := strconv.Atoi(string(m[1]))
	if root < 1 || root >= n {
		return nil, &MalformedFileError{
			Pos: pos,
			Err: fmt.Errorf("/Root %d out of range", root),
		}
	}
	res.Root = Reference(root)

	// The end of every object is the start of the next one, in file order.
	ends := slices.Clone(res.Offsets)
	ends = append(ends, xRefPos)
	slices.Sort(ends)
	for i, off := range res.Offsets {
		num := i + 1
		header := fmt.Sprintf("%d 0 obj", num)
		if off <= 0 || off >= xRefPos || !bytes.HasPrefix(data[off:], []byte(header)) {
			return nil, &MalformedFileError{
				Pos: off,
				Err: fmt.Errorf("xref offset for object %d does not point to its header", num),
			}
		}
		idx, _ := slices.BinarySearch(ends, off)
		end := ends[idx+1]
		isStream, err := checkStream(data[off:end])
		if err != nil {
			return nil, &MalformedFileError{
				Pos: off,
				Err: fmt.Errorf("object %d: %w", num, err),
			}
		}
		if isStream {
			res.Streams++
		}
	}

	return res, nil
}

// checkStream verifies the /Length of a stream object.  The argument is
// the complete text of one indirect object.  If the object is not a
// stream, false is returned.
func checkStream(obj []byte) (bool, error) {
	loc := streamRegexp.FindIndex(obj)
	if loc == nil {
		return false, nil
	}
	m := lengthRegexp.FindSubmatch(obj[:loc[0]+2])
	if m == nil {
		return true, errors.New("stream without /Length")
	}
	length, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return true, err
	}
	start := loc[1]
	if start+length > len(obj) || !endstmRegexp.Match(obj[start+length:]) {
		return true, fmt.Errorf("/Length %d does not match stream data", length)
	}
	return true, nil
}
