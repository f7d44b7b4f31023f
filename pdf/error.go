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
	"errors"
	"strconv"
)

var (
	errInvalidReference = errors.New("invalid object reference")
	errVersion          = errors.New("unsupported PDF version")

	// ErrAlreadyWritten is returned by [Arena.Put] if the slot for the
	// given reference has been filled before.
	ErrAlreadyWritten = errors.New("object already written")
)

// UnfilledError indicates that an object number was allocated, but no
// object was stored for it before the file was written.
type UnfilledError struct {
	Ref Reference
}

func (err *UnfilledError) Error() string {
	return "no object stored for " + err.Ref.String()
}

// MalformedFileError indicates that a PDF file does not have the expected
// structure.
type MalformedFileError struct {
	Pos int64
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}
