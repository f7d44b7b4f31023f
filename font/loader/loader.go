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

// Package loader supplies the TrueType programs embedded into résumé PDFs.
//
// Every document uses two fonts: a regular font for body text and a bold
// font for the name and the section headings.  A [Provider] returns the
// font program for each [Role].  Providers are available for fixed data
// ([Static]), for font files in a directory ([Dir]), for base64 encoded
// environment variables ([Env]) and for the Go fonts ([GoFonts]).
//
// It is safe to use all providers in this package concurrently from
// multiple goroutines.
package loader

import (
	"errors"
	"fmt"
)

// Role is the purpose of a font within a document.
type Role int

// These are the font roles used in a document.
const (
	Regular Role = iota
	Bold
)

// Roles lists all font roles, in the order the fonts are embedded.
var Roles = []Role{Regular, Bold}

func (r Role) String() string {
	switch r {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	default:
		return fmt.Sprintf("loader.Role(%d)", int(r))
	}
}

// defaultPostScriptName is used when a font program cannot be parsed.
func (r Role) defaultPostScriptName() string {
	if r == Bold {
		return "NotoSans-Bold"
	}
	return "NotoSans-Regular"
}

// Program is an embeddable TrueType font program.
// Programs are immutable after construction.
type Program struct {
	Role           Role
	PostScriptName string

	// Data is the verbatim font file.
	Data []byte

	// Metrics is nil if the font file could not be parsed.
	Metrics *Metrics
}

// NewProgram wraps the font data for the given role.
//
// If the data can be parsed as a font file, the PostScript name and the
// metrics are taken from the font.  Data which cannot be parsed is
// embedded without change.  Fonts with CFF outlines are rejected, since
// these cannot be embedded as TrueType programs.
func NewProgram(role Role, data []byte) (*Program, error) {
	if len(data) == 0 {
		return nil, &FontError{Role: role, Err: ErrMissingFont}
	}

	p := &Program{
		Role:           role,
		PostScriptName: role.defaultPostScriptName(),
		Data:           data,
	}

	name, m, err := Describe(data)
	switch {
	case errors.Is(err, ErrNotTrueType):
		return nil, &FontError{Role: role, Err: err}
	case err == nil:
		if name != "" {
			p.PostScriptName = name
		}
		p.Metrics = m
	}
	return p, nil
}

// Provider returns the font programs for a document.
type Provider interface {
	// Load returns the font program for the given role.
	// If no font is available, an error wrapping [ErrMissingFont]
	// must be returned.
	Load(Role) (*Program, error)
}

// LoadAll loads the programs for all roles.
// The result is indexed by [Role].
func LoadAll(p Provider) ([]*Program, error) {
	if p == nil {
		return nil, &FontError{Role: Regular, Err: ErrMissingFont}
	}
	res := make([]*Program, len(Roles))
	for _, role := range Roles {
		prog, err := p.Load(role)
		if err != nil {
			var fontErr *FontError
			if !errors.As(err, &fontErr) {
				err = &FontError{Role: role, Err: err}
			}
			return nil, err
		}
		if prog == nil || len(prog.Data) == 0 {
			return nil, &FontError{Role: role, Err: ErrMissingFont}
		}
		res[role] = prog
	}
	return res, nil
}

// ErrMissingFont indicates that no font program is available for a role.
var ErrMissingFont = errors.New("font program not available")

// ErrNotTrueType indicates a font without TrueType outlines.
var ErrNotTrueType = errors.New("not a TrueType font")

// FontError is returned when a font program cannot be loaded.
type FontError struct {
	Role Role
	Err  error
}

func (err *FontError) Error() string {
	return fmt.Sprintf("loader: %s font: %v", err.Role, err.Err)
}

func (err *FontError) Unwrap() error {
	return err.Err
}
