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
	"errors"
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/cvpdf/document"
	"seehuhn.de/go/cvpdf/font/loader"
	"seehuhn.de/go/cvpdf/layout"
	"seehuhn.de/go/cvpdf/pdf"
	"seehuhn.de/go/cvpdf/text"
)

// EmptyPolicy selects how text without visible characters is handled.
type EmptyPolicy int

// These are the possible policies for empty input.
const (
	// BlankPage encodes empty input as a document with a single blank
	// page.
	BlankPage EmptyPolicy = iota

	// RejectEmpty makes Encode return [ErrEmptyInput] for empty input.
	RejectEmpty
)

func (p EmptyPolicy) String() string {
	switch p {
	case BlankPage:
		return "blank page"
	case RejectEmpty:
		return "reject"
	default:
		return fmt.Sprintf("cvpdf.EmptyPolicy(%d)", int(p))
	}
}

// ErrEmptyInput is returned by [Encoder.Encode] when the text contains
// only white space and the [RejectEmpty] policy is in effect.
var ErrEmptyInput = errors.New("cvpdf: empty input")

// Options allows to customize the generated PDF files.
// The zero value selects the default settings.
type Options struct {
	// Layout describes the page geometry.
	// If this is nil, [layout.DefaultConfig] is used.
	Layout *layout.Config

	// Version is the PDF version written to the file header.
	// If this is zero, PDF-1.4 is used.
	Version pdf.Version

	Empty EmptyPolicy

	// Logger receives debug messages.  If this is nil, nothing is logged.
	Logger *slog.Logger
}

// Encoder converts résumé text to PDF files.
//
// An Encoder is immutable and can be used concurrently from multiple
// goroutines.
type Encoder struct {
	engine   *layout.Engine
	programs []*loader.Program
	version  pdf.Version
	empty    EmptyPolicy
	log      *slog.Logger
}

// NewEncoder loads the font programs and prepares the encoder.
//
// All configuration errors, including missing font programs, are reported
// here.  A missing font gives an error wrapping [loader.ErrMissingFont].
func NewEncoder(fonts loader.Provider, opt *Options) (*Encoder, error) {
	if opt == nil {
		opt = &Options{}
	}

	version := opt.Version
	if version == 0 {
		version = pdf.V1_4
	}
	if _, err := version.ToString(); err != nil {
		return nil, fmt.Errorf("cvpdf: %w", err)
	}

	switch opt.Empty {
	case BlankPage, RejectEmpty:
		// pass
	default:
		return nil, fmt.Errorf("cvpdf: invalid empty input policy %d", int(opt.Empty))
	}

	engine, err := layout.NewEngine(opt.Layout)
	if err != nil {
		return nil, err
	}

	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	programs, err := loader.LoadAll(fonts)
	if err != nil {
		return nil, err
	}
	for _, prog := range programs {
		logger.Debug("font loaded",
			"role", prog.Role,
			"name", prog.PostScriptName,
			"bytes", len(prog.Data),
			"metrics", prog.Metrics != nil)
	}

	enc := &Encoder{
		engine:   engine,
		programs: programs,
		version:  version,
		empty:    opt.Empty,
		log:      logger,
	}
	return enc, nil
}

// Encode converts the text into a complete PDF file.
// On error, no data is returned.
func (e *Encoder) Encode(s string) ([]byte, error) {
	lines := text.Prepare(s)
	if text.IsBlank(lines) && e.empty == RejectEmpty {
		return nil, ErrEmptyInput
	}

	pages := e.engine.Layout(lines)

	cfg := e.engine.Config()
	doc, err := document.Build(pages, cfg.Paper, e.programs)
	if err != nil {
		return nil, err
	}

	data, err := doc.Encode(e.version)
	if err != nil {
		return nil, err
	}

	e.log.Debug("résumé encoded",
		"lines", len(lines),
		"pages", len(doc.Pages),
		"objects", doc.Arena.Len(),
		"codepoints", len(doc.Inventory),
		"bytes", len(data))

	return data, nil
}

// EncodeTo encodes the text and writes the PDF file to w.
// Nothing is written if encoding fails.
func (e *Encoder) EncodeTo(w io.Writer, s string) error {
	data, err := e.Encode(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Encode converts the text into a PDF file, using the default options.
func Encode(s string, fonts loader.Provider) ([]byte, error) {
	enc, err := NewEncoder(fonts, nil)
	if err != nil {
		return nil, err
	}
	return enc.Encode(s)
}
