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

package layout

import (
	"fmt"
	"iter"
	"math"

	"seehuhn.de/go/cvpdf/text"
)

// FontRole selects one of the two fonts of a document.
type FontRole int

// These are the available font roles.
const (
	Regular FontRole = iota
	Bold
)

func (r FontRole) String() string {
	switch r {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	default:
		return fmt.Sprintf("layout.FontRole(%d)", int(r))
	}
}

// RoleOf returns the font role used for lines of the given kind.
func RoleOf(kind text.Kind) FontRole {
	if kind == text.Name || kind == text.Heading {
		return Bold
	}
	return Regular
}

// Line is a positioned fragment of a [text.Line].
type Line struct {
	Text string
	Kind text.Kind

	// X and Y give the start of the baseline.
	X, Y float64

	Size float64
	Font FontRole
}

// Page is the content of one page.
type Page struct {
	Lines []Line
}

// Engine lays out résumé lines.
// An Engine is immutable and can be used concurrently.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine for the given configuration.
// If cfg is nil, [DefaultConfig] is used.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: *cfg}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Layout wraps the lines and distributes the fragments over pages.
//
// The result always contains at least one page.  If lines is empty, this
// page holds a single empty line.
func (e *Engine) Layout(lines []text.Line) []Page {
	var frags []Line
	for _, l := range lines {
		size := e.cfg.Size(l.Kind)
		for _, part := range Wrap(l.Text, e.cfg.Budget(size)) {
			frags = append(frags, Line{
				Text: part,
				Kind: l.Kind,
				Size: size,
				Font: RoleOf(l.Kind),
			})
		}
	}
	if len(frags) == 0 {
		frags = append(frags, Line{Size: e.cfg.BodySize})
	}
	return e.paginate(frags)
}

// paginate groups the fragments into pages and sets the line positions.
func (e *Engine) paginate(frags []Line) []Page {
	cfg := &e.cfg
	pages := make([]Page, 0, NumPages(len(frags), cfg.LinesPerPage))

	var body []Line
	flush := func() {
		pages = append(pages, Page{Lines: body})
		body = nil
	}
	for _, frag := range frags {
		if len(body) == cfg.LinesPerPage {
			flush()
		}

		frag.Y = cfg.Top - float64(len(body))*cfg.LineHeight
		frag.X = cfg.LeftMargin
		if frag.Kind == text.Name {
			centered := (cfg.Paper.Dx()-EstimateWidth(frag.Text, frag.Size))/2 + cfg.Paper.LLx
			frag.X = math.Max(cfg.LeftMargin, centered)
		}
		body = append(body, frag)
	}
	flush()

	return pages
}

// NumPages returns the number of pages needed for n lines, when every page
// holds perPage lines.  At least one page is always used.
func NumPages(n, perPage int) int {
	if n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Texts iterates over the text of all lines on all pages.
func Texts(pages []Page) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range pages {
			for _, l := range p.Lines {
				if !yield(l.Text) {
					return
				}
			}
		}
	}
}
