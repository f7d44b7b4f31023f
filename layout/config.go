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

// Package layout breaks classified résumé lines into positioned fragments
// and groups these into pages.
//
// Glyph widths are not taken from the fonts.  Instead, every character is
// assumed to be [WidthFactor] times the font size wide.  This estimate is
// used to find line breaks and to center the name line.
package layout

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/cvpdf/text"
)

// Config describes the page geometry and the font sizes.
// All lengths are in PDF units (1/72 inch).
type Config struct {
	Paper rect.Rect

	LeftMargin  float64
	RightMargin float64

	// Top is the baseline of the first line on every page, measured from
	// the bottom edge of the paper.
	Top float64

	LineHeight float64

	BodySize    float64
	HeadingSize float64
	NameSize    float64

	LinesPerPage int
}

// DefaultConfig returns the standard page layout: US Letter paper, one inch
// margins, 12pt text with a 14pt name line, and 40 lines per page.
func DefaultConfig() *Config {
	return &Config{
		Paper:        Letter,
		LeftMargin:   72,
		RightMargin:  72,
		Top:          720,
		LineHeight:   16,
		BodySize:     12,
		HeadingSize:  12,
		NameSize:     14,
		LinesPerPage: 40,
	}
}

// Validate checks that the configuration describes a usable page layout.
func (c *Config) Validate() error {
	if c.Paper.Dx() <= 0 || c.Paper.Dy() <= 0 {
		return errors.New("layout: empty paper size")
	}
	if c.LeftMargin < 0 || c.RightMargin < 0 {
		return errors.New("layout: negative margin")
	}
	if c.TextWidth() <= 0 {
		return fmt.Errorf("layout: margins %g+%g leave no room on %g wide paper",
			c.LeftMargin, c.RightMargin, c.Paper.Dx())
	}
	if c.BodySize <= 0 || c.HeadingSize <= 0 || c.NameSize <= 0 {
		return errors.New("layout: font sizes must be positive")
	}
	if c.LineHeight <= 0 {
		return errors.New("layout: line height must be positive")
	}
	if c.LinesPerPage <= 0 {
		return fmt.Errorf("layout: invalid page capacity %d", c.LinesPerPage)
	}
	if c.Top > c.Paper.URy || c.Top <= c.Paper.LLy {
		return fmt.Errorf("layout: first baseline %g outside the paper", c.Top)
	}
	last := c.Top - float64(c.LinesPerPage-1)*c.LineHeight
	if last < c.Paper.LLy {
		return fmt.Errorf("layout: %d lines do not fit on the page", c.LinesPerPage)
	}
	return nil
}

// TextWidth returns the horizontal space between the margins.
func (c *Config) TextWidth() float64 {
	return c.Paper.Dx() - c.LeftMargin - c.RightMargin
}

// Size returns the font size used for lines of the given kind.
func (c *Config) Size(kind text.Kind) float64 {
	switch kind {
	case text.Name:
		return c.NameSize
	case text.Heading:
		return c.HeadingSize
	default:
		return c.BodySize
	}
}

// Budget returns the maximal number of characters which fit between the
// margins at the given font size.  The result is at least 1.
func (c *Config) Budget(size float64) int {
	n := int(c.TextWidth() / (size * WidthFactor))
	return max(n, 1)
}
