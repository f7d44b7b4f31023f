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

// Package text splits résumé text into classified lines.
//
// The first non-empty line of a résumé is taken to be the name of the
// person.  Later lines are section headings if they end in a colon or are
// written in capital letters; everything else is body text.
package text

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the classification of a line.
type Kind int

// These are the possible line classifications.
// The zero value is Body.
const (
	Body Kind = iota
	Name
	Heading
)

func (k Kind) String() string {
	switch k {
	case Body:
		return "body"
	case Name:
		return "name"
	case Heading:
		return "heading"
	default:
		return "text.Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Line is one line of input text, after sanitizing and trimming.
type Line struct {
	// Text is the trimmed text of the line.  This is empty for blank
	// lines.
	Text string

	// Index is the position of the line in the input, starting at 0.
	Index int

	Kind Kind
}

var sanitizer = strings.NewReplacer(
	"\u00a0", " ",
	"**", "",
	"\t", "    ",
)

// Sanitize removes Markdown bold markers, replaces non-breaking spaces by
// ordinary spaces and expands tabs to four spaces.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// Prepare splits s into lines and classifies every line.
//
// Line terminators "\r\n" and "\r" are treated like "\n".  Blank lines are
// kept, as empty Body lines.  The result always contains at least one
// line; for the empty string this is a single empty Body line.
func Prepare(s string) []Line {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	parts := strings.Split(s, "\n")

	// Casers keep state and must not be shared between goroutines.
	upper := cases.Upper(language.Und)

	res := make([]Line, len(parts))
	haveName := false
	for i, part := range parts {
		trimmed := strings.TrimSpace(Sanitize(part))

		kind := Body
		switch {
		case trimmed == "":
			// pass
		case !haveName:
			kind = Name
			haveName = true
		case isHeading(trimmed, upper):
			kind = Heading
		}

		res[i] = Line{
			Text:  trimmed,
			Index: i,
			Kind:  kind,
		}
	}
	return res
}

// isHeading decides whether a non-empty line which is not the name line
// is a section heading.
func isHeading(trimmed string, upper cases.Caser) bool {
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	return upper.String(trimmed) == trimmed && hasCasedLetter(trimmed)
}

// hasCasedLetter reports whether s contains a letter which has distinct
// upper and lower case forms.  Scripts without case never form headings.
func hasCasedLetter(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r) {
			return true
		}
	}
	return false
}

// IsBlank reports whether all lines are empty.
func IsBlank(lines []Line) bool {
	for _, l := range lines {
		if l.Text != "" {
			return false
		}
	}
	return true
}
