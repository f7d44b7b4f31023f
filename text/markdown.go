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

package text

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Bullet is put in front of list items by [FromMarkdown].
const Bullet = "• "

// FromMarkdown converts Markdown into the plain text format understood by
// [Prepare].
//
// Level 1 headings are copied unchanged; usually this is the name at the
// top of the résumé.  Deeper headings become lines ending in a colon, so
// that they are classified as [Heading].  List items are written as one line each, starting with
// [Bullet] or with the item number for ordered lists.  Emphasis, links
// and code spans are reduced to their text.  Blocks are separated by a
// blank line, except that no blank line follows a heading.
func FromMarkdown(src []byte) string {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	md := &mdWriter{src: src}
	md.blocks(doc)
	return strings.Join(md.lines, "\n")
}

type mdWriter struct {
	src   []byte
	lines []string

	// afterHeading is set while the most recent block was a heading.
	afterHeading bool
}

func (md *mdWriter) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		md.block(n)
	}
}

func (md *mdWriter) separate() {
	if len(md.lines) > 0 && !md.afterHeading {
		md.lines = append(md.lines, "")
	}
	md.afterHeading = false
}

func (md *mdWriter) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		md.separate()
		title := strings.TrimSpace(md.inline(n))
		if n.Level > 1 && title != "" && !strings.HasSuffix(title, ":") {
			title += ":"
		}
		md.lines = append(md.lines, title)
		md.afterHeading = true

	case *ast.Paragraph, *ast.TextBlock:
		md.separate()
		md.lines = append(md.lines, strings.Split(md.inline(n), "\n")...)

	case *ast.List:
		md.separate()
		md.list(n)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		md.separate()
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			md.lines = append(md.lines, strings.TrimRight(string(seg.Value(md.src)), "\r\n"))
		}

	case *ast.Blockquote:
		md.blocks(n)

	case *ast.ThematicBreak, *ast.HTMLBlock:
		// dropped

	default:
		md.separate()
		md.lines = append(md.lines, md.inline(n))
	}
}

func (md *mdWriter) list(l *ast.List) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := Bullet
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				md.list(sub)
				continue
			}
			for _, line := range strings.Split(md.inline(c), "\n") {
				if first {
					line = marker + line
					first = false
				}
				md.lines = append(md.lines, line)
			}
		}
		if first {
			md.lines = append(md.lines, strings.TrimSpace(marker))
		}
	}
}

// inline returns the text content of n, with line breaks preserved.
func (md *mdWriter) inline(n ast.Node) string {
	b := &strings.Builder{}
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(md.src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(md.src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimRight(b.String(), "\n")
}
