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

// Package document assembles the PDF object graph of a résumé.
//
// Objects are added to the arena in the following order: the catalog,
// the page tree root, the shared ToUnicode CMap, the four objects of the
// regular font, the four objects of the bold font, and finally a page
// object followed by its content stream for every page.
package document

import (
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/cvpdf/font/cidfont"
	"seehuhn.de/go/cvpdf/font/loader"
	"seehuhn.de/go/cvpdf/font/tounicode"
	"seehuhn.de/go/cvpdf/layout"
	"seehuhn.de/go/cvpdf/pdf"
)

// Document is the object graph of a résumé, ready to be written.
type Document struct {
	Arena   *pdf.Arena
	Catalog pdf.Reference

	// Pages lists the page objects, in order.
	Pages []pdf.Reference

	Fonts     []*cidfont.Font
	Inventory tounicode.Inventory
}

// Build creates the object graph for the given pages.
//
// The programs must be indexed by [loader.Role], as returned by
// [loader.LoadAll].
func Build(pages []layout.Page, paper rect.Rect, programs []*loader.Program) (*Document, error) {
	if len(programs) != len(loader.Roles) {
		return nil, fmt.Errorf("document: need %d font programs, got %d",
			len(loader.Roles), len(programs))
	}
	if len(pages) == 0 {
		pages = []layout.Page{{}}
	}

	a := &pdf.Arena{}
	catalog := a.Alloc()
	pageTree := a.Alloc()

	inv := tounicode.Collect(layout.Texts(pages))
	toUni, err := cidfont.EmbedToUnicode(a, inv)
	if err != nil {
		return nil, err
	}

	fonts := make([]*cidfont.Font, len(loader.Roles))
	fontRes := pdf.Dict{}
	for i, role := range loader.Roles {
		f, err := cidfont.Embed(a, programs[role], cidfont.ResourceName(i), toUni)
		if err != nil {
			return nil, err
		}
		fonts[role] = f
		fontRes[f.Name] = f.Ref
	}

	mediaBox := pdf.Array{
		cidfont.Number(paper.LLx),
		cidfont.Number(paper.LLy),
		cidfont.Number(paper.URx),
		cidfont.Number(paper.URy),
	}
	resources := pdf.Dict{
		"Font":    fontRes,
		"ProcSet": pdf.Array{pdf.Name("PDF"), pdf.Name("Text")},
	}

	kids := make(pdf.Array, 0, len(pages))
	refs := make([]pdf.Reference, 0, len(pages))
	for _, p := range pages {
		pageRef := a.Alloc()

		data, err := Content(p, fonts)
		if err != nil {
			return nil, err
		}
		contentRef := a.Add(&pdf.Stream{Data: data})

		err = a.Put(pageRef, pdf.Dict{
			"Type":      pdf.Name("Page"),
			"Parent":    pageTree,
			"MediaBox":  mediaBox,
			"Resources": resources,
			"Contents":  contentRef,
		})
		if err != nil {
			return nil, err
		}
		kids = append(kids, pageRef)
		refs = append(refs, pageRef)
	}

	err = a.Put(pageTree, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  kids,
		"Count": pdf.Integer(len(kids)),
	})
	if err != nil {
		return nil, err
	}
	err = a.Put(catalog, pdf.Dict{
		"Type":  pdf.Name("Catalog"),
		"Pages": pageTree,
	})
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Arena:     a,
		Catalog:   catalog,
		Pages:     refs,
		Fonts:     fonts,
		Inventory: inv,
	}
	return doc, nil
}

// Encode writes the document as a complete PDF file.
func (doc *Document) Encode(v pdf.Version) ([]byte, error) {
	return pdf.Encode(doc.Arena, doc.Catalog, v)
}
