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

import "errors"

// Arena is an append-only sequence of indirect objects.
//
// The object number of an object is its position in the sequence plus one.
// Numbers are fixed at the moment a slot is appended, either by [Arena.Add]
// or by [Arena.Alloc]; they are never reused.  A slot obtained from Alloc
// must be filled using [Arena.Put] before the arena is written.
//
// The zero value is an empty arena, ready to use.
type Arena struct {
	slots []Object
}

// Alloc appends an empty slot and returns its reference.  This is used
// when an object must be referenced before its contents are known,
// for example the page tree root which is referenced by every page.
func (a *Arena) Alloc() Reference {
	a.slots = append(a.slots, nil)
	return Reference(len(a.slots))
}

// Put stores obj in the slot allocated for ref.
func (a *Arena) Put(ref Reference, obj Object) error {
	if ref == 0 || int(ref) > len(a.slots) {
		return errInvalidReference
	}
	if obj == nil {
		return errors.New("cannot store nil object")
	}
	if a.slots[ref-1] != nil {
		return ErrAlreadyWritten
	}
	a.slots[ref-1] = obj
	return nil
}

// Add appends obj and returns its reference.
func (a *Arena) Add(obj Object) Reference {
	ref := a.Alloc()
	a.slots[ref-1] = obj
	return ref
}

// Get returns the object stored for ref, or nil if the slot is empty or
// the reference is out of range.
func (a *Arena) Get(ref Reference) Object {
	if ref == 0 || int(ref) > len(a.slots) {
		return nil
	}
	return a.slots[ref-1]
}

// Len returns the number of slots in the arena.
func (a *Arena) Len() int {
	return len(a.slots)
}

// check verifies that every slot has been filled.
func (a *Arena) check() error {
	for i, obj := range a.slots {
		if obj == nil {
			return &UnfilledError{Ref: Reference(i + 1)}
		}
	}
	return nil
}
