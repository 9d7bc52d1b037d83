// This file is part of volatile.
//
// volatile is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// volatile is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with volatile.  If not, see <https://www.gnu.org/licenses/>.

package volatile

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
)

// Element is the constraint for the element type of a Slice. It is satisfied
// by the four pointer types of this package.
type Element[P any] interface {
	Pointer
	at(unsafe.Pointer) P
}

// Slice is a pointer to a sequence of values. Each value in the sequence is
// reached through a pointer of type P, which also decides the permission of
// the slice.
type Slice[P Element[P]] struct {
	_    [0]P
	addr unsafe.Pointer
	n    int
}

func (s Slice[P]) stride() uintptr {
	var p P
	return p.size()
}

// Len returns the number of elements in the slice.
func (s Slice[P]) Len() int {
	return s.n
}

// Index returns a pointer to element i. Returns an IndexOutOfRange error if i
// is outside the slice.
func (s Slice[P]) Index(i int) (P, error) {
	if i < 0 || i >= s.n {
		var zero P
		return zero, curated.Errorf(IndexOutOfRange, i, s.n)
	}
	return s.IndexUnchecked(i), nil
}

// IndexUnchecked returns a pointer to element i without checking the bounds of
// the slice. The result of using a pointer to an element outside of the slice
// is undefined.
func (s Slice[P]) IndexUnchecked(i int) P {
	var p P
	return p.at(unsafe.Add(s.addr, uintptr(i)*s.stride()))
}

// Sub returns the elements [lo:hi] of the slice. Returns a SliceOutOfRange
// error if the range is not within the slice.
func (s Slice[P]) Sub(lo, hi int) (Slice[P], error) {
	if lo < 0 || hi < lo || hi > s.n {
		return Slice[P]{}, curated.Errorf(SliceOutOfRange, lo, hi, s.n)
	}
	return s.SubUnchecked(lo, hi), nil
}

// SubUnchecked returns the elements [lo:hi] of the slice without checking the
// range. The result of using elements outside of the original slice is
// undefined.
func (s Slice[P]) SubUnchecked(lo, hi int) Slice[P] {
	return Slice[P]{
		addr: unsafe.Add(s.addr, uintptr(lo)*s.stride()),
		n:    hi - lo,
	}
}

// SplitAt divides the slice into [0:mid] and [mid:Len()].
func (s Slice[P]) SplitAt(mid int) (Slice[P], Slice[P], error) {
	if mid < 0 || mid > s.n {
		return Slice[P]{}, Slice[P]{}, curated.Errorf(SliceOutOfRange, mid, s.n, s.n)
	}
	return s.SubUnchecked(0, mid), s.SubUnchecked(mid, s.n), nil
}

// All iterates over every element of the slice. It does not access memory.
func (s Slice[P]) All() iter.Seq2[int, P] {
	return func(yield func(int, P) bool) {
		for i := range s.n {
			if !yield(i, s.IndexUnchecked(i)) {
				return
			}
		}
	}
}

func (s Slice[P]) Addr() uintptr { return uintptr(s.addr) }

func (s Slice[P]) Access() access.Permission {
	var p P
	return p.Access()
}

func (s Slice[P]) String() string {
	return fmt.Sprintf("%s[%d]@%#x", s.Access(), s.n, uintptr(s.addr))
}

func (s Slice[P]) base() unsafe.Pointer { return s.addr }
func (s Slice[P]) size() uintptr        { return s.stride() * uintptr(s.n) }

// CopyInto reads every element of the slice into dst. The length of dst must
// be the same as the length of the slice.
func CopyInto[E any, P interface {
	Element[P]
	Read() E
}](s Slice[P], dst []E) error {
	if len(dst) != s.n {
		return curated.Errorf(LengthMismatch, s.n, len(dst))
	}
	for i, p := range s.All() {
		dst[i] = p.Read()
	}
	return nil
}

// CopyFrom writes every element of src into the slice. The length of src must
// be the same as the length of the slice.
func CopyFrom[E any, P interface {
	Element[P]
	Write(E)
}](s Slice[P], src []E) error {
	if len(src) != s.n {
		return curated.Errorf(LengthMismatch, s.n, len(src))
	}
	for i, p := range s.All() {
		p.Write(src[i])
	}
	return nil
}

// Fill writes v to every element of the slice.
func Fill[E any, P interface {
	Element[P]
	Write(E)
}](s Slice[P], v E) {
	for _, p := range s.All() {
		p.Write(v)
	}
}

// RestrictSliceReadOnly restricts a slice whose elements can be read.
func RestrictSliceReadOnly[E any, P interface {
	Element[P]
	RestrictReadOnly() ReadOnly[E]
}](s Slice[P]) Slice[ReadOnly[E]] {
	return Slice[ReadOnly[E]]{addr: s.addr, n: s.n}
}

// RestrictSliceWriteOnly restricts a slice whose elements can be written.
func RestrictSliceWriteOnly[E any, P interface {
	Element[P]
	RestrictWriteOnly() WriteOnly[E]
}](s Slice[P]) Slice[WriteOnly[E]] {
	return Slice[WriteOnly[E]]{addr: s.addr, n: s.n}
}

// RestrictSliceNoAccess restricts any slice to NoAccess.
func RestrictSliceNoAccess[E any, P interface {
	Element[P]
	RestrictNoAccess() NoAccess[E]
}](s Slice[P]) Slice[NoAccess[E]] {
	return Slice[NoAccess[E]]{addr: s.addr, n: s.n}
}
