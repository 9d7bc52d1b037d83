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

// Package volatile provides pointers to memory that must be accessed exactly as
// the program says: every read is a load, every write is a store, and none of
// them are merged, elided or reordered with respect to each other. The typical
// use is a block of memory-mapped hardware registers.
//
// A pointer carries an access permission from the access package. There is one
// pointer type for each permission:
//
//	ReadWrite[T]	Read(), Write() and Update()
//	ReadOnly[T]	Read()
//	WriteOnly[T]	Write()
//	NoAccess[T]	no access methods
//
// Because the access methods are only defined on the types that permit them,
// a write to a ReadOnly pointer is a compile time error and not a runtime
// error.
//
// Every pointer type can be restricted to another permission with the
// RestrictReadWrite(), RestrictReadOnly(), RestrictWriteOnly() and
// RestrictNoAccess() functions. The return type of each function is the
// intersection of the two permissions, as described by the access package.
// Restriction never touches memory.
//
// Pointers do not own the memory they point to. Memory is owned by a Ref,
// created with New() for a Go value or NewAt() for memory obtained elsewhere.
// The region package creates Refs for memory mapped device memory. A Ref hands
// out pointers for the duration of a callback:
//
//	dev := volatile.New(&registers)
//	err := dev.BorrowMut(func(p volatile.ReadWrite[Registers]) {
//		...
//	})
//
// At most one write capable pointer is borrowed from a Ref at any time. The
// write capable pointer types must not be kept beyond the callback that
// received them. The ReadOnly and NoAccess types can be duplicated with Dup()
// because two copies of a pointer that cannot write cannot race with each
// other.
//
// The fields of a struct are reached by projection. The Map functions compute
// the address of a field from the parent pointer and an offset and return a
// pointer with a permission no wider than the parent's:
//
//	status := volatile.MapReadOnly[uint32](p, unsafe.Offsetof(Registers{}.status))
//
// Writing projections by hand is tedious and error prone. The volatilegen
// command generates them from a struct declaration, narrowing each field by
// the permission in the field's struct tag.
//
// Arrays are projected to a Slice, which supports checked and unchecked
// indexing and sub-slicing.
//
// The Dynamic type carries its permission as a value rather than as a type.
// It is the result of the ad-hoc Project() function and is useful when the
// permission of a field is only known at runtime.
package volatile
