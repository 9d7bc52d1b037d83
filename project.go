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
	"unsafe"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
)

// project returns the address of n values of type F starting at offset bytes
// from the start of the parent. Panics if the values do not fit inside the
// parent.
func project[F any, P Pointer](p P, offset uintptr, n int) unsafe.Pointer {
	size := p.size()
	sz := sizeOf[F]()
	if n < 0 || offset > size || (sz != 0 && uintptr(n) > (size-offset)/sz) {
		if n == 1 {
			panic(curated.Errorf(FieldOutOfRange, sz, offset, size))
		}
		panic(curated.Errorf(FieldsOutOfRange, n, sz, offset, size))
	}
	return unsafe.Add(p.base(), offset)
}

// MapReadWrite projects a field of type F at offset bytes from the start of a
// ReadWrite parent.
func MapReadWrite[F any, P ReadWritable](p P, offset uintptr) ReadWrite[F] {
	return ReadWrite[F]{addr: project[F](p, offset, 1)}
}

// MapReadOnly projects a field of type F at offset bytes from the start of a
// parent that can be read.
func MapReadOnly[F any, P Readable](p P, offset uintptr) ReadOnly[F] {
	return ReadOnly[F]{addr: project[F](p, offset, 1)}
}

// MapWriteOnly projects a field of type F at offset bytes from the start of a
// parent that can be written.
func MapWriteOnly[F any, P Writable](p P, offset uintptr) WriteOnly[F] {
	return WriteOnly[F]{addr: project[F](p, offset, 1)}
}

// MapNoAccess projects a field of type F at offset bytes from the start of any
// parent.
func MapNoAccess[F any, P Pointer](p P, offset uintptr) NoAccess[F] {
	return NoAccess[F]{addr: project[F](p, offset, 1)}
}

// MapReadWriteSlice projects n consecutive values of type E at offset bytes
// from the start of a ReadWrite parent.
func MapReadWriteSlice[E any, P ReadWritable](p P, offset uintptr, n int) Slice[ReadWrite[E]] {
	return Slice[ReadWrite[E]]{addr: project[E](p, offset, n), n: n}
}

// MapReadOnlySlice projects n consecutive values of type E at offset bytes
// from the start of a parent that can be read.
func MapReadOnlySlice[E any, P Readable](p P, offset uintptr, n int) Slice[ReadOnly[E]] {
	return Slice[ReadOnly[E]]{addr: project[E](p, offset, n), n: n}
}

// MapWriteOnlySlice projects n consecutive values of type E at offset bytes
// from the start of a parent that can be written.
func MapWriteOnlySlice[E any, P Writable](p P, offset uintptr, n int) Slice[WriteOnly[E]] {
	return Slice[WriteOnly[E]]{addr: project[E](p, offset, n), n: n}
}

// MapNoAccessSlice projects n consecutive values of type E at offset bytes
// from the start of any parent.
func MapNoAccessSlice[E any, P Pointer](p P, offset uintptr, n int) Slice[NoAccess[E]] {
	return Slice[NoAccess[E]]{addr: project[E](p, offset, n), n: n}
}

// Project is the ad-hoc form of field projection. The permission of the
// returned pointer is the permission of the parent restricted by the declared
// permission of the field.
func Project[F any, P Pointer](p P, offset uintptr, declared access.Permission) Dynamic[F] {
	return Dynamic[F]{
		addr: project[F](p, offset, 1),
		perm: p.Access().Restrict(declared),
	}
}
