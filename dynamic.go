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

// Dynamic is a pointer whose permission is a value rather than part of the
// type. Reads and writes are checked when they are made and fail with a
// PermissionDenied error if the permission does not allow them.
//
// A Dynamic pointer can be converted to one of the statically typed pointers
// with the ReadWrite(), ReadOnly(), WriteOnly() and NoAccess() functions.
type Dynamic[T any] struct {
	addr unsafe.Pointer
	perm access.Permission
}

// Read performs a single volatile read of the value if the permission allows.
func (p Dynamic[T]) Read() (T, error) {
	if !p.perm.Readable() {
		var zero T
		return zero, curated.Errorf(PermissionDenied, "read", p.perm)
	}
	return load[T](p.addr), nil
}

// Write performs a single volatile write of the value if the permission
// allows.
func (p Dynamic[T]) Write(v T) error {
	if !p.perm.Writable() {
		return curated.Errorf(PermissionDenied, "write", p.perm)
	}
	store(p.addr, v)
	return nil
}

// Update reads the value, passes it to f and writes the result. The permission
// must be ReadWrite.
func (p Dynamic[T]) Update(f func(T) T) error {
	if p.perm != access.ReadWrite {
		return curated.Errorf(PermissionDenied, "update", p.perm)
	}
	store(p.addr, f(load[T](p.addr)))
	return nil
}

// Restrict returns a copy of the pointer with the permission restricted.
func (p Dynamic[T]) Restrict(to access.Permission) Dynamic[T] {
	return Dynamic[T]{addr: p.addr, perm: p.perm.Restrict(to)}
}

// ReadWrite converts the pointer to a ReadWrite pointer. Returns false if the
// permission is not ReadWrite.
func (p Dynamic[T]) ReadWrite() (ReadWrite[T], bool) {
	if p.perm != access.ReadWrite {
		return ReadWrite[T]{}, false
	}
	return ReadWrite[T]{addr: p.addr}, true
}

// ReadOnly converts the pointer to a ReadOnly pointer. Returns false if the
// permission does not allow reading.
func (p Dynamic[T]) ReadOnly() (ReadOnly[T], bool) {
	if !p.perm.Readable() {
		return ReadOnly[T]{}, false
	}
	return ReadOnly[T]{addr: p.addr}, true
}

// WriteOnly converts the pointer to a WriteOnly pointer. Returns false if the
// permission does not allow writing.
func (p Dynamic[T]) WriteOnly() (WriteOnly[T], bool) {
	if !p.perm.Writable() {
		return WriteOnly[T]{}, false
	}
	return WriteOnly[T]{addr: p.addr}, true
}

// NoAccess converts the pointer to a NoAccess pointer. Always possible.
func (p Dynamic[T]) NoAccess() NoAccess[T] {
	return NoAccess[T]{addr: p.addr}
}

func (p Dynamic[T]) Addr() uintptr             { return uintptr(p.addr) }
func (p Dynamic[T]) Access() access.Permission { return p.perm }
func (p Dynamic[T]) String() string            { return describe[T](p.perm, p.addr) }

func (p Dynamic[T]) base() unsafe.Pointer { return p.addr }
func (p Dynamic[T]) size() uintptr        { return sizeOf[T]() }
