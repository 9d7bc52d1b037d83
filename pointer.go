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
	"reflect"
	"unsafe"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/mmio"
)

// Pointer is implemented by every pointer type in this package. It cannot be
// implemented outside of the package.
type Pointer interface {
	// the address being pointed to
	Addr() uintptr

	// the access permission of the pointer
	Access() access.Permission

	base() unsafe.Pointer
	size() uintptr
}

// Readable is implemented by ReadWrite and ReadOnly.
type Readable interface {
	Pointer
	readable()
}

// Writable is implemented by ReadWrite and WriteOnly.
type Writable interface {
	Pointer
	writable()
}

// ReadWritable is implemented by ReadWrite only.
type ReadWritable interface {
	Readable
	Writable
}

// Copyable is implemented by ReadOnly and NoAccess.
type Copyable interface {
	Pointer
	copyable()
}

// Dup returns a duplicate of a pointer that cannot write.
func Dup[P Copyable](p P) P {
	return p
}

func load[T any](addr unsafe.Pointer) T {
	var v T
	mmio.Load(unsafe.Pointer(&v), addr, unsafe.Sizeof(v))
	return v
}

func store[T any](addr unsafe.Pointer, v T) {
	mmio.Store(addr, unsafe.Pointer(&v), unsafe.Sizeof(v))
}

func sizeOf[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

// the marker fields give each pointer type a distinct underlying type so that
// a conversion cannot change the permission
type (
	readWriteTag struct{}
	readOnlyTag  struct{}
	writeOnlyTag struct{}
	noAccessTag  struct{}
)

func describe[T any](perm access.Permission, addr unsafe.Pointer) string {
	return fmt.Sprintf("%s[%s]@%#x", perm, reflect.TypeFor[T](), uintptr(addr))
}

// ReadWrite is a pointer that can be read and written.
type ReadWrite[T any] struct {
	_    [0]readWriteTag
	addr unsafe.Pointer
}

// Read performs a single volatile read of the value.
func (p ReadWrite[T]) Read() T {
	return load[T](p.addr)
}

// Write performs a single volatile write of the value.
func (p ReadWrite[T]) Write(v T) {
	store(p.addr, v)
}

// Update reads the value, passes it to f and writes the result. The update is
// not atomic.
func (p ReadWrite[T]) Update(f func(T) T) {
	p.Write(f(p.Read()))
}

func (p ReadWrite[T]) RestrictReadWrite() ReadWrite[T] { return p }
func (p ReadWrite[T]) RestrictReadOnly() ReadOnly[T]   { return ReadOnly[T]{addr: p.addr} }
func (p ReadWrite[T]) RestrictWriteOnly() WriteOnly[T] { return WriteOnly[T]{addr: p.addr} }
func (p ReadWrite[T]) RestrictNoAccess() NoAccess[T]   { return NoAccess[T]{addr: p.addr} }

func (p ReadWrite[T]) Addr() uintptr             { return uintptr(p.addr) }
func (p ReadWrite[T]) Access() access.Permission { return access.ReadWrite }
func (p ReadWrite[T]) Dynamic() Dynamic[T]       { return Dynamic[T]{addr: p.addr, perm: access.ReadWrite} }
func (p ReadWrite[T]) String() string            { return describe[T](access.ReadWrite, p.addr) }

func (p ReadWrite[T]) base() unsafe.Pointer             { return p.addr }
func (p ReadWrite[T]) size() uintptr                    { return sizeOf[T]() }
func (p ReadWrite[T]) at(a unsafe.Pointer) ReadWrite[T] { return ReadWrite[T]{addr: a} }
func (p ReadWrite[T]) readable()                        {}
func (p ReadWrite[T]) writable()                        {}

// ReadOnly is a pointer that can only be read.
type ReadOnly[T any] struct {
	_    [0]readOnlyTag
	addr unsafe.Pointer
}

// Read performs a single volatile read of the value.
func (p ReadOnly[T]) Read() T {
	return load[T](p.addr)
}

func (p ReadOnly[T]) RestrictReadWrite() ReadOnly[T] { return p }
func (p ReadOnly[T]) RestrictReadOnly() ReadOnly[T]  { return p }
func (p ReadOnly[T]) RestrictWriteOnly() NoAccess[T] { return NoAccess[T]{addr: p.addr} }
func (p ReadOnly[T]) RestrictNoAccess() NoAccess[T]  { return NoAccess[T]{addr: p.addr} }

func (p ReadOnly[T]) Addr() uintptr             { return uintptr(p.addr) }
func (p ReadOnly[T]) Access() access.Permission { return access.ReadOnly }
func (p ReadOnly[T]) Dynamic() Dynamic[T]       { return Dynamic[T]{addr: p.addr, perm: access.ReadOnly} }
func (p ReadOnly[T]) String() string            { return describe[T](access.ReadOnly, p.addr) }

func (p ReadOnly[T]) base() unsafe.Pointer            { return p.addr }
func (p ReadOnly[T]) size() uintptr                   { return sizeOf[T]() }
func (p ReadOnly[T]) at(a unsafe.Pointer) ReadOnly[T] { return ReadOnly[T]{addr: a} }
func (p ReadOnly[T]) readable()                       {}
func (p ReadOnly[T]) copyable()                       {}

// WriteOnly is a pointer that can only be written.
type WriteOnly[T any] struct {
	_    [0]writeOnlyTag
	addr unsafe.Pointer
}

// Write performs a single volatile write of the value.
func (p WriteOnly[T]) Write(v T) {
	store(p.addr, v)
}

func (p WriteOnly[T]) RestrictReadWrite() WriteOnly[T] { return p }
func (p WriteOnly[T]) RestrictReadOnly() NoAccess[T]   { return NoAccess[T]{addr: p.addr} }
func (p WriteOnly[T]) RestrictWriteOnly() WriteOnly[T] { return p }
func (p WriteOnly[T]) RestrictNoAccess() NoAccess[T]   { return NoAccess[T]{addr: p.addr} }

func (p WriteOnly[T]) Addr() uintptr             { return uintptr(p.addr) }
func (p WriteOnly[T]) Access() access.Permission { return access.WriteOnly }
func (p WriteOnly[T]) Dynamic() Dynamic[T]       { return Dynamic[T]{addr: p.addr, perm: access.WriteOnly} }
func (p WriteOnly[T]) String() string            { return describe[T](access.WriteOnly, p.addr) }

func (p WriteOnly[T]) base() unsafe.Pointer             { return p.addr }
func (p WriteOnly[T]) size() uintptr                    { return sizeOf[T]() }
func (p WriteOnly[T]) at(a unsafe.Pointer) WriteOnly[T] { return WriteOnly[T]{addr: a} }
func (p WriteOnly[T]) writable()                        {}

// NoAccess is a pointer that can be neither read nor written. It is still
// useful as the parent of further projections and for its address.
type NoAccess[T any] struct {
	_    [0]noAccessTag
	addr unsafe.Pointer
}

func (p NoAccess[T]) RestrictReadWrite() NoAccess[T] { return p }
func (p NoAccess[T]) RestrictReadOnly() NoAccess[T]  { return p }
func (p NoAccess[T]) RestrictWriteOnly() NoAccess[T] { return p }
func (p NoAccess[T]) RestrictNoAccess() NoAccess[T]  { return p }

func (p NoAccess[T]) Addr() uintptr             { return uintptr(p.addr) }
func (p NoAccess[T]) Access() access.Permission { return access.NoAccess }
func (p NoAccess[T]) Dynamic() Dynamic[T]       { return Dynamic[T]{addr: p.addr, perm: access.NoAccess} }
func (p NoAccess[T]) String() string            { return describe[T](access.NoAccess, p.addr) }

func (p NoAccess[T]) base() unsafe.Pointer            { return p.addr }
func (p NoAccess[T]) size() uintptr                   { return sizeOf[T]() }
func (p NoAccess[T]) at(a unsafe.Pointer) NoAccess[T] { return NoAccess[T]{addr: a} }
func (p NoAccess[T]) copyable()                       {}
