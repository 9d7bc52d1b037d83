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
	"sync/atomic"
	"unsafe"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/assert"
	"github.com/jetsetilly/volatile/curated"
)

// values of Ref.state other than the count of shared borrows
const (
	refFree      = 0
	refExclusive = -1
	refReleased  = -2
)

// Ref is the exclusive handle over a region of memory holding a T. Pointers
// to the memory are only available inside the callback of one of the Borrow
// functions and must not be retained after the callback returns.
//
// Any number of shared borrows can be active at once. An exclusive borrow
// cannot overlap with any other borrow. A conflicting borrow is not blocked,
// it fails with a Borrowed error.
//
// A Ref must not be copied after first use.
type Ref[T any] struct {
	addr unsafe.Pointer
	perm access.Permission

	// refFree, refExclusive, refReleased or the number of shared borrows
	state atomic.Int32

	// goroutine holding the exclusive borrow. for diagnostics only
	owner atomic.Uint64
}

// New creates a ReadWrite reference to the value pointed to by v. The caller
// must not access *v other than through the reference until it is released.
func New[T any](v *T) *Ref[T] {
	if v == nil {
		panic("volatile: New() with nil value")
	}
	return &Ref[T]{addr: unsafe.Pointer(v), perm: access.ReadWrite}
}

// NewReadOnly creates a ReadOnly reference to the value pointed to by v.
func NewReadOnly[T any](v *T) *Ref[T] {
	if v == nil {
		panic("volatile: NewReadOnly() with nil value")
	}
	return &Ref[T]{addr: unsafe.Pointer(v), perm: access.ReadOnly}
}

// NewAt creates a reference to memory that is not owned by the Go runtime, for
// example a hardware register block that has been mapped into the address
// space. The caller guarantees that addr is valid and aligned for T for the
// lifetime of the reference and that no other reference to the memory exists.
//
// Invalid permissions are folded into the lattice by restricting them to
// ReadWrite.
func NewAt[T any](addr unsafe.Pointer, perm access.Permission) *Ref[T] {
	if addr == nil {
		panic("volatile: NewAt() with nil address")
	}
	return &Ref[T]{addr: addr, perm: perm.Restrict(access.ReadWrite)}
}

// Addr returns the address of the referenced memory.
func (r *Ref[T]) Addr() uintptr {
	return uintptr(r.addr)
}

// Access returns the permission of the reference. It should not be called at
// the same time as Restrict().
func (r *Ref[T]) Access() access.Permission {
	return r.perm
}

func (r *Ref[T]) String() string {
	return describe[T](r.perm, r.addr)
}

// describes the current borrow for Borrowed errors
func (r *Ref[T]) holder(s int32) string {
	switch s {
	case refExclusive:
		return fmt.Sprintf("exclusive, goroutine %d", r.owner.Load())
	case refReleased:
		return "released"
	}
	return fmt.Sprintf("%d shared", s)
}

func (r *Ref[T]) acquireExclusive() error {
	if r.state.CompareAndSwap(refFree, refExclusive) {
		r.owner.Store(assert.GetGoRoutineID())
		return nil
	}
	s := r.state.Load()
	if s == refReleased {
		return curated.Errorf(Released)
	}
	return curated.Errorf(Borrowed, r.holder(s))
}

func (r *Ref[T]) releaseExclusive() {
	r.owner.Store(0)
	r.state.Store(refFree)
}

func (r *Ref[T]) acquireShared() error {
	for {
		s := r.state.Load()
		switch {
		case s == refReleased:
			return curated.Errorf(Released)
		case s < 0:
			return curated.Errorf(Borrowed, r.holder(s))
		}
		if r.state.CompareAndSwap(s, s+1) {
			return nil
		}
	}
}

func (r *Ref[T]) releaseShared() {
	r.state.Add(-1)
}

// Borrow calls f with a ReadOnly pointer to the referenced memory. Shared
// borrows may overlap with each other but not with an exclusive borrow.
func (r *Ref[T]) Borrow(f func(ReadOnly[T])) error {
	if err := r.acquireShared(); err != nil {
		return err
	}
	defer r.releaseShared()
	if !r.perm.Readable() {
		return curated.Errorf(PermissionDenied, "borrow", r.perm)
	}
	f(ReadOnly[T]{addr: r.addr})
	return nil
}

// BorrowMut calls f with a ReadWrite pointer to the referenced memory. The
// borrow is exclusive.
func (r *Ref[T]) BorrowMut(f func(ReadWrite[T])) error {
	if err := r.acquireExclusive(); err != nil {
		return err
	}
	defer r.releaseExclusive()
	if r.perm != access.ReadWrite {
		return curated.Errorf(PermissionDenied, "mutable borrow", r.perm)
	}
	f(ReadWrite[T]{addr: r.addr})
	return nil
}

// BorrowWrite calls f with a WriteOnly pointer to the referenced memory. The
// borrow is exclusive.
func (r *Ref[T]) BorrowWrite(f func(WriteOnly[T])) error {
	if err := r.acquireExclusive(); err != nil {
		return err
	}
	defer r.releaseExclusive()
	if !r.perm.Writable() {
		return curated.Errorf(PermissionDenied, "write borrow", r.perm)
	}
	f(WriteOnly[T]{addr: r.addr})
	return nil
}

// BorrowDynamic calls f with a Dynamic pointer carrying the permission of the
// reference. The borrow is exclusive if the permission allows writing and
// shared otherwise.
func (r *Ref[T]) BorrowDynamic(f func(Dynamic[T])) error {
	if err := r.acquireShared(); err != nil {
		return err
	}
	perm := r.perm
	if !perm.Writable() {
		defer r.releaseShared()
		f(Dynamic[T]{addr: r.addr, perm: perm})
		return nil
	}

	// upgrade to an exclusive borrow. this fails if any other shared borrow
	// is active
	if !r.state.CompareAndSwap(1, refExclusive) {
		r.releaseShared()
		return curated.Errorf(Borrowed, r.holder(r.state.Load()))
	}
	r.owner.Store(assert.GetGoRoutineID())
	defer r.releaseExclusive()
	f(Dynamic[T]{addr: r.addr, perm: perm})
	return nil
}

// Restrict narrows the permission of the reference. It fails if the reference
// is borrowed or released.
func (r *Ref[T]) Restrict(to access.Permission) error {
	if err := r.acquireExclusive(); err != nil {
		return err
	}
	defer r.releaseExclusive()
	r.perm = r.perm.Restrict(to)
	return nil
}

// Release ends the reference and returns a pointer to the memory. It fails if
// the reference is borrowed or has already been released. The reference
// cannot be used after it has been released.
func (r *Ref[T]) Release() (*T, error) {
	if !r.state.CompareAndSwap(refFree, refReleased) {
		s := r.state.Load()
		if s == refReleased {
			return nil, curated.Errorf(Released)
		}
		return nil, curated.Errorf(Borrowed, r.holder(s))
	}
	return (*T)(r.addr), nil
}
