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

package volatile_test

import (
	"structs"
	"testing"
	"unsafe"

	"github.com/jetsetilly/volatile"
	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
	"github.com/jetsetilly/volatile/test"
)

type bank struct {
	_    structs.HostLayout
	regs [4]uint32
}

func regs(p volatile.ReadWrite[bank]) volatile.Slice[volatile.ReadWrite[uint32]] {
	return volatile.MapReadWriteSlice[uint32](p, unsafe.Offsetof(bank{}.regs), len(bank{}.regs))
}

func TestSliceBounds(t *testing.T) {
	var b bank

	borrowMut(t, &b, func(p volatile.ReadWrite[bank]) {
		s := regs(p)
		test.ExpectEquality(t, s.Len(), 4)
		test.ExpectEquality(t, s.Addr(), p.Addr())
		test.ExpectEquality(t, s.Access(), access.ReadWrite)

		_, err := s.Index(5)
		test.ExpectFailure(t, err)
		test.ExpectSuccess(t, curated.Is(err, volatile.IndexOutOfRange))
		test.ExpectEquality(t, err.Error(), "volatile: index out of range [5] with length 4")

		_, err = s.Index(-1)
		test.ExpectFailure(t, err)

		e, err := s.Index(3)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, e.Addr(), p.Addr()+12)

		e.Write(0x33)
		test.ExpectEquality(t, s.IndexUnchecked(3).Read(), 0x33)
	})
	test.ExpectEquality(t, b.regs[3], 0x33)
}

func TestSliceSub(t *testing.T) {
	var b bank

	borrowMut(t, &b, func(p volatile.ReadWrite[bank]) {
		s := regs(p)

		sub, err := s.Sub(1, 3)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, sub.Len(), 2)
		test.ExpectEquality(t, sub.Addr(), p.Addr()+4)

		_, err = s.Sub(3, 1)
		test.ExpectSuccess(t, curated.Is(err, volatile.SliceOutOfRange))
		_, err = s.Sub(0, 5)
		test.ExpectSuccess(t, curated.Is(err, volatile.SliceOutOfRange))

		empty, err := s.Sub(4, 4)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, empty.Len(), 0)

		lo, hi, err := s.SplitAt(1)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, lo.Len(), 1)
		test.ExpectEquality(t, hi.Len(), 3)
		test.ExpectEquality(t, hi.Addr(), p.Addr()+4)

		_, _, err = s.SplitAt(5)
		test.ExpectFailure(t, err)

		// projection from a slice is bounded by the slice, not the parent
		test.ExpectPanic(t, func() { volatile.MapNoAccess[uint64](lo, 0) })
		test.ExpectEquality(t, volatile.MapNoAccess[uint64](hi, 4).Addr(), p.Addr()+8)
	})
}

func TestSliceBulk(t *testing.T) {
	var b bank

	borrowMut(t, &b, func(p volatile.ReadWrite[bank]) {
		s := regs(p)

		test.ExpectSuccess(t, volatile.CopyFrom(s, []uint32{1, 2, 3, 4}))

		dst := make([]uint32, 4)
		test.ExpectSuccess(t, volatile.CopyInto(s, dst))
		test.ExpectEquality(t, dst[0], 1)
		test.ExpectEquality(t, dst[3], 4)

		err := volatile.CopyInto(s, make([]uint32, 3))
		test.ExpectSuccess(t, curated.Is(err, volatile.LengthMismatch))
		err = volatile.CopyFrom(s, make([]uint32, 5))
		test.ExpectSuccess(t, curated.Is(err, volatile.LengthMismatch))

		volatile.Fill(s, uint32(0xff))

		n := 0
		for i, e := range s.All() {
			test.ExpectEquality(t, e.Read(), 0xff, i)
			test.ExpectEquality(t, e.Addr(), p.Addr()+uintptr(i)*4, i)
			n++
		}
		test.ExpectEquality(t, n, 4)

		// stopping iteration early
		n = 0
		for range s.All() {
			n++
			break
		}
		test.ExpectEquality(t, n, 1)
	})
	test.ExpectEquality(t, b.regs, [4]uint32{0xff, 0xff, 0xff, 0xff})
}

func TestSliceRestrict(t *testing.T) {
	var b bank

	borrowMut(t, &b, func(p volatile.ReadWrite[bank]) {
		s := regs(p)

		ro := volatile.RestrictSliceReadOnly(s)
		test.ExpectEquality(t, ro.Access(), access.ReadOnly)
		test.ExpectEquality(t, ro.Len(), 4)

		wo := volatile.RestrictSliceWriteOnly(s)
		test.ExpectEquality(t, wo.Access(), access.WriteOnly)
		volatile.Fill(wo, uint32(7))

		dst := make([]uint32, 4)
		test.ExpectSuccess(t, volatile.CopyInto(ro, dst))
		test.ExpectEquality(t, dst[2], 7)

		// narrowing a ReadOnly slice to NoAccess
		na := volatile.RestrictSliceNoAccess(ro)
		test.ExpectEquality(t, na.Access(), access.NoAccess)
		test.ExpectEquality(t, na.Addr(), s.Addr())

		// slices over parents that cannot read
		woSlice := volatile.MapWriteOnlySlice[uint32](p.RestrictWriteOnly(), 0, 4)
		test.ExpectEquality(t, woSlice.Access(), access.WriteOnly)
		naSlice := volatile.MapNoAccessSlice[uint32](p.RestrictWriteOnly(), 0, 4)
		test.ExpectEquality(t, naSlice.Access(), access.NoAccess)
		roSlice := volatile.MapReadOnlySlice[uint32](p.RestrictReadOnly(), 0, 4)
		test.ExpectEquality(t, roSlice.Access(), access.ReadOnly)
	})
}
