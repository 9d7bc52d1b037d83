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
	"testing"

	"github.com/jetsetilly/volatile"
	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
	"github.com/jetsetilly/volatile/test"
)

func TestDynamic(t *testing.T) {
	var v uint32

	borrowMut(t, &v, func(p volatile.ReadWrite[uint32]) {
		d := p.Dynamic()
		test.ExpectEquality(t, d.Access(), access.ReadWrite)
		test.ExpectSuccess(t, d.Write(10))

		x, err := d.Read()
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, x, 10)

		test.ExpectSuccess(t, d.Update(func(x uint32) uint32 { return x * 2 }))
		test.ExpectEquality(t, p.Read(), 20)

		ro := d.Restrict(access.ReadOnly)
		test.ExpectEquality(t, ro.Access(), access.ReadOnly)
		err = ro.Write(0)
		test.ExpectSuccess(t, curated.Is(err, volatile.PermissionDenied))
		test.ExpectEquality(t, err.Error(), "volatile: write not permitted with ReadOnly access")
		err = ro.Update(func(x uint32) uint32 { return x })
		test.ExpectSuccess(t, curated.Is(err, volatile.PermissionDenied))

		wo := d.Restrict(access.WriteOnly)
		_, err = wo.Read()
		test.ExpectEquality(t, err.Error(), "volatile: read not permitted with WriteOnly access")

		// restriction never widens
		test.ExpectEquality(t, ro.Restrict(access.WriteOnly).Access(), access.NoAccess)
		test.ExpectEquality(t, ro.Restrict(access.ReadWrite).Access(), access.ReadOnly)
	})
}

func TestDynamicConversion(t *testing.T) {
	var v uint32

	borrowMut(t, &v, func(p volatile.ReadWrite[uint32]) {
		for _, perm := range access.All() {
			d := p.Dynamic().Restrict(perm)

			rw, ok := d.ReadWrite()
			test.ExpectEquality(t, ok, perm == access.ReadWrite, perm)
			if ok {
				test.ExpectEquality(t, rw.Addr(), p.Addr())
			} else {
				test.ExpectEquality(t, rw.Addr(), 0)
			}

			ro, ok := d.ReadOnly()
			test.ExpectEquality(t, ok, perm.Readable(), perm)
			if ok {
				test.ExpectEquality(t, ro.Addr(), p.Addr())
			}

			_, ok = d.WriteOnly()
			test.ExpectEquality(t, ok, perm.Writable(), perm)

			test.ExpectEquality(t, d.NoAccess().Addr(), p.Addr())
		}

		// a static pointer converted to Dynamic keeps its permission
		test.ExpectEquality(t, p.RestrictReadOnly().Dynamic().Access(), access.ReadOnly)
		test.ExpectEquality(t, p.RestrictWriteOnly().Dynamic().Access(), access.WriteOnly)
		test.ExpectEquality(t, p.RestrictNoAccess().Dynamic().Access(), access.NoAccess)
	})
}
