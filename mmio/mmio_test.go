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

package mmio_test

import (
	"testing"
	"unsafe"

	"github.com/jetsetilly/volatile/mmio"
	"github.com/jetsetilly/volatile/test"
)

func TestWidths(t *testing.T) {
	var b uint8
	mmio.Store8(&b, 0xa5)
	test.ExpectEquality(t, mmio.Load8(&b), 0xa5)

	var h uint16
	mmio.Store16(&h, 0xbeef)
	test.ExpectEquality(t, mmio.Load16(&h), 0xbeef)

	var w uint32
	mmio.Store32(&w, 0xdeadbeef)
	test.ExpectEquality(t, mmio.Load32(&w), 0xdeadbeef)

	var d uint64
	mmio.Store64(&d, 0x0123456789abcdef)
	test.ExpectEquality(t, mmio.Load64(&d), 0x0123456789abcdef)
}

type block struct {
	a uint8
	b uint16
	c uint32
	d uint64
	e [3]uint8
}

func TestLoadStore(t *testing.T) {
	src := block{a: 1, b: 2, c: 3, d: 4, e: [3]uint8{5, 6, 7}}
	var dev block
	mmio.Store(unsafe.Pointer(&dev), unsafe.Pointer(&src), unsafe.Sizeof(src))
	test.ExpectEquality(t, dev, src)

	var dst block
	mmio.Load(unsafe.Pointer(&dst), unsafe.Pointer(&dev), unsafe.Sizeof(dev))
	test.ExpectEquality(t, dst, src)
}

func TestUnaligned(t *testing.T) {
	// copy five bytes starting at an odd offset. the accesses must fall back to
	// single bytes without touching the neighbouring bytes
	dev := [8]uint8{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	src := [8]uint8{0, 1, 2, 3, 4, 5, 6, 7}
	mmio.Store(unsafe.Pointer(&dev[1]), unsafe.Pointer(&src[1]), 5)
	test.ExpectEquality(t, dev, [8]uint8{0xff, 1, 2, 3, 4, 5, 0xff, 0xff})

	var dst [8]uint8
	mmio.Load(unsafe.Pointer(&dst[3]), unsafe.Pointer(&dev[1]), 5)
	test.ExpectEquality(t, dst, [8]uint8{0, 0, 0, 1, 2, 3, 4, 5})
}

func TestZeroSize(t *testing.T) {
	var a, b uint32 = 1, 2
	mmio.Store(unsafe.Pointer(&a), unsafe.Pointer(&b), 0)
	test.ExpectEquality(t, a, 1)
}
