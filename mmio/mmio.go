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

package mmio

import (
	"sync/atomic"
	"unsafe"
)

// Load8 reads one byte. It is not inlined so the read cannot be removed or
// merged with its neighbours.
//
//go:noinline
func Load8(addr *uint8) uint8 {
	return *addr
}

// Load16 reads two bytes in one access. It is not inlined.
//
//go:noinline
func Load16(addr *uint16) uint16 {
	return *addr
}

// Load32 reads four bytes with sync/atomic.
func Load32(addr *uint32) uint32 {
	return atomic.LoadUint32(addr)
}

// Load64 reads eight bytes with sync/atomic.
func Load64(addr *uint64) uint64 {
	return atomic.LoadUint64(addr)
}

// Store8 writes one byte. It is not inlined so the write cannot be removed or
// merged with its neighbours.
//
//go:noinline
func Store8(addr *uint8, data uint8) {
	*addr = data
}

// Store16 writes two bytes in one access. It is not inlined.
//
//go:noinline
func Store16(addr *uint16, data uint16) {
	*addr = data
}

// Store32 writes four bytes with sync/atomic.
func Store32(addr *uint32, data uint32) {
	atomic.StoreUint32(addr, data)
}

// Store64 writes eight bytes with sync/atomic.
func Store64(addr *uint64, data uint64) {
	atomic.StoreUint64(addr, data)
}

// width returns the widest access possible for the two addresses given the
// number of bytes remaining
func width(a, b unsafe.Pointer, remaining uintptr) uintptr {
	align := uintptr(a) | uintptr(b)
	switch {
	case remaining >= 8 && align&7 == 0 && unsafe.Sizeof(uintptr(0)) == 8:
		return 8
	case remaining >= 4 && align&3 == 0:
		return 4
	case remaining >= 2 && align&1 == 0:
		return 2
	}
	return 1
}

// Load copies size bytes from the device memory at src to the memory at dst.
// Each byte of src is read exactly once.
func Load(dst, src unsafe.Pointer, size uintptr) {
	for size > 0 {
		w := width(dst, src, size)
		switch w {
		case 8:
			*(*uint64)(dst) = Load64((*uint64)(src))
		case 4:
			*(*uint32)(dst) = Load32((*uint32)(src))
		case 2:
			*(*uint16)(dst) = Load16((*uint16)(src))
		default:
			*(*uint8)(dst) = Load8((*uint8)(src))
		}
		dst = unsafe.Add(dst, w)
		src = unsafe.Add(src, w)
		size -= w
	}
}

// Store copies size bytes from the memory at src to the device memory at dst.
// Each byte of dst is written exactly once.
func Store(dst, src unsafe.Pointer, size uintptr) {
	for size > 0 {
		w := width(dst, src, size)
		switch w {
		case 8:
			Store64((*uint64)(dst), *(*uint64)(src))
		case 4:
			Store32((*uint32)(dst), *(*uint32)(src))
		case 2:
			Store16((*uint16)(dst), *(*uint16)(src))
		default:
			Store8((*uint8)(dst), *(*uint8)(src))
		}
		dst = unsafe.Add(dst, w)
		src = unsafe.Add(src, w)
		size -= w
	}
}
