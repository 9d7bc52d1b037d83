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

// Package mmio is the primitive memory access used by the volatile package. It
// performs loads and stores that the compiler will not elide, merge or reorder
// with respect to each other.
//
// The 32 and 64 bit accessors use the sync/atomic package. The Go memory model
// guarantees that atomic operations happen in program order and the compiler
// never removes them. There are no 8 and 16 bit operations in sync/atomic so
// those widths are performed by functions that are never inlined. A call to a
// function that is not inlined cannot be merged with a neighbouring access.
//
// Load() and Store() copy values of arbitrary size by splitting the copy into
// the widest accesses that the alignment of both addresses allows.
//
// Addresses passed to this package must be valid for the width of the access.
// Nothing is checked: that is the job of the volatile package.
package mmio
