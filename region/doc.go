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

// Package region maps memory into the address space of the process and hands
// out volatile references to values inside the mapping.
//
// A region is most often a block of device registers, reached through a device
// file such as /dev/mem or a UIO node:
//
//	r, err := region.Open(region.Options{
//		Path:   "/dev/uio0",
//		Size:   4096,
//	})
//	...
//	dev, err := region.At[virtio.DeviceConfig](r, 0)
//
// Regular files can also be mapped, which is useful for testing a driver
// against a file that stands in for the device. Anonymous() maps memory that
// is not backed by a file at all.
//
// References created by At() are only valid until the region is closed.
package region
