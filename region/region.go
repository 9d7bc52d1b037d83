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


//go:build unix

package region

import (
	"os"
	"reflect"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/jetsetilly/volatile"
	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
	"github.com/jetsetilly/volatile/logger"
)

// List of error patterns. Use curated.Is() to test for them.
const (
	MappingFailed = "region: %s: %v"
	InvalidSize   = "region: invalid size (%d)"
	OutOfBounds   = "region: %d bytes at offset %#x exceeds region of %d bytes"
	Misaligned    = "region: offset %#x is not aligned for %s (alignment %d)"
	Closed        = "region: region has been closed"
)

// Logging controls the log entries made when a region is mapped or unmapped.
var Logging = logger.NewSwitch(true)

// Options for Open().
type Options struct {
	// path of the file to map. a device file or a regular file
	Path string

	// offset in the file of the first byte of the region. the offset does not
	// need to be page aligned
	Offset int64

	// size of the region in bytes
	Size int

	// create the file if it does not exist and make sure it is big enough for
	// the region. only meaningful for regular files
	Create bool

	// map the region read-only. references created by At() will have ReadOnly
	// access
	ReadOnly bool
}

// Region is a block of mapped memory.
type Region struct {
	name string

	// the whole of the mapping, which begins on a page boundary
	mapping []byte

	// the number of bytes from the start of mapping to the start of the region
	skip int

	size int
	perm access.Permission
}

// Open maps part of a file into memory.
func Open(opts Options) (*Region, error) {
	if opts.Size <= 0 {
		return nil, curated.Errorf(InvalidSize, opts.Size)
	}

	flags := os.O_RDWR | os.O_SYNC
	prot := unix.PROT_READ | unix.PROT_WRITE
	perm := access.ReadWrite
	if opts.ReadOnly {
		flags = os.O_RDONLY | os.O_SYNC
		prot = unix.PROT_READ
		perm = access.ReadOnly
	}
	if opts.Create && !opts.ReadOnly {
		flags |= os.O_CREATE
	}

	f, err := os.OpenFile(opts.Path, flags, 0o644)
	if err != nil {
		return nil, curated.Errorf(MappingFailed, opts.Path, err)
	}
	defer f.Close()

	if opts.Create && !opts.ReadOnly {
		fi, err := f.Stat()
		if err != nil {
			return nil, curated.Errorf(MappingFailed, opts.Path, err)
		}
		end := opts.Offset + int64(opts.Size)
		if fi.Mode().IsRegular() && fi.Size() < end {
			if err := f.Truncate(end); err != nil {
				return nil, curated.Errorf(MappingFailed, opts.Path, err)
			}
		}
	}

	// mmap() requires the file offset to be a multiple of the page size
	page := int64(unix.Getpagesize())
	aligned := opts.Offset &^ (page - 1)
	skip := int(opts.Offset - aligned)

	mapping, err := unix.Mmap(int(f.Fd()), aligned, skip+opts.Size, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, curated.Errorf(MappingFailed, opts.Path, err)
	}

	r := &Region{
		name:    opts.Path,
		mapping: mapping,
		skip:    skip,
		size:    opts.Size,
		perm:    perm,
	}
	logger.Logf(Logging, "region", "mapped %s: %d bytes at offset %#x (%s)", r.name, r.size, opts.Offset, r.perm)

	return r, nil
}

// Anonymous maps memory that is not backed by a file. The memory is
// initialised to zero and is private to the process.
func Anonymous(size int) (*Region, error) {
	if size <= 0 {
		return nil, curated.Errorf(InvalidSize, size)
	}

	mapping, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, curated.Errorf(MappingFailed, "anonymous", err)
	}

	r := &Region{
		name:    "anonymous",
		mapping: mapping,
		size:    size,
		perm:    access.ReadWrite,
	}
	logger.Logf(Logging, "region", "mapped %s: %d bytes", r.name, r.size)

	return r, nil
}

// Size returns the size of the region in bytes.
func (r *Region) Size() int {
	return r.size
}

// Access returns the permission of the region. It is ReadOnly for regions
// opened with the ReadOnly option and ReadWrite otherwise.
func (r *Region) Access() access.Permission {
	return r.perm
}

// Addr returns the address of the first byte of the region. Returns zero if
// the region has been closed.
func (r *Region) Addr() uintptr {
	if r.mapping == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.mapping[r.skip]))
}

// Close unmaps the region. Any reference created by At() must not be used
// after the region has been closed.
func (r *Region) Close() error {
	if r.mapping == nil {
		return curated.Errorf(Closed)
	}
	if err := unix.Munmap(r.mapping); err != nil {
		return curated.Errorf(MappingFailed, r.name, err)
	}
	r.mapping = nil
	logger.Logf(Logging, "region", "unmapped %s", r.name)
	return nil
}

// At returns a reference to the T at offset bytes from the start of the
// region. The value must lie entirely inside the region and the offset must be
// suitably aligned for T. The permission of the reference is the permission of
// the region.
//
// Each call to At() creates a new and independent reference. It is the
// caller's responsibility not to create two references that overlap.
func At[T any](r *Region, offset uintptr) (*volatile.Ref[T], error) {
	if r.mapping == nil {
		return nil, curated.Errorf(Closed)
	}

	var zero T
	size := unsafe.Sizeof(zero)
	align := unsafe.Alignof(zero)

	end := offset + size
	if end < offset || end > uintptr(r.size) {
		return nil, curated.Errorf(OutOfBounds, size, offset, r.size)
	}

	addr := unsafe.Add(unsafe.Pointer(&r.mapping[r.skip]), offset)
	if uintptr(addr)%align != 0 {
		return nil, curated.Errorf(Misaligned, offset, reflect.TypeFor[T](), align)
	}

	return volatile.NewAt[T](addr, r.perm), nil
}
