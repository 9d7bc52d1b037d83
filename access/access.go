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

package access

import (
	"fmt"

	"github.com/jetsetilly/volatile/curated"
)

// Permission is one of ReadWrite, ReadOnly, WriteOnly or NoAccess.
//
// Internally a permission is a pair of capability bits. The zero value is
// NoAccess, which is the bottom of the lattice.
type Permission uint8

const (
	canRead  Permission = 0x01
	canWrite Permission = 0x02
	mask     Permission = canRead | canWrite
)

// List of valid Permission values.
const (
	NoAccess  Permission = 0
	ReadOnly  Permission = canRead
	WriteOnly Permission = canWrite
	ReadWrite Permission = canRead | canWrite
)

// UnknownPermission is the pattern for errors returned by Parse().
const UnknownPermission = "access: unrecognised permission (%s)"

// All returns the four permissions in lattice order, widest first.
func All() []Permission {
	return []Permission{ReadWrite, ReadOnly, WriteOnly, NoAccess}
}

// Valid returns false if the Permission is not one of the four values.
func (p Permission) Valid() bool {
	return p&^mask == 0
}

// Restrict returns the intersection of the two permissions. The result never
// grants a capability that is absent from either input.
func (p Permission) Restrict(to Permission) Permission {
	return p & to & mask
}

// Readable is true for ReadWrite and ReadOnly.
func (p Permission) Readable() bool {
	return p.Valid() && p&canRead == canRead
}

// Writable is true for ReadWrite and WriteOnly.
func (p Permission) Writable() bool {
	return p.Valid() && p&canWrite == canWrite
}

// Copyable is true for permissions that are unchanged by a restriction to
// ReadOnly. Only those permissions can be duplicated without creating a second
// live writer.
func (p Permission) Copyable() bool {
	return p.Valid() && p.Restrict(ReadOnly) == p
}

// Includes returns true if p grants every capability that o grants.
func (p Permission) Includes(o Permission) bool {
	return p.Restrict(o) == o&mask
}

func (p Permission) String() string {
	switch p {
	case ReadWrite:
		return "ReadWrite"
	case ReadOnly:
		return "ReadOnly"
	case WriteOnly:
		return "WriteOnly"
	case NoAccess:
		return "NoAccess"
	}
	return fmt.Sprintf("Permission(%d)", uint8(p))
}

// Parse converts the name of a permission to a Permission. The match is exact:
// the names are the identifiers used in layout annotations.
func Parse(name string) (Permission, error) {
	for _, p := range All() {
		if p.String() == name {
			return p, nil
		}
	}
	return NoAccess, curated.Errorf(UnknownPermission, name)
}
