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

// List of error patterns. Use curated.Is() to test for them.
const (
	PermissionDenied = "volatile: %s not permitted with %s access"
	IndexOutOfRange  = "volatile: index out of range [%d] with length %d"
	SliceOutOfRange  = "volatile: slice bounds out of range [%d:%d] with length %d"
	LengthMismatch   = "volatile: length mismatch (slice %d, buffer %d)"
	Borrowed         = "volatile: reference is borrowed (%s)"
	Released         = "volatile: reference has been released"
)

// FieldOutOfRange is the pattern of the panic raised by projection when a field
// does not fit inside its parent. This only happens when a projection is
// written by hand with the wrong offset or type.
const FieldOutOfRange = "volatile: field of %d bytes at offset %d exceeds parent of %d bytes"

// FieldsOutOfRange is the pattern of the panic raised by the projection of a
// sequence that does not fit inside its parent.
const FieldsOutOfRange = "volatile: %d fields of %d bytes at offset %d exceed parent of %d bytes"
