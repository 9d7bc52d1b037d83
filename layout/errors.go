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

package layout

// List of error patterns. Use curated.Is() to test for them.
const (
	UnnamedField           = "layout: %s: field %d has no name"
	GenericLayout          = "layout: %s: type parameters are not supported"
	UnstableRepresentation = "layout: %s: representation must be %q"
	UnknownPermission      = "layout: %s.%s: %v"
	InvalidType            = "layout: %s.%s: invalid type (%s)"
	InvalidTag             = "layout: %s.%s: malformed struct tag (%s)"
	InvalidName            = "layout: invalid name (%q)"
	InvalidPackage         = "layout: invalid package name (%q)"
	DuplicateLayout        = "layout: duplicate layout (%s)"
	DuplicateAccessor      = "layout: %s: more than one field has the accessor %s"
	ReservedAccessor       = "layout: %s: accessor %s is a method of the volatile pointer types"
	NameCollision          = "layout: %s: generated type %s collides with layout %s"
	NoLayouts              = "layout: no layouts in description"
	TypeNotFound           = "layout: type %s not found"
	NotStruct              = "layout: %s is not a struct type"
	SourceError            = "layout: %s: %v"
	DecodeError            = "layout: %s: %v"
	UnknownFormat          = "layout: unknown description format (%s)"
	TableUnavailable       = "layout: cannot compute offsets: %v"
)
