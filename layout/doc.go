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

// Package layout describes the layout of a block of memory as an ordered list
// of named fields, each with a type and a declared access permission. A
// Description is the input to the generator package.
//
// Descriptions are read from Go source with ParseSource(), or from a
// description file with Decode() or ReadFile(). Description files can be JSON
// (with comments and trailing commas), YAML or CBOR:
//
//	{
//		"package": "uart",
//		"layouts": [{
//			"name": "Registers",
//			"repr": "host",
//			"fields": [
//				{ "name": "status", "type": "uint32", "access": "ReadOnly" },
//				{ "name": "data", "type": "[16]uint8" },
//			],
//		}],
//	}
//
// In Go source the declared access of a field is given by a struct tag and the
// fixed representation of the struct by a structs.HostLayout field:
//
//	type Registers struct {
//		_      structs.HostLayout
//		status uint32 `volatile:"ReadOnly"`
//		data   [16]uint8
//	}
//
// A field with no access declared is ReadWrite. Fields named with the blank
// identifier are padding and are not given an accessor.
//
// A Description must be validated before it is used. Validate() checks every
// layout and returns the first problem found.
package layout
