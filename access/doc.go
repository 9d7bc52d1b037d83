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

// Package access defines the four access permissions that can be attached to a
// volatile pointer and the rule for combining them.
//
// The permissions form a small lattice. Restricting one permission to another
// is the intersection of the capabilities they grant:
//
//	Self        To          Self ∩ To
//	----        --          ---------
//	T           T           T
//	ReadWrite   T           T
//	NoAccess    T           NoAccess
//	ReadOnly    WriteOnly   NoAccess
//
// Restriction is symmetric so the table above covers all sixteen combinations.
//
// The set of permissions is closed. Code outside this package cannot create a
// fifth meaningful Permission value: Parse() accepts only the four names and
// Restrict() can only ever return one of the four values. Everything that is
// built on a permission table (the pointer types in the volatile package and
// the code emitted by the generator package) relies on this.
package access
