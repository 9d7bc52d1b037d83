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

// Package generator creates Go source for the accessors of the layouts in a
// layout.Description.
//
// For each layout L four wrapper types are created, one for each access
// permission of a pointer to L:
//
//	type LReadWrite struct{ volatile.ReadWrite[L] }
//	type LReadOnly struct{ volatile.ReadOnly[L] }
//	type LWriteOnly struct{ volatile.WriteOnly[L] }
//	type LNoAccess struct{ volatile.NoAccess[L] }
//
// Each wrapper has one method per field. The method returns a pointer to the
// field whose permission is the permission of the wrapper restricted by the
// declared permission of the field. The body of every method is a single call
// to one of the projection functions of the volatile package, so the
// permission of the result is checked by the compiler.
//
// If the description was read from a description file then the struct
// declaration of each layout is also created. Layouts read from Go source are
// already declared.
//
// The output for a given description is always the same.
package generator
