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

// Package logger is the central log of the volatile module. Entries are tagged
// strings kept in a ring of fixed size. Repeated entries are collapsed into a
// single entry with a repeat count.
//
// Packages that log do so through the package level functions. Callers that
// want their own log, for example a test, can create one with NewLogger().
//
// Every log request carries a Permission. Logging is only performed if the
// permission allows it. The Allow value always allows logging.
package logger
