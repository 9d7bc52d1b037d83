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

package logger

import "sync/atomic"

// Permission is asked before an entry is added to a log. An entry is dropped
// if AllowLogging() returns false.
type Permission interface {
	AllowLogging() bool
}

type allow bool

func (a allow) AllowLogging() bool {
	return bool(a)
}

// Allow and Deny are the fixed permissions.
var (
	Allow Permission = allow(true)
	Deny  Permission = allow(false)
)

// Switch is a Permission that can be changed while logging is taking place. The
// zero value denies logging.
type Switch struct {
	on atomic.Bool
}

// NewSwitch returns a Switch in the given state.
func NewSwitch(on bool) *Switch {
	s := &Switch{}
	s.on.Store(on)
	return s
}

// Set turns logging on or off.
func (s *Switch) Set(on bool) {
	s.on.Store(on)
}

func (s *Switch) AllowLogging() bool {
	return s.on.Load()
}
