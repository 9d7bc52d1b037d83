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

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is rendered in bold and the detail of any entry that reports a
// failure is rendered in red.
type Colorizer struct {
	out io.Writer

	tag  lipgloss.Style
	fail lipgloss.Style
}

// NewColorizer is the preferred method of initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:  out,
		tag:  lipgloss.NewStyle().Bold(true),
		fail: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	s := strings.Builder{}

	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			s.WriteString(l)
		} else {
			s.WriteString(c.tag.Render(tag))
			s.WriteString(": ")
			if strings.Contains(detail, "error") || strings.Contains(detail, "failed") {
				s.WriteString(c.fail.Render(detail))
			} else {
				s.WriteString(detail)
			}
		}
		s.WriteString("\n")
	}

	if _, err := io.WriteString(c.out, s.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}
