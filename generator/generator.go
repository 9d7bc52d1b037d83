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

package generator

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
	"github.com/jetsetilly/volatile/layout"
	"github.com/jetsetilly/volatile/logger"
)

// ImportPath is the import path of the volatile package in generated code.
const ImportPath = "github.com/jetsetilly/volatile"

// FormatFailed is the pattern for the error returned when the generated code
// cannot be formatted. It should never happen for a valid description.
const FormatFailed = "generator: %v"

// header returns the first line of the generated file. the form of the line
// is recognised by go tooling
func header(source string) string {
	if source == "" {
		return "// Code generated by volatilegen; DO NOT EDIT.\n\n"
	}
	return fmt.Sprintf("// Code generated by volatilegen from %s; DO NOT EDIT.\n\n", source)
}

// Generate returns formatted Go source for the description. The source
// argument names the input of the description and is mentioned in the header
// of the output. It can be empty.
//
// The description is validated before anything is generated. No output is
// returned for an invalid description.
func Generate(d *layout.Description, source string) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s := &strings.Builder{}
	s.WriteString(header(source))
	fmt.Fprintf(s, "package %s\n\n", d.Package)
	imports(s, d)

	accessors := 0
	for _, l := range d.Layouts {
		if !d.Declared {
			declaration(s, l)
		}
		for _, c := range access.All() {
			n, err := wrapper(s, d, l, c)
			if err != nil {
				return nil, err
			}
			accessors += n
		}
	}

	out, err := format.Source([]byte(s.String()))
	if err != nil {
		return nil, curated.Errorf(FormatFailed, err)
	}

	logger.Logf(logger.Allow, "generator", "package %s: %d layouts, %d accessors", d.Package, len(d.Layouts), accessors)

	return out, nil
}

func imports(s *strings.Builder, d *layout.Description) {
	s.WriteString("import (\n")
	if !d.Declared {
		s.WriteString("\"structs\"\n")
	}

	// unsafe is only needed for Offsetof() in the accessor bodies
	for _, l := range d.Layouts {
		if hasAccessors(l) {
			s.WriteString("\"unsafe\"\n")
			break
		}
	}

	fmt.Fprintf(s, "\n%q\n)\n\n", ImportPath)
}

func hasAccessors(l layout.Layout) bool {
	for _, f := range l.Fields {
		if !f.IsPadding() {
			return true
		}
	}
	return false
}

// comment writes text as a comment, with a line of // for every line of text
func comment(s *strings.Builder, text string) {
	for _, l := range strings.Split(text, "\n") {
		if l == "" {
			s.WriteString("//\n")
		} else {
			fmt.Fprintf(s, "// %s\n", l)
		}
	}
}

// declaration writes the struct declaration of the layout
func declaration(s *strings.Builder, l layout.Layout) {
	if l.Doc != "" {
		comment(s, l.Doc)
	}
	fmt.Fprintf(s, "type %s struct {\n", l.Name)
	s.WriteString("_ structs.HostLayout\n")
	for _, f := range l.Fields {
		if f.Doc != "" {
			s.WriteString("\n")
			comment(s, f.Doc)
		}
		fmt.Fprintf(s, "%s %s", f.Name, f.Type)
		if f.Access != "" {
			fmt.Fprintf(s, " `%s:%q`", layout.TagKey, f.Access)
		}
		s.WriteString("\n")
	}
	s.WriteString("}\n\n")
}

// wrapper writes the wrapper type of the layout for the caller permission and
// all of its accessors. returns the number of accessors
func wrapper(s *strings.Builder, d *layout.Description, l layout.Layout, caller access.Permission) (int, error) {
	w := layout.WrapperName(l.Name, caller)

	fmt.Fprintf(s, "// %s is a %s pointer to a %s.\n", w, caller, l.Name)
	fmt.Fprintf(s, "type %s struct{ volatile.%s[%s] }\n\n", w, caller, l.Name)

	n := 0
	for _, f := range l.Fields {
		if f.IsPadding() {
			continue
		}

		shape, err := d.ShapeOf(l, f)
		if err != nil {
			return 0, err
		}

		declared, err := f.Permission()
		if err != nil {
			return 0, err
		}

		// the permission of the accessor result
		r := caller.Restrict(declared)

		offset := fmt.Sprintf("unsafe.Offsetof(%s{}.%s)", l.Name, f.Name)
		parent := fmt.Sprintf("p.%s", caller)

		var result, body string
		switch shape.Kind {
		case layout.Array:
			result = fmt.Sprintf("volatile.Slice[volatile.%s[%s]]", r, shape.Elem)
			body = fmt.Sprintf("volatile.Map%sSlice[%s](%s, %s, len(%s{}.%s))", r, shape.Elem, parent, offset, l.Name, f.Name)
		case layout.Nested:
			result = layout.WrapperName(shape.Elem, r)
			body = fmt.Sprintf("%s{volatile.Map%s[%s](%s, %s)}", result, r, shape.Elem, parent, offset)
		default:
			result = fmt.Sprintf("volatile.%s[%s]", r, shape.Elem)
			body = fmt.Sprintf("volatile.Map%s[%s](%s, %s)", r, shape.Elem, parent, offset)
		}

		fmt.Fprintf(s, "// %s returns a %s pointer to the %s field.\n", f.Accessor(), r, f.Name)
		if f.Doc != "" {
			s.WriteString("//\n")
			comment(s, f.Doc)
		}
		fmt.Fprintf(s, "func (p %s) %s() %s {\nreturn %s\n}\n\n", w, f.Accessor(), result, body)
		n++
	}

	return n, nil
}
