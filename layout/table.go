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

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
)

// Entry is a single field of a layout with its position in memory.
type Entry struct {
	Layout   string
	Field    string
	Accessor string
	Type     string
	Offset   int64
	Size     int64
	Declared access.Permission
}

// Permission returns the permission of the pointer returned by the accessor
// when it is called through a pointer with the caller permission.
func (e Entry) Permission(caller access.Permission) access.Permission {
	return caller.Restrict(e.Declared)
}

// Table is the list of accessors of every layout in a description.
type Table struct {
	Arch    string
	Entries []Entry

	// size of each layout in bytes, in the same order as the description
	Sizes []int64
}

// NewTable computes the offset and size of every field in the description for
// the architecture, which is one of the GOARCH values supported by the gc
// compiler. The description must be valid.
//
// Field types are limited to the predeclared types, arrays and the other
// layouts of the description.
func NewTable(d *Description, arch string) (*Table, error) {
	sizes := types.SizesFor("gc", arch)
	if sizes == nil {
		return nil, curated.Errorf(TableUnavailable, fmt.Sprintf("unsupported architecture (%s)", arch))
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "layouts.go", declarations(d), parser.SkipObjectResolution)
	if err != nil {
		return nil, curated.Errorf(TableUnavailable, err)
	}

	conf := types.Config{
		Importer: structsImporter{},
		Sizes:    sizes,
	}
	pkg, err := conf.Check(d.Package, fset, []*ast.File{file}, nil)
	if err != nil {
		return nil, curated.Errorf(TableUnavailable, err)
	}

	t := &Table{Arch: arch}

	for _, l := range d.Layouts {
		st := pkg.Scope().Lookup(l.Name).Type().Underlying().(*types.Struct)

		vars := make([]*types.Var, st.NumFields())
		for i := range vars {
			vars[i] = st.Field(i)
		}
		offsets := sizes.Offsetsof(vars)

		// the first field of the declaration is the HostLayout marker
		for i, f := range l.Fields {
			if f.IsPadding() {
				continue
			}
			perm, _ := f.Permission()
			t.Entries = append(t.Entries, Entry{
				Layout:   l.Name,
				Field:    f.Name,
				Accessor: f.Accessor(),
				Type:     f.Type,
				Offset:   offsets[i+1],
				Size:     sizes.Sizeof(vars[i+1].Type()),
				Declared: perm,
			})
		}

		t.Sizes = append(t.Sizes, sizes.Sizeof(st))
	}

	return t, nil
}

// declarations returns Go source declaring every layout of the description
func declarations(d *Description) string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "package %s\n\nimport \"structs\"\n\n", d.Package)
	for _, l := range d.Layouts {
		fmt.Fprintf(&s, "type %s struct {\n\t_ structs.HostLayout\n", l.Name)
		for _, f := range l.Fields {
			fmt.Fprintf(&s, "\t%s %s\n", f.Name, f.Type)
		}
		s.WriteString("}\n\n")
	}
	return s.String()
}

// structsImporter provides the structs package and nothing else
type structsImporter struct{}

func (structsImporter) Import(path string) (*types.Package, error) {
	if path != "structs" {
		return nil, fmt.Errorf("package %s is not available", path)
	}

	pkg := types.NewPackage("structs", "structs")
	obj := types.NewTypeName(token.NoPos, pkg, "HostLayout", nil)
	types.NewNamed(obj, types.NewStruct(nil, nil), nil)
	pkg.Scope().Insert(obj)
	pkg.MarkComplete()

	return pkg, nil
}

// Lookup returns the entry for a field or false if there is no such field.
func (t *Table) Lookup(layout, field string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Layout == layout && e.Field == field {
			return e, true
		}
	}
	return Entry{}, false
}

// Render the table as text. There is one row for each field and one column
// for the result of each caller permission.
func (t *Table) Render() string {
	headers := []string{"Layout", "Field", "Type", "Offset", "Size", "Declared"}
	for _, c := range access.All() {
		headers = append(headers, "via "+c.String())
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for _, e := range t.Entries {
		row := []string{
			e.Layout,
			e.Field,
			e.Type,
			fmt.Sprintf("%#04x", e.Offset),
			fmt.Sprintf("%d", e.Size),
			e.Declared.String(),
		}
		for _, c := range access.All() {
			row = append(row, e.Permission(c).String())
		}
		tbl.Row(row...)
	}

	return fmt.Sprintf("%s\n(sizes for %s)\n", tbl.String(), t.Arch)
}
