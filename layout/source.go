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
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jetsetilly/volatile/curated"
)

// TagKey is the struct tag key that declares the access permission of a field
// in Go source.
const TagKey = "volatile"

// ParseSource reads the struct types with the given names from a Go source
// file. If no names are given then every struct type with a
// structs.HostLayout field is read. The src argument is passed to
// go/parser.ParseFile() and can be nil, in which case the file is read from
// disk.
//
// The returned description is marked as Declared. It has not been validated.
func ParseSource(filename string, src any, names ...string) (*Description, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, curated.Errorf(SourceError, filename, err)
	}

	d := &Description{
		Package:  file.Name.Name,
		Declared: true,
	}

	hostLayout := hostLayoutMatcher(file)
	found := make(map[string]bool)

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			selected := slices.Contains(names, ts.Name.Name)
			if len(names) > 0 && !selected {
				continue
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				if selected {
					return nil, curated.Errorf(NotStruct, ts.Name.Name)
				}
				continue
			}

			l, err := parseStruct(ts, st, hostLayout)
			if err != nil {
				return nil, err
			}
			if len(names) == 0 && l.Repr != ReprHost {
				continue
			}

			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			l.Doc = strings.TrimSpace(doc.Text())

			d.Layouts = append(d.Layouts, l)
			found[ts.Name.Name] = true
		}
	}

	for _, n := range names {
		if !found[n] {
			return nil, curated.Errorf(TypeNotFound, n)
		}
	}

	return d, nil
}

// hostLayoutMatcher returns a function that recognises the structs.HostLayout
// type under whatever name the structs package has been imported as
func hostLayoutMatcher(file *ast.File) func(ast.Expr) bool {
	local := ""
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != "structs" {
			continue
		}
		local = "structs"
		if imp.Name != nil {
			local = imp.Name.Name
		}
	}

	return func(expr ast.Expr) bool {
		switch t := expr.(type) {
		case *ast.SelectorExpr:
			x, ok := t.X.(*ast.Ident)
			return ok && x.Name == local && t.Sel.Name == "HostLayout"
		case *ast.Ident:
			return local == "." && t.Name == "HostLayout"
		}
		return false
	}
}

// fieldTag returns the value of the volatile key in the tag of a field. A tag
// that has the key but that cannot be read, or that has an empty value, is an
// error.
func fieldTag(layout string, field *ast.Field) (string, error) {
	if field.Tag == nil {
		return "", nil
	}

	name := types.ExprString(field.Type)
	if len(field.Names) > 0 {
		name = field.Names[0].Name
	}

	s, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", curated.Errorf(InvalidTag, layout, name, field.Tag.Value)
	}

	v, ok := reflect.StructTag(s).Lookup(TagKey)
	if !ok {
		if strings.Contains(s, TagKey+":") {
			return "", curated.Errorf(InvalidTag, layout, name, s)
		}
		return "", nil
	}
	if v == "" {
		return "", curated.Errorf(InvalidTag, layout, name, s)
	}

	return v, nil
}

func parseStruct(ts *ast.TypeSpec, st *ast.StructType, hostLayout func(ast.Expr) bool) (Layout, error) {
	l := Layout{Name: ts.Name.Name}

	if ts.TypeParams != nil {
		for _, tp := range ts.TypeParams.List {
			for _, n := range tp.Names {
				l.TypeParams = append(l.TypeParams, n.Name)
			}
		}
	}

	for _, field := range st.Fields.List {
		if hostLayout(field.Type) && (len(field.Names) == 0 || (len(field.Names) == 1 && field.Names[0].Name == "_")) {
			l.Repr = ReprHost
			continue
		}

		tag, err := fieldTag(l.Name, field)
		if err != nil {
			return Layout{}, err
		}

		doc := field.Doc
		if doc == nil {
			doc = field.Comment
		}

		f := Field{
			Type:   types.ExprString(field.Type),
			Access: tag,
			Doc:    strings.TrimSpace(doc.Text()),
		}

		// an embedded field has no name. it is added to the layout so that
		// validation can reject it
		if len(field.Names) == 0 {
			l.Fields = append(l.Fields, f)
			continue
		}

		for _, n := range field.Names {
			f.Name = n.Name
			l.Fields = append(l.Fields, f)
		}
	}

	return l, nil
}
