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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jetsetilly/volatile/access"
	"github.com/jetsetilly/volatile/curated"
)

// ReprHost is the only supported representation. It is the representation
// of a Go struct with a structs.HostLayout field: fields are laid out in
// declaration order with the alignment rules of the host platform.
const ReprHost = "host"

// Description is a list of layouts that are generated into the same Go
// package.
type Description struct {
	Package string   `json:"package" yaml:"package" cbor:"package"`
	Layouts []Layout `json:"layouts" yaml:"layouts" cbor:"layouts"`

	// the layouts were read from Go source and are already declared. the
	// generator emits only the accessors
	Declared bool `json:"-" yaml:"-" cbor:"-"`
}

// Layout is a struct with a fixed representation.
type Layout struct {
	Name       string   `json:"name" yaml:"name" cbor:"name"`
	Repr       string   `json:"repr" yaml:"repr" cbor:"repr"`
	TypeParams []string `json:"typeParams,omitempty" yaml:"typeParams,omitempty" cbor:"typeParams,omitempty"`
	Doc        string   `json:"doc,omitempty" yaml:"doc,omitempty" cbor:"doc,omitempty"`
	Fields     []Field  `json:"fields" yaml:"fields" cbor:"fields"`
}

// Field is a single named field of a Layout.
type Field struct {
	Name string `json:"name" yaml:"name" cbor:"name"`

	// a Go type expression
	Type string `json:"type" yaml:"type" cbor:"type"`

	// the name of an access.Permission. the empty string is ReadWrite
	Access string `json:"access,omitempty" yaml:"access,omitempty" cbor:"access,omitempty"`

	Doc string `json:"doc,omitempty" yaml:"doc,omitempty" cbor:"doc,omitempty"`
}

// IsPadding returns true if the field is named with the blank identifier.
func (f Field) IsPadding() bool {
	return f.Name == "_"
}

// Accessor returns the name of the accessor method for the field. It is the
// field name with the first letter in upper case.
func (f Field) Accessor() string {
	r, n := utf8.DecodeRuneInString(f.Name)
	if r == utf8.RuneError {
		return f.Name
	}
	return string(unicode.ToUpper(r)) + f.Name[n:]
}

// Permission returns the declared access of the field.
func (f Field) Permission() (access.Permission, error) {
	if f.Access == "" {
		return access.ReadWrite, nil
	}
	return access.Parse(f.Access)
}

// Kind is the shape of a field type.
type Kind int

// List of valid Kind values.
const (
	// a single value of any type that isn't one of the other kinds
	Value Kind = iota

	// a fixed length array
	Array

	// another layout of the same description
	Nested
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Array:
		return "array"
	case Nested:
		return "nested"
	}
	return "unknown"
}

// Shape describes the type of a field.
type Shape struct {
	Kind Kind

	// the type of the value. for arrays this is the element type
	Elem string
}

// ShapeOf returns the shape of the field type. The field must belong to one
// of the layouts of the description.
func (d *Description) ShapeOf(l Layout, f Field) (Shape, error) {
	expr, err := parser.ParseExpr(f.Type)
	if err != nil {
		return Shape{}, curated.Errorf(InvalidType, l.Name, f.Name, f.Type)
	}

	switch t := expr.(type) {
	case *ast.ArrayType:
		if t.Len == nil {
			return Shape{}, curated.Errorf(InvalidType, l.Name, f.Name, f.Type)
		}
		if _, ok := t.Len.(*ast.Ellipsis); ok {
			return Shape{}, curated.Errorf(InvalidType, l.Name, f.Name, f.Type)
		}
		if !fixedSize(t.Elt) {
			return Shape{}, curated.Errorf(InvalidType, l.Name, f.Name, f.Type)
		}
		return Shape{Kind: Array, Elem: source(f.Type, t.Elt)}, nil

	case *ast.Ident:
		if d.Lookup(t.Name) != nil {
			return Shape{Kind: Nested, Elem: t.Name}, nil
		}
	}

	if !fixedSize(expr) {
		return Shape{}, curated.Errorf(InvalidType, l.Name, f.Name, f.Type)
	}

	return Shape{Kind: Value, Elem: strings.TrimSpace(f.Type)}, nil
}

// source returns the text of the node in the type string
func source(s string, n ast.Node) string {
	// positions returned by ParseExpr() are offsets into s plus one
	return strings.TrimSpace(s[n.Pos()-1 : n.End()-1])
}

// fixedSize returns false for types that can never be part of a memory
// mapped layout
func fixedSize(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.ArrayType:
		return t.Len != nil && fixedSize(t.Elt)
	case *ast.ParenExpr:
		return fixedSize(t.X)
	case *ast.StructType:
		for _, f := range t.Fields.List {
			if !fixedSize(f.Type) {
				return false
			}
		}
		return true
	case *ast.Ident:
		return !referenceTypes[t.Name]
	case *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		return true
	}
	return false
}

// predeclared types whose values refer to memory outside of the value
var referenceTypes = map[string]bool{
	"string":     true,
	"any":        true,
	"error":      true,
	"comparable": true,
}

// Lookup returns the layout with the name or nil if there is no such layout.
func (d *Description) Lookup(name string) *Layout {
	for i := range d.Layouts {
		if d.Layouts[i].Name == name {
			return &d.Layouts[i]
		}
	}
	return nil
}

// the names of the methods and embedded fields of the generated wrapper types
var reserved = map[string]bool{
	"ReadWrite":         true,
	"ReadOnly":          true,
	"WriteOnly":         true,
	"NoAccess":          true,
	"Read":              true,
	"Write":             true,
	"Update":            true,
	"Addr":              true,
	"Access":            true,
	"Dynamic":           true,
	"String":            true,
	"RestrictReadWrite": true,
	"RestrictReadOnly":  true,
	"RestrictWriteOnly": true,
	"RestrictNoAccess":  true,
}

// WrapperName returns the name of the generated type for a pointer to the
// layout with the caller permission.
func WrapperName(layout string, caller access.Permission) string {
	return layout + caller.String()
}

// Validate checks that every layout in the description can be generated. The
// first problem found is returned.
func (d *Description) Validate() error {
	if !token.IsIdentifier(d.Package) {
		return curated.Errorf(InvalidPackage, d.Package)
	}

	if len(d.Layouts) == 0 {
		return curated.Errorf(NoLayouts)
	}

	names := make(map[string]bool)
	for _, l := range d.Layouts {
		if !token.IsIdentifier(l.Name) || l.Name == "_" {
			return curated.Errorf(InvalidName, l.Name)
		}
		if names[l.Name] {
			return curated.Errorf(DuplicateLayout, l.Name)
		}
		names[l.Name] = true
	}

	for _, l := range d.Layouts {
		for _, c := range access.All() {
			w := WrapperName(l.Name, c)
			if names[w] {
				return curated.Errorf(NameCollision, l.Name, w, w)
			}
		}
		if err := d.validateLayout(l); err != nil {
			return err
		}
	}

	return nil
}

func (d *Description) validateLayout(l Layout) error {
	if len(l.TypeParams) > 0 {
		return curated.Errorf(GenericLayout, l.Name)
	}

	if l.Repr != ReprHost {
		return curated.Errorf(UnstableRepresentation, l.Name, ReprHost)
	}

	accessors := make(map[string]bool)
	for i, f := range l.Fields {
		if f.Name == "" {
			return curated.Errorf(UnnamedField, l.Name, i)
		}
		if !token.IsIdentifier(f.Name) {
			return curated.Errorf(InvalidName, f.Name)
		}

		if _, err := f.Permission(); err != nil {
			return curated.Errorf(UnknownPermission, l.Name, f.Name, err)
		}

		shape, err := d.ShapeOf(l, f)
		if err != nil {
			return err
		}
		if shape.Kind == Nested && shape.Elem == l.Name {
			return curated.Errorf(InvalidType, l.Name, f.Name, f.Type)
		}

		if f.IsPadding() {
			continue
		}

		a := f.Accessor()
		if reserved[a] {
			return curated.Errorf(ReservedAccessor, l.Name, a)
		}
		if accessors[a] {
			return curated.Errorf(DuplicateAccessor, l.Name, a)
		}
		accessors[a] = true
	}

	return nil
}
