// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"errors"
	"reflect"
	"strings"
)

// Binding pairs a name used by the application with the symbol declared in the shader.
type Binding struct {
	Field  string
	Symbol string
}

// Bind is shorthand for Binding{Field: field, Symbol: symbol}.
func Bind(field, symbol string) Binding {
	return Binding{Field: field, Symbol: symbol}
}

// MissingAttributes lists, in declaration order, the attribute symbols a program does not expose.
type MissingAttributes []string

func (m MissingAttributes) Error() string {
	return "Missing Attributes: [" + strings.Join(m, ",") + "]"
}

// MissingUniforms lists, in declaration order, the uniform symbols a program does not expose.
type MissingUniforms []string

func (m MissingUniforms) Error() string {
	return "Missing Uniforms: [" + strings.Join(m, ",") + "]"
}

// resolve looks up every binding before judging any of them, so the
// returned missing list is complete.
func resolve(bindings []Binding, lookup func(string) int32, invalid func(int32) bool) ([]int32, []string) {
	locations := make([]int32, len(bindings))
	for idx, b := range bindings {
		locations[idx] = lookup(b.Symbol)
	}
	var missing []string
	for idx, loc := range locations {
		if invalid(loc) {
			missing = append(missing, bindings[idx].Symbol)
		}
	}
	return locations, missing
}

func fieldsOf(bindings []Binding) []string {
	fields := make([]string, len(bindings))
	for idx, b := range bindings {
		fields[idx] = b.Field
	}
	return fields
}

func indexOf(fields []string, field string) int {
	for idx, f := range fields {
		if f == field {
			return idx
		}
	}
	return -1
}

// AttributeTable is the set of attribute slots a program exposes for a
// fixed list of bindings. It is built once per linked program and never changes.
type AttributeTable struct {
	fields []string
	attrs  []Attribute
}

// ResolveAttributes resolves every binding against p. Either all symbols
// resolve, or the error is a MissingAttributes naming every one that didn't.
func ResolveAttributes(c *Context, p Program, bindings ...Binding) (*AttributeTable, error) {
	locations, missing := resolve(bindings, func(symbol string) int32 {
		return p.AttribLocation(c, symbol)
	}, func(loc int32) bool {
		return loc < 0
	})
	if len(missing) > 0 {
		return nil, MissingAttributes(missing)
	}

	attrs := make([]Attribute, len(locations))
	for idx, loc := range locations {
		attrs[idx] = Attribute(loc)
	}
	return &AttributeTable{
		fields: fieldsOf(bindings),
		attrs:  attrs,
	}, nil
}

// Attribute returns the slot bound to field. If a field was declared twice the first wins.
func (t *AttributeTable) Attribute(field string) (Attribute, bool) {
	idx := indexOf(t.fields, field)
	if idx < 0 {
		return 0, false
	}
	return t.attrs[idx], true
}

// Attributes returns the slots in declaration order.
func (t *AttributeTable) Attributes() []Attribute {
	return append([]Attribute(nil), t.attrs...)
}

// Fields returns the field names in declaration order.
func (t *AttributeTable) Fields() []string {
	return append([]string(nil), t.fields...)
}

// Len returns the number of bindings in the table.
func (t *AttributeTable) Len() int {
	return len(t.attrs)
}

// EnableAll enables every slot, in declaration order.
func (t *AttributeTable) EnableAll(c *Context) {
	for _, a := range t.attrs {
		a.Enable(c)
	}
}

// DisableAll disables every slot, in declaration order.
func (t *AttributeTable) DisableAll(c *Context) {
	for _, a := range t.attrs {
		a.Disable(c)
	}
}

// UniformTable is the set of uniform locations a program exposes for a
// fixed list of bindings.
type UniformTable struct {
	fields    []string
	locations []int32
}

// ResolveUniforms resolves every binding against p. Either all symbols
// resolve, or the error is a MissingUniforms naming every one that didn't.
func ResolveUniforms(c *Context, p Program, bindings ...Binding) (*UniformTable, error) {
	locations, missing := resolve(bindings, func(symbol string) int32 {
		return p.UniformLocation(c, symbol)
	}, func(loc int32) bool {
		return loc == -1
	})
	if len(missing) > 0 {
		return nil, MissingUniforms(missing)
	}
	return &UniformTable{
		fields:    fieldsOf(bindings),
		locations: locations,
	}, nil
}

// Location returns the location bound to field.
func (t *UniformTable) Location(field string) (int32, bool) {
	idx := indexOf(t.fields, field)
	if idx < 0 {
		return -1, false
	}
	return t.locations[idx], true
}

// Fields returns the field names in declaration order.
func (t *UniformTable) Fields() []string {
	return append([]string(nil), t.fields...)
}

// Len returns the number of bindings in the table.
func (t *UniformTable) Len() int {
	return len(t.locations)
}

// UniformOf returns the uniform bound to field as the kind the caller uploads through.
//
//	dim, _ := gfx.UniformOf[gfx.Uniform2f](table, "rectDim")
func UniformOf[U uniformKind](t *UniformTable, field string) (U, bool) {
	loc, ok := t.Location(field)
	return U(loc), ok
}

// ErrNotStructPointer is returned by LoadAttributes and LoadUniforms when
// dst is not a non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("gfx: destination must be a non-nil pointer to a struct")

var (
	attributeType = reflect.TypeOf(Attribute(0))
	uniformType   = reflect.TypeOf((*uniformLocation)(nil)).Elem()
)

// structBindings collects exported fields of the struct behind dst whose type
// satisfies want. The shader symbol is taken from the `gl` tag, or the field
// name when there is none; a tag of "-" skips the field.
func structBindings(dst interface{}, want func(reflect.Type) bool) (reflect.Value, []Binding, []int, error) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, nil, nil, ErrNotStructPointer
	}
	v = v.Elem()
	st := v.Type()

	var (
		bindings []Binding
		indices  []int
	)
	for idx := 0; idx < st.NumField(); idx++ {
		f := st.Field(idx)
		if f.PkgPath != "" || !want(f.Type) {
			continue
		}
		symbol := f.Tag.Get("gl")
		if symbol == "-" {
			continue
		}
		if symbol == "" {
			symbol = f.Name
		}
		bindings = append(bindings, Binding{Field: f.Name, Symbol: symbol})
		indices = append(indices, idx)
	}
	return v, bindings, indices, nil
}

// LoadAttributes fills the Attribute fields of the struct dst points to.
//
//	var attrs struct {
//		Pos   gfx.Attribute `gl:"aPos"`
//		Color gfx.Attribute `gl:"aColor"`
//	}
//	table, err := gfx.LoadAttributes(c, program, &attrs)
//
// Nothing is written to dst unless every symbol resolves.
func LoadAttributes(c *Context, p Program, dst interface{}) (*AttributeTable, error) {
	v, bindings, indices, err := structBindings(dst, func(t reflect.Type) bool {
		return t == attributeType
	})
	if err != nil {
		return nil, err
	}
	table, err := ResolveAttributes(c, p, bindings...)
	if err != nil {
		return nil, err
	}
	for idx, field := range indices {
		v.Field(field).SetUint(uint64(table.attrs[idx]))
	}
	return table, nil
}

// LoadUniforms fills the uniform fields (Uniform1f, UniformMatrix4f, ...) of
// the struct dst points to. Nothing is written to dst unless every symbol resolves.
func LoadUniforms(c *Context, p Program, dst interface{}) (*UniformTable, error) {
	v, bindings, indices, err := structBindings(dst, func(t reflect.Type) bool {
		return t.Kind() == reflect.Int32 && t.Implements(uniformType)
	})
	if err != nil {
		return nil, err
	}
	table, err := ResolveUniforms(c, p, bindings...)
	if err != nil {
		return nil, err
	}
	for idx, field := range indices {
		v.Field(field).SetInt(int64(table.locations[idx]))
	}
	return table, nil
}
