// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"
	"unsafe"

	"github.com/devblok/vglh/gl"
)

// Attribute is a vertex attribute slot of a linked program.
// Get one from an AttributeTable rather than making it up.
type Attribute uint32

// AttributeSize is the number of components per vertex.
type AttributeSize int32

// Component counts.
const (
	One AttributeSize = iota + 1
	Two
	Three
	Four
)

// AttributeType is the scalar type of each component in the buffer.
type AttributeType uint32

// Scalar types an attribute can be fed from.
const (
	Byte          AttributeType = gl.Byte
	UnsignedByte  AttributeType = gl.UnsignedByte
	Short         AttributeType = gl.Short
	UnsignedShort AttributeType = gl.UnsignedShort
	Fixed         AttributeType = gl.Fixed
	Float         AttributeType = gl.Float
)

func (t AttributeType) String() string {
	switch t {
	case Byte:
		return "byte"
	case UnsignedByte:
		return "unsigned byte"
	case Short:
		return "short"
	case UnsignedShort:
		return "unsigned short"
	case Fixed:
		return "fixed"
	case Float:
		return "float"
	}
	return fmt.Sprintf("AttributeType(0x%04X)", uint32(t))
}

// AttributeFormat describes how the bytes of a buffer map to an attribute.
// Size and Type have to agree with the input declared in the shader; the
// driver does not check and will misread the data if they don't.
type AttributeFormat struct {
	Size       AttributeSize
	Type       AttributeType
	Normalized bool
}

func (f AttributeFormat) String() string {
	norm := ""
	if f.Normalized {
		norm = " normalized"
	}
	return fmt.Sprintf("%d x %s%s", f.Size, f.Type, norm)
}

// Enable turns the attribute slot on.
func (a Attribute) Enable(c *Context) {
	c.gl.EnableVertexAttribArray(uint32(a))
}

// Disable turns the attribute slot off.
func (a Attribute) Disable(c *Context) {
	c.gl.DisableVertexAttribArray(uint32(a))
}

// Divisor sets how many instances pass before the attribute advances;
// 0 advances per vertex. vitaGL only recognises 0 and 1.
func (a Attribute) Divisor(c *Context, divisor uint32) {
	c.gl.VertexAttribDivisor(uint32(a), divisor)
}

// Pointer points a at the buffer bound to ArrayBuffer, offset bytes in.
// Size, Type and Normalized are handed to the driver unaltered.
func (a Attribute) Pointer(c *Context, format AttributeFormat, stride int32, offset int) {
	a.pointer(c, format, stride, gl.PtrOffset(offset))
}

func (a Attribute) pointer(c *Context, format AttributeFormat, stride int32, pointer unsafe.Pointer) {
	c.gl.VertexAttribPointer(
		uint32(a),
		int32(format.Size),
		uint32(format.Type),
		format.Normalized,
		stride,
		pointer,
	)
}
