// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/devblok/vglh/gl"
)

// Mode is the primitive topology vertices are assembled into.
type Mode uint32

// Draw modes. Quads is a vitaGL extension to the ES set.
const (
	Points        Mode = gl.Points
	Lines         Mode = gl.Lines
	LineLoop      Mode = gl.LineLoop
	LineStrip     Mode = gl.LineStrip
	Triangles     Mode = gl.Triangles
	TriangleStrip Mode = gl.TriangleStrip
	TriangleFan   Mode = gl.TriangleFan
	Quads         Mode = gl.Quads
)

func (m Mode) String() string {
	switch m {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineLoop:
		return "line loop"
	case LineStrip:
		return "line strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	case TriangleFan:
		return "triangle fan"
	case Quads:
		return "quads"
	}
	return fmt.Sprintf("Mode(0x%04X)", uint32(m))
}

// Elements is an index source for DrawElements. The set of implementations
// is closed: inline index slices (ElementsU16, ElementsU32) and index buffers
// already filled on the driver side (BufferElementsU16, BufferElementsU32).
type Elements interface {
	// Len is the number of indices drawn.
	Len() int

	// bind prepares the element binding and returns the driver index type
	// and the indices argument, a real pointer or a buffer offset.
	bind(c *Context) (xtype uint32, indices unsafe.Pointer)
	keepAlive()
}

// ElementsU16 are 16-bit indices held in client memory.
type ElementsU16 []uint16

// Len implements Elements.
func (e ElementsU16) Len() int { return len(e) }

func (e ElementsU16) bind(c *Context) (uint32, unsafe.Pointer) {
	Buffer(0).Bind(c, ElementArrayBuffer)
	return gl.UnsignedShort, sliceData(e)
}

func (e ElementsU16) keepAlive() { runtime.KeepAlive(e) }

// ElementsU32 are 32-bit indices held in client memory.
type ElementsU32 []uint32

// Len implements Elements.
func (e ElementsU32) Len() int { return len(e) }

func (e ElementsU32) bind(c *Context) (uint32, unsafe.Pointer) {
	Buffer(0).Bind(c, ElementArrayBuffer)
	return gl.UnsignedInt, sliceData(e)
}

func (e ElementsU32) keepAlive() { runtime.KeepAlive(e) }

// BufferElementsU16 draws Count 16-bit indices from the start of Buffer.
type BufferElementsU16 struct {
	Buffer Buffer
	Count  int
}

// Len implements Elements.
func (e BufferElementsU16) Len() int { return e.Count }

func (e BufferElementsU16) bind(c *Context) (uint32, unsafe.Pointer) {
	e.Buffer.Bind(c, ElementArrayBuffer)
	return gl.UnsignedShort, gl.PtrOffset(0)
}

func (e BufferElementsU16) keepAlive() {}

// BufferElementsU32 draws Count 32-bit indices from the start of Buffer.
type BufferElementsU32 struct {
	Buffer Buffer
	Count  int
}

// Len implements Elements.
func (e BufferElementsU32) Len() int { return e.Count }

func (e BufferElementsU32) bind(c *Context) (uint32, unsafe.Pointer) {
	e.Buffer.Bind(c, ElementArrayBuffer)
	return gl.UnsignedInt, gl.PtrOffset(0)
}

func (e BufferElementsU32) keepAlive() {}

// DrawArrays draws count vertices starting at first from the enabled attributes.
func (c *Context) DrawArrays(mode Mode, first, count int32) {
	c.gl.DrawArrays(uint32(mode), first, count)
}

// DrawElements draws the primitives e indexes. Inline indices leave the
// element binding at zero afterwards; buffer-backed ones leave their buffer bound.
func (c *Context) DrawElements(mode Mode, e Elements) {
	xtype, indices := e.bind(c)
	c.gl.DrawElements(uint32(mode), int32(e.Len()), xtype, indices)
	e.keepAlive()
}

// DrawElementsInstanced is DrawElements repeated instances times. Attributes
// with a divisor of 1 advance once per instance.
func (c *Context) DrawElementsInstanced(mode Mode, e Elements, instances int32) {
	xtype, indices := e.bind(c)
	c.gl.DrawElementsInstanced(uint32(mode), int32(e.Len()), xtype, indices, instances)
	e.keepAlive()
}
