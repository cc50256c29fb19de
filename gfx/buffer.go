// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"runtime"
	"unsafe"

	"github.com/devblok/vglh/gl"
)

// BufferTarget is a binding point for buffers.
type BufferTarget uint32

// Buffer binding points.
const (
	ArrayBuffer        BufferTarget = gl.ArrayBuffer
	ElementArrayBuffer BufferTarget = gl.ElementArrayBuffer
)

// Usage hints how a buffer's data store is going to be used.
type Usage uint32

// Usage hints.
const (
	StreamDraw  Usage = gl.StreamDraw
	StaticDraw  Usage = gl.StaticDraw
	DynamicDraw Usage = gl.DynamicDraw
)

// Buffer is a driver buffer object. The zero Buffer is "no buffer".
//
// To create and delete buffers:
//
//	buffers := make([]gfx.Buffer, 5)
//	gfx.GenBuffers(c, buffers)
//	// Do things with the buffers
//	gfx.DeleteBuffers(c, buffers)
type Buffer uint32

// ID returns the driver name of the buffer.
func (b Buffer) ID() uint32 {
	return uint32(b)
}

// Valid reports whether b names a buffer rather than none.
func (b Buffer) Valid() bool {
	return b != 0
}

// Bind makes b the buffer bound to target.
func (b Buffer) Bind(c *Context, target BufferTarget) {
	c.gl.BindBuffer(uint32(target), uint32(b))
}

// BindThen binds b to target and hands the binding to then.
func (b Buffer) BindThen(c *Context, target BufferTarget, then func(BoundBuffer)) {
	b.Bind(c, target)
	then(BoundBuffer{c: c, target: target})
}

// BindTo binds b as the array buffer and points attr at it.
// Offset is in bytes from the start of the buffer.
func (b Buffer) BindTo(c *Context, attr Attribute, format AttributeFormat, stride int32, offset int) {
	b.BindThen(c, ArrayBuffer, func(bb BoundBuffer) {
		bb.BindTo(attr, format, stride, offset)
	})
}

// BoundBuffer is the buffer currently bound to a target.
// It is only meaningful until the target is rebound.
type BoundBuffer struct {
	c      *Context
	target BufferTarget
}

// Target returns the binding point.
func (bb BoundBuffer) Target() BufferTarget {
	return bb.target
}

// BindTo points attr at the bound buffer. Only meaningful for ArrayBuffer.
func (bb BoundBuffer) BindTo(attr Attribute, format AttributeFormat, stride int32, offset int) {
	attr.Pointer(bb.c, format, stride, offset)
}

// Data replaces the data store of the buffer bound to bb with a byte copy of data.
func Data[T any](bb BoundBuffer, data []T, usage Usage) {
	var zero T
	size := int(unsafe.Sizeof(zero)) * len(data)
	bb.c.gl.BufferData(uint32(bb.target), size, sliceData(data), uint32(usage))
	runtime.KeepAlive(data)
}

// SubData overwrites part of the bound buffer, starting offset bytes in.
func SubData[T any](bb BoundBuffer, offset int, data []T) {
	var zero T
	size := int(unsafe.Sizeof(zero)) * len(data)
	bb.c.gl.BufferSubData(uint32(bb.target), offset, size, sliceData(data))
	runtime.KeepAlive(data)
}

// BufferData binds b to target and uploads data into it, sized
// sizeof(T) * len(data).
func BufferData[T any](c *Context, b Buffer, target BufferTarget, data []T, usage Usage) {
	b.BindThen(c, target, func(bb BoundBuffer) {
		Data(bb, data, usage)
	})
}

// BufferSubData binds b to target and overwrites part of it.
func BufferSubData[T any](c *Context, b Buffer, target BufferTarget, offset int, data []T) {
	b.BindThen(c, target, func(bb BoundBuffer) {
		SubData(bb, offset, data)
	})
}

// GenBuffers fills buffers with freshly generated buffer names.
func GenBuffers(c *Context, buffers []Buffer) {
	if len(buffers) == 0 {
		return
	}
	c.gl.GenBuffers(int32(len(buffers)), (*uint32)(unsafe.Pointer(&buffers[0])))
}

// DeleteBuffers deletes the buffers and resets every entry to the zero Buffer.
func DeleteBuffers(c *Context, buffers []Buffer) {
	if len(buffers) == 0 {
		return
	}
	c.gl.DeleteBuffers(int32(len(buffers)), (*uint32)(unsafe.Pointer(&buffers[0])))
	clear(buffers)
}

func sliceData[T any](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(data))
}
