// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gl is the raw boundary to the OpenGL driver. It names the entry
// points the rest of the module forwards to and knows how to resolve them
// from a proc-address lookup. Nothing in here validates arguments.
package gl

import "unsafe"

// Functions describes the subset of driver entry points used by this module.
//
// All methods operate on the context that is current for the calling thread.
// Implementations are not safe for concurrent use.
type Functions interface {
	// Buffers
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)

	// Textures
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	BindTexture(target, texture uint32)
	ActiveTexture(texture uint32)
	TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)

	// Vertex attributes
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, pointer unsafe.Pointer)
	VertexAttribDivisor(index, divisor uint32)

	// Shaders
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	// Uniforms
	Uniform1fv(location, count int32, value *float32)
	Uniform2fv(location, count int32, value *float32)
	Uniform3fv(location, count int32, value *float32)
	Uniform4fv(location, count int32, value *float32)
	Uniform1iv(location, count int32, value *int32)
	Uniform2iv(location, count int32, value *int32)
	Uniform3iv(location, count int32, value *int32)
	Uniform4iv(location, count int32, value *int32)
	UniformMatrix2fv(location, count int32, transpose bool, value *float32)
	UniformMatrix3fv(location, count int32, transpose bool, value *float32)
	UniformMatrix4fv(location, count int32, transpose bool, value *float32)

	// Drawing
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, indices unsafe.Pointer, primcount int32)

	// State
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Enable(capability uint32)
	Disable(capability uint32)
	BlendFunc(sfactor, dfactor uint32)

	// GetError pops one entry off the driver's sticky error queue.
	GetError() uint32

	// GetString returns a driver string such as Vendor or Version,
	// or the empty string when the name is unknown.
	GetString(name uint32) string
}

// PtrOffset turns a byte offset into the pointer argument the driver expects
// when the data lives in a bound buffer.
func PtrOffset(offset int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(offset))
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Add(unsafe.Pointer(p), 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}

func cstring(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
