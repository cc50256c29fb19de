// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform kinds. Each is a location in the current program; the kind fixes
// the shape the driver is told to expect. Obtain them from a UniformTable,
// uploading through a location that did not resolve is undefined.
//
// Set uploads one value at the location. SetMulti uploads an array starting
// at the location. SetSubrange uploads starting offset elements further in,
// for partial updates of uniform arrays. Nothing is bounds checked, overruns
// surface on the error queue.
type (
	Uniform1f       int32
	Uniform2f       int32
	Uniform3f       int32
	Uniform4f       int32
	Uniform1i       int32
	Uniform2i       int32
	Uniform3i       int32
	Uniform4i       int32
	UniformMatrix2f int32
	UniformMatrix3f int32
	UniformMatrix4f int32
)

type uniformLocation interface {
	location() int32
}

type uniformKind interface {
	~int32
	uniformLocation
}

func floatv[T any](vs []T) *float32 {
	return (*float32)(sliceData(vs))
}

func intv[T any](vs []T) *int32 {
	return (*int32)(sliceData(vs))
}

func (u Uniform1f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform1f) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform1f) Set(c *Context, v float32) {
	c.gl.Uniform1fv(int32(u), 1, &v)
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform1f) SetMulti(c *Context, vs []float32) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform1f) SetSubrange(c *Context, offset int32, vs []float32) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform1fv(int32(u)+offset, int32(len(vs)), floatv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform2f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform2f) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform2f) Set(c *Context, v mgl32.Vec2) {
	c.gl.Uniform2fv(int32(u), 1, &v[0])
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform2f) SetMulti(c *Context, vs []mgl32.Vec2) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform2f) SetSubrange(c *Context, offset int32, vs []mgl32.Vec2) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform2fv(int32(u)+offset, int32(len(vs)), floatv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform3f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform3f) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform3f) Set(c *Context, v mgl32.Vec3) {
	c.gl.Uniform3fv(int32(u), 1, &v[0])
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform3f) SetMulti(c *Context, vs []mgl32.Vec3) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform3f) SetSubrange(c *Context, offset int32, vs []mgl32.Vec3) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform3fv(int32(u)+offset, int32(len(vs)), floatv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform4f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform4f) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform4f) Set(c *Context, v mgl32.Vec4) {
	c.gl.Uniform4fv(int32(u), 1, &v[0])
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform4f) SetMulti(c *Context, vs []mgl32.Vec4) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform4f) SetSubrange(c *Context, offset int32, vs []mgl32.Vec4) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform4fv(int32(u)+offset, int32(len(vs)), floatv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform1i) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform1i) Valid() bool { return u != -1 }

// Set uploads v. Sampler uniforms take the texture unit index this way.
// Set uploads v to the location.
func (u Uniform1i) Set(c *Context, v int32) {
	c.gl.Uniform1iv(int32(u), 1, &v)
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform1i) SetMulti(c *Context, vs []int32) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform1i) SetSubrange(c *Context, offset int32, vs []int32) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform1iv(int32(u)+offset, int32(len(vs)), intv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform2i) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform2i) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform2i) Set(c *Context, v [2]int32) {
	c.gl.Uniform2iv(int32(u), 1, &v[0])
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform2i) SetMulti(c *Context, vs [][2]int32) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform2i) SetSubrange(c *Context, offset int32, vs [][2]int32) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform2iv(int32(u)+offset, int32(len(vs)), intv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform3i) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform3i) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform3i) Set(c *Context, v [3]int32) {
	c.gl.Uniform3iv(int32(u), 1, &v[0])
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform3i) SetMulti(c *Context, vs [][3]int32) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform3i) SetSubrange(c *Context, offset int32, vs [][3]int32) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform3iv(int32(u)+offset, int32(len(vs)), intv(vs))
	runtime.KeepAlive(vs)
}

func (u Uniform4i) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u Uniform4i) Valid() bool { return u != -1 }

// Set uploads v to the location.
func (u Uniform4i) Set(c *Context, v [4]int32) {
	c.gl.Uniform4iv(int32(u), 1, &v[0])
}

// SetMulti uploads vs to the uniform array, element 0 onwards.
func (u Uniform4i) SetMulti(c *Context, vs [][4]int32) {
	u.SetSubrange(c, 0, vs)
}

// SetSubrange uploads vs from element offset of the uniform array. Nothing is uploaded for an empty vs.
func (u Uniform4i) SetSubrange(c *Context, offset int32, vs [][4]int32) {
	if len(vs) == 0 {
		return
	}
	c.gl.Uniform4iv(int32(u)+offset, int32(len(vs)), intv(vs))
	runtime.KeepAlive(vs)
}

func (u UniformMatrix2f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u UniformMatrix2f) Valid() bool { return u != -1 }

// Set uploads m. mgl32 matrices are column major, pass transpose false for them.
func (u UniformMatrix2f) Set(c *Context, transpose bool, m mgl32.Mat2) {
	c.gl.UniformMatrix2fv(int32(u), 1, transpose, &m[0])
}

// SetMulti uploads ms to the uniform array, element 0 onwards.
func (u UniformMatrix2f) SetMulti(c *Context, transpose bool, ms []mgl32.Mat2) {
	u.SetSubrange(c, 0, transpose, ms)
}

// SetSubrange uploads ms from element offset of the uniform array. Nothing is uploaded for an empty ms.
func (u UniformMatrix2f) SetSubrange(c *Context, offset int32, transpose bool, ms []mgl32.Mat2) {
	if len(ms) == 0 {
		return
	}
	c.gl.UniformMatrix2fv(int32(u)+offset, int32(len(ms)), transpose, floatv(ms))
	runtime.KeepAlive(ms)
}

func (u UniformMatrix3f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u UniformMatrix3f) Valid() bool { return u != -1 }

// Set uploads m. mgl32 matrices are column major, pass transpose false for them.
func (u UniformMatrix3f) Set(c *Context, transpose bool, m mgl32.Mat3) {
	c.gl.UniformMatrix3fv(int32(u), 1, transpose, &m[0])
}

// SetMulti uploads ms to the uniform array, element 0 onwards.
func (u UniformMatrix3f) SetMulti(c *Context, transpose bool, ms []mgl32.Mat3) {
	u.SetSubrange(c, 0, transpose, ms)
}

// SetSubrange uploads ms from element offset of the uniform array. Nothing is uploaded for an empty ms.
func (u UniformMatrix3f) SetSubrange(c *Context, offset int32, transpose bool, ms []mgl32.Mat3) {
	if len(ms) == 0 {
		return
	}
	c.gl.UniformMatrix3fv(int32(u)+offset, int32(len(ms)), transpose, floatv(ms))
	runtime.KeepAlive(ms)
}

func (u UniformMatrix4f) location() int32 { return int32(u) }

// Valid reports whether u names a location.
func (u UniformMatrix4f) Valid() bool { return u != -1 }

// Set uploads m. mgl32 matrices are column major, pass transpose false for them.
func (u UniformMatrix4f) Set(c *Context, transpose bool, m mgl32.Mat4) {
	c.gl.UniformMatrix4fv(int32(u), 1, transpose, &m[0])
}

// SetMulti uploads ms to the uniform array, element 0 onwards.
func (u UniformMatrix4f) SetMulti(c *Context, transpose bool, ms []mgl32.Mat4) {
	u.SetSubrange(c, 0, transpose, ms)
}

// SetSubrange uploads ms from element offset of the uniform array. Nothing is uploaded for an empty ms.
func (u UniformMatrix4f) SetSubrange(c *Context, offset int32, transpose bool, ms []mgl32.Mat4) {
	if len(ms) == 0 {
		return
	}
	c.gl.UniformMatrix4fv(int32(u)+offset, int32(len(ms)), transpose, floatv(ms))
	runtime.KeepAlive(ms)
}
