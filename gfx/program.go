// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"

	"github.com/devblok/vglh/gl"
)

// ShaderKind identifies the pipeline stage a shader is compiled for.
type ShaderKind uint32

// Shader stages.
const (
	VertexShader   ShaderKind = gl.VertexShader
	FragmentShader ShaderKind = gl.FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return fmt.Sprintf("ShaderKind(0x%04X)", uint32(k))
}

// Shader is a compiled shader object.
type Shader uint32

// ID returns the driver name of the shader.
func (s Shader) ID() uint32 {
	return uint32(s)
}

// Program is a linked program object.
type Program uint32

// ID returns the driver name of the program.
func (p Program) ID() uint32 {
	return uint32(p)
}

// CompileError is returned when the driver refuses a shader source.
type CompileError struct {
	Kind ShaderKind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Kind, e.Log)
}

// LinkError is returned when the driver refuses to link a program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "program link failed: " + e.Log
}

// CompileShader compiles src, written in the driver's shading language, as a
// shader of the given kind. On failure the shader object is released and the
// driver's info log is returned in a *CompileError.
func (c *Context) CompileShader(src string, kind ShaderKind) (Shader, error) {
	s := c.gl.CreateShader(uint32(kind))
	if s == 0 {
		return 0, &CompileError{Kind: kind, Log: "driver did not create a shader object"}
	}
	c.gl.ShaderSource(s, src)
	c.gl.CompileShader(s)

	var status int32
	c.gl.GetShaderiv(s, gl.CompileStatus, &status)
	if status == gl.False {
		info := c.gl.GetShaderInfoLog(s)
		c.gl.DeleteShader(s)
		return 0, &CompileError{Kind: kind, Log: info}
	}
	return Shader(s), nil
}

// Delete releases the shader object. Programs it was linked into are unaffected.
func (s Shader) Delete(c *Context) {
	c.gl.DeleteShader(uint32(s))
}

// LinkProgram links a vertex and a fragment shader into a program. The
// shaders stay owned by the caller. On failure the program object is released
// and the driver's info log is returned in a *LinkError.
func (c *Context) LinkProgram(vertex, fragment Shader) (Program, error) {
	p := c.gl.CreateProgram()
	if p == 0 {
		return 0, &LinkError{Log: "driver did not create a program object"}
	}
	c.gl.AttachShader(p, uint32(vertex))
	c.gl.AttachShader(p, uint32(fragment))
	c.gl.LinkProgram(p)

	var status int32
	c.gl.GetProgramiv(p, gl.LinkStatus, &status)
	if status == gl.False {
		info := c.gl.GetProgramInfoLog(p)
		c.gl.DeleteProgram(p)
		return 0, &LinkError{Log: info}
	}
	return Program(p), nil
}

// BuildProgram compiles both sources and links them. The intermediate shader
// objects are released whether or not linking succeeds.
func (c *Context) BuildProgram(vertexSrc, fragmentSrc string) (Program, error) {
	vs, err := c.CompileShader(vertexSrc, VertexShader)
	if err != nil {
		return 0, err
	}
	defer vs.Delete(c)

	fs, err := c.CompileShader(fragmentSrc, FragmentShader)
	if err != nil {
		return 0, err
	}
	defer fs.Delete(c)

	return c.LinkProgram(vs, fs)
}

// Use makes p the current program.
func (p Program) Use(c *Context) {
	c.gl.UseProgram(uint32(p))
}

// Delete releases the program object.
func (p Program) Delete(c *Context) {
	c.gl.DeleteProgram(uint32(p))
}

// AttribLocation asks the driver where the named attribute lives, negative if nowhere.
func (p Program) AttribLocation(c *Context, name string) int32 {
	return c.gl.GetAttribLocation(uint32(p), name)
}

// UniformLocation asks the driver where the named uniform lives, -1 if nowhere.
func (p Program) UniformLocation(c *Context, name string) int32 {
	return c.gl.GetUniformLocation(uint32(p), name)
}
