// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gl

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// MissingProcsError lists every entry point the proc-address lookup could not resolve.
type MissingProcsError []string

func (e MissingProcsError) Error() string {
	return fmt.Sprintf("Missing GL procs: [%s]", strings.Join(e, ","))
}

var _ Functions = (*Procs)(nil)

// Procs is a driver function table bound with purego. It implements Functions.
type Procs struct {
	glGenBuffers     func(n int32, buffers *uint32)
	glDeleteBuffers  func(n int32, buffers *uint32)
	glBindBuffer     func(target, buffer uint32)
	glBufferData     func(target uint32, size uintptr, data unsafe.Pointer, usage uint32)
	glBufferSubData  func(target uint32, offset, size uintptr, data unsafe.Pointer)
	glGenTextures    func(n int32, textures *uint32)
	glDeleteTextures func(n int32, textures *uint32)
	glBindTexture    func(target, texture uint32)
	glActiveTexture  func(texture uint32)
	glTexImage2D     func(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	glTexSubImage2D  func(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	glTexParameteri  func(target, pname uint32, param int32)
	glGenerateMipmap func(target uint32)

	glEnableVertexAttribArray  func(index uint32)
	glDisableVertexAttribArray func(index uint32)
	glVertexAttribPointer      func(index uint32, size int32, xtype uint32, normalized uint8, stride int32, pointer unsafe.Pointer)
	glVertexAttribDivisor      func(index, divisor uint32)

	glCreateShader      func(xtype uint32) uint32
	glShaderSource      func(shader uint32, count int32, source **byte, length *int32)
	glCompileShader     func(shader uint32)
	glGetShaderiv       func(shader, pname uint32, params *int32)
	glGetShaderInfoLog  func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	glDeleteShader      func(shader uint32)
	glCreateProgram     func() uint32
	glAttachShader      func(program, shader uint32)
	glLinkProgram       func(program uint32)
	glGetProgramiv      func(program, pname uint32, params *int32)
	glGetProgramInfoLog func(program uint32, bufSize int32, length *int32, infoLog *byte)
	glUseProgram        func(program uint32)
	glDeleteProgram     func(program uint32)
	glGetAttribLocation func(program uint32, name *byte) int32
	glGetUniformLoc     func(program uint32, name *byte) int32

	glUniform1fv       func(location, count int32, value *float32)
	glUniform2fv       func(location, count int32, value *float32)
	glUniform3fv       func(location, count int32, value *float32)
	glUniform4fv       func(location, count int32, value *float32)
	glUniform1iv       func(location, count int32, value *int32)
	glUniform2iv       func(location, count int32, value *int32)
	glUniform3iv       func(location, count int32, value *int32)
	glUniform4iv       func(location, count int32, value *int32)
	glUniformMatrix2fv func(location, count int32, transpose uint8, value *float32)
	glUniformMatrix3fv func(location, count int32, transpose uint8, value *float32)
	glUniformMatrix4fv func(location, count int32, transpose uint8, value *float32)
	glDrawArrays       func(mode uint32, first, count int32)
	glDrawElements     func(mode uint32, count int32, xtype uint32, indices unsafe.Pointer)
	glDrawElementsInst func(mode uint32, count int32, xtype uint32, indices unsafe.Pointer, primcount int32)
	glClearColor       func(r, g, b, a float32)
	glClear            func(mask uint32)
	glViewport         func(x, y, width, height int32)
	glEnable           func(capability uint32)
	glDisable          func(capability uint32)
	glBlendFunc        func(sfactor, dfactor uint32)
	glGetError         func() uint32
	glGetString        func(name uint32) *byte
}

func (p *Procs) table() []struct {
	name string
	fptr interface{}
} {
	return []struct {
		name string
		fptr interface{}
	}{
		{"glGenBuffers", &p.glGenBuffers},
		{"glDeleteBuffers", &p.glDeleteBuffers},
		{"glBindBuffer", &p.glBindBuffer},
		{"glBufferData", &p.glBufferData},
		{"glBufferSubData", &p.glBufferSubData},
		{"glGenTextures", &p.glGenTextures},
		{"glDeleteTextures", &p.glDeleteTextures},
		{"glBindTexture", &p.glBindTexture},
		{"glActiveTexture", &p.glActiveTexture},
		{"glTexImage2D", &p.glTexImage2D},
		{"glTexSubImage2D", &p.glTexSubImage2D},
		{"glTexParameteri", &p.glTexParameteri},
		{"glGenerateMipmap", &p.glGenerateMipmap},
		{"glEnableVertexAttribArray", &p.glEnableVertexAttribArray},
		{"glDisableVertexAttribArray", &p.glDisableVertexAttribArray},
		{"glVertexAttribPointer", &p.glVertexAttribPointer},
		{"glVertexAttribDivisor", &p.glVertexAttribDivisor},
		{"glCreateShader", &p.glCreateShader},
		{"glShaderSource", &p.glShaderSource},
		{"glCompileShader", &p.glCompileShader},
		{"glGetShaderiv", &p.glGetShaderiv},
		{"glGetShaderInfoLog", &p.glGetShaderInfoLog},
		{"glDeleteShader", &p.glDeleteShader},
		{"glCreateProgram", &p.glCreateProgram},
		{"glAttachShader", &p.glAttachShader},
		{"glLinkProgram", &p.glLinkProgram},
		{"glGetProgramiv", &p.glGetProgramiv},
		{"glGetProgramInfoLog", &p.glGetProgramInfoLog},
		{"glUseProgram", &p.glUseProgram},
		{"glDeleteProgram", &p.glDeleteProgram},
		{"glGetAttribLocation", &p.glGetAttribLocation},
		{"glGetUniformLocation", &p.glGetUniformLoc},
		{"glUniform1fv", &p.glUniform1fv},
		{"glUniform2fv", &p.glUniform2fv},
		{"glUniform3fv", &p.glUniform3fv},
		{"glUniform4fv", &p.glUniform4fv},
		{"glUniform1iv", &p.glUniform1iv},
		{"glUniform2iv", &p.glUniform2iv},
		{"glUniform3iv", &p.glUniform3iv},
		{"glUniform4iv", &p.glUniform4iv},
		{"glUniformMatrix2fv", &p.glUniformMatrix2fv},
		{"glUniformMatrix3fv", &p.glUniformMatrix3fv},
		{"glUniformMatrix4fv", &p.glUniformMatrix4fv},
		{"glDrawArrays", &p.glDrawArrays},
		{"glDrawElements", &p.glDrawElements},
		{"glDrawElementsInstanced", &p.glDrawElementsInst},
		{"glClearColor", &p.glClearColor},
		{"glClear", &p.glClear},
		{"glViewport", &p.glViewport},
		{"glEnable", &p.glEnable},
		{"glDisable", &p.glDisable},
		{"glBlendFunc", &p.glBlendFunc},
		{"glGetError", &p.glGetError},
		{"glGetString", &p.glGetString},
	}
}

// ProcNames returns the names of every entry point Load resolves, in lookup order.
func ProcNames() []string {
	var p Procs
	var names []string
	for _, e := range p.table() {
		names = append(names, e.name)
	}
	return names
}

// Load resolves every entry point through getProcAddress. Every name is
// looked up before anything is bound, so a failing Load reports the full
// set of missing names and binds nothing.
func Load(getProcAddress func(name string) uintptr) (*Procs, error) {
	if getProcAddress == nil {
		return nil, errors.New("gl.Load(): nil proc address lookup")
	}

	p := &Procs{}
	table := p.table()
	addrs := make([]uintptr, len(table))
	var missing MissingProcsError
	for idx, e := range table {
		addrs[idx] = getProcAddress(e.name)
		if addrs[idx] == 0 {
			missing = append(missing, e.name)
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}

	for idx, e := range table {
		purego.RegisterFunc(e.fptr, addrs[idx])
	}
	return p, nil
}

func boolean(b bool) uint8 {
	if b {
		return True
	}
	return False
}

// GenBuffers implements Functions
func (p *Procs) GenBuffers(n int32, buffers *uint32) { p.glGenBuffers(n, buffers) }

// DeleteBuffers implements Functions
func (p *Procs) DeleteBuffers(n int32, buffers *uint32) { p.glDeleteBuffers(n, buffers) }

// BindBuffer implements Functions
func (p *Procs) BindBuffer(target, buffer uint32) { p.glBindBuffer(target, buffer) }

// BufferData implements Functions
func (p *Procs) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	p.glBufferData(target, uintptr(size), data, usage)
}

// BufferSubData implements Functions
func (p *Procs) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	p.glBufferSubData(target, uintptr(offset), uintptr(size), data)
}

// GenTextures implements Functions
func (p *Procs) GenTextures(n int32, textures *uint32) { p.glGenTextures(n, textures) }

// DeleteTextures implements Functions
func (p *Procs) DeleteTextures(n int32, textures *uint32) { p.glDeleteTextures(n, textures) }

// BindTexture implements Functions
func (p *Procs) BindTexture(target, texture uint32) { p.glBindTexture(target, texture) }

// ActiveTexture implements Functions
func (p *Procs) ActiveTexture(texture uint32) { p.glActiveTexture(texture) }

// TexImage2D implements Functions
func (p *Procs) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	p.glTexImage2D(target, level, internalformat, width, height, border, format, xtype, pixels)
}

// TexSubImage2D implements Functions
func (p *Procs) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	p.glTexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, pixels)
}

// TexParameteri implements Functions
func (p *Procs) TexParameteri(target, pname uint32, param int32) { p.glTexParameteri(target, pname, param) }

// GenerateMipmap implements Functions
func (p *Procs) GenerateMipmap(target uint32) { p.glGenerateMipmap(target) }

// EnableVertexAttribArray implements Functions
func (p *Procs) EnableVertexAttribArray(index uint32) { p.glEnableVertexAttribArray(index) }

// DisableVertexAttribArray implements Functions
func (p *Procs) DisableVertexAttribArray(index uint32) { p.glDisableVertexAttribArray(index) }

// VertexAttribPointer implements Functions
func (p *Procs) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, pointer unsafe.Pointer) {
	p.glVertexAttribPointer(index, size, xtype, boolean(normalized), stride, pointer)
}

// VertexAttribDivisor implements Functions
func (p *Procs) VertexAttribDivisor(index, divisor uint32) { p.glVertexAttribDivisor(index, divisor) }

// CreateShader implements Functions
func (p *Procs) CreateShader(xtype uint32) uint32 { return p.glCreateShader(xtype) }

// ShaderSource implements Functions
func (p *Procs) ShaderSource(shader uint32, source string) {
	src := cstring(source)
	p.glShaderSource(shader, 1, &src, nil)
	runtime.KeepAlive(src)
}

// CompileShader implements Functions
func (p *Procs) CompileShader(shader uint32) { p.glCompileShader(shader) }

// GetShaderiv implements Functions
func (p *Procs) GetShaderiv(shader, pname uint32, params *int32) { p.glGetShaderiv(shader, pname, params) }

// GetShaderInfoLog implements Functions
func (p *Procs) GetShaderInfoLog(shader uint32) string {
	var length int32
	p.glGetShaderiv(shader, InfoLogLength, &length)
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	p.glGetShaderInfoLog(shader, length, nil, &buf[0])
	return gostring(&buf[0])
}

// DeleteShader implements Functions
func (p *Procs) DeleteShader(shader uint32) { p.glDeleteShader(shader) }

// CreateProgram implements Functions
func (p *Procs) CreateProgram() uint32 { return p.glCreateProgram() }

// AttachShader implements Functions
func (p *Procs) AttachShader(program, shader uint32) { p.glAttachShader(program, shader) }

// LinkProgram implements Functions
func (p *Procs) LinkProgram(program uint32) { p.glLinkProgram(program) }

// GetProgramiv implements Functions
func (p *Procs) GetProgramiv(program, pname uint32, params *int32) {
	p.glGetProgramiv(program, pname, params)
}

// GetProgramInfoLog implements Functions
func (p *Procs) GetProgramInfoLog(program uint32) string {
	var length int32
	p.glGetProgramiv(program, InfoLogLength, &length)
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	p.glGetProgramInfoLog(program, length, nil, &buf[0])
	return gostring(&buf[0])
}

// UseProgram implements Functions
func (p *Procs) UseProgram(program uint32) { p.glUseProgram(program) }

// DeleteProgram implements Functions
func (p *Procs) DeleteProgram(program uint32) { p.glDeleteProgram(program) }

// GetAttribLocation implements Functions
func (p *Procs) GetAttribLocation(program uint32, name string) int32 {
	cname := cstring(name)
	loc := p.glGetAttribLocation(program, cname)
	runtime.KeepAlive(cname)
	return loc
}

// GetUniformLocation implements Functions
func (p *Procs) GetUniformLocation(program uint32, name string) int32 {
	cname := cstring(name)
	loc := p.glGetUniformLoc(program, cname)
	runtime.KeepAlive(cname)
	return loc
}

// Uniform1fv implements Functions
func (p *Procs) Uniform1fv(location, count int32, value *float32) { p.glUniform1fv(location, count, value) }

// Uniform2fv implements Functions
func (p *Procs) Uniform2fv(location, count int32, value *float32) { p.glUniform2fv(location, count, value) }

// Uniform3fv implements Functions
func (p *Procs) Uniform3fv(location, count int32, value *float32) { p.glUniform3fv(location, count, value) }

// Uniform4fv implements Functions
func (p *Procs) Uniform4fv(location, count int32, value *float32) { p.glUniform4fv(location, count, value) }

// Uniform1iv implements Functions
func (p *Procs) Uniform1iv(location, count int32, value *int32) { p.glUniform1iv(location, count, value) }

// Uniform2iv implements Functions
func (p *Procs) Uniform2iv(location, count int32, value *int32) { p.glUniform2iv(location, count, value) }

// Uniform3iv implements Functions
func (p *Procs) Uniform3iv(location, count int32, value *int32) { p.glUniform3iv(location, count, value) }

// Uniform4iv implements Functions
func (p *Procs) Uniform4iv(location, count int32, value *int32) { p.glUniform4iv(location, count, value) }

// UniformMatrix2fv implements Functions
func (p *Procs) UniformMatrix2fv(location, count int32, transpose bool, value *float32) {
	p.glUniformMatrix2fv(location, count, boolean(transpose), value)
}

// UniformMatrix3fv implements Functions
func (p *Procs) UniformMatrix3fv(location, count int32, transpose bool, value *float32) {
	p.glUniformMatrix3fv(location, count, boolean(transpose), value)
}

// UniformMatrix4fv implements Functions
func (p *Procs) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	p.glUniformMatrix4fv(location, count, boolean(transpose), value)
}

// DrawArrays implements Functions
func (p *Procs) DrawArrays(mode uint32, first, count int32) { p.glDrawArrays(mode, first, count) }

// DrawElements implements Functions
func (p *Procs) DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) {
	p.glDrawElements(mode, count, xtype, indices)
}

// DrawElementsInstanced implements Functions
func (p *Procs) DrawElementsInstanced(mode uint32, count int32, xtype uint32, indices unsafe.Pointer, primcount int32) {
	p.glDrawElementsInst(mode, count, xtype, indices, primcount)
}

// ClearColor implements Functions
func (p *Procs) ClearColor(r, g, b, a float32) { p.glClearColor(r, g, b, a) }

// Clear implements Functions
func (p *Procs) Clear(mask uint32) { p.glClear(mask) }

// Viewport implements Functions
func (p *Procs) Viewport(x, y, width, height int32) { p.glViewport(x, y, width, height) }

// Enable implements Functions
func (p *Procs) Enable(capability uint32) { p.glEnable(capability) }

// Disable implements Functions
func (p *Procs) Disable(capability uint32) { p.glDisable(capability) }

// BlendFunc implements Functions
func (p *Procs) BlendFunc(sfactor, dfactor uint32) { p.glBlendFunc(sfactor, dfactor) }

// GetError implements Functions
func (p *Procs) GetError() uint32 { return p.glGetError() }

// GetString implements Functions
func (p *Procs) GetString(name uint32) string { return gostring(p.glGetString(name)) }
