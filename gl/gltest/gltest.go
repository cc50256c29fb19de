// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gltest provides an in-memory driver that implements gl.Functions.
//
// The driver keeps just enough state to behave like a strict OpenGL ES
// implementation: object names, bindings, enabled attribute slots, uniform
// storage and a sticky error queue. It "compiles" GLSL-style sources by
// scanning their attribute and uniform declarations, so programs built
// against it expose the same names a real driver would.
package gltest

import (
	"regexp"
	"strconv"
	"strings"
	"unsafe"

	"github.com/devblok/vglh/gl"
)

// MaxVertexAttribs is the default number of vertex attribute slots.
const MaxVertexAttribs = 16

// Call is a single recorded driver call.
type Call struct {
	Name string
	Args []interface{}
}

// AttribPointer is the layout recorded for an attribute slot by VertexAttribPointer.
type AttribPointer struct {
	Buffer     uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Pointer    unsafe.Pointer
}

// Draw is a recorded draw submission.
type Draw struct {
	Name          string
	Mode          uint32
	First         int32
	Count         int32
	Type          uint32
	ElementBuffer uint32
	Indices       unsafe.Pointer
	Instances     int32
	Program       uint32
}

// Texture is the recorded state of a texture object.
type Texture struct {
	Target     uint32
	Width      int32
	Height     int32
	Format     uint32
	Pixels     []byte
	Parameters map[uint32]int32
	Mipmapped  bool
}

type uniformDecl struct {
	name string
	size int
}

type shader struct {
	kind       uint32
	source     string
	compiled   bool
	log        string
	attributes []string
	uniforms   []uniformDecl
}

type program struct {
	shaders    []uint32
	linked     bool
	log        string
	attributes map[string]int32
	uniforms   map[string]int32
	sizes      map[string]int32
	slots      int32
}

// Driver is an in-memory gl.Functions implementation.
type Driver struct {
	// MaxVertexAttribs bounds attribute slot indices.
	MaxVertexAttribs uint32

	// Strings answers GetString.
	Strings map[uint32]string

	Calls []Call
	Draws []Draw

	// Bindings maps buffer targets to the bound buffer.
	Bindings map[uint32]uint32
	// TextureBindings maps texture targets to the bound texture.
	TextureBindings map[uint32]uint32
	ActiveUnit      uint32

	Enabled      map[uint32]bool
	Divisors     map[uint32]uint32
	Pointers     map[uint32]AttribPointer
	Capabilities map[uint32]bool

	// CurrentProgram is the program selected by UseProgram.
	CurrentProgram uint32

	// FloatUniforms and IntUniforms hold uploaded values per location slot.
	FloatUniforms map[int32][]float32
	IntUniforms   map[int32][]int32
	Transposed    map[int32]bool

	ClearColorValue [4]float32
	ViewportValue   [4]int32

	errors   []uint32
	nextName uint32

	buffers  map[uint32][]byte
	textures map[uint32]*Texture
	shaders  map[uint32]*shader
	programs map[uint32]*program
}

var _ gl.Functions = (*Driver)(nil)

// New creates a driver with no objects, nothing bound and an empty error queue.
func New() *Driver {
	return &Driver{
		MaxVertexAttribs: MaxVertexAttribs,
		Strings: map[uint32]string{
			gl.Vendor:                 "devblok",
			gl.Renderer:               "gltest",
			gl.Version:                "OpenGL ES 2.0 gltest",
			gl.ShadingLanguageVersion: "OpenGL ES GLSL ES 1.00",
			gl.Extensions:             "",
		},
		Bindings:        make(map[uint32]uint32),
		TextureBindings: make(map[uint32]uint32),
		ActiveUnit:      gl.Texture0,
		Enabled:         make(map[uint32]bool),
		Divisors:        make(map[uint32]uint32),
		Pointers:        make(map[uint32]AttribPointer),
		Capabilities:    make(map[uint32]bool),
		FloatUniforms:   make(map[int32][]float32),
		IntUniforms:     make(map[int32][]int32),
		Transposed:      make(map[int32]bool),
		buffers:         make(map[uint32][]byte),
		textures:        make(map[uint32]*Texture),
		shaders:         make(map[uint32]*shader),
		programs:        make(map[uint32]*program),
	}
}

// Push queues an error as if the driver had raised it.
// Codes already pending are not queued twice.
func (d *Driver) Push(code uint32) {
	for _, e := range d.errors {
		if e == code {
			return
		}
	}
	d.errors = append(d.errors, code)
}

// Pending returns a copy of the queued errors without consuming them.
func (d *Driver) Pending() []uint32 {
	return append([]uint32(nil), d.errors...)
}

// Reset forgets recorded calls and draws. Driver state is kept.
func (d *Driver) Reset() {
	d.Calls = nil
	d.Draws = nil
}

// CallsNamed returns the recorded calls to the named entry point.
func (d *Driver) CallsNamed(name string) []Call {
	var calls []Call
	for _, c := range d.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// CallNames returns the names of all recorded calls in order.
func (d *Driver) CallNames() []string {
	names := make([]string, 0, len(d.Calls))
	for _, c := range d.Calls {
		names = append(names, c.Name)
	}
	return names
}

// BufferContents returns a copy of the data store of a buffer.
func (d *Driver) BufferContents(buffer uint32) []byte {
	return append([]byte(nil), d.buffers[buffer]...)
}

// IsBuffer reports whether the name is a live buffer.
func (d *Driver) IsBuffer(buffer uint32) bool {
	_, ok := d.buffers[buffer]
	return ok
}

// TextureState returns the recorded state of a texture, or nil.
func (d *Driver) TextureState(texture uint32) *Texture {
	return d.textures[texture]
}

// IsTexture reports whether the name is a live texture.
func (d *Driver) IsTexture(texture uint32) bool {
	_, ok := d.textures[texture]
	return ok
}

// IsShader reports whether the name is a live shader object.
func (d *Driver) IsShader(s uint32) bool {
	_, ok := d.shaders[s]
	return ok
}

// IsProgram reports whether the name is a live program object.
func (d *Driver) IsProgram(p uint32) bool {
	_, ok := d.programs[p]
	return ok
}

func (d *Driver) record(name string, args ...interface{}) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Driver) gen() uint32 {
	d.nextName++
	return d.nextName
}

func validBufferTarget(target uint32) bool {
	return target == gl.ArrayBuffer || target == gl.ElementArrayBuffer
}

func validUsage(usage uint32) bool {
	switch usage {
	case gl.StreamDraw, gl.StaticDraw, gl.DynamicDraw:
		return true
	}
	return false
}

func validTextureTarget(target uint32) bool {
	return target == gl.Texture2D || target == gl.TextureCubeMap
}

func validMode(mode uint32) bool {
	return mode <= gl.Quads
}

func validAttribType(xtype uint32) bool {
	switch xtype {
	case gl.Byte, gl.UnsignedByte, gl.Short, gl.UnsignedShort, gl.Fixed, gl.Float:
		return true
	}
	return false
}

// GenBuffers implements gl.Functions
func (d *Driver) GenBuffers(n int32, buffers *uint32) {
	d.record("glGenBuffers", n)
	if n < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if n == 0 {
		return
	}
	for idx, out := 0, unsafe.Slice(buffers, n); idx < int(n); idx++ {
		name := d.gen()
		d.buffers[name] = nil
		out[idx] = name
	}
}

// DeleteBuffers implements gl.Functions
func (d *Driver) DeleteBuffers(n int32, buffers *uint32) {
	d.record("glDeleteBuffers", n)
	if n < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if n == 0 {
		return
	}
	for _, name := range unsafe.Slice(buffers, n) {
		if name == 0 {
			continue
		}
		delete(d.buffers, name)
		for target, bound := range d.Bindings {
			if bound == name {
				d.Bindings[target] = 0
			}
		}
	}
}

// BindBuffer implements gl.Functions
func (d *Driver) BindBuffer(target, buffer uint32) {
	d.record("glBindBuffer", target, buffer)
	if !validBufferTarget(target) {
		d.Push(gl.InvalidEnum)
		return
	}
	if _, ok := d.buffers[buffer]; buffer != 0 && !ok {
		d.Push(gl.InvalidValue)
		return
	}
	d.Bindings[target] = buffer
}

// BufferData implements gl.Functions
func (d *Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	d.record("glBufferData", target, size, usage)
	if !validBufferTarget(target) || !validUsage(usage) {
		d.Push(gl.InvalidEnum)
		return
	}
	if size < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	bound := d.Bindings[target]
	if bound == 0 {
		d.Push(gl.InvalidOperation)
		return
	}
	store := make([]byte, size)
	if data != nil && size > 0 {
		copy(store, unsafe.Slice((*byte)(data), size))
	}
	d.buffers[bound] = store
}

// BufferSubData implements gl.Functions
func (d *Driver) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	d.record("glBufferSubData", target, offset, size)
	if !validBufferTarget(target) {
		d.Push(gl.InvalidEnum)
		return
	}
	bound := d.Bindings[target]
	if bound == 0 {
		d.Push(gl.InvalidOperation)
		return
	}
	store := d.buffers[bound]
	if offset < 0 || size < 0 || offset+size > len(store) {
		d.Push(gl.InvalidValue)
		return
	}
	if data != nil && size > 0 {
		copy(store[offset:], unsafe.Slice((*byte)(data), size))
	}
}

// GenTextures implements gl.Functions
func (d *Driver) GenTextures(n int32, textures *uint32) {
	d.record("glGenTextures", n)
	if n < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if n == 0 {
		return
	}
	for idx, out := 0, unsafe.Slice(textures, n); idx < int(n); idx++ {
		name := d.gen()
		d.textures[name] = &Texture{Parameters: make(map[uint32]int32)}
		out[idx] = name
	}
}

// DeleteTextures implements gl.Functions
func (d *Driver) DeleteTextures(n int32, textures *uint32) {
	d.record("glDeleteTextures", n)
	if n < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if n == 0 {
		return
	}
	for _, name := range unsafe.Slice(textures, n) {
		if name == 0 {
			continue
		}
		delete(d.textures, name)
		for target, bound := range d.TextureBindings {
			if bound == name {
				d.TextureBindings[target] = 0
			}
		}
	}
}

// BindTexture implements gl.Functions
func (d *Driver) BindTexture(target, texture uint32) {
	d.record("glBindTexture", target, texture)
	if !validTextureTarget(target) {
		d.Push(gl.InvalidEnum)
		return
	}
	tex, ok := d.textures[texture]
	if texture != 0 && !ok {
		d.Push(gl.InvalidValue)
		return
	}
	if ok {
		if tex.Target != 0 && tex.Target != target {
			d.Push(gl.InvalidOperation)
			return
		}
		tex.Target = target
	}
	d.TextureBindings[target] = texture
}

// ActiveTexture implements gl.Functions
func (d *Driver) ActiveTexture(texture uint32) {
	d.record("glActiveTexture", texture)
	if texture < gl.Texture0 || texture > gl.Texture0+31 {
		d.Push(gl.InvalidEnum)
		return
	}
	d.ActiveUnit = texture
}

func (d *Driver) boundTexture(target uint32) *Texture {
	if !validTextureTarget(target) {
		d.Push(gl.InvalidEnum)
		return nil
	}
	tex := d.textures[d.TextureBindings[target]]
	if tex == nil {
		d.Push(gl.InvalidOperation)
	}
	return tex
}

func pixelSize(format, xtype uint32) int {
	if xtype != gl.UnsignedByte {
		return 2
	}
	switch format {
	case gl.Alpha, gl.Luminance:
		return 1
	case gl.LuminanceAlpha:
		return 2
	case gl.RGB:
		return 3
	}
	return 4
}

// TexImage2D implements gl.Functions
func (d *Driver) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	d.record("glTexImage2D", target, level, internalformat, width, height, border, format, xtype)
	tex := d.boundTexture(target)
	if tex == nil {
		return
	}
	if width < 0 || height < 0 || level < 0 || border != 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if level > 0 {
		return
	}
	size := int(width) * int(height) * pixelSize(format, xtype)
	tex.Width, tex.Height, tex.Format = width, height, format
	tex.Pixels = make([]byte, size)
	if pixels != nil && size > 0 {
		copy(tex.Pixels, unsafe.Slice((*byte)(pixels), size))
	}
}

// TexSubImage2D implements gl.Functions
func (d *Driver) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	d.record("glTexSubImage2D", target, level, xoffset, yoffset, width, height, format, xtype)
	tex := d.boundTexture(target)
	if tex == nil {
		return
	}
	if xoffset < 0 || yoffset < 0 || width < 0 || height < 0 ||
		xoffset+width > tex.Width || yoffset+height > tex.Height {
		d.Push(gl.InvalidValue)
		return
	}
	if level > 0 || pixels == nil {
		return
	}
	bpp := pixelSize(format, xtype)
	src := unsafe.Slice((*byte)(pixels), int(width)*int(height)*bpp)
	for row := int32(0); row < height; row++ {
		dst := (int(yoffset+row)*int(tex.Width) + int(xoffset)) * bpp
		copy(tex.Pixels[dst:dst+int(width)*bpp], src[int(row)*int(width)*bpp:])
	}
}

// TexParameteri implements gl.Functions
func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.record("glTexParameteri", target, pname, param)
	tex := d.boundTexture(target)
	if tex == nil {
		return
	}
	switch pname {
	case gl.TextureMagFilter, gl.TextureMinFilter, gl.TextureWrapS, gl.TextureWrapT:
		tex.Parameters[pname] = param
	default:
		d.Push(gl.InvalidEnum)
	}
}

// GenerateMipmap implements gl.Functions
func (d *Driver) GenerateMipmap(target uint32) {
	d.record("glGenerateMipmap", target)
	if tex := d.boundTexture(target); tex != nil {
		tex.Mipmapped = true
	}
}

// EnableVertexAttribArray implements gl.Functions
func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("glEnableVertexAttribArray", index)
	if index >= d.MaxVertexAttribs {
		d.Push(gl.InvalidValue)
		return
	}
	d.Enabled[index] = true
}

// DisableVertexAttribArray implements gl.Functions
func (d *Driver) DisableVertexAttribArray(index uint32) {
	d.record("glDisableVertexAttribArray", index)
	if index >= d.MaxVertexAttribs {
		d.Push(gl.InvalidValue)
		return
	}
	delete(d.Enabled, index)
}

// EnabledSlots returns how many attribute slots are currently enabled.
func (d *Driver) EnabledSlots() int {
	return len(d.Enabled)
}

// VertexAttribPointer implements gl.Functions
func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, pointer unsafe.Pointer) {
	d.record("glVertexAttribPointer", index, size, xtype, normalized, stride, uintptr(pointer))
	if index >= d.MaxVertexAttribs || size < 1 || size > 4 || stride < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if !validAttribType(xtype) {
		d.Push(gl.InvalidEnum)
		return
	}
	d.Pointers[index] = AttribPointer{
		Buffer:     d.Bindings[gl.ArrayBuffer],
		Size:       size,
		Type:       xtype,
		Normalized: normalized,
		Stride:     stride,
		Pointer:    pointer,
	}
}

// VertexAttribDivisor implements gl.Functions
func (d *Driver) VertexAttribDivisor(index, divisor uint32) {
	d.record("glVertexAttribDivisor", index, divisor)
	if index >= d.MaxVertexAttribs {
		d.Push(gl.InvalidValue)
		return
	}
	d.Divisors[index] = divisor
}

var (
	attributePattern = regexp.MustCompile(`(?m)^\s*(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
	uniformPattern   = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	errorPattern     = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)
	elementPattern   = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
)

// CreateShader implements gl.Functions
func (d *Driver) CreateShader(xtype uint32) uint32 {
	d.record("glCreateShader", xtype)
	if xtype != gl.VertexShader && xtype != gl.FragmentShader {
		d.Push(gl.InvalidEnum)
		return 0
	}
	name := d.gen()
	d.shaders[name] = &shader{kind: xtype}
	return name
}

func (d *Driver) shader(name uint32) *shader {
	s := d.shaders[name]
	if s == nil {
		d.Push(gl.InvalidValue)
	}
	return s
}

// ShaderSource implements gl.Functions
func (d *Driver) ShaderSource(name uint32, source string) {
	d.record("glShaderSource", name, source)
	if s := d.shader(name); s != nil {
		s.source = source
	}
}

// CompileShader implements gl.Functions
func (d *Driver) CompileShader(name uint32) {
	d.record("glCompileShader", name)
	s := d.shader(name)
	if s == nil {
		return
	}
	s.compiled, s.log, s.attributes, s.uniforms = false, "", nil, nil
	if m := errorPattern.FindStringSubmatch(s.source); m != nil {
		s.log = strings.TrimSpace(m[1])
		return
	}
	if strings.TrimSpace(s.source) == "" {
		s.log = "empty shader source"
		return
	}
	if s.kind == gl.VertexShader {
		for _, m := range attributePattern.FindAllStringSubmatch(s.source, -1) {
			s.attributes = append(s.attributes, m[1])
		}
	}
	for _, m := range uniformPattern.FindAllStringSubmatch(s.source, -1) {
		size := 1
		if m[2] != "" {
			size, _ = strconv.Atoi(m[2])
		}
		s.uniforms = append(s.uniforms, uniformDecl{name: m[1], size: size})
	}
	s.compiled = true
}

// GetShaderiv implements gl.Functions
func (d *Driver) GetShaderiv(name, pname uint32, params *int32) {
	d.record("glGetShaderiv", name, pname)
	s := d.shader(name)
	if s == nil {
		return
	}
	switch pname {
	case gl.CompileStatus:
		*params = gl.False
		if s.compiled {
			*params = gl.True
		}
	case gl.InfoLogLength:
		*params = 0
		if s.log != "" {
			*params = int32(len(s.log) + 1)
		}
	default:
		d.Push(gl.InvalidEnum)
	}
}

// GetShaderInfoLog implements gl.Functions
func (d *Driver) GetShaderInfoLog(name uint32) string {
	d.record("glGetShaderInfoLog", name)
	if s := d.shader(name); s != nil {
		return s.log
	}
	return ""
}

// DeleteShader implements gl.Functions
func (d *Driver) DeleteShader(name uint32) {
	d.record("glDeleteShader", name)
	if name == 0 {
		return
	}
	if d.shader(name) != nil {
		delete(d.shaders, name)
	}
}

// CreateProgram implements gl.Functions
func (d *Driver) CreateProgram() uint32 {
	d.record("glCreateProgram")
	name := d.gen()
	d.programs[name] = &program{}
	return name
}

func (d *Driver) program(name uint32) *program {
	p := d.programs[name]
	if p == nil {
		d.Push(gl.InvalidValue)
	}
	return p
}

// AttachShader implements gl.Functions
func (d *Driver) AttachShader(prog, sh uint32) {
	d.record("glAttachShader", prog, sh)
	p := d.program(prog)
	if p == nil || d.shader(sh) == nil {
		return
	}
	for _, attached := range p.shaders {
		if attached == sh {
			d.Push(gl.InvalidOperation)
			return
		}
	}
	p.shaders = append(p.shaders, sh)
}

// LinkProgram implements gl.Functions
func (d *Driver) LinkProgram(prog uint32) {
	d.record("glLinkProgram", prog)
	p := d.program(prog)
	if p == nil {
		return
	}
	p.linked, p.log = false, ""
	p.attributes = make(map[string]int32)
	p.uniforms = make(map[string]int32)
	p.sizes = make(map[string]int32)
	p.slots = 0

	var vertex, fragment *shader
	for _, name := range p.shaders {
		s := d.shaders[name]
		if s == nil {
			continue
		}
		if !s.compiled {
			p.log = "attached shader " + strconv.Itoa(int(name)) + " is not compiled"
			return
		}
		switch s.kind {
		case gl.VertexShader:
			vertex = s
		case gl.FragmentShader:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		p.log = "program needs a vertex and a fragment shader"
		return
	}

	for idx, attr := range vertex.attributes {
		p.attributes[attr] = int32(idx)
	}
	for _, s := range []*shader{vertex, fragment} {
		for _, u := range s.uniforms {
			if _, ok := p.uniforms[u.name]; ok {
				continue
			}
			p.uniforms[u.name] = p.slots
			p.sizes[u.name] = int32(u.size)
			p.slots += int32(u.size)
		}
	}
	p.linked = true
}

// GetProgramiv implements gl.Functions
func (d *Driver) GetProgramiv(prog, pname uint32, params *int32) {
	d.record("glGetProgramiv", prog, pname)
	p := d.program(prog)
	if p == nil {
		return
	}
	switch pname {
	case gl.LinkStatus:
		*params = gl.False
		if p.linked {
			*params = gl.True
		}
	case gl.InfoLogLength:
		*params = 0
		if p.log != "" {
			*params = int32(len(p.log) + 1)
		}
	default:
		d.Push(gl.InvalidEnum)
	}
}

// GetProgramInfoLog implements gl.Functions
func (d *Driver) GetProgramInfoLog(prog uint32) string {
	d.record("glGetProgramInfoLog", prog)
	if p := d.program(prog); p != nil {
		return p.log
	}
	return ""
}

// UseProgram implements gl.Functions
func (d *Driver) UseProgram(prog uint32) {
	d.record("glUseProgram", prog)
	if prog == 0 {
		d.CurrentProgram = 0
		return
	}
	p := d.program(prog)
	if p == nil {
		return
	}
	if !p.linked {
		d.Push(gl.InvalidOperation)
		return
	}
	d.CurrentProgram = prog
}

// DeleteProgram implements gl.Functions
func (d *Driver) DeleteProgram(prog uint32) {
	d.record("glDeleteProgram", prog)
	if prog == 0 {
		return
	}
	if d.program(prog) != nil {
		delete(d.programs, prog)
		if d.CurrentProgram == prog {
			d.CurrentProgram = 0
		}
	}
}

func (d *Driver) linkedProgram(prog uint32) *program {
	p := d.program(prog)
	if p != nil && !p.linked {
		d.Push(gl.InvalidOperation)
		return nil
	}
	return p
}

// GetAttribLocation implements gl.Functions
func (d *Driver) GetAttribLocation(prog uint32, name string) int32 {
	d.record("glGetAttribLocation", prog, name)
	p := d.linkedProgram(prog)
	if p == nil {
		return -1
	}
	if loc, ok := p.attributes[name]; ok {
		return loc
	}
	return -1
}

// GetUniformLocation implements gl.Functions
func (d *Driver) GetUniformLocation(prog uint32, name string) int32 {
	d.record("glGetUniformLocation", prog, name)
	p := d.linkedProgram(prog)
	if p == nil {
		return -1
	}
	var element int32
	if m := elementPattern.FindStringSubmatch(name); m != nil {
		k, err := strconv.ParseInt(m[2], 10, 32)
		if err != nil {
			return -1
		}
		name, element = m[1], int32(k)
	}
	loc, ok := p.uniforms[name]
	if !ok || element >= p.sizes[name] {
		return -1
	}
	return loc + element
}

// uniformTarget validates an upload and reports whether it should be stored.
func (d *Driver) uniformTarget(location, count int32) bool {
	if location == -1 {
		return false
	}
	if count < 0 {
		d.Push(gl.InvalidValue)
		return false
	}
	p := d.programs[d.CurrentProgram]
	if p == nil || location < 0 || location+count > p.slots {
		d.Push(gl.InvalidOperation)
		return false
	}
	return true
}

func (d *Driver) storeFloats(name string, location, count int32, components int, value *float32) {
	d.record(name, location, count)
	if !d.uniformTarget(location, count) || count == 0 {
		return
	}
	values := unsafe.Slice(value, int(count)*components)
	for idx := int32(0); idx < count; idx++ {
		start := int(idx) * components
		d.FloatUniforms[location+idx] = append([]float32(nil), values[start:start+components]...)
	}
}

func (d *Driver) storeInts(name string, location, count int32, components int, value *int32) {
	d.record(name, location, count)
	if !d.uniformTarget(location, count) || count == 0 {
		return
	}
	values := unsafe.Slice(value, int(count)*components)
	for idx := int32(0); idx < count; idx++ {
		start := int(idx) * components
		d.IntUniforms[location+idx] = append([]int32(nil), values[start:start+components]...)
	}
}

func (d *Driver) storeMatrix(name string, location, count int32, transpose bool, components int, value *float32) {
	d.storeFloats(name, location, count, components, value)
	if location != -1 {
		d.Transposed[location] = transpose
	}
}

// Uniform1fv implements gl.Functions
func (d *Driver) Uniform1fv(location, count int32, value *float32) {
	d.storeFloats("glUniform1fv", location, count, 1, value)
}

// Uniform2fv implements gl.Functions
func (d *Driver) Uniform2fv(location, count int32, value *float32) {
	d.storeFloats("glUniform2fv", location, count, 2, value)
}

// Uniform3fv implements gl.Functions
func (d *Driver) Uniform3fv(location, count int32, value *float32) {
	d.storeFloats("glUniform3fv", location, count, 3, value)
}

// Uniform4fv implements gl.Functions
func (d *Driver) Uniform4fv(location, count int32, value *float32) {
	d.storeFloats("glUniform4fv", location, count, 4, value)
}

// Uniform1iv implements gl.Functions
func (d *Driver) Uniform1iv(location, count int32, value *int32) {
	d.storeInts("glUniform1iv", location, count, 1, value)
}

// Uniform2iv implements gl.Functions
func (d *Driver) Uniform2iv(location, count int32, value *int32) {
	d.storeInts("glUniform2iv", location, count, 2, value)
}

// Uniform3iv implements gl.Functions
func (d *Driver) Uniform3iv(location, count int32, value *int32) {
	d.storeInts("glUniform3iv", location, count, 3, value)
}

// Uniform4iv implements gl.Functions
func (d *Driver) Uniform4iv(location, count int32, value *int32) {
	d.storeInts("glUniform4iv", location, count, 4, value)
}

// UniformMatrix2fv implements gl.Functions
func (d *Driver) UniformMatrix2fv(location, count int32, transpose bool, value *float32) {
	d.storeMatrix("glUniformMatrix2fv", location, count, transpose, 4, value)
}

// UniformMatrix3fv implements gl.Functions
func (d *Driver) UniformMatrix3fv(location, count int32, transpose bool, value *float32) {
	d.storeMatrix("glUniformMatrix3fv", location, count, transpose, 9, value)
}

// UniformMatrix4fv implements gl.Functions
func (d *Driver) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	d.storeMatrix("glUniformMatrix4fv", location, count, transpose, 16, value)
}

// drawable checks the state every draw depends on.
func (d *Driver) drawable(mode uint32, count int32) bool {
	if !validMode(mode) {
		d.Push(gl.InvalidEnum)
		return false
	}
	if count < 0 {
		d.Push(gl.InvalidValue)
		return false
	}
	if d.CurrentProgram == 0 {
		d.Push(gl.InvalidOperation)
		return false
	}
	for index := range d.Enabled {
		if _, ok := d.Pointers[index]; !ok {
			d.Push(gl.InvalidOperation)
			return false
		}
	}
	return true
}

func (d *Driver) elementsDrawable(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) bool {
	if !d.drawable(mode, count) {
		return false
	}
	switch xtype {
	case gl.UnsignedByte, gl.UnsignedShort, gl.UnsignedInt:
	default:
		d.Push(gl.InvalidEnum)
		return false
	}
	if d.Bindings[gl.ElementArrayBuffer] == 0 && indices == nil && count > 0 {
		d.Push(gl.InvalidOperation)
		return false
	}
	return true
}

// DrawArrays implements gl.Functions
func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.record("glDrawArrays", mode, first, count)
	if first < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if !d.drawable(mode, count) {
		return
	}
	d.Draws = append(d.Draws, Draw{
		Name:      "glDrawArrays",
		Mode:      mode,
		First:     first,
		Count:     count,
		Instances: 1,
		Program:   d.CurrentProgram,
	})
}

// DrawElements implements gl.Functions
func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) {
	d.record("glDrawElements", mode, count, xtype, uintptr(indices))
	if !d.elementsDrawable(mode, count, xtype, indices) {
		return
	}
	d.Draws = append(d.Draws, Draw{
		Name:          "glDrawElements",
		Mode:          mode,
		Count:         count,
		Type:          xtype,
		ElementBuffer: d.Bindings[gl.ElementArrayBuffer],
		Indices:       indices,
		Instances:     1,
		Program:       d.CurrentProgram,
	})
}

// DrawElementsInstanced implements gl.Functions
func (d *Driver) DrawElementsInstanced(mode uint32, count int32, xtype uint32, indices unsafe.Pointer, primcount int32) {
	d.record("glDrawElementsInstanced", mode, count, xtype, uintptr(indices), primcount)
	if primcount < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	if !d.elementsDrawable(mode, count, xtype, indices) {
		return
	}
	d.Draws = append(d.Draws, Draw{
		Name:          "glDrawElementsInstanced",
		Mode:          mode,
		Count:         count,
		Type:          xtype,
		ElementBuffer: d.Bindings[gl.ElementArrayBuffer],
		Indices:       indices,
		Instances:     primcount,
		Program:       d.CurrentProgram,
	})
}

// ClearColor implements gl.Functions
func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("glClearColor", r, g, b, a)
	d.ClearColorValue = [4]float32{r, g, b, a}
}

// Clear implements gl.Functions
func (d *Driver) Clear(mask uint32) {
	d.record("glClear", mask)
	if mask&^(gl.ColorBufferBit|gl.DepthBufferBit|gl.StencilBufferBit) != 0 {
		d.Push(gl.InvalidValue)
	}
}

// Viewport implements gl.Functions
func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("glViewport", x, y, width, height)
	if width < 0 || height < 0 {
		d.Push(gl.InvalidValue)
		return
	}
	d.ViewportValue = [4]int32{x, y, width, height}
}

func validCapability(capability uint32) bool {
	switch capability {
	case gl.Blend, gl.CullFace, gl.DepthTest:
		return true
	}
	return false
}

// Enable implements gl.Functions
func (d *Driver) Enable(capability uint32) {
	d.record("glEnable", capability)
	if !validCapability(capability) {
		d.Push(gl.InvalidEnum)
		return
	}
	d.Capabilities[capability] = true
}

// Disable implements gl.Functions
func (d *Driver) Disable(capability uint32) {
	d.record("glDisable", capability)
	if !validCapability(capability) {
		d.Push(gl.InvalidEnum)
		return
	}
	delete(d.Capabilities, capability)
}

// BlendFunc implements gl.Functions
func (d *Driver) BlendFunc(sfactor, dfactor uint32) {
	d.record("glBlendFunc", sfactor, dfactor)
}

// GetError implements gl.Functions
func (d *Driver) GetError() uint32 {
	d.record("glGetError")
	if len(d.errors) == 0 {
		return gl.NoError
	}
	code := d.errors[0]
	d.errors = d.errors[1:]
	return code
}

// GetString implements gl.Functions
func (d *Driver) GetString(name uint32) string {
	d.record("glGetString", name)
	s, ok := d.Strings[name]
	if !ok {
		d.Push(gl.InvalidEnum)
	}
	return s
}
