// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx wraps raw driver calls in small typed handles.
//
// Every resource kind (buffer, texture, shader, program) is its own type
// around the driver-assigned name, and the zero value of each means "none".
// Operations forward to the driver through an explicit Context; apart from
// shader compilation, program linking and location tables, nothing here
// returns an error. Driver-side failures are observed by draining the
// error queue with Context.Errors.
//
// A Context is bound to the thread that owns the driver context and must
// not be used concurrently.
package gfx

import (
	"github.com/devblok/vglh/gl"
	log "github.com/sirupsen/logrus"
)

// Context carries the driver function table every operation forwards to.
type Context struct {
	gl  gl.Functions
	log *log.Entry
}

// Option configures a Context.
type Option func(*Context)

// WithLogger makes the Context log through the given entry.
func WithLogger(entry *log.Entry) Option {
	return func(c *Context) {
		c.log = entry
	}
}

// NewContext creates a Context forwarding to f.
func NewContext(f gl.Functions, opts ...Option) *Context {
	c := &Context{
		gl:  f,
		log: log.WithField("component", "gfx"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Functions returns the underlying driver table for calls this package does not wrap.
func (c *Context) Functions() gl.Functions {
	return c.gl
}

// Logger returns the entry the Context logs through.
func (c *Context) Logger() *log.Entry {
	return c.log
}

// ClearColor sets the colour used by Clear.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.gl.ClearColor(r, g, b, a)
}

// ClearMask selects which buffers Clear resets.
type ClearMask uint32

// Buffers Clear can reset.
const (
	ColorBufferBit   ClearMask = gl.ColorBufferBit
	DepthBufferBit   ClearMask = gl.DepthBufferBit
	StencilBufferBit ClearMask = gl.StencilBufferBit
)

// Clear resets the selected buffers.
func (c *Context) Clear(mask ClearMask) {
	c.gl.Clear(uint32(mask))
}

// Viewport sets the window-space rectangle draws map to.
func (c *Context) Viewport(x, y, width, height int32) {
	c.gl.Viewport(x, y, width, height)
}

// Capability is a server-side feature toggled with Enable and Disable.
type Capability uint32

// Capabilities used by the helpers.
const (
	Blend     Capability = gl.Blend
	CullFace  Capability = gl.CullFace
	DepthTest Capability = gl.DepthTest
)

// Enable turns a capability on.
func (c *Context) Enable(capability Capability) {
	c.gl.Enable(uint32(capability))
}

// Disable turns a capability off.
func (c *Context) Disable(capability Capability) {
	c.gl.Disable(uint32(capability))
}

// BlendAlpha enables blending with the usual source-over factors.
func (c *Context) BlendAlpha() {
	c.gl.Enable(gl.Blend)
	c.gl.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)
}

// DriverString returns a driver string such as gl.Vendor or gl.Version.
func (c *Context) DriverString(name uint32) string {
	return c.gl.GetString(name)
}
