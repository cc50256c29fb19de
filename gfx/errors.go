// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"fmt"
	"iter"

	"github.com/devblok/vglh/gl"
)

// Error is an entry of the driver's sticky error queue.
type Error uint32

// Errors the driver reports.
const (
	NoError                     Error = gl.NoError
	InvalidEnum                 Error = gl.InvalidEnum
	InvalidValue                Error = gl.InvalidValue
	InvalidOperation            Error = gl.InvalidOperation
	InvalidFramebufferOperation Error = gl.InvalidFramebufferOperation
	OutOfMemory                 Error = gl.OutOfMemory
	StackUnderflow              Error = gl.StackUnderflow
	StackOverflow               Error = gl.StackOverflow
)

// String returns the symbolic name of the error. Log scrapers match on these,
// keep them as they are.
func (e Error) String() string {
	switch e {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	}
	return fmt.Sprintf("GL_UNKNOWN_ERROR(0x%04X)", uint32(e))
}

// Error implements error.
func (e Error) Error() string {
	return e.String()
}

// GetError pops one entry off the error queue, NoError when it is empty.
func (c *Context) GetError() Error {
	return Error(c.gl.GetError())
}

// Errors returns a sequence over the pending driver errors. Each step polls
// the driver, so every error is yielded once and the sequence ends at the
// first NoError. Ranging over it again yields only errors raised since.
func (c *Context) Errors() iter.Seq[Error] {
	return func(yield func(Error) bool) {
		for {
			e := c.GetError()
			if e == NoError || !yield(e) {
				return
			}
		}
	}
}

// DrainErrors empties the error queue and returns what was in it.
func (c *Context) DrainErrors() []Error {
	var errs []Error
	for e := range c.Errors() {
		errs = append(errs, e)
	}
	return errs
}

// LogErrors drains the error queue, logging every entry, and returns how many there were.
func (c *Context) LogErrors() int {
	var n int
	for e := range c.Errors() {
		c.log.Errorf("GL ERROR: %s", e)
		n++
	}
	return n
}
