// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vglh/core"
	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl"
	"github.com/devblok/vglh/gl/gltest"
)

type fakeHost struct {
	driver *gltest.Driver
}

func (fakeHost) SetupRuntimeShaderCompiler(core.CompilerConfiguration) {}
func (fakeHost) InitExtended(core.InitConfiguration, core.DisplayConfiguration) error {
	return nil
}
func (h fakeHost) GL() (gl.Functions, error) { return h.driver, nil }
func (fakeHost) SwapBuffers(bool)            {}
func (fakeHost) Quit() bool                  { return false }
func (fakeHost) ShaderExt() string           { return "glsl" }
func (fakeHost) QuadMode() gfx.Mode          { return gfx.TriangleFan }
func (fakeHost) Close() error                { return nil }

func TestScene(t *testing.T) {
	c := qt.New(t)
	h := fakeHost{driver: gltest.New()}
	s, err := core.InitialiseDefault(h)
	c.Assert(err, qt.IsNil)

	frame, release, err := scene(s, h)
	c.Assert(err, qt.IsNil)
	tm := core.NewTime(core.TimeConfiguration{})
	defer tm.Stop()
	c.Assert(frame(s.GL(), tm), qt.IsTrue)

	c.Assert(h.driver.Draws, qt.HasLen, 1)
	draw := h.driver.Draws[0]
	c.Assert(draw.Mode, qt.Equals, uint32(gl.TriangleFan))
	c.Assert(draw.Count, qt.Equals, int32(4))
	c.Assert(draw.Type, qt.Equals, uint32(gl.UnsignedShort))
	c.Assert(draw.Instances, qt.Equals, int32(instances))
	c.Assert(h.driver.BufferContents(draw.ElementBuffer), qt.DeepEquals, []byte{0, 0, 1, 0, 3, 0, 2, 0})
	c.Assert(h.driver.EnabledSlots(), qt.Equals, 3)

	pos, top, bottom := h.driver.Pointers[0], h.driver.Pointers[1], h.driver.Pointers[2]
	c.Assert(pos.Size, qt.Equals, int32(2))
	c.Assert(pos.Type, qt.Equals, uint32(gl.Float))
	c.Assert(top.Normalized, qt.IsTrue)
	c.Assert(h.driver.BufferContents(top.Buffer)[:4], qt.DeepEquals, []byte{0x00, 0x00, 0xFF, 0xFF})
	c.Assert(h.driver.BufferContents(bottom.Buffer)[:4], qt.DeepEquals, []byte{0xFF, 0x00, 0x00, 0xFF})
	c.Assert(h.driver.FloatUniforms[0], qt.DeepEquals, []float32{0.25, -0.5})
	c.Assert(s.GL().DrainErrors(), qt.HasLen, 0)

	release()
	c.Assert(h.driver.EnabledSlots(), qt.Equals, 0)
	c.Assert(h.driver.IsBuffer(draw.ElementBuffer), qt.IsFalse)
}
