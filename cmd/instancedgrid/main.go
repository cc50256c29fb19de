// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"runtime"

	"github.com/devblok/vglh/asset/shaders"
	"github.com/devblok/vglh/cmd/internal/host"
	"github.com/devblok/vglh/core"
	"github.com/devblok/vglh/gfx"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var box = packr.NewBox("./shaders")

type attributes struct {
	Pos         gfx.Attribute `gl:"pos"`
	ColorTop    gfx.Attribute `gl:"color_top"`
	ColorBottom gfx.Attribute `gl:"color_bottom"`
}

// Instances drawn, laid out two per row
const instances = 4

var (
	positions    = []mgl32.Vec2{{-0.5, 0.5}, {0.0, 0.5}, {-0.5, 0.0}, {0.0, 0.0}}
	topColors    = []uint32{0xFFFF0000, 0xFF0000FF, 0xFFA526FF, 0xFFFFFFFF}
	bottomColors = []uint32{0xFF0000FF, 0xFFA526FF, 0xFF00FF00, 0xFF000000}
	indices      = []uint16{0, 1, 3, 2}

	rectDim = mgl32.Vec2{0.25, -0.5}
)

var (
	posFormat = gfx.AttributeFormat{
		Size: gfx.Two,
		Type: gfx.Float,
	}
	colorFormat = gfx.AttributeFormat{
		Size:       gfx.Four,
		Type:       gfx.UnsignedByte,
		Normalized: true,
	}
)

func scene(s *core.System, h host.Host) (host.Frame, func(), error) {
	c := s.GL()

	program, err := shaders.Load(c, shaders.Box(box), "grid", h.ShaderExt())
	if err != nil {
		return nil, nil, err
	}

	uniforms, err := gfx.ResolveUniforms(c, program,
		gfx.Bind("rectDim", "rect_dim"),
	)
	if err != nil {
		program.Delete(c)
		return nil, nil, err
	}
	var attrs attributes
	table, err := gfx.LoadAttributes(c, program, &attrs)
	if err != nil {
		program.Delete(c)
		return nil, nil, err
	}
	dim, _ := gfx.UniformOf[gfx.Uniform2f](uniforms, "rectDim")

	buffers := make([]gfx.Buffer, 4)
	gfx.GenBuffers(c, buffers)
	gfx.BufferData(c, buffers[0], gfx.ArrayBuffer, positions, gfx.StaticDraw)
	gfx.BufferData(c, buffers[1], gfx.ArrayBuffer, topColors, gfx.StaticDraw)
	gfx.BufferData(c, buffers[2], gfx.ArrayBuffer, bottomColors, gfx.StaticDraw)
	gfx.BufferData(c, buffers[3], gfx.ElementArrayBuffer, indices, gfx.StaticDraw)
	elements := gfx.BufferElementsU16{Buffer: buffers[3], Count: len(indices)}
	mode := h.QuadMode()

	c.ClearColor(1, 1, 1, 1)

	frame := func(c *gfx.Context, t *core.Time) bool {
		c.Clear(gfx.ColorBufferBit)
		program.Use(c)
		table.EnableAll(c)
		buffers[0].BindTo(c, attrs.Pos, posFormat, 0, 0)
		buffers[1].BindTo(c, attrs.ColorTop, colorFormat, 0, 0)
		buffers[2].BindTo(c, attrs.ColorBottom, colorFormat, 0, 0)
		dim.Set(c, rectDim)
		c.DrawElementsInstanced(mode, elements, instances)
		return true
	}
	release := func() {
		table.DisableAll(c)
		gfx.DeleteBuffers(c, buffers)
		program.Delete(c)
	}
	return frame, release, nil
}

func main() {
	if err := host.Run("instancedgrid", scene); err != nil {
		log.Fatal(err)
	}
}
