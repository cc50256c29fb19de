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
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

var box = packr.NewBox("./shaders")

type attributes struct {
	Pos   gfx.Attribute `gl:"aPos"`
	Color gfx.Attribute `gl:"aColor"`
}

var (
	vertexPos   = []float32{0.0, 0.5, 0.5, -0.5, -0.5, -0.5}
	vertexColor = []uint32{0xFF0000FF, 0xFF00FF00, 0xFFFF0000}
	indices     = []uint32{0, 1, 2}
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

	program, err := shaders.Load(c, shaders.Box(box), "triangle", h.ShaderExt())
	if err != nil {
		return nil, nil, err
	}

	var attrs attributes
	table, err := gfx.LoadAttributes(c, program, &attrs)
	if err != nil {
		program.Delete(c)
		return nil, nil, err
	}

	buffers := make([]gfx.Buffer, 3)
	gfx.GenBuffers(c, buffers)
	gfx.BufferData(c, buffers[0], gfx.ArrayBuffer, vertexPos, gfx.StaticDraw)
	gfx.BufferData(c, buffers[1], gfx.ArrayBuffer, vertexColor, gfx.StaticDraw)
	gfx.BufferData(c, buffers[2], gfx.ElementArrayBuffer, indices, gfx.StaticDraw)
	elements := gfx.BufferElementsU32{Buffer: buffers[2], Count: len(indices)}

	c.ClearColor(1, 1, 1, 1)

	frame := func(c *gfx.Context, t *core.Time) bool {
		c.Clear(gfx.ColorBufferBit)
		program.Use(c)
		table.EnableAll(c)
		buffers[0].BindTo(c, attrs.Pos, posFormat, 0, 0)
		buffers[1].BindTo(c, attrs.Color, colorFormat, 0, 0)
		c.DrawElements(gfx.Triangles, elements)
		return true
	}
	release := func() {
		gfx.DeleteBuffers(c, buffers)
		program.Delete(c)
	}
	return frame, release, nil
}

func main() {
	if err := host.Run("triangle", scene); err != nil {
		log.Fatal(err)
	}
}
