// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl/gltest"
)

func uniformsInUse(c *qt.C) (*gltest.Driver, *gfx.Context, frameUniforms) {
	d, ctx := newContext()
	p := buildProgram(c, ctx)
	p.Use(ctx)

	var u frameUniforms
	_, err := gfx.LoadUniforms(ctx, p, &u)
	c.Assert(err, qt.IsNil)
	d.Reset()
	return d, ctx, u
}

func TestUniformSet(t *testing.T) {
	c := qt.New(t)
	d, ctx, u := uniformsInUse(c)

	u.RectDim.Set(ctx, mgl32.Vec2{0.25, 0.5})
	u.Cell.Set(ctx, [2]int32{3, 4})
	u.Weights.Set(ctx, 0.75)

	c.Assert(d.FloatUniforms[0], qt.DeepEquals, []float32{0.25, 0.5})
	c.Assert(d.IntUniforms[6], qt.DeepEquals, []int32{3, 4})
	c.Assert(d.FloatUniforms[2], qt.DeepEquals, []float32{0.75})
	c.Assert(d.CallsNamed("glUniform2fv")[0].Args, qt.DeepEquals, []interface{}{int32(0), int32(1)})
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestUniformMatrixSet(t *testing.T) {
	c := qt.New(t)
	d, ctx, u := uniformsInUse(c)

	m := mgl32.Translate3D(1, 2, 3)
	u.Transform.Set(ctx, false, m)

	c.Assert(d.FloatUniforms[1], qt.DeepEquals, m[:])
	c.Assert(d.Transposed[1], qt.IsFalse)

	u.Transform.Set(ctx, true, m)
	c.Assert(d.Transposed[1], qt.IsTrue)
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestUniformSetMultiAndSubrange(t *testing.T) {
	c := qt.New(t)
	d, ctx, u := uniformsInUse(c)

	u.Weights.SetMulti(ctx, []float32{1, 2, 3, 4})
	for idx := int32(0); idx < 4; idx++ {
		c.Assert(d.FloatUniforms[2+idx], qt.DeepEquals, []float32{float32(idx + 1)})
	}

	u.Weights.SetSubrange(ctx, 2, []float32{9, 10})
	c.Assert(d.FloatUniforms[2], qt.DeepEquals, []float32{1})
	c.Assert(d.FloatUniforms[3], qt.DeepEquals, []float32{2})
	c.Assert(d.FloatUniforms[4], qt.DeepEquals, []float32{9})
	c.Assert(d.FloatUniforms[5], qt.DeepEquals, []float32{10})

	calls := d.CallsNamed("glUniform1fv")
	c.Assert(calls, qt.HasLen, 2)
	c.Assert(calls[0].Args, qt.DeepEquals, []interface{}{int32(2), int32(4)})
	c.Assert(calls[1].Args, qt.DeepEquals, []interface{}{int32(4), int32(2)})
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestUniformEmptyUploadIsANoOp(t *testing.T) {
	c := qt.New(t)
	d, ctx, u := uniformsInUse(c)

	u.Weights.SetMulti(ctx, nil)
	u.RectDim.SetSubrange(ctx, 1, []mgl32.Vec2{})
	u.Transform.SetMulti(ctx, false, nil)

	c.Assert(d.Calls, qt.HasLen, 0)
}

func TestUniformOverrunSurfacesOnErrorQueue(t *testing.T) {
	c := qt.New(t)
	_, ctx, u := uniformsInUse(c)

	// No bounds checks on this side; the driver reports it.
	u.Weights.SetSubrange(ctx, 8, []float32{1, 2})
	c.Assert(ctx.DrainErrors(), qt.DeepEquals, []gfx.Error{gfx.InvalidOperation})
}

func TestUniformUnresolvedLocationIsIgnored(t *testing.T) {
	c := qt.New(t)
	d, ctx, _ := uniformsInUse(c)

	var u gfx.Uniform4f = -1
	c.Assert(u.Valid(), qt.IsFalse)
	u.Set(ctx, mgl32.Vec4{1, 1, 1, 1})
	c.Assert(d.CallsNamed("glUniform4fv"), qt.HasLen, 1)
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestUniformVectorKinds(t *testing.T) {
	c := qt.New(t)
	d, ctx, _ := uniformsInUse(c)

	// tint is a single vec4 at slot 8, tex a sampler at slot 7.
	gfx.Uniform4f(8).Set(ctx, mgl32.Vec4{1, 0.5, 0.25, 1})
	gfx.Uniform1i(7).Set(ctx, 0)
	gfx.Uniform3f(8).SetMulti(ctx, []mgl32.Vec3{{1, 2, 3}})
	gfx.Uniform4i(8).Set(ctx, [4]int32{1, 2, 3, 4})
	gfx.UniformMatrix2f(8).Set(ctx, false, mgl32.Ident2())
	gfx.UniformMatrix3f(8).SetSubrange(ctx, 0, false, []mgl32.Mat3{mgl32.Ident3()})

	c.Assert(d.IntUniforms[7], qt.DeepEquals, []int32{0})
	c.Assert(d.IntUniforms[8], qt.DeepEquals, []int32{1, 2, 3, 4})
	c.Assert(d.FloatUniforms[8], qt.HasLen, 9)
	c.Assert(d.CallNames(), qt.DeepEquals, []string{
		"glUniform4fv",
		"glUniform1iv",
		"glUniform3fv",
		"glUniform4iv",
		"glUniformMatrix2fv",
		"glUniformMatrix3fv",
	})
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func BenchmarkUniformMatrix4fSet(b *testing.B) {
	c := qt.New(b)
	d, ctx, u := uniformsInUse(c)
	m := mgl32.Perspective(mgl32.DegToRad(45), 960.0/544.0, 0.1, 100)
	b.ResetTimer()
	for idx := 0; idx < b.N; idx++ {
		u.Transform.Set(ctx, false, m)
		d.Reset()
	}
}
