// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl"
)

func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestGenAndDeleteTextures(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	textures := make([]gfx.Texture, 2)
	gfx.GenTextures(ctx, textures)
	c.Assert(textures[0].Valid(), qt.IsTrue)
	c.Assert(textures[1].Valid(), qt.IsTrue)
	c.Assert(textures[0], qt.Not(qt.Equals), textures[1])

	first := textures[0]
	gfx.DeleteTextures(ctx, textures)
	c.Assert(textures, qt.DeepEquals, []gfx.Texture{0, 0})
	c.Assert(d.IsTexture(first.ID()), qt.IsFalse)
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestTextureUpload(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	textures := make([]gfx.Texture, 1)
	gfx.GenTextures(ctx, textures)
	gfx.ActiveTexture(ctx, 1)
	textures[0].BindThen(ctx, gfx.Texture2D, func(bt gfx.BoundTexture) {
		c.Assert(bt.Target(), qt.Equals, gfx.Texture2D)
		bt.Upload(checkerboard(2, 2))
		bt.ParameterI(gfx.MinFilter, gfx.LinearMipmapLinear)
		bt.ParameterI(gfx.WrapS, gfx.ClampToEdge)
		bt.GenerateMipmap()
	})

	c.Assert(d.ActiveUnit, qt.Equals, uint32(gl.Texture0+1))
	tex := d.TextureState(textures[0].ID())
	c.Assert(tex.Width, qt.Equals, int32(2))
	c.Assert(tex.Height, qt.Equals, int32(2))
	c.Assert(tex.Format, qt.Equals, uint32(gl.RGBA))
	c.Assert(tex.Pixels, qt.DeepEquals, []byte{
		255, 0, 0, 255, 0, 0, 255, 255,
		0, 0, 255, 255, 255, 0, 0, 255,
	})
	c.Assert(tex.Parameters[gl.TextureMinFilter], qt.Equals, int32(gl.LinearMipmapLinear))
	c.Assert(tex.Parameters[gl.TextureWrapS], qt.Equals, int32(gl.ClampToEdge))
	c.Assert(tex.Mipmapped, qt.IsTrue)
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestTextureSubImage(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	textures := make([]gfx.Texture, 1)
	gfx.GenTextures(ctx, textures)
	textures[0].BindThen(ctx, gfx.Texture2D, func(bt gfx.BoundTexture) {
		bt.Image2D(0, gfx.Luminance, 4, 2, nil)
		bt.SubImage2D(0, 1, 1, 2, 1, gfx.Luminance, []byte{7, 8})
	})

	c.Assert(d.TextureState(textures[0].ID()).Pixels, qt.DeepEquals, []byte{
		0, 0, 0, 0,
		0, 7, 8, 0,
	})
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestTextureWithoutBindingReportsError(t *testing.T) {
	c := qt.New(t)
	_, ctx := newContext()

	gfx.Texture(0).BindThen(ctx, gfx.Texture2D, func(bt gfx.BoundTexture) {
		bt.GenerateMipmap()
	})
	c.Assert(ctx.DrainErrors(), qt.DeepEquals, []gfx.Error{gfx.InvalidOperation})
}

func TestToRGBA(t *testing.T) {
	c := qt.New(t)

	src := checkerboard(4, 4)
	sub := src.SubImage(image.Rect(1, 1, 3, 3))
	rgba := gfx.ToRGBA(sub)
	c.Assert(rgba.Rect, qt.Equals, image.Rect(0, 0, 2, 2))
	c.Assert(rgba.RGBAAt(0, 0), qt.Equals, color.RGBA{R: 255, A: 255})
	c.Assert(rgba.RGBAAt(1, 0), qt.Equals, color.RGBA{B: 255, A: 255})

	packed := image.NewRGBA(image.Rect(0, 0, 3, 3))
	c.Assert(gfx.ToRGBA(packed), qt.Equals, packed)
}

func BenchmarkToRGBA(b *testing.B) {
	img := checkerboard(256, 256)
	for idx := 0; idx < b.N; idx++ {
		gfx.ToRGBA(img)
	}
}
