// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import (
	"image"
	"runtime"
	"unsafe"

	"github.com/devblok/vglh/gl"
	"golang.org/x/image/draw"
)

// TextureTarget is a binding point for textures.
type TextureTarget uint32

// Texture binding points.
const (
	Texture2D      TextureTarget = gl.Texture2D
	TextureCubeMap TextureTarget = gl.TextureCubeMap
)

// PixelFormat is the layout of a pixel in client memory and on the driver side.
type PixelFormat uint32

// Pixel formats, all with unsigned byte components.
const (
	Alpha          PixelFormat = gl.Alpha
	RGB            PixelFormat = gl.RGB
	RGBA           PixelFormat = gl.RGBA
	Luminance      PixelFormat = gl.Luminance
	LuminanceAlpha PixelFormat = gl.LuminanceAlpha
)

// TextureParameter names a sampling parameter set with ParameterI.
type TextureParameter uint32

// Sampling parameters.
const (
	MagFilter TextureParameter = gl.TextureMagFilter
	MinFilter TextureParameter = gl.TextureMinFilter
	WrapS     TextureParameter = gl.TextureWrapS
	WrapT     TextureParameter = gl.TextureWrapT
)

// Values for the sampling parameters.
const (
	Nearest              int32 = gl.Nearest
	Linear               int32 = gl.Linear
	NearestMipmapNearest int32 = gl.NearestMipmapNearest
	LinearMipmapNearest  int32 = gl.LinearMipmapNearest
	NearestMipmapLinear  int32 = gl.NearestMipmapLinear
	LinearMipmapLinear   int32 = gl.LinearMipmapLinear
	Repeat               int32 = gl.Repeat
	ClampToEdge          int32 = gl.ClampToEdge
	MirroredRepeat       int32 = gl.MirroredRepeat
)

// Texture is a driver texture object. The zero Texture is "no texture".
type Texture uint32

// ID returns the driver name of the texture.
func (t Texture) ID() uint32 {
	return uint32(t)
}

// Valid reports whether t names a texture rather than none.
func (t Texture) Valid() bool {
	return t != 0
}

// Bind makes t the texture bound to target on the active unit.
func (t Texture) Bind(c *Context, target TextureTarget) {
	c.gl.BindTexture(uint32(target), uint32(t))
}

// BindThen binds t to target and hands the binding to then.
func (t Texture) BindThen(c *Context, target TextureTarget, then func(BoundTexture)) {
	t.Bind(c, target)
	then(BoundTexture{c: c, target: target})
}

// ActiveTexture selects the texture unit Bind affects. Unit 0 is the default.
func ActiveTexture(c *Context, unit uint32) {
	c.gl.ActiveTexture(gl.Texture0 + unit)
}

// GenTextures fills textures with freshly generated texture names.
func GenTextures(c *Context, textures []Texture) {
	if len(textures) == 0 {
		return
	}
	c.gl.GenTextures(int32(len(textures)), (*uint32)(unsafe.Pointer(&textures[0])))
}

// DeleteTextures deletes the textures and resets every entry to the zero Texture.
func DeleteTextures(c *Context, textures []Texture) {
	if len(textures) == 0 {
		return
	}
	c.gl.DeleteTextures(int32(len(textures)), (*uint32)(unsafe.Pointer(&textures[0])))
	clear(textures)
}

// BoundTexture is the texture currently bound to a target.
// It is only meaningful until the target is rebound.
type BoundTexture struct {
	c      *Context
	target TextureTarget
}

// Target returns the binding point.
func (bt BoundTexture) Target() TextureTarget {
	return bt.target
}

// Image2D replaces level of the bound texture with width x height pixels.
// A nil pixels slice allocates the storage without filling it.
func (bt BoundTexture) Image2D(level int32, format PixelFormat, width, height int32, pixels []byte) {
	bt.c.gl.TexImage2D(uint32(bt.target), level, int32(format), width, height, 0,
		uint32(format), gl.UnsignedByte, sliceData(pixels))
	runtime.KeepAlive(pixels)
}

// SubImage2D overwrites a rectangle of level of the bound texture.
func (bt BoundTexture) SubImage2D(level, x, y, width, height int32, format PixelFormat, pixels []byte) {
	bt.c.gl.TexSubImage2D(uint32(bt.target), level, x, y, width, height,
		uint32(format), gl.UnsignedByte, sliceData(pixels))
	runtime.KeepAlive(pixels)
}

// Upload replaces level 0 of the bound texture with img, converted to RGBA.
func (bt BoundTexture) Upload(img image.Image) {
	rgba := ToRGBA(img)
	size := rgba.Rect.Size()
	bt.Image2D(0, RGBA, int32(size.X), int32(size.Y), rgba.Pix)
}

// GenerateMipmap builds the mipmap chain from level 0.
func (bt BoundTexture) GenerateMipmap() {
	bt.c.gl.GenerateMipmap(uint32(bt.target))
}

// ParameterI sets a sampling parameter of the bound texture.
func (bt BoundTexture) ParameterI(param TextureParameter, value int32) {
	bt.c.gl.TexParameteri(uint32(bt.target), uint32(param), value)
}

// ToRGBA returns img as tightly packed RGBA with its origin at (0, 0).
// Images that already are in that layout are returned as they are.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}
