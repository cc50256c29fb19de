// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gl

// Boolean values as the driver sees them.
const (
	False = 0
	True  = 1
)

// Errors reported by GetError.
const (
	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	StackOverflow               = 0x0503
	StackUnderflow              = 0x0504
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)

// Primitive modes.
const (
	Points        = 0x0000
	Lines         = 0x0001
	LineLoop      = 0x0002
	LineStrip     = 0x0003
	Triangles     = 0x0004
	TriangleStrip = 0x0005
	TriangleFan   = 0x0006
	// Quads is a legacy mode that vitaGL keeps around.
	Quads = 0x0007
)

// Scalar data types.
const (
	Byte          = 0x1400
	UnsignedByte  = 0x1401
	Short         = 0x1402
	UnsignedShort = 0x1403
	Int           = 0x1404
	UnsignedInt   = 0x1405
	Float         = 0x1406
	Fixed         = 0x140C
)

// Buffer targets and usage hints.
const (
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893

	StreamDraw  = 0x88E0
	StaticDraw  = 0x88E4
	DynamicDraw = 0x88E8
)

// Texture targets, units and parameters.
const (
	Texture2D      = 0x0DE1
	TextureCubeMap = 0x8513
	Texture0       = 0x84C0

	TextureMagFilter = 0x2800
	TextureMinFilter = 0x2801
	TextureWrapS     = 0x2802
	TextureWrapT     = 0x2803

	Nearest              = 0x2600
	Linear               = 0x2601
	NearestMipmapNearest = 0x2700
	LinearMipmapNearest  = 0x2701
	NearestMipmapLinear  = 0x2702
	LinearMipmapLinear   = 0x2703
	Repeat               = 0x2901
	ClampToEdge          = 0x812F
	MirroredRepeat       = 0x8370
)

// Pixel formats.
const (
	Alpha          = 0x1906
	RGB            = 0x1907
	RGBA           = 0x1908
	Luminance      = 0x1909
	LuminanceAlpha = 0x190A
)

// Shader kinds and object queries.
const (
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31

	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84
)

// Capabilities and blending factors.
const (
	CullFace  = 0x0B44
	DepthTest = 0x0B71
	Blend     = 0x0BE2

	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303
)

// Clear masks.
const (
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400
	ColorBufferBit   = 0x00004000
)

// GetString names.
const (
	Vendor                 = 0x1F00
	Renderer               = 0x1F01
	Version                = 0x1F02
	Extensions             = 0x1F03
	ShadingLanguageVersion = 0x8B8C
)
