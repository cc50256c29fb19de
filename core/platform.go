// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/devblok/vglh/gl"

// Platform is whatever owns the driver context: the vitaGL library on the
// device, or a development host on a desktop. Every method has to be called
// from the thread that owns the context.
type Platform interface {
	// SetupRuntimeShaderCompiler configures the compiler used for shader
	// sources. It is called before InitExtended.
	SetupRuntimeShaderCompiler(cfg CompilerConfiguration)

	// InitExtended brings the driver context up
	InitExtended(init InitConfiguration, display DisplayConfiguration) error

	// GL returns the driver function table of the initialised context
	GL() (gl.Functions, error)

	// SwapBuffers presents the frame. commonDialog must be true while a
	// system dialog is drawn over the application.
	SwapBuffers(commonDialog bool)
}
