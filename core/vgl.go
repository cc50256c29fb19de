// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

//go:build darwin || freebsd || linux

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devblok/vglh/gl"
	"github.com/ebitengine/purego"
)

// DefaultVGLLibrary is the shared object OpenVGL loads when none is named
const DefaultVGLLibrary = "libvitaGL.so"

// VGL is the vitaGL library, bound at runtime. It implements Platform.
type VGL struct {
	library string
	handle  uintptr

	vglSetupRuntimeShaderCompiler func(optLevel, useFastmath, useFastprecision, useFastint int32)
	vglInitExtended               func(legacyPoolSize, width, height, ramThreshold int32, msaa uint32) uint8
	vglGetProcAddress             func(name string) uintptr
	vglSwapBuffers                func(hasCommonDialog uint8)
}

var _ Platform = (*VGL)(nil)

// MissingSymbolsError lists every library symbol OpenVGL could not find
type MissingSymbolsError struct {
	Library string
	Symbols []string
}

func (e *MissingSymbolsError) Error() string {
	return fmt.Sprintf("%s: missing symbols: [%s]", e.Library, strings.Join(e.Symbols, ","))
}

// OpenVGL loads library and binds the vitaGL entry points. Every symbol is
// looked up before any is bound.
func OpenVGL(library string) (*VGL, error) {
	if library == "" {
		library = DefaultVGLLibrary
	}
	handle, err := purego.Dlopen(library, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", library, err)
	}

	v := &VGL{library: library, handle: handle}
	symbols := []struct {
		name string
		fptr interface{}
	}{
		{"vglSetupRuntimeShaderCompiler", &v.vglSetupRuntimeShaderCompiler},
		{"vglInitExtended", &v.vglInitExtended},
		{"vglGetProcAddress", &v.vglGetProcAddress},
		{"vglSwapBuffers", &v.vglSwapBuffers},
	}

	addrs := make([]uintptr, len(symbols))
	var missing []string
	for idx, sym := range symbols {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil || addr == 0 {
			missing = append(missing, sym.name)
			continue
		}
		addrs[idx] = addr
	}
	if len(missing) > 0 {
		purego.Dlclose(handle)
		return nil, &MissingSymbolsError{Library: library, Symbols: missing}
	}

	for idx, sym := range symbols {
		purego.RegisterFunc(sym.fptr, addrs[idx])
	}
	return v, nil
}

// Library is the path the library was opened from
func (v *VGL) Library() string {
	return v.library
}

// SetupRuntimeShaderCompiler implements Platform
func (v *VGL) SetupRuntimeShaderCompiler(cfg CompilerConfiguration) {
	v.vglSetupRuntimeShaderCompiler(cfg.OptLevel, flag(cfg.FastMath), flag(cfg.FastPrecision), flag(cfg.FastInt))
}

// InitExtended implements Platform
func (v *VGL) InitExtended(init InitConfiguration, display DisplayConfiguration) error {
	ok := v.vglInitExtended(init.LegacyPoolSize, display.Width, display.Height, init.RAMThreshold, uint32(init.MSAA))
	if ok == gl.False {
		return errors.New("vglInitExtended failed")
	}
	return nil
}

// GL implements Platform
func (v *VGL) GL() (gl.Functions, error) {
	procs, err := gl.Load(v.vglGetProcAddress)
	if err != nil {
		return nil, err
	}
	return procs, nil
}

// SwapBuffers implements Platform
func (v *VGL) SwapBuffers(commonDialog bool) {
	var has uint8 = gl.False
	if commonDialog {
		has = gl.True
	}
	v.vglSwapBuffers(has)
}

// Close unloads the library. Nothing bound from it may be called afterwards.
func (v *VGL) Close() error {
	return purego.Dlclose(v.handle)
}

func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
