// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sdlhost runs the helpers on a desktop: an SDL2 window with an
// OpenGL ES context stands in for the console's display.
package sdlhost

import (
	"errors"
	"fmt"

	"github.com/devblok/vglh/core"
	"github.com/devblok/vglh/gl"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

// Configuration of the host window and context
type Configuration struct {
	Title string

	// MajorVersion and MinorVersion of the OpenGL ES context
	MajorVersion int
	MinorVersion int

	VSync bool
}

// DefaultConfiguration asks for an ES 3.0 context, the first with instanced draws in core
var DefaultConfiguration = Configuration{
	Title:        "vglh",
	MajorVersion: 3,
	MinorVersion: 0,
	VSync:        true,
}

// Host implements core.Platform on SDL2
type Host struct {
	cfg     Configuration
	window  *sdl.Window
	context sdl.GLContext
	log     *log.Entry
}

var _ core.Platform = (*Host)(nil)

// New creates a host. The window is opened by InitExtended.
func New(cfg Configuration) *Host {
	return &Host{
		cfg: cfg,
		log: log.WithField("component", "sdlhost"),
	}
}

// SetupRuntimeShaderCompiler implements core.Platform. The desktop driver
// compiles with its own settings, so they are only logged.
func (h *Host) SetupRuntimeShaderCompiler(cfg core.CompilerConfiguration) {
	h.log.WithField("opt_level", cfg.OptLevel).Debug("shader compiler settings ignored on desktop")
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

func msaaSamples(m core.MSAA) int {
	switch m {
	case core.MSAA2x:
		return 2
	case core.MSAA4x:
		return 4
	}
	return 0
}

// InitExtended implements core.Platform. Memory pool sizes have no desktop
// equivalent and are ignored.
func (h *Host) InitExtended(init core.InitConfiguration, display core.DisplayConfiguration) error {
	if h.window != nil {
		return errors.New("sdlhost: already initialised")
	}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}

	attributes := []glAttribute{
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_ES},
		{sdl.GL_CONTEXT_MAJOR_VERSION, h.cfg.MajorVersion},
		{sdl.GL_CONTEXT_MINOR_VERSION, h.cfg.MinorVersion},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if samples := msaaSamples(init.MSAA); samples > 0 {
		attributes = append(attributes,
			glAttribute{sdl.GL_MULTISAMPLEBUFFERS, 1},
			glAttribute{sdl.GL_MULTISAMPLESAMPLES, samples},
		)
	}
	for _, a := range attributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return fmt.Errorf("sdl attribute %d: %w", a.attr, err)
		}
	}

	window, err := sdl.CreateWindow(h.cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		display.Width,
		display.Height,
		sdl.WINDOW_OPENGL)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	context, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating GL context: %w", err)
	}

	interval := 0
	if h.cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		h.log.WithError(err).Warn("swap interval not supported")
	}

	h.window, h.context = window, context
	h.log.WithFields(log.Fields{
		"width":  display.Width,
		"height": display.Height,
		"msaa":   init.MSAA,
	}).Info("window opened")
	return nil
}

// GL implements core.Platform
func (h *Host) GL() (gl.Functions, error) {
	if h.window == nil {
		return nil, errors.New("sdlhost: not initialised")
	}
	procs, err := gl.Load(func(name string) uintptr {
		return uintptr(sdl.GLGetProcAddress(name))
	})
	if err != nil {
		return nil, err
	}
	return procs, nil
}

// SwapBuffers implements core.Platform. There are no system dialogs on the
// desktop, the flag is ignored.
func (h *Host) SwapBuffers(commonDialog bool) {
	h.window.GLSwap()
}

// PollQuit drains pending window events and reports whether the window was
// closed or escape pressed.
func (h *Host) PollQuit() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				quit = true
			}
		case *sdl.QuitEvent:
			quit = true
		}
	}
	return quit
}

// Destroy closes the window and shuts SDL down
func (h *Host) Destroy() {
	if h.window == nil {
		return
	}
	sdl.GLDeleteContext(h.context)
	h.window.Destroy()
	sdl.Quit()
	h.window = nil
}
