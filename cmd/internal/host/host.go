// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package host picks the platform the example programs run on and drives
// their frame loop.
package host

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/devblok/vglh/core"
	"github.com/devblok/vglh/core/sdlhost"
	"github.com/devblok/vglh/gfx"
	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

// Platform names accepted by -platform
const (
	SDL = "sdl"
	VGL = "vgl"
)

// EnvLibrary overrides the vitaGL shared object path
const EnvLibrary = "VGL_LIBRARY"

// EnvFile is loaded on top of the configuration when present
const EnvFile = ".env"

// Flags shared by the example programs
var (
	platform   = flag.String("platform", SDL, "Platform to run on: sdl or vgl")
	configPath = flag.String("config", "", "YAML configuration file")
	verbose    = flag.Bool("v", false, "Log at debug level")
)

// Host is a platform the examples can be brought up on
type Host interface {
	core.Platform

	// Quit reports whether the user asked to stop
	Quit() bool

	// ShaderExt is the extension of the shader sources the platform compiles
	ShaderExt() string

	// QuadMode is the mode quads are drawn with. Indices are given in quad
	// order, which a triangle fan draws the same.
	QuadMode() gfx.Mode

	Close() error
}

type sdlHost struct {
	*sdlhost.Host
}

func (h sdlHost) Quit() bool         { return h.PollQuit() }
func (h sdlHost) ShaderExt() string  { return "glsl" }
func (h sdlHost) QuadMode() gfx.Mode { return gfx.TriangleFan }
func (h sdlHost) Close() error {
	h.Destroy()
	return nil
}

type vglHost struct {
	*core.VGL
}

func (vglHost) Quit() bool         { return false }
func (vglHost) ShaderExt() string  { return "cg" }
func (vglHost) QuadMode() gfx.Mode { return gfx.Quads }

// Open creates the host named by kind
func Open(kind, title string) (Host, error) {
	switch kind {
	case SDL:
		cfg := sdlhost.DefaultConfiguration
		cfg.Title = title
		return sdlHost{sdlhost.New(cfg)}, nil
	case VGL:
		v, err := core.OpenVGL(envy.Get(EnvLibrary, core.DefaultVGLLibrary))
		if err != nil {
			return nil, err
		}
		return vglHost{v}, nil
	}
	return nil, fmt.Errorf("unknown platform %q", kind)
}

// Configuration loads the configuration named by -config and the .env file
// in the working directory, if there is one
func Configuration() (core.Configuration, error) {
	var envFiles []string
	if _, err := os.Stat(EnvFile); err == nil {
		envFiles = append(envFiles, EnvFile)
	}
	return core.LoadConfiguration(*configPath, envFiles...)
}

// Frame draws one frame. Returning false ends the program.
type Frame func(c *gfx.Context, t *core.Time) bool

// Scene sets up what a program draws and returns the per frame callback
// and a function releasing what it created
type Scene func(s *core.System, h Host) (Frame, func(), error)

// Start parses flags, loads the configuration and brings the platform up.
// Close the returned host when done.
func Start(title string) (*core.System, Host, error) {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := Configuration()
	if err != nil {
		return nil, nil, err
	}

	h, err := Open(*platform, title)
	if err != nil {
		return nil, nil, err
	}

	s, err := core.Initialise(h, cfg)
	if err != nil {
		h.Close()
		return nil, nil, err
	}
	return s, h, nil
}

// Run starts the platform and runs scene until the window is closed, the
// process is interrupted or the frame callback gives up. It must be called
// from the main goroutine with the OS thread locked.
func Run(title string, scene Scene) error {
	s, h, err := Start(title)
	if err != nil {
		return err
	}
	defer h.Close()

	frame, release, err := scene(s, h)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = s.Loop(ctx, func(c *gfx.Context, t *core.Time) bool {
		if h.Quit() {
			return false
		}
		return frame(c, t)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
