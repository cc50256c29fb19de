// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/vglh/core"
	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl"
	"github.com/devblok/vglh/gl/gltest"
)

type fakePlatform struct {
	calls    []string
	compiler core.CompilerConfiguration
	init     core.InitConfiguration
	display  core.DisplayConfiguration
	swaps    []bool

	initErr error
	glErr   error
	driver  *gltest.Driver
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{driver: gltest.New()}
}

func (p *fakePlatform) SetupRuntimeShaderCompiler(cfg core.CompilerConfiguration) {
	p.calls = append(p.calls, "compiler")
	p.compiler = cfg
}

func (p *fakePlatform) InitExtended(init core.InitConfiguration, display core.DisplayConfiguration) error {
	p.calls = append(p.calls, "init")
	p.init, p.display = init, display
	return p.initErr
}

func (p *fakePlatform) GL() (gl.Functions, error) {
	p.calls = append(p.calls, "gl")
	if p.glErr != nil {
		return nil, p.glErr
	}
	return p.driver, nil
}

func (p *fakePlatform) SwapBuffers(commonDialog bool) {
	p.swaps = append(p.swaps, commonDialog)
}

func initialise(c *qt.C, p core.Platform, cfg core.Configuration) (*core.System, error) {
	core.ResetInitialised()
	c.Cleanup(core.ResetInitialised)
	return core.Initialise(p, cfg)
}

func TestInitialiseOrder(t *testing.T) {
	c := qt.New(t)
	p := newFakePlatform()

	sys, err := initialise(c, p, core.DefaultConfiguration())
	c.Assert(err, qt.IsNil)
	c.Assert(p.calls, qt.DeepEquals, []string{"compiler", "init", "gl"})
	c.Assert(p.compiler, qt.Equals, core.CompilerConfiguration{OptLevel: 2, FastMath: true, FastInt: true})
	c.Assert(p.init, qt.Equals, core.InitConfiguration{RAMThreshold: 65 * 1024 * 1024})
	c.Assert(p.display, qt.Equals, core.DisplayConfiguration{Width: 960, Height: 544})
	c.Assert(sys.GL().Functions(), qt.Equals, gl.Functions(p.driver))
	c.Assert(sys.Configuration(), qt.Equals, core.DefaultConfiguration())
	c.Assert(sys.Platform(), qt.Equals, core.Platform(p))
}

func TestInitialiseOnlyOnce(t *testing.T) {
	c := qt.New(t)

	_, err := initialise(c, newFakePlatform(), core.DefaultConfiguration())
	c.Assert(err, qt.IsNil)

	p := newFakePlatform()
	sys, err := core.InitialiseDefault(p)
	c.Assert(sys, qt.IsNil)
	c.Assert(err, qt.Equals, core.ErrAlreadyInitialised)
	c.Assert(p.calls, qt.HasLen, 0)
}

func TestInitialiseFailures(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("boom")

	p := newFakePlatform()
	p.initErr = boom
	_, err := initialise(c, p, core.DefaultConfiguration())
	c.Assert(err, qt.ErrorIs, boom)
	c.Assert(err, qt.ErrorMatches, "driver bring-up: boom")
	c.Assert(p.calls, qt.DeepEquals, []string{"compiler", "init"})

	// A failed bring-up is not retried.
	_, err = core.InitialiseDefault(newFakePlatform())
	c.Assert(err, qt.Equals, core.ErrAlreadyInitialised)

	p = newFakePlatform()
	p.glErr = gl.MissingProcsError{"glDrawElementsInstanced"}
	_, err = initialise(c, p, core.DefaultConfiguration())
	var missing gl.MissingProcsError
	c.Assert(err, qt.ErrorAs, &missing)
	c.Assert(err, qt.ErrorMatches, `loading driver functions: Missing GL procs: \[glDrawElementsInstanced\]`)
}

func TestInitialiseRejectsInvalidConfiguration(t *testing.T) {
	c := qt.New(t)
	cfg := core.DefaultConfiguration()
	cfg.Display.Width = 0

	p := newFakePlatform()
	_, err := initialise(c, p, cfg)
	c.Assert(err, qt.ErrorIs, core.ErrInvalidConfiguration)
	c.Assert(p.calls, qt.HasLen, 0)

	// Nothing reached the driver, so bring-up is still possible.
	_, err = core.InitialiseDefault(p)
	c.Assert(err, qt.IsNil)
}

func TestPresent(t *testing.T) {
	c := qt.New(t)
	p := newFakePlatform()
	sys, err := initialise(c, p, core.DefaultConfiguration())
	c.Assert(err, qt.IsNil)

	sys.Present()
	sys.PresentWithDialog(true)
	sys.PresentWithDialog(false)
	c.Assert(p.swaps, qt.DeepEquals, []bool{false, true, false})
}

func TestLoop(t *testing.T) {
	c := qt.New(t)
	hook := test.NewGlobal()
	c.Cleanup(func() { log.StandardLogger().ReplaceHooks(make(log.LevelHooks)) })

	p := newFakePlatform()
	cfg := core.DefaultConfiguration()
	cfg.Time.FramesPerSecond = 0
	sys, err := initialise(c, p, cfg)
	c.Assert(err, qt.IsNil)

	var seen []uint64
	err = sys.Loop(context.Background(), func(ctx *gfx.Context, t *core.Time) bool {
		seen = append(seen, t.Frames())
		if t.Frames() == 1 {
			p.driver.Push(gl.InvalidOperation)
		}
		return t.Frames() < 3
	})
	c.Assert(err, qt.IsNil)
	c.Assert(seen, qt.DeepEquals, []uint64{0, 1, 2, 3})
	c.Assert(p.swaps, qt.HasLen, 3)

	var logged []string
	for _, e := range hook.AllEntries() {
		if e.Level == log.ErrorLevel {
			logged = append(logged, e.Message)
		}
	}
	c.Assert(logged, qt.DeepEquals, []string{"GL ERROR: GL_INVALID_OPERATION"})
}

func TestLoopStopsWithContext(t *testing.T) {
	c := qt.New(t)
	p := newFakePlatform()
	sys, err := initialise(c, p, core.DefaultConfiguration())
	c.Assert(err, qt.IsNil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = sys.Loop(ctx, func(*gfx.Context, *core.Time) bool { return true })
	c.Assert(err, qt.Equals, context.DeadlineExceeded)
}
