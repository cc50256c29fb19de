// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core brings the driver up once per process and presents frames.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl"
	log "github.com/sirupsen/logrus"
)

// ErrAlreadyInitialised is returned by every Initialise after the first
var ErrAlreadyInitialised = errors.New("driver already initialised")

// initialised is set by the first Initialise and never cleared. A failed
// bring-up leaves the driver in an unknown state, so it cannot be retried either.
var initialised atomic.Bool

// System is the initialised driver
type System struct {
	platform Platform
	cfg      Configuration
	gfx      *gfx.Context
	log      *log.Entry
}

// InitialiseDefault brings p up with DefaultConfiguration
func InitialiseDefault(p Platform) (*System, error) {
	return Initialise(p, DefaultConfiguration())
}

// Initialise configures the shader compiler, brings the driver context up and
// loads the driver function table, in that order. It succeeds at most once per
// process and must run on the thread that will issue every later driver call.
func Initialise(p Platform, cfg Configuration) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !initialised.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialised
	}

	logger := log.WithField("component", "core")
	logger.WithFields(log.Fields{
		"opt_level":     cfg.Compiler.OptLevel,
		"fastmath":      cfg.Compiler.FastMath,
		"fastprecision": cfg.Compiler.FastPrecision,
		"fastint":       cfg.Compiler.FastInt,
	}).Debug("shader compiler configuration")
	p.SetupRuntimeShaderCompiler(cfg.Compiler)

	logger.WithFields(log.Fields{
		"legacy_pool_size": cfg.Init.LegacyPoolSize,
		"ram_threshold":    cfg.Init.RAMThreshold,
		"msaa":             cfg.Init.MSAA,
		"width":            cfg.Display.Width,
		"height":           cfg.Display.Height,
	}).Debug("driver configuration")
	if err := p.InitExtended(cfg.Init, cfg.Display); err != nil {
		return nil, fmt.Errorf("driver bring-up: %w", err)
	}

	functions, err := p.GL()
	if err != nil {
		return nil, fmt.Errorf("loading driver functions: %w", err)
	}

	s := &System{
		platform: p,
		cfg:      cfg,
		gfx:      gfx.NewContext(functions),
		log:      logger,
	}
	logger.WithFields(log.Fields{
		"renderer": s.gfx.DriverString(gl.Renderer),
		"version":  s.gfx.DriverString(gl.Version),
	}).Info("driver initialised")
	return s, nil
}

// GL returns the context every gfx operation goes through
func (s *System) GL() *gfx.Context {
	return s.gfx
}

// Configuration returns what the system was brought up with
func (s *System) Configuration() Configuration {
	return s.cfg
}

// Platform returns the platform the system runs on
func (s *System) Platform() Platform {
	return s.platform
}

// Present swaps buffers with no system dialog on screen
func (s *System) Present() {
	s.platform.SwapBuffers(false)
}

// PresentWithDialog swaps buffers, telling the driver whether a system
// dialog is currently drawn over the frame
func (s *System) PresentWithDialog(active bool) {
	s.platform.SwapBuffers(active)
}

// Loop calls frame once per tick of the configured frame rate until frame
// returns false or ctx is done. Every frame is presented and the driver
// error queue drained into the log afterwards.
func (s *System) Loop(ctx context.Context, frame func(c *gfx.Context, t *Time) bool) error {
	t := NewTime(s.cfg.Time)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.FpsTicker().C:
			if !frame(s.gfx, t) {
				s.log.WithField("frames", t.Frames()).Debug("frame loop finished")
				return nil
			}
			s.Present()
			s.gfx.LogErrors()
			t.Frame()
		}
	}
}
