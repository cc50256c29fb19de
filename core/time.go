// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) *Time {
	var interval time.Duration
	if cfg.FramesPerSecond <= 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Second / (time.Duration)(cfg.FramesPerSecond)
	}

	return &Time{
		fps:       cfg.FramesPerSecond,
		interval:  interval,
		fpsTicker: time.NewTicker(interval),
		start:     time.Now(),
	}
}

// Time paces the frame loop and counts presented frames
type Time struct {
	fps       int
	interval  time.Duration
	fpsTicker *time.Ticker

	start  time.Time
	frames uint64
}

// Fps gets the set frames per second
func (t *Time) Fps() int {
	return t.fps
}

// Interval is the time between two ticks
func (t *Time) Interval() time.Duration {
	return t.interval
}

// FpsTicker gets the initialized fps ticker
func (t *Time) FpsTicker() *time.Ticker {
	return t.fpsTicker
}

// Frame counts one presented frame
func (t *Time) Frame() {
	t.frames++
}

// Frames is the number of frames counted so far
func (t *Time) Frames() uint64 {
	return t.frames
}

// Elapsed is the time since the service was created
func (t *Time) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop releases the ticker
func (t *Time) Stop() {
	t.fpsTicker.Stop()
}
