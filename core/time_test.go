// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	"github.com/devblok/vglh/core"
)

func TestTimeInterval(t *testing.T) {
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 50})
	defer tm.Stop()
	if tm.Interval() != 20*time.Millisecond {
		t.Errorf("incorrect interval %s", tm.Interval())
	}
	if tm.Fps() != 50 {
		t.Error("incorrect fps")
	}

	unlimited := core.NewTime(core.TimeConfiguration{})
	defer unlimited.Stop()
	if unlimited.Interval() != time.Nanosecond {
		t.Errorf("unlimited rate should tick as fast as possible, got %s", unlimited.Interval())
	}
}

func TestTimeCountsFrames(t *testing.T) {
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 1000})
	defer tm.Stop()
	for idx := 0; idx < 3; idx++ {
		<-tm.FpsTicker().C
		tm.Frame()
	}
	if tm.Frames() != 3 {
		t.Errorf("counted %d frames", tm.Frames())
	}
	if tm.Elapsed() <= 0 {
		t.Error("no time elapsed")
	}
}
