// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package sdlhost

import (
	"testing"

	"github.com/devblok/vglh/core"
)

func TestMSAASamples(t *testing.T) {
	for mode, samples := range map[core.MSAA]int{
		core.MSAANone: 0,
		core.MSAA2x:   2,
		core.MSAA4x:   4,
	} {
		if got := msaaSamples(mode); got != samples {
			t.Errorf("%s: expected %d samples, got %d", mode, samples, got)
		}
	}
}

func TestUninitialisedHost(t *testing.T) {
	h := New(DefaultConfiguration)
	if _, err := h.GL(); err == nil {
		t.Error("GL() before InitExtended should fail")
	}
	h.Destroy()
}
