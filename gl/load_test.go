// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gl_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vglh/gl"
)

func TestLoadNilLookup(t *testing.T) {
	c := qt.New(t)
	procs, err := gl.Load(nil)
	c.Assert(procs, qt.IsNil)
	c.Assert(err, qt.ErrorMatches, `gl.Load\(\): nil proc address lookup`)
}

func TestLoadReportsEveryMissingProc(t *testing.T) {
	c := qt.New(t)

	var asked []string
	procs, err := gl.Load(func(name string) uintptr {
		asked = append(asked, name)
		switch name {
		case "glVertexAttribDivisor", "glDrawElementsInstanced":
			return 0
		}
		return 0x1000
	})
	c.Assert(procs, qt.IsNil)
	c.Assert(err, qt.ErrorMatches, `Missing GL procs: \[glVertexAttribDivisor,glDrawElementsInstanced\]`)

	var missing gl.MissingProcsError
	c.Assert(err, qt.ErrorAs, &missing)
	c.Assert(missing, qt.HasLen, 2)

	// Every name is looked up, not just the ones before the first miss.
	c.Assert(asked, qt.DeepEquals, gl.ProcNames())
}

func TestLoadBindsEveryProc(t *testing.T) {
	c := qt.New(t)

	addr := uintptr(0x1000)
	procs, err := gl.Load(func(name string) uintptr {
		addr += 0x10
		return addr
	})
	c.Assert(err, qt.IsNil)
	c.Assert(procs, qt.IsNotNil)
}

func TestProcNamesAreUnique(t *testing.T) {
	c := qt.New(t)

	names := gl.ProcNames()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		c.Assert(seen[name], qt.IsFalse, qt.Commentf("duplicate %s", name))
		seen[name] = true
	}
	c.Assert(seen["glGetError"], qt.IsTrue)
	c.Assert(seen["glDrawElementsInstanced"], qt.IsTrue)
}

func TestPtrOffset(t *testing.T) {
	c := qt.New(t)
	c.Assert(uintptr(gl.PtrOffset(0)), qt.Equals, uintptr(0))
	c.Assert(uintptr(gl.PtrOffset(24)), qt.Equals, uintptr(24))
}
