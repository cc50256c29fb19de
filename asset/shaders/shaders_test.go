// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package shaders_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/vglh/asset/kar"
	"github.com/devblok/vglh/asset/shaders"
	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl/gltest"
)

var (
	grid = shaders.Pair{Name: "grid", Ext: "glsl"}
	blit = shaders.Pair{Name: "sub/blit", Ext: "glsl"}
	bad  = shaders.Pair{Name: "broken/bad", Ext: "glsl"}
)

func newContext() (*gltest.Driver, *gfx.Context) {
	d := gltest.New()
	return d, gfx.NewContext(d)
}

func TestDiscover(t *testing.T) {
	c := qt.New(t)
	hook := test.NewGlobal()
	c.Cleanup(func() { log.StandardLogger().ReplaceHooks(make(log.LevelHooks)) })

	pairs, err := shaders.Discover("testdata")
	c.Assert(err, qt.IsNil)
	c.Assert(pairs, qt.DeepEquals, []shaders.Pair{bad, grid, blit})
	c.Assert(blit.Vertex(), qt.Equals, "sub/blit.vert.glsl")
	c.Assert(blit.Fragment(), qt.Equals, "sub/blit.frag.glsl")

	entries := hook.AllEntries()
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Level, qt.Equals, log.WarnLevel)
	c.Assert(entries[0].Data["name"], qt.Equals, "lonely")
}

func TestDiscoverMissingDirectory(t *testing.T) {
	c := qt.New(t)
	_, err := shaders.Discover(filepath.Join(c.TempDir(), "nothing"))
	c.Assert(err, qt.ErrorIs, os.ErrNotExist)
}

func TestLoadFromDir(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	p, err := shaders.Load(ctx, shaders.Dir("testdata"), grid.Name, grid.Ext)
	c.Assert(err, qt.IsNil)
	c.Assert(d.IsProgram(p.ID()), qt.IsTrue)
	c.Assert(p.AttribLocation(ctx, "offset"), qt.Equals, int32(1))
	c.Assert(p.UniformLocation(ctx, "tint"), qt.Not(qt.Equals), int32(-1))
	c.Assert(ctx.DrainErrors(), qt.HasLen, 0)
}

func TestLoadMissingStage(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	_, err := shaders.Load(ctx, shaders.Dir("testdata"), "lonely", "glsl")
	c.Assert(err, qt.ErrorMatches, `reading lonely.frag.glsl: .*`)
	c.Assert(err, qt.ErrorIs, os.ErrNotExist)
	c.Assert(d.CallsNamed("glCreateShader"), qt.HasLen, 0)
}

func TestLoadCompileError(t *testing.T) {
	c := qt.New(t)
	_, ctx := newContext()

	_, err := shaders.Load(ctx, shaders.Dir("testdata"), bad.Name, bad.Ext)
	c.Assert(err, qt.ErrorMatches, `broken/bad: fragment shader compilation failed: 'gl_FragColour' : undeclared identifier`)
	var compileErr *gfx.CompileError
	c.Assert(err, qt.ErrorAs, &compileErr)
	c.Assert(compileErr.Kind, qt.Equals, gfx.FragmentShader)
}

func TestLoadAll(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	programs, err := shaders.LoadAll(ctx, shaders.Dir("testdata"), []shaders.Pair{grid, blit, grid})
	c.Assert(err, qt.IsNil)
	c.Assert(programs, qt.HasLen, 2)
	c.Assert(d.CallsNamed("glCreateProgram"), qt.HasLen, 2)
	for _, p := range programs {
		c.Assert(d.IsProgram(p.ID()), qt.IsTrue)
	}
}

func TestLoadAllDeletesOnFailure(t *testing.T) {
	c := qt.New(t)
	d, ctx := newContext()

	programs, err := shaders.LoadAll(ctx, shaders.Dir("testdata"), []shaders.Pair{grid, blit, bad})
	c.Assert(err, qt.ErrorMatches, `broken/bad: .*`)
	c.Assert(programs, qt.IsNil)
	c.Assert(d.CallsNamed("glCreateProgram"), qt.HasLen, 2)
	c.Assert(d.CallsNamed("glDeleteProgram"), qt.HasLen, 2)
}

func TestLoadFromArchive(t *testing.T) {
	c := qt.New(t)
	_, ctx := newContext()

	builder, err := kar.NewBuilder(kar.Header{Author: "test", Version: 1})
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { builder.Close() })
	for _, name := range []string{blit.Vertex(), blit.Fragment()} {
		f, err := os.Open(filepath.Join("testdata", filepath.FromSlash(name)))
		c.Assert(err, qt.IsNil)
		err = builder.Add(name, f)
		f.Close()
		c.Assert(err, qt.IsNil)
	}
	var buf bytes.Buffer
	_, err = builder.WriteTo(&buf)
	c.Assert(err, qt.IsNil)

	ar, err := kar.Open(bytes.NewReader(buf.Bytes()))
	c.Assert(err, qt.IsNil)

	p, err := shaders.Load(ctx, shaders.Archive(ar), blit.Name, blit.Ext)
	c.Assert(err, qt.IsNil)
	c.Assert(p.UniformLocation(ctx, "tex"), qt.Equals, int32(0))

	_, err = shaders.Load(ctx, shaders.Archive(ar), grid.Name, grid.Ext)
	c.Assert(err, qt.ErrorIs, kar.ErrNotFound)
}

func TestLoadFromBox(t *testing.T) {
	c := qt.New(t)
	_, ctx := newContext()

	p, err := shaders.Load(ctx, shaders.Box(packr.NewBox("./testdata")), blit.Name, blit.Ext)
	c.Assert(err, qt.IsNil)
	c.Assert(p.AttribLocation(ctx, "uv"), qt.Equals, int32(1))
}
