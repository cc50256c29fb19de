// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vglh/asset/kar"
)

var tree = map[string]string{
	"grid.vert.glsl":      "attribute vec2 pos;\n",
	"grid.frag.glsl":      "precision mediump float;\n",
	"textures/check.raw":  strings.Repeat("\xff\x00", 512),
	"textures/empty.data": "",
}

func writeTree(c *qt.C) string {
	dir := c.TempDir()
	for name, contents := range tree {
		path := filepath.Join(dir, filepath.FromSlash(name))
		c.Assert(os.MkdirAll(filepath.Dir(path), 0755), qt.IsNil)
		c.Assert(os.WriteFile(path, []byte(contents), 0644), qt.IsNil)
	}
	return dir
}

func TestCompressListExtract(t *testing.T) {
	c := qt.New(t)
	src := writeTree(c)
	archive := filepath.Join(c.TempDir(), "assets.kar")

	err := compressFiles(src, archive, kar.Header{Author: "devblok", Version: 3}, true)
	c.Assert(err, qt.IsNil)

	var listing bytes.Buffer
	c.Assert(listFiles(archive, &listing), qt.IsNil)
	c.Assert(listing.String(), qt.Contains, "author: devblok, version: 3")
	for name := range tree {
		c.Assert(listing.String(), qt.Contains, name)
	}

	dst := c.TempDir()
	c.Assert(extractFiles(archive, dst, true), qt.IsNil)
	for name, contents := range tree {
		data, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(name)))
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, contents)
	}
}

func TestCompressSingleFile(t *testing.T) {
	c := qt.New(t)
	src := writeTree(c)
	archive := filepath.Join(c.TempDir(), "one.kar")

	err := compressFiles(filepath.Join(src, "grid.vert.glsl"), archive, kar.Header{}, true)
	c.Assert(err, qt.IsNil)

	ar, err := kar.OpenFile(archive)
	c.Assert(err, qt.IsNil)
	defer ar.Close()
	c.Assert(ar.Names(), qt.DeepEquals, []string{"grid.vert.glsl"})
}

func TestCompressWillNotOverwrite(t *testing.T) {
	c := qt.New(t)
	src := writeTree(c)
	archive := filepath.Join(c.TempDir(), "exists.kar")
	c.Assert(os.WriteFile(archive, []byte("keep me"), 0644), qt.IsNil)

	err := compressFiles(src, archive, kar.Header{}, true)
	c.Assert(err, qt.ErrorMatches, "destination file exists, will not overwrite")

	data, err := os.ReadFile(archive)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "keep me")
}

func TestExtractRefusesEscapingNames(t *testing.T) {
	c := qt.New(t)
	builder, err := kar.NewBuilder(kar.Header{})
	c.Assert(err, qt.IsNil)
	defer builder.Close()
	c.Assert(builder.Add("../escape.txt", strings.NewReader("nope")), qt.IsNil)

	archive := filepath.Join(c.TempDir(), "evil.kar")
	f, err := os.Create(archive)
	c.Assert(err, qt.IsNil)
	_, err = builder.WriteTo(f)
	c.Assert(err, qt.IsNil)
	c.Assert(f.Close(), qt.IsNil)

	dst := c.TempDir()
	err = extractFiles(archive, dst, true)
	c.Assert(err, qt.ErrorMatches, `refusing to extract "../escape.txt" outside of .*`)
	_, err = os.Stat(filepath.Join(dst, "..", "escape.txt"))
	c.Assert(err, qt.ErrorIs, os.ErrNotExist)
}

func TestExtractNotAnArchive(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "plain.txt")
	c.Assert(os.WriteFile(path, []byte("definitely not an archive"), 0644), qt.IsNil)

	err := extractFiles(path, c.TempDir(), true)
	c.Assert(err, qt.ErrorIs, kar.ErrFileFormat)
}
