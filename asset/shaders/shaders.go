// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package shaders finds and builds vertex/fragment source pairs from a
// directory, a kar archive or a packr box.
package shaders

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devblok/vglh/asset/kar"
	"github.com/devblok/vglh/gfx"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
)

// File name parts marking the stage of a shader source
const (
	VertexSuffix   = "vert"
	FragmentSuffix = "frag"
)

// Source reads shader sources by slash separated name
type Source interface {
	ReadFile(name string) ([]byte, error)
}

type dirSource string

// Dir reads sources from the directory at path
func Dir(path string) Source {
	return dirSource(path)
}

func (d dirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
}

type archiveSource struct {
	archive *kar.Archive
}

// Archive reads sources out of a kar archive
func Archive(a *kar.Archive) Source {
	return archiveSource{archive: a}
}

func (a archiveSource) ReadFile(name string) ([]byte, error) {
	return a.archive.ReadAll(name)
}

type boxSource struct {
	box packr.Box
}

// Box reads sources from a packr box, embedded in the binary once packed
func Box(b packr.Box) Source {
	return boxSource{box: b}
}

func (b boxSource) ReadFile(name string) ([]byte, error) {
	return b.box.Find(name)
}

// Pair is one program's worth of sources, found by Discover
type Pair struct {
	// Name is the slash separated path without the stage and extension
	Name string
	// Ext is the extension shared by both files, without a dot
	Ext string
}

// Vertex is the name of the vertex stage source
func (p Pair) Vertex() string {
	return fileName(p.Name, VertexSuffix, p.Ext)
}

// Fragment is the name of the fragment stage source
func (p Pair) Fragment() string {
	return fileName(p.Name, FragmentSuffix, p.Ext)
}

func fileName(name, stage, ext string) string {
	return name + "." + stage + "." + ext
}

// Discover walks dir for shader sources. A source file is named
// <name>.vert.<ext> or <name>.frag.<ext>, the base name holding exactly
// those three dot separated parts. Only complete pairs are returned,
// sorted by name. A stage with no partner is logged and skipped.
func Discover(dir string) ([]Pair, error) {
	type stages struct {
		vertex, fragment bool
	}
	found := make(map[Pair]*stages)

	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() {
			return nil
		}

		nodes := strings.Split(f.Name(), ".")
		if len(nodes) != 3 || nodes[0] == "" || nodes[2] == "" {
			return nil
		}

		rel, err := filepath.Rel(dir, filepath.Dir(path))
		if err != nil {
			return err
		}
		pair := Pair{
			Name: filepath.ToSlash(filepath.Join(rel, nodes[0])),
			Ext:  nodes[2],
		}
		s, ok := found[pair]
		if !ok {
			s = &stages{}
		}

		switch nodes[1] {
		case VertexSuffix:
			s.vertex = true
		case FragmentSuffix:
			s.fragment = true
		default:
			return nil
		}
		found[pair] = s
		return nil
	}); err != nil {
		return nil, err
	}

	var pairs []Pair
	for pair, s := range found {
		if !s.vertex || !s.fragment {
			log.WithFields(log.Fields{
				"component": "shaders",
				"name":      pair.Name,
				"ext":       pair.Ext,
			}).Warn("shader stage has no partner, skipping")
			continue
		}
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Name != pairs[j].Name {
			return pairs[i].Name < pairs[j].Name
		}
		return pairs[i].Ext < pairs[j].Ext
	})
	return pairs, nil
}

// Load reads <name>.vert.<ext> and <name>.frag.<ext> from src and builds
// a program out of them
func Load(c *gfx.Context, src Source, name, ext string) (gfx.Program, error) {
	pair := Pair{Name: name, Ext: ext}
	vertex, err := src.ReadFile(pair.Vertex())
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", pair.Vertex(), err)
	}
	fragment, err := src.ReadFile(pair.Fragment())
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", pair.Fragment(), err)
	}

	p, err := c.BuildProgram(string(vertex), string(fragment))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	c.Logger().WithField("program", name).Debug("program built")
	return p, nil
}

// LoadAll builds every discovered pair from src, keyed by pair name. When a
// name comes with more than one extension the first pair wins. Programs
// built before a failure are deleted.
func LoadAll(c *gfx.Context, src Source, pairs []Pair) (map[string]gfx.Program, error) {
	programs := make(map[string]gfx.Program, len(pairs))
	for _, pair := range pairs {
		if _, ok := programs[pair.Name]; ok {
			c.Logger().WithField("program", pair.Name).Warnf("already built, skipping .%s sources", pair.Ext)
			continue
		}
		p, err := Load(c, src, pair.Name, pair.Ext)
		if err != nil {
			for _, built := range programs {
				built.Delete(c)
			}
			return nil, err
		}
		programs[pair.Name] = p
	}
	return programs, nil
}
