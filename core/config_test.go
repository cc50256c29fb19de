// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vglh/core"
)

var configEnv = []string{
	core.EnvOptLevel,
	core.EnvFastMath,
	core.EnvFastPrecision,
	core.EnvFastInt,
	core.EnvLegacyPoolSize,
	core.EnvRAMThreshold,
	core.EnvMSAA,
	core.EnvWidth,
	core.EnvHeight,
	core.EnvFPS,
}

// cleanEnv blanks every override for the duration of the test; blank
// values count as unset.
func cleanEnv(c *qt.C) {
	for _, key := range configEnv {
		c.Setenv(key, "")
	}
}

func writeFile(c *qt.C, name, content string) string {
	path := filepath.Join(c.TempDir(), name)
	c.Assert(os.WriteFile(path, []byte(content), 0644), qt.IsNil)
	return path
}

func TestDefaultConfiguration(t *testing.T) {
	c := qt.New(t)
	cfg := core.DefaultConfiguration()
	c.Assert(cfg.Compiler, qt.Equals, core.CompilerConfiguration{
		OptLevel:      2,
		FastMath:      true,
		FastPrecision: false,
		FastInt:       true,
	})
	c.Assert(cfg.Init, qt.Equals, core.InitConfiguration{
		LegacyPoolSize: 0,
		RAMThreshold:   65 * 1024 * 1024,
		MSAA:           core.MSAANone,
	})
	c.Assert(cfg.Display, qt.Equals, core.DisplayConfiguration{Width: 960, Height: 544})
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 60)
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestLoadConfigurationDefaults(t *testing.T) {
	c := qt.New(t)
	cleanEnv(c)

	cfg, err := core.LoadConfiguration("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.Equals, core.DefaultConfiguration())
}

func TestLoadConfigurationFile(t *testing.T) {
	c := qt.New(t)
	cleanEnv(c)

	path := writeFile(c, "vgl.yaml", `
compiler:
  opt_level: 4
  fastprecision: true
init:
  legacy_pool_size: 2097152
  msaa: 2
time:
  fps: 30
`)
	cfg, err := core.LoadConfiguration(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Compiler, qt.Equals, core.CompilerConfiguration{
		OptLevel:      4,
		FastMath:      true,
		FastPrecision: true,
		FastInt:       true,
	})
	c.Assert(cfg.Init.LegacyPoolSize, qt.Equals, int32(2097152))
	c.Assert(cfg.Init.RAMThreshold, qt.Equals, int32(65*1024*1024))
	c.Assert(cfg.Init.MSAA, qt.Equals, core.MSAA4x)
	c.Assert(cfg.Display.Width, qt.Equals, int32(960))
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 30)
}

func TestLoadConfigurationEnvironmentWins(t *testing.T) {
	c := qt.New(t)
	cleanEnv(c)

	path := writeFile(c, "vgl.yaml", "time:\n  fps: 30\n")
	env := writeFile(c, "vgl.env", "VGL_FPS=15\nVGL_FASTMATH=0\n")
	c.Setenv(core.EnvMSAA, "1")

	cfg, err := core.LoadConfiguration(path, env)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 15)
	c.Assert(cfg.Compiler.FastMath, qt.IsFalse)
	c.Assert(cfg.Init.MSAA, qt.Equals, core.MSAA2x)
}

func TestLoadConfigurationErrors(t *testing.T) {
	c := qt.New(t)
	cleanEnv(c)

	_, err := core.LoadConfiguration(filepath.Join(c.TempDir(), "absent.yaml"))
	c.Assert(err, qt.ErrorMatches, "reading configuration: .*")

	_, err = core.LoadConfiguration(writeFile(c, "bad.yaml", "compiler: [1, 2"))
	c.Assert(err, qt.ErrorMatches, "parsing .*")

	_, err = core.LoadConfiguration("", filepath.Join(c.TempDir(), "absent.env"))
	c.Assert(err, qt.ErrorMatches, "loading env files: .*")

	c.Setenv(core.EnvOptLevel, "fast")
	_, err = core.LoadConfiguration("")
	c.Assert(err, qt.ErrorIs, core.ErrInvalidConfiguration)
	c.Assert(err, qt.ErrorMatches, `invalid configuration: VGL_OPT_LEVEL="fast" is not an integer`)

	c.Setenv(core.EnvOptLevel, "7")
	_, err = core.LoadConfiguration("")
	c.Assert(err, qt.ErrorMatches, `invalid configuration: opt level 7 outside 0..4`)
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	for name, mutate := range map[string]func(*core.Configuration){
		"opt level":   func(cfg *core.Configuration) { cfg.Compiler.OptLevel = -1 },
		"legacy pool": func(cfg *core.Configuration) { cfg.Init.LegacyPoolSize = -1 },
		"ram":         func(cfg *core.Configuration) { cfg.Init.RAMThreshold = -1 },
		"msaa":        func(cfg *core.Configuration) { cfg.Init.MSAA = 3 },
		"display":     func(cfg *core.Configuration) { cfg.Display.Height = 0 },
		"fps":         func(cfg *core.Configuration) { cfg.Time.FramesPerSecond = -1 },
	} {
		cfg := core.DefaultConfiguration()
		mutate(&cfg)
		c.Assert(cfg.Validate(), qt.ErrorIs, core.ErrInvalidConfiguration, qt.Commentf(name))
	}
}

func TestMSAAString(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.MSAA4x.String(), qt.Equals, "4x")
	c.Assert(core.MSAA(9).String(), qt.Equals, "MSAA(9)")
}
