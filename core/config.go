// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration defines the process-wide driver setup
type Configuration struct {
	Compiler CompilerConfiguration `yaml:"compiler"`
	Init     InitConfiguration     `yaml:"init"`
	Display  DisplayConfiguration  `yaml:"display"`
	Time     TimeConfiguration     `yaml:"time"`
}

// CompilerConfiguration is handed to the runtime shader compiler
type CompilerConfiguration struct {
	// OptLevel is the optimisation level, 0 to 4
	OptLevel      int32 `yaml:"opt_level"`
	FastMath      bool  `yaml:"fastmath"`
	FastPrecision bool  `yaml:"fastprecision"`
	FastInt       bool  `yaml:"fastint"`
}

// MSAA is the multisampling mode of the display surface
type MSAA uint32

// Multisampling modes
const (
	MSAANone MSAA = iota
	MSAA2x
	MSAA4x
)

func (m MSAA) String() string {
	switch m {
	case MSAANone:
		return "none"
	case MSAA2x:
		return "2x"
	case MSAA4x:
		return "4x"
	}
	return fmt.Sprintf("MSAA(%d)", uint32(m))
}

// InitConfiguration sizes the driver's memory pools
type InitConfiguration struct {
	// LegacyPoolSize is the size of the immediate mode vertex pool, 0 disables it
	LegacyPoolSize int32 `yaml:"legacy_pool_size"`
	// RAMThreshold is how much main memory the driver keeps free before
	// spilling allocations elsewhere
	RAMThreshold int32 `yaml:"ram_threshold"`
	MSAA         MSAA  `yaml:"msaa"`
}

// DisplayConfiguration is the framebuffer size
type DisplayConfiguration struct {
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int `yaml:"fps"`
}

// Environment variables LoadConfiguration reads overrides from
const (
	EnvOptLevel       = "VGL_OPT_LEVEL"
	EnvFastMath       = "VGL_FASTMATH"
	EnvFastPrecision  = "VGL_FASTPRECISION"
	EnvFastInt        = "VGL_FASTINT"
	EnvLegacyPoolSize = "VGL_LEGACY_POOL_SIZE"
	EnvRAMThreshold   = "VGL_RAM_THRESHOLD"
	EnvMSAA           = "VGL_MSAA"
	EnvWidth          = "VGL_WIDTH"
	EnvHeight         = "VGL_HEIGHT"
	EnvFPS            = "VGL_FPS"
)

// ErrInvalidConfiguration is wrapped by every validation failure
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultConfiguration returns the setup a plain bring-up uses
func DefaultConfiguration() Configuration {
	return Configuration{
		Compiler: CompilerConfiguration{
			OptLevel:      2,
			FastMath:      true,
			FastPrecision: false,
			FastInt:       true,
		},
		Init: InitConfiguration{
			LegacyPoolSize: 0,
			RAMThreshold:   65 * 1024 * 1024,
			MSAA:           MSAANone,
		},
		Display: DisplayConfiguration{
			Width:  960,
			Height: 544,
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
		},
	}
}

// Validate checks the configuration before any of it reaches the driver
func (c Configuration) Validate() error {
	if c.Compiler.OptLevel < 0 || c.Compiler.OptLevel > 4 {
		return fmt.Errorf("%w: opt level %d outside 0..4", ErrInvalidConfiguration, c.Compiler.OptLevel)
	}
	if c.Init.LegacyPoolSize < 0 {
		return fmt.Errorf("%w: negative legacy pool size", ErrInvalidConfiguration)
	}
	if c.Init.RAMThreshold < 0 {
		return fmt.Errorf("%w: negative RAM threshold", ErrInvalidConfiguration)
	}
	if c.Init.MSAA > MSAA4x {
		return fmt.Errorf("%w: unknown MSAA mode %d", ErrInvalidConfiguration, uint32(c.Init.MSAA))
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display %dx%d", ErrInvalidConfiguration, c.Display.Width, c.Display.Height)
	}
	if c.Time.FramesPerSecond < 0 {
		return fmt.Errorf("%w: negative frame rate", ErrInvalidConfiguration)
	}
	return nil
}

// LoadConfiguration starts from DefaultConfiguration, applies the YAML file
// at path when path is not empty, loads envFiles into the environment and
// finally applies the VGL_* environment overrides.
func LoadConfiguration(path string, envFiles ...string) (Configuration, error) {
	cfg := DefaultConfiguration()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading configuration: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if len(envFiles) > 0 {
		if err := godotenv.Overload(envFiles...); err != nil {
			return cfg, fmt.Errorf("loading env files: %w", err)
		}
	}
	envy.Reload()

	if err := applyEnvironment(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnvironment(cfg *Configuration) error {
	ints := []struct {
		key string
		dst *int32
	}{
		{EnvOptLevel, &cfg.Compiler.OptLevel},
		{EnvLegacyPoolSize, &cfg.Init.LegacyPoolSize},
		{EnvRAMThreshold, &cfg.Init.RAMThreshold},
		{EnvWidth, &cfg.Display.Width},
		{EnvHeight, &cfg.Display.Height},
	}
	for _, e := range ints {
		if err := envInt32(e.key, e.dst); err != nil {
			return err
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvFastMath, &cfg.Compiler.FastMath},
		{EnvFastPrecision, &cfg.Compiler.FastPrecision},
		{EnvFastInt, &cfg.Compiler.FastInt},
	}
	for _, e := range bools {
		if err := envBool(e.key, e.dst); err != nil {
			return err
		}
	}

	msaa := int32(cfg.Init.MSAA)
	if err := envInt32(EnvMSAA, &msaa); err != nil {
		return err
	}
	cfg.Init.MSAA = MSAA(msaa)

	fps := int32(cfg.Time.FramesPerSecond)
	if err := envInt32(EnvFPS, &fps); err != nil {
		return err
	}
	cfg.Time.FramesPerSecond = int(fps)
	return nil
}

func envInt32(key string, dst *int32) error {
	value, err := envy.MustGet(key)
	if err != nil || value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfiguration, key, value)
	}
	*dst = int32(n)
	return nil
}

func envBool(key string, dst *bool) error {
	value, err := envy.MustGet(key)
	if err != nil || value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfiguration, key, value)
	}
	*dst = b
	return nil
}
