// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/devblok/vglh/cmd/internal/host"
	"github.com/devblok/vglh/core"
	"github.com/devblok/vglh/gfx"
	"github.com/devblok/vglh/gl"
	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

// DriverInfo is what the driver reports about itself
type DriverInfo struct {
	Vendor                 string             `json:"vendor"`
	Renderer               string             `json:"renderer"`
	Version                string             `json:"version"`
	ShadingLanguageVersion string             `json:"shading_language_version"`
	Extensions             []string           `json:"extensions"`
	Configuration          core.Configuration `json:"configuration"`
}

func driverInfo(c *gfx.Context) DriverInfo {
	return DriverInfo{
		Vendor:                 c.DriverString(gl.Vendor),
		Renderer:               c.DriverString(gl.Renderer),
		Version:                c.DriverString(gl.Version),
		ShadingLanguageVersion: c.DriverString(gl.ShadingLanguageVersion),
		Extensions:             strings.Fields(c.DriverString(gl.Extensions)),
	}
}

// report writes the driver info and the host configuration as indented JSON
func report(w io.Writer, c *gfx.Context, cfg core.Configuration) error {
	info := driverInfo(c)
	info.Configuration = cfg
	c.LogErrors()

	bytes, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", bytes)
	return err
}

func main() {
	s, h, err := host.Start("vglinfo")
	if err != nil {
		log.Fatal(err)
	}

	err = report(os.Stdout, s.GL(), s.Configuration())
	if cerr := h.Close(); cerr != nil {
		log.WithError(cerr).Warn("closing host")
	}
	if err != nil {
		log.Fatal(err)
	}
}
