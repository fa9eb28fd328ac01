// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config holds the probe configuration and the bundled
// device requirement presets.
package config

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// Configuration defines a global configuration setting
type Configuration struct {
	Instance  InstanceConfiguration
	Window    WindowConfiguration
	Selection SelectionConfiguration

	// LogLevel is a logrus level name
	LogLevel string

	// ProfilePath, when set, replays a recorded device profile
	// instead of asking the driver.
	ProfilePath string
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	ApplicationName string
	DebugMode       bool
	Extensions      []string
	Layers          []string
}

// WindowConfiguration is used to configure the probe window
type WindowConfiguration struct {
	Title        string
	ScreenWidth  uint32
	ScreenHeight uint32

	// EventPollDelay is the window event polling interval in milliseconds
	EventPollDelay int
}

// SelectionConfiguration describes which device is wanted
type SelectionConfiguration struct {
	// Preset names a bundled preset, PresetFile a preset on disk.
	// PresetFile wins when both are set.
	Preset     string
	PresetFile string

	// DeviceExtensions are required in addition to those of the preset
	DeviceExtensions []string
}

// Default returns the configuration used when nothing overrides it.
func Default() Configuration {
	return Configuration{
		Instance: InstanceConfiguration{
			ApplicationName: "Koru3D",
		},
		Window: WindowConfiguration{
			Title:          "Koru3D",
			ScreenWidth:    800,
			ScreenHeight:   600,
			EventPollDelay: 50,
		},
		Selection: SelectionConfiguration{
			Preset: "graphics",
		},
		LogLevel: "info",
	}
}

// Level parses LogLevel.
func (c Configuration) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, errors.New("log.ParseLevel(): " + err.Error())
	}
	return level, nil
}
