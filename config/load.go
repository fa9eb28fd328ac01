// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
)

// Environment keys read by Load
const (
	EnvLogLevel         = "KORU_LOG_LEVEL"
	EnvProfile          = "KORU_PROFILE"
	EnvDebug            = "KORU_DEBUG"
	EnvLayers           = "KORU_INSTANCE_LAYERS"
	EnvExtensions       = "KORU_INSTANCE_EXTENSIONS"
	EnvWindowWidth      = "KORU_WINDOW_WIDTH"
	EnvWindowHeight     = "KORU_WINDOW_HEIGHT"
	EnvPreset           = "KORU_PRESET"
	EnvPresetFile       = "KORU_PRESET_FILE"
	EnvDeviceExtensions = "KORU_DEVICE_EXTENSIONS"
)

// Load starts from Default and overrides it from the environment. Each
// file is a dotenv file loaded into the environment first; variables that
// are already set are not overwritten.
func Load(files ...string) (Configuration, error) {
	cfg := Default()

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return cfg, errors.New("godotenv.Load(): " + err.Error())
		}
	}
	envy.Reload()

	cfg.LogLevel = envy.Get(EnvLogLevel, cfg.LogLevel)
	cfg.ProfilePath = envy.Get(EnvProfile, cfg.ProfilePath)
	cfg.Selection.Preset = envy.Get(EnvPreset, cfg.Selection.Preset)
	cfg.Selection.PresetFile = envy.Get(EnvPresetFile, cfg.Selection.PresetFile)
	cfg.Selection.DeviceExtensions = list(EnvDeviceExtensions, cfg.Selection.DeviceExtensions)
	cfg.Instance.Layers = list(EnvLayers, cfg.Instance.Layers)
	cfg.Instance.Extensions = list(EnvExtensions, cfg.Instance.Extensions)

	var err error
	if cfg.Instance.DebugMode, err = boolean(EnvDebug, cfg.Instance.DebugMode); err != nil {
		return cfg, err
	}
	if cfg.Window.ScreenWidth, err = dimension(EnvWindowWidth, cfg.Window.ScreenWidth); err != nil {
		return cfg, err
	}
	if cfg.Window.ScreenHeight, err = dimension(EnvWindowHeight, cfg.Window.ScreenHeight); err != nil {
		return cfg, err
	}

	if _, err := cfg.Level(); err != nil {
		return cfg, fmt.Errorf("%s: %s", EnvLogLevel, err)
	}
	return cfg, nil
}

func list(key string, fallback []string) []string {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func boolean(key string, fallback bool) (bool, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %s", key, err)
	}
	return v, nil
}

func dimension(key string, fallback uint32) (uint32, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return fallback, fmt.Errorf("%s: invalid dimension %q", key, raw)
	}
	return uint32(v), nil
}
