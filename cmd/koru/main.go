// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os/user"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/devsel/config"
	"github.com/devblok/devsel/device"
	"github.com/devblok/devsel/profile"
	"github.com/devblok/devsel/vkr"
)

func init() {
	runtime.LockOSThread()
}

var (
	vkDebug  = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	envFiles = flag.String("env", "", "Comma separated dotenv files to load")
	preset   = flag.String("preset", "", "Requirement preset to select the device with")

	recordFile = flag.String("record", "", "Record every device, with presentation support to the window, into a profile")
	overwrite  = flag.Bool("force", false, "Overwrite an existing profile when recording")
)

func newWindow(cfg config.WindowConfiguration) *sdl.Window {
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.WithError(err).Fatal("sdl.CreateWindow()")
	}
	return window
}

func loadConfiguration() config.Configuration {
	var files []string
	if *envFiles != "" {
		files = strings.Split(*envFiles, ",")
	}
	cfg, err := config.Load(files...)
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}
	if *vkDebug {
		cfg.Instance.DebugMode = true
	}
	if *preset != "" {
		cfg.Selection.Preset = *preset
		cfg.Selection.PresetFile = ""
	}

	level, err := cfg.Level()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}
	log.SetLevel(level)
	return cfg
}

func record(cache *device.Cache, surface device.Surface, path string) error {
	records, err := profile.Capture(cache, surface)
	if err != nil {
		return err
	}

	author := "unknown"
	if u, err := user.Current(); err == nil {
		author = u.Username
	}
	written, err := profile.Save(path, profile.Header{
		Author:      author,
		DateCreated: time.Now().Unix(),
	}, records, *overwrite)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"file":    path,
		"devices": len(records),
		"bytes":   written,
	}).Info("profile recorded")
	return nil
}

func main() {
	flag.Parse()
	configuration := loadConfiguration()

	selection, err := configuration.Selection.Resolve()
	if err != nil {
		log.WithError(err).Fatal("resolving preset")
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.WithError(err).Fatal("sdl.Init()")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.WithError(err).Fatal("sdl.VulkanLoadLibrary()")
	}
	defer sdl.VulkanUnloadLibrary()

	window := newWindow(configuration.Window)
	defer window.Destroy()

	instanceCfg := configuration.Instance
	instanceCfg.Extensions = append(window.VulkanGetInstanceExtensions(), instanceCfg.Extensions...)

	instance, err := vkr.NewInstance(vkr.NewApplicationInfo(instanceCfg.ApplicationName), sdl.VulkanGetVkGetInstanceProcAddr(), instanceCfg)
	if err != nil {
		log.WithError(err).Fatal("creating Vulkan instance")
	}
	defer instance.Destroy()

	surfacePtr, err := window.VulkanCreateSurface(instance.Handle())
	if err != nil {
		log.WithError(err).Fatal("window.VulkanCreateSurface()")
	}
	surface := instance.SurfaceFromPointer(surfacePtr)
	defer instance.DestroySurface(surface)

	cache, err := device.Build(instance)
	if err != nil {
		log.WithError(err).Fatal("capturing devices")
	}

	if *recordFile != "" {
		if err := record(cache, surface, *recordFile); err != nil {
			log.WithError(err).Fatal("recording profile")
		}
	}

	match, err := cache.FindMatch(selection.Requirements(configuration.Selection.DeviceExtensions...), surface)
	if err != nil {
		log.WithError(err).Fatal("matching devices")
	}
	if !match.Suitable() {
		log.WithFields(log.Fields{
			"preset":  selection.Name,
			"devices": cache.Len(),
		}).Error("no device satisfies the preset")
		return
	}

	fields := log.Fields{
		"device": match.Name,
		"index":  match.Index,
		"queues": match.Distinct(),
	}
	for i, group := range selection.QueueGroups() {
		fields["group."+group] = match.QueueFamilies(i)
	}
	log.WithFields(fields).Info("device selected")

	ticker := time.NewTicker(time.Duration(configuration.Window.EventPollDelay) * time.Millisecond)
	defer ticker.Stop()

EventLoop:
	for range ticker.C {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch et := event.(type) {
			case *sdl.KeyboardEvent:
				if et.Keysym.Sym == sdl.K_ESCAPE {
					break EventLoop
				}
			case *sdl.QuitEvent:
				break EventLoop
			}
		}
	}
	log.Debug("event loop exited")
}
