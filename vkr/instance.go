// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkr serves Vulkan physical devices to the device package.
package vkr

import (
	"errors"
	"fmt"
	"unsafe"

	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/devsel/config"
)

// Names enabled on the instance in debug mode
const (
	ValidationLayer      = "VK_LAYER_KHRONOS_validation"
	DebugReportExtension = "VK_EXT_debug_report"
)

// NewApplicationInfo describes the application to the driver.
func NewApplicationInfo(name string) *vk.ApplicationInfo {
	return &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(name),
		PEngineName:        safeString("Koru3D"),
	}
}

// NewInstance creates a Vulkan instance. A nil procAddr loads the
// system Vulkan library; otherwise it is the loader entry point handed
// out by the windowing layer.
func NewInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg config.InstanceConfiguration) (*Instance, error) {
	layers := append([]string(nil), cfg.Layers...)
	extensions := append([]string(nil), cfg.Extensions...)
	if cfg.DebugMode {
		layers = append(layers, ValidationLayer)
		extensions = append(extensions, DebugReportExtension)
	}

	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.InstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.New("vk.InitInstance(): " + err.Error())
	}

	log.WithFields(log.Fields{
		"layers":     layers,
		"extensions": extensions,
	}).Debug("vulkan instance created")

	return &Instance{
		instance: instance,
	}, nil
}

// Instance is a Vulkan instance. It implements device.Enumerator with
// vk.PhysicalDevice handles and vk.Surface surfaces.
type Instance struct {
	instance vk.Instance
}

// Handle returns the raw vk.Instance, for surface creation.
func (v *Instance) Handle() vk.Instance {
	return v.instance
}

// SurfaceFromPointer wraps a surface created by the windowing layer.
func (v *Instance) SurfaceFromPointer(surface unsafe.Pointer) vk.Surface {
	return vk.SurfaceFromPointer(uintptr(surface))
}

// DestroySurface destroys a surface created on this instance.
func (v *Instance) DestroySurface(surface vk.Surface) {
	if surface != vk.NullSurface {
		vk.DestroySurface(v.instance, surface, nil)
	}
}

// Destroy destroys the instance. Devices enumerated from it become invalid.
func (v *Instance) Destroy() {
	vk.DestroyInstance(v.instance, nil)
}

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}
