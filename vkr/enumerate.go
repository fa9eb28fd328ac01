// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"errors"
	"fmt"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
)

var errNotPhysicalDevice = errors.New("handle is not a vk.PhysicalDevice")

func physicalDevice(h device.Handle) (vk.PhysicalDevice, error) {
	pd, ok := h.(vk.PhysicalDevice)
	if !ok {
		return nil, errNotPhysicalDevice
	}
	return pd, nil
}

// EnumerateDevices implements device.Enumerator.
func (v *Instance) EnumerateDevices() ([]device.Handle, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return nil, errors.New("vk.EnumeratePhysicalDevices(): " + err.Error())
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, availableDevices)); err != nil {
		return nil, errors.New("vk.EnumeratePhysicalDevices(): " + err.Error())
	}

	handles := make([]device.Handle, deviceCount)
	for i := range handles {
		handles[i] = availableDevices[i]
	}
	return handles, nil
}

// QueryFeatures implements device.Enumerator.
func (v *Instance) QueryFeatures(h device.Handle) (*caps.Chain, error) {
	pd, err := physicalDevice(h)
	if err != nil {
		return nil, err
	}

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(pd, &features)
	features.Deref()

	// The bindings have no vkGetPhysicalDeviceFeatures2, so the descriptor
	// indexing block is left out and its features are reported unknown.
	// TODO: add BlockDescriptorIndexing once GetPhysicalDeviceFeatures2 is bound.
	chain := caps.NewChain(caps.BlockCoreFeatures)
	*chain.CoreFeatures() = coreFeatures(features)
	return chain, nil
}

// QueryProperties implements device.Enumerator.
func (v *Instance) QueryProperties(h device.Handle) (*caps.Chain, error) {
	pd, err := physicalDevice(h)
	if err != nil {
		return nil, err
	}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &properties)
	properties.Deref()
	properties.Limits.Deref()

	chain := caps.NewPropertyChain()
	*chain.DeviceProperties() = deviceProperties(properties)
	*chain.Limits() = limits(properties.Limits)
	return chain, nil
}

// QueryQueueFamilies implements device.Enumerator.
func (v *Instance) QueryQueueFamilies(h device.Handle) ([]device.QueueFamily, error) {
	pd, err := physicalDevice(h)
	if err != nil {
		return nil, err
	}

	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &queueFamilyCount, queueFamilies)

	families := make([]device.QueueFamily, queueFamilyCount)
	for i := range queueFamilies {
		queueFamilies[i].Deref()
		queueFamilies[i].MinImageTransferGranularity.Deref()

		chain := caps.NewQueueChain()
		*chain.QueueProperties() = queueProperties(queueFamilies[i])
		families[i] = device.QueueFamily{Index: uint32(i), Chain: chain}
	}
	return families, nil
}

// QueryExtensions implements device.Enumerator.
func (v *Instance) QueryExtensions(h device.Handle) ([]string, error) {
	pd, err := physicalDevice(h)
	if err != nil {
		return nil, err
	}

	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, nil)); err != nil {
		return nil, errors.New("vk.EnumerateDeviceExtensionProperties(): " + err.Error())
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, deviceExt)); err != nil {
		return nil, errors.New("vk.EnumerateDeviceExtensionProperties(): " + err.Error())
	}

	names := make([]string, 0, numDeviceExtensions)
	for _, ext := range deviceExt {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// QueryPresentationSupport implements device.Enumerator. The surface
// must be a vk.Surface created on this instance.
func (v *Instance) QueryPresentationSupport(h device.Handle, family uint32, surface device.Surface) (bool, error) {
	pd, err := physicalDevice(h)
	if err != nil {
		return false, err
	}
	s, ok := surface.(vk.Surface)
	if !ok {
		return false, fmt.Errorf("surface is a %T, not a vk.Surface", surface)
	}

	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(pd, family, s, &supported)); err != nil {
		return false, errors.New("vk.GetPhysicalDeviceSurfaceSupport(): " + err.Error())
	}
	return supported.B(), nil
}
