// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
)

func TestRequirementsBuilder(t *testing.T) {
	c := qt.New(t)

	req := device.NewRequirements().
		RequireFeature(caps.FeatureSamplerAnisotropy, caps.Bool(true)).
		RequireProperty(caps.PropertyMaxBoundDescriptorSets, caps.Uint32(4)).
		RequireExtension("VK_KHR_swapchain", "VK_KHR_maintenance1").
		RequireExtension("VK_KHR_swapchain")

	c.Assert(req.Features, qt.HasLen, 1)
	c.Assert(req.Features[caps.FeatureSamplerAnisotropy].Bool(), qt.IsTrue)
	c.Assert(req.Properties[caps.PropertyMaxBoundDescriptorSets].Uint32(), qt.Equals, uint32(4))
	c.Assert(req.Extensions, qt.DeepEquals, []string{"VK_KHR_swapchain", "VK_KHR_maintenance1"})

	// Requiring the same feature again replaces the value.
	req.RequireFeature(caps.FeatureSamplerAnisotropy, caps.Bool(false))
	c.Assert(req.Features, qt.HasLen, 1)
	c.Assert(req.Features[caps.FeatureSamplerAnisotropy].Bool(), qt.IsFalse)
}

func TestRequirementsZeroValue(t *testing.T) {
	c := qt.New(t)

	var req device.Requirements
	req.RequireFeature(caps.FeatureWideLines, caps.Bool(true))
	req.RequireProperty(caps.PropertyMaxViewports, caps.Uint32(2))
	c.Assert(req.Features, qt.HasLen, 1)
	c.Assert(req.Properties, qt.HasLen, 1)

	var group device.QueueGroup
	group.Require(caps.QueueCountID, caps.Uint32(1))
	c.Assert(group.Capabilities, qt.HasLen, 1)
}

func TestQueueGroups(t *testing.T) {
	c := qt.New(t)

	req := device.NewRequirements()
	c.Assert(req.AddQueueGroup(device.NewQueueGroup("graphics").RequireFlags(caps.QueueGraphics)), qt.Equals, 0)
	c.Assert(req.AddQueueGroup(device.NewQueueGroup("present").RequirePresent()), qt.Equals, 1)

	graphics := req.QueueGroups[0]
	c.Assert(graphics.Name, qt.Equals, "graphics")
	c.Assert(graphics.Present, qt.IsFalse)
	c.Assert(graphics.Capabilities[caps.QueueFlagsID].Uint32(), qt.Equals, uint32(caps.QueueGraphics))

	present := req.QueueGroups[1]
	c.Assert(present.Present, qt.IsTrue)
	c.Assert(present.Capabilities, qt.HasLen, 0)
}

func TestRequireWrongKindPanics(t *testing.T) {
	c := qt.New(t)

	c.Assert(func() {
		device.NewRequirements().RequireFeature(caps.FeatureGeometryShader, caps.Uint32(1))
	}, qt.PanicMatches, `device: geometryShader requires a bool value, got uint32`)

	c.Assert(func() {
		device.NewRequirements().RequireProperty(caps.PropertyDeviceName, caps.Bool(true))
	}, qt.PanicMatches, `device: deviceName requires a text value, got bool`)

	c.Assert(func() {
		device.NewQueueGroup("g").Require(caps.QueueMinImageTransferGranularityID, caps.Uint32(1))
	}, qt.PanicMatches, `device: minImageTransferGranularity requires a uint32x3 value, got uint32`)
}

func TestUncheckedValuePanicsInFindMatch(t *testing.T) {
	c := qt.New(t)

	cache := mustBuild(c, twoDevices())
	req := device.NewRequirements()
	req.Features[caps.FeatureGeometryShader] = caps.Uint32(1)

	c.Assert(func() { cache.FindMatch(req, nil) }, qt.PanicMatches, `caps: uint32 value unpacked as bool`)
}
