// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
	"github.com/devblok/devsel/profile"
)

func TestVersionString(t *testing.T) {
	c := qt.New(t)
	c.Assert(versionString(1<<22|1<<12|108), qt.Equals, "1.1.108")
	c.Assert(versionString(0), qt.Equals, "0.0.0")
}

func TestDescribe(t *testing.T) {
	c := qt.New(t)

	rec := profile.Record{
		Properties: caps.DeviceProperties{
			APIVersion: 1<<22 | 2<<12 | 131,
			VendorID:   0x10de,
			DeviceID:   0x1e84,
			DeviceType: caps.DeviceTypeDiscreteGPU,
			DeviceName: "discrete",
		},
		Families: []caps.QueueProperties{
			{Flags: caps.QueueGraphics | caps.QueueCompute, Count: 16},
			{Flags: caps.QueueTransfer, Count: 2},
		},
		Present:    []bool{false, false},
		Extensions: []string{"VK_KHR_swapchain"},
	}
	cache, err := device.Build(profile.NewReplay([]profile.Record{rec}))
	c.Assert(err, qt.IsNil)

	c.Assert(describe(cache.Snapshots()[0]), qt.DeepEquals, deviceInfo{
		Name:       "discrete",
		Type:       "discrete",
		APIVersion: "1.2.131",
		VendorID:   0x10de,
		DeviceID:   0x1e84,
		Queues: []queueInfo{
			{Index: 0, Flags: "graphics|compute", Count: 16},
			{Index: 1, Flags: "transfer", Count: 2},
		},
		Extensions: []string{"VK_KHR_swapchain"},
	})
}
