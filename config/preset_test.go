// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config_test

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/config"
	"github.com/devblok/devsel/device"
	"github.com/devblok/devsel/profile"
)

func TestBundledPresets(t *testing.T) {
	c := qt.New(t)

	names := config.Presets()
	c.Assert(names, qt.DeepEquals, []string{"bindless", "compute", "graphics"})

	for _, name := range names {
		p, err := config.LoadPreset(name)
		c.Assert(err, qt.IsNil, qt.Commentf("preset %s", name))
		c.Assert(p.Name, qt.Equals, name)
		c.Assert(p.Description, qt.Not(qt.Equals), "")
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	c := qt.New(t)

	_, err := config.LoadPreset("raytracing")
	c.Assert(errors.Is(err, config.ErrUnknownPreset), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `unknown preset: raytracing`)
}

const everyKind = `
name: every-kind
features:
  geometryShader: true
  wideLines: false
properties:
  deviceType: discrete
  deviceName: llvmpipe
  maxImageDimension2D: 8192
  bufferImageGranularity: 1024
  maxSamplerAnisotropy: 16
  maxViewportDimensions: [4096, 4096]
  maxComputeWorkGroupSize: [64, 64, 1]
  pointSizeRange: [1, 64.5]
  vendorID: 0x10de
extensions:
  - VK_KHR_swapchain
  - VK_KHR_swapchain
queues:
  - name: main
    require:
      queueFlags: [graphics, compute]
      queueCount: 2
  - present: true
    require:
      queueFlags: transfer
`

func TestParsePreset(t *testing.T) {
	c := qt.New(t)

	p, err := config.ParsePreset([]byte(everyKind))
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "every-kind")
	c.Assert(p.QueueGroups(), qt.DeepEquals, []string{"main", "queue1"})

	req := p.Requirements("VK_EXT_descriptor_indexing")
	c.Assert(req.Features[caps.FeatureGeometryShader], qt.Equals, caps.Bool(true))
	c.Assert(req.Features[caps.FeatureWideLines], qt.Equals, caps.Bool(false))

	c.Assert(req.Properties[caps.PropertyDeviceType], qt.Equals, caps.Uint32(uint32(caps.DeviceTypeDiscreteGPU)))
	c.Assert(req.Properties[caps.PropertyDeviceName], qt.Equals, caps.Text("llvmpipe"))
	c.Assert(req.Properties[caps.PropertyMaxImageDimension2D], qt.Equals, caps.Uint32(8192))
	c.Assert(req.Properties[caps.PropertyBufferImageGranularity], qt.Equals, caps.Uint64(1024))
	c.Assert(req.Properties[caps.PropertyMaxSamplerAnisotropy], qt.Equals, caps.Float32(16))
	c.Assert(req.Properties[caps.PropertyMaxViewportDimensions], qt.Equals, caps.Uint32x2(4096, 4096))
	c.Assert(req.Properties[caps.PropertyMaxComputeWorkGroupSize], qt.Equals, caps.Uint32x3(64, 64, 1))
	c.Assert(req.Properties[caps.PropertyPointSizeRange], qt.Equals, caps.Float32x2(glm.Vec2{1, 64.5}))
	c.Assert(req.Properties[caps.PropertyVendorID], qt.Equals, caps.Uint32(0x10de))

	c.Assert(req.Extensions, qt.DeepEquals, []string{"VK_KHR_swapchain", "VK_EXT_descriptor_indexing"})

	c.Assert(req.QueueGroups, qt.HasLen, 2)
	first := req.QueueGroups[0]
	c.Assert(first.Present, qt.IsFalse)
	c.Assert(first.Capabilities[caps.QueueFlagsID], qt.Equals, caps.Uint32(uint32(caps.QueueGraphics|caps.QueueCompute)))
	c.Assert(first.Capabilities[caps.QueueCountID], qt.Equals, caps.Uint32(2))
	second := req.QueueGroups[1]
	c.Assert(second.Present, qt.IsTrue)
	c.Assert(second.Capabilities[caps.QueueFlagsID], qt.Equals, caps.Uint32(uint32(caps.QueueTransfer)))

	// Every call builds new requirements.
	again := p.Requirements()
	again.RequireExtension("VK_KHR_maintenance1")
	c.Assert(p.Requirements().Extensions, qt.DeepEquals, []string{"VK_KHR_swapchain"})
}

func TestParsePresetErrors(t *testing.T) {
	tests := []struct {
		about  string
		preset string
		is     error
		err    string
	}{{
		about:  "invalid yaml",
		preset: "name: [",
		err:    `yaml.Unmarshal\(\): .*`,
	}, {
		about:  "no name",
		preset: "features:\n  geometryShader: true\n",
		err:    `preset has no name`,
	}, {
		about:  "unknown feature",
		preset: "name: p\nfeatures:\n  warpDrive: true\n",
		is:     config.ErrUnknownCapability,
		err:    `preset p: unknown capability: feature "warpDrive"`,
	}, {
		about:  "unknown property",
		preset: "name: p\nproperties:\n  maxWarp: 9\n",
		is:     config.ErrUnknownCapability,
		err:    `preset p: unknown capability: property "maxWarp"`,
	}, {
		about:  "unknown queue property",
		preset: "name: p\nqueues:\n  - require:\n      queueColour: red\n",
		is:     config.ErrUnknownCapability,
		err:    `preset p: unknown capability: queue property "queueColour"`,
	}, {
		about:  "bool feature given a word",
		preset: "name: p\nfeatures:\n  geometryShader: maybe\n",
		is:     config.ErrBadValue,
		err:    `(?s)preset p: bad capability value: geometryShader wants bool at line 3: .*`,
	}, {
		about:  "negative limit",
		preset: "name: p\nproperties:\n  maxImageDimension2D: -1\n",
		is:     config.ErrBadValue,
		err:    `(?s)preset p: bad capability value: maxImageDimension2D wants uint32 .*`,
	}, {
		about:  "unknown symbol",
		preset: "name: p\nproperties:\n  deviceType: quantum\n",
		is:     config.ErrBadValue,
		err:    `preset p: bad capability value: deviceType wants uint32 at line 3: unknown symbol "quantum"`,
	}, {
		about:  "unknown flag",
		preset: "name: p\nqueues:\n  - name: q\n    require:\n      queueFlags: [graphics, video]\n",
		is:     config.ErrBadValue,
		err:    `preset p: queue q: bad capability value: queueFlags wants uint32 at line 5: unknown symbol "video"`,
	}, {
		about:  "short array",
		preset: "name: p\nproperties:\n  maxComputeWorkGroupSize: [64, 64]\n",
		is:     config.ErrBadValue,
		err:    `preset p: bad capability value: maxComputeWorkGroupSize wants uint32x3 at line 3: 2 elements`,
	}, {
		about:  "text given a list",
		preset: "name: p\nproperties:\n  deviceName: [a, b]\n",
		is:     config.ErrBadValue,
		err:    `preset p: bad capability value: deviceName wants text at line 3: not a scalar`,
	}}

	c := qt.New(t)
	for _, test := range tests {
		c.Run(test.about, func(c *qt.C) {
			_, err := config.ParsePreset([]byte(test.preset))
			c.Assert(err, qt.ErrorMatches, test.err)
			if test.is != nil {
				c.Assert(errors.Is(err, test.is), qt.IsTrue)
			}
		})
	}
}

func TestLoadPresetFile(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(c.TempDir(), "every-kind.yaml")
	c.Assert(ioutil.WriteFile(path, []byte(everyKind), 0644), qt.IsNil)

	p, err := config.LoadPresetFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "every-kind")

	_, err = config.LoadPresetFile(filepath.Join(c.TempDir(), "missing.yaml"))
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestBundledPresetsSelectDevices(t *testing.T) {
	c := qt.New(t)

	software := profile.Record{
		Features: caps.CoreFeatures{SamplerAnisotropy: true},
		Properties: caps.DeviceProperties{
			DeviceName: "llvmpipe",
			DeviceType: caps.DeviceTypeCPU,
		},
		Limits: caps.Limits{
			MaxImageDimension2D:            8192,
			MaxBoundDescriptorSets:         8,
			MaxPushConstantsSize:           128,
			MaxComputeWorkGroupInvocations: 1024,
			MaxComputeWorkGroupSize:        [3]uint32{1024, 1024, 1024},
			MaxComputeSharedMemorySize:     32768,
		},
		Families:   []caps.QueueProperties{{Flags: caps.QueueGraphics | caps.QueueCompute | caps.QueueTransfer, Count: 1}},
		Present:    []bool{true},
		Extensions: []string{"VK_KHR_swapchain"},
	}
	discrete := profile.Record{
		Features: caps.CoreFeatures{SamplerAnisotropy: true},
		DescriptorIndexing: &caps.DescriptorIndexingFeatures{
			ShaderSampledImageArrayNonUniformIndexing: true,
			DescriptorBindingPartiallyBound:           true,
			DescriptorBindingVariableDescriptorCount:  true,
			RuntimeDescriptorArray:                    true,
		},
		Properties: caps.DeviceProperties{
			DeviceName: "discrete",
			DeviceType: caps.DeviceTypeDiscreteGPU,
		},
		Limits: caps.Limits{
			MaxImageDimension2D:           32768,
			MaxBoundDescriptorSets:        32,
			MaxPushConstantsSize:          256,
			MaxPerStageDescriptorSamplers: 1 << 20,
		},
		Families: []caps.QueueProperties{
			{Flags: caps.QueueGraphics | caps.QueueCompute | caps.QueueTransfer, Count: 16},
			{Flags: caps.QueueTransfer, Count: 2},
		},
		Present:    []bool{true, false},
		Extensions: []string{"VK_EXT_descriptor_indexing", "VK_KHR_swapchain"},
	}

	cache, err := device.Build(profile.NewReplay([]profile.Record{software, discrete}))
	c.Assert(err, qt.IsNil)

	tests := []struct {
		preset   string
		surface  device.Surface
		suitable bool
		name     string
	}{
		{"graphics", "surface", true, "llvmpipe"},
		{"graphics", nil, false, ""},
		{"compute", nil, true, "llvmpipe"},
		{"bindless", "surface", true, "discrete"},
	}

	for _, test := range tests {
		c.Run(test.preset, func(c *qt.C) {
			p, err := config.LoadPreset(test.preset)
			c.Assert(err, qt.IsNil)

			match, err := cache.FindMatch(p.Requirements(), test.surface)
			c.Assert(err, qt.IsNil)
			c.Assert(match.Suitable(), qt.Equals, test.suitable)
			c.Assert(match.Name, qt.Equals, test.name)
		})
	}

	// Without the descriptor indexing block support is unknown, so bindless
	// never selects the device.
	discrete.DescriptorIndexing = nil
	cache, err = device.Build(profile.NewReplay([]profile.Record{software, discrete}))
	c.Assert(err, qt.IsNil)
	bindless, err := config.LoadPreset("bindless")
	c.Assert(err, qt.IsNil)
	match, err := cache.FindMatch(bindless.Requirements(), "surface")
	c.Assert(err, qt.IsNil)
	c.Assert(match.Suitable(), qt.IsFalse)
}

func TestSelectionResolve(t *testing.T) {
	c := qt.New(t)

	p, err := config.SelectionConfiguration{Preset: "compute"}.Resolve()
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "compute")

	path := filepath.Join(c.TempDir(), "every-kind.yaml")
	c.Assert(ioutil.WriteFile(path, []byte(everyKind), 0644), qt.IsNil)
	p, err = config.SelectionConfiguration{Preset: "compute", PresetFile: path}.Resolve()
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "every-kind")

	_, err = config.SelectionConfiguration{Preset: "nope"}.Resolve()
	c.Assert(errors.Is(err, config.ErrUnknownPreset), qt.IsTrue)
}
