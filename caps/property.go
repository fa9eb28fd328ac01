// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps

import glm "github.com/go-gl/mathgl/mgl32"

// PropertyID identifies a device property or limit.
type PropertyID int

// Known properties. New properties are appended here and to propertyTable.
const (
	PropertyAPIVersion PropertyID = iota
	PropertyDriverVersion
	PropertyVendorID
	PropertyDeviceID
	PropertyDeviceType
	PropertyDeviceName
	PropertyMaxImageDimension1D
	PropertyMaxImageDimension2D
	PropertyMaxImageDimension3D
	PropertyMaxImageDimensionCube
	PropertyMaxImageArrayLayers
	PropertyMaxUniformBufferRange
	PropertyMaxStorageBufferRange
	PropertyMaxPushConstantsSize
	PropertyMaxMemoryAllocationCount
	PropertyMaxSamplerAllocationCount
	PropertyMaxBoundDescriptorSets
	PropertyMaxPerStageDescriptorSamplers
	PropertyMaxVertexInputAttributes
	PropertyMaxComputeSharedMemorySize
	PropertyMaxComputeWorkGroupInvocations
	PropertyMaxViewports
	PropertyMaxFramebufferWidth
	PropertyMaxFramebufferHeight
	PropertyMaxFramebufferLayers
	PropertyMaxColorAttachments
	PropertyBufferImageGranularity
	PropertyMinUniformBufferOffsetAlignment
	PropertyMinStorageBufferOffsetAlignment
	PropertyNonCoherentAtomSize
	PropertyMaxSamplerAnisotropy
	PropertyTimestampPeriod
	PropertyMaxViewportDimensions
	PropertyMaxComputeWorkGroupCount
	PropertyMaxComputeWorkGroupSize
	PropertyViewportBoundsRange
	PropertyPointSizeRange
	PropertyLineWidthRange
	propertyCount
)

// DeviceTypeSymbols names the device types for textual requirements.
var DeviceTypeSymbols = map[string]uint32{
	"other":      uint32(DeviceTypeOther),
	"integrated": uint32(DeviceTypeIntegratedGPU),
	"discrete":   uint32(DeviceTypeDiscreteGPU),
	"virtual":    uint32(DeviceTypeVirtualGPU),
	"cpu":        uint32(DeviceTypeCPU),
}

func ident(name string, field func(p *DeviceProperties) *uint32) Entry {
	return uint32Field(name, Equal, func(c *Chain) *uint32 { return field(c.DeviceProperties()) })
}

func limit(name string, field func(l *Limits) *uint32) Entry {
	return uint32Field(name, AtMost, func(c *Chain) *uint32 { return field(c.Limits()) })
}

func limit64(name string, field func(l *Limits) *uint64) Entry {
	return uint64Field(name, AtMost, func(c *Chain) *uint64 { return field(c.Limits()) })
}

var propertyTable = [propertyCount]Entry{
	PropertyAPIVersion:    ident("apiVersion", func(p *DeviceProperties) *uint32 { return &p.APIVersion }),
	PropertyDriverVersion: ident("driverVersion", func(p *DeviceProperties) *uint32 { return &p.DriverVersion }),
	PropertyVendorID:      ident("vendorID", func(p *DeviceProperties) *uint32 { return &p.VendorID }),
	PropertyDeviceID:      ident("deviceID", func(p *DeviceProperties) *uint32 { return &p.DeviceID }),
	PropertyDeviceType: symbolField("deviceType", Equal, DeviceTypeSymbols, func(c *Chain) *uint32 {
		return (*uint32)(&c.DeviceProperties().DeviceType)
	}),
	PropertyDeviceName: textField("deviceName", func(c *Chain) *string { return &c.DeviceProperties().DeviceName }),

	PropertyMaxImageDimension1D:   limit("maxImageDimension1D", func(l *Limits) *uint32 { return &l.MaxImageDimension1D }),
	PropertyMaxImageDimension2D:   limit("maxImageDimension2D", func(l *Limits) *uint32 { return &l.MaxImageDimension2D }),
	PropertyMaxImageDimension3D:   limit("maxImageDimension3D", func(l *Limits) *uint32 { return &l.MaxImageDimension3D }),
	PropertyMaxImageDimensionCube: limit("maxImageDimensionCube", func(l *Limits) *uint32 { return &l.MaxImageDimensionCube }),
	PropertyMaxImageArrayLayers:   limit("maxImageArrayLayers", func(l *Limits) *uint32 { return &l.MaxImageArrayLayers }),
	PropertyMaxUniformBufferRange: limit("maxUniformBufferRange", func(l *Limits) *uint32 { return &l.MaxUniformBufferRange }),
	PropertyMaxStorageBufferRange: limit("maxStorageBufferRange", func(l *Limits) *uint32 { return &l.MaxStorageBufferRange }),
	PropertyMaxPushConstantsSize:  limit("maxPushConstantsSize", func(l *Limits) *uint32 { return &l.MaxPushConstantsSize }),
	PropertyMaxMemoryAllocationCount: limit("maxMemoryAllocationCount", func(l *Limits) *uint32 {
		return &l.MaxMemoryAllocationCount
	}),
	PropertyMaxSamplerAllocationCount: limit("maxSamplerAllocationCount", func(l *Limits) *uint32 {
		return &l.MaxSamplerAllocationCount
	}),
	PropertyMaxBoundDescriptorSets: limit("maxBoundDescriptorSets", func(l *Limits) *uint32 { return &l.MaxBoundDescriptorSets }),
	PropertyMaxPerStageDescriptorSamplers: limit("maxPerStageDescriptorSamplers", func(l *Limits) *uint32 {
		return &l.MaxPerStageDescriptorSamplers
	}),
	PropertyMaxVertexInputAttributes: limit("maxVertexInputAttributes", func(l *Limits) *uint32 {
		return &l.MaxVertexInputAttributes
	}),
	PropertyMaxComputeSharedMemorySize: limit("maxComputeSharedMemorySize", func(l *Limits) *uint32 {
		return &l.MaxComputeSharedMemorySize
	}),
	PropertyMaxComputeWorkGroupInvocations: limit("maxComputeWorkGroupInvocations", func(l *Limits) *uint32 {
		return &l.MaxComputeWorkGroupInvocations
	}),
	PropertyMaxViewports:          limit("maxViewports", func(l *Limits) *uint32 { return &l.MaxViewports }),
	PropertyMaxFramebufferWidth:   limit("maxFramebufferWidth", func(l *Limits) *uint32 { return &l.MaxFramebufferWidth }),
	PropertyMaxFramebufferHeight:  limit("maxFramebufferHeight", func(l *Limits) *uint32 { return &l.MaxFramebufferHeight }),
	PropertyMaxFramebufferLayers:  limit("maxFramebufferLayers", func(l *Limits) *uint32 { return &l.MaxFramebufferLayers }),
	PropertyMaxColorAttachments:   limit("maxColorAttachments", func(l *Limits) *uint32 { return &l.MaxColorAttachments }),
	PropertyBufferImageGranularity: limit64("bufferImageGranularity", func(l *Limits) *uint64 { return &l.BufferImageGranularity }),
	PropertyMinUniformBufferOffsetAlignment: limit64("minUniformBufferOffsetAlignment", func(l *Limits) *uint64 {
		return &l.MinUniformBufferOffsetAlignment
	}),
	PropertyMinStorageBufferOffsetAlignment: limit64("minStorageBufferOffsetAlignment", func(l *Limits) *uint64 {
		return &l.MinStorageBufferOffsetAlignment
	}),
	PropertyNonCoherentAtomSize: limit64("nonCoherentAtomSize", func(l *Limits) *uint64 { return &l.NonCoherentAtomSize }),

	PropertyMaxSamplerAnisotropy: float32Field("maxSamplerAnisotropy", AtMost, func(c *Chain) *float32 {
		return &c.Limits().MaxSamplerAnisotropy
	}),
	PropertyTimestampPeriod: float32Field("timestampPeriod", Equal, func(c *Chain) *float32 {
		return &c.Limits().TimestampPeriod
	}),
	PropertyMaxViewportDimensions: uint32x2Field("maxViewportDimensions", AtMost, func(c *Chain) *[2]uint32 {
		return &c.Limits().MaxViewportDimensions
	}),
	PropertyMaxComputeWorkGroupCount: uint32x3Field("maxComputeWorkGroupCount", AtMost, func(c *Chain) *[3]uint32 {
		return &c.Limits().MaxComputeWorkGroupCount
	}),
	PropertyMaxComputeWorkGroupSize: uint32x3Field("maxComputeWorkGroupSize", AtMost, func(c *Chain) *[3]uint32 {
		return &c.Limits().MaxComputeWorkGroupSize
	}),
	// Ranges are compared as a whole pair, never as capacities.
	PropertyViewportBoundsRange: float32x2Field("viewportBoundsRange", Equal, func(c *Chain) *glm.Vec2 {
		return &c.Limits().ViewportBoundsRange
	}),
	PropertyPointSizeRange: float32x2Field("pointSizeRange", Equal, func(c *Chain) *glm.Vec2 {
		return &c.Limits().PointSizeRange
	}),
	PropertyLineWidthRange: float32x2Field("lineWidthRange", Equal, func(c *Chain) *glm.Vec2 {
		return &c.Limits().LineWidthRange
	}),
}

var propertiesByName = indexNames(propertyTable[:])

// Entry returns the table row for id.
func (id PropertyID) Entry() Entry {
	return propertyTable[id]
}

func (id PropertyID) String() string {
	if id >= 0 && id < propertyCount {
		return propertyTable[id].Name
	}
	return "unknown property"
}

// LookupProperty resolves a property by its name.
func LookupProperty(name string) (PropertyID, bool) {
	idx, ok := propertiesByName[name]
	return PropertyID(idx), ok
}

// AllProperties lists every property in table order.
func AllProperties() []PropertyID {
	ids := make([]PropertyID, propertyCount)
	for i := range ids {
		ids[i] = PropertyID(i)
	}
	return ids
}

func (t DeviceType) String() string {
	for name, v := range DeviceTypeSymbols {
		if v == uint32(t) {
			return name
		}
	}
	return "unknown"
}
