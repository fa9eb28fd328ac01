// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/devsel/caps"
)

// The converters expect already dereferenced structs.

func coreFeatures(f vk.PhysicalDeviceFeatures) caps.CoreFeatures {
	return caps.CoreFeatures{
		RobustBufferAccess:        f.RobustBufferAccess.B(),
		FullDrawIndexUint32:       f.FullDrawIndexUint32.B(),
		ImageCubeArray:            f.ImageCubeArray.B(),
		IndependentBlend:          f.IndependentBlend.B(),
		GeometryShader:            f.GeometryShader.B(),
		TessellationShader:        f.TessellationShader.B(),
		SampleRateShading:         f.SampleRateShading.B(),
		DualSrcBlend:              f.DualSrcBlend.B(),
		LogicOp:                   f.LogicOp.B(),
		MultiDrawIndirect:         f.MultiDrawIndirect.B(),
		DrawIndirectFirstInstance: f.DrawIndirectFirstInstance.B(),
		DepthClamp:                f.DepthClamp.B(),
		DepthBiasClamp:            f.DepthBiasClamp.B(),
		FillModeNonSolid:          f.FillModeNonSolid.B(),
		DepthBounds:               f.DepthBounds.B(),
		WideLines:                 f.WideLines.B(),
		LargePoints:               f.LargePoints.B(),
		AlphaToOne:                f.AlphaToOne.B(),
		MultiViewport:             f.MultiViewport.B(),
		SamplerAnisotropy:         f.SamplerAnisotropy.B(),
		TextureCompressionBC:      f.TextureCompressionBC.B(),
		OcclusionQueryPrecise:     f.OcclusionQueryPrecise.B(),
		PipelineStatisticsQuery:   f.PipelineStatisticsQuery.B(),
		FragmentStoresAndAtomics:  f.FragmentStoresAndAtomics.B(),
		ShaderClipDistance:        f.ShaderClipDistance.B(),
		ShaderCullDistance:        f.ShaderCullDistance.B(),
		ShaderFloat64:             f.ShaderFloat64.B(),
		ShaderInt64:               f.ShaderInt64.B(),
		ShaderInt16:               f.ShaderInt16.B(),
		SparseBinding:             f.SparseBinding.B(),
	}
}

func deviceProperties(p vk.PhysicalDeviceProperties) caps.DeviceProperties {
	return caps.DeviceProperties{
		APIVersion:    p.ApiVersion,
		DriverVersion: p.DriverVersion,
		VendorID:      p.VendorID,
		DeviceID:      p.DeviceID,
		DeviceType:    caps.DeviceType(p.DeviceType),
		DeviceName:    vk.ToString(p.DeviceName[:]),
	}
}

func limits(l vk.PhysicalDeviceLimits) caps.Limits {
	return caps.Limits{
		MaxImageDimension1D:             l.MaxImageDimension1D,
		MaxImageDimension2D:             l.MaxImageDimension2D,
		MaxImageDimension3D:             l.MaxImageDimension3D,
		MaxImageDimensionCube:           l.MaxImageDimensionCube,
		MaxImageArrayLayers:             l.MaxImageArrayLayers,
		MaxUniformBufferRange:           l.MaxUniformBufferRange,
		MaxStorageBufferRange:           l.MaxStorageBufferRange,
		MaxPushConstantsSize:            l.MaxPushConstantsSize,
		MaxMemoryAllocationCount:        l.MaxMemoryAllocationCount,
		MaxSamplerAllocationCount:       l.MaxSamplerAllocationCount,
		MaxBoundDescriptorSets:          l.MaxBoundDescriptorSets,
		MaxPerStageDescriptorSamplers:   l.MaxPerStageDescriptorSamplers,
		MaxVertexInputAttributes:        l.MaxVertexInputAttributes,
		MaxComputeSharedMemorySize:      l.MaxComputeSharedMemorySize,
		MaxComputeWorkGroupInvocations:  l.MaxComputeWorkGroupInvocations,
		MaxViewports:                    l.MaxViewports,
		MaxFramebufferWidth:             l.MaxFramebufferWidth,
		MaxFramebufferHeight:            l.MaxFramebufferHeight,
		MaxFramebufferLayers:            l.MaxFramebufferLayers,
		MaxColorAttachments:             l.MaxColorAttachments,
		BufferImageGranularity:          uint64(l.BufferImageGranularity),
		MinUniformBufferOffsetAlignment: uint64(l.MinUniformBufferOffsetAlignment),
		MinStorageBufferOffsetAlignment: uint64(l.MinStorageBufferOffsetAlignment),
		NonCoherentAtomSize:             uint64(l.NonCoherentAtomSize),
		MaxSamplerAnisotropy:            l.MaxSamplerAnisotropy,
		TimestampPeriod:                 l.TimestampPeriod,
		MaxViewportDimensions:           l.MaxViewportDimensions,
		MaxComputeWorkGroupCount:        l.MaxComputeWorkGroupCount,
		MaxComputeWorkGroupSize:         l.MaxComputeWorkGroupSize,
		ViewportBoundsRange:             glm.Vec2(l.ViewportBoundsRange),
		PointSizeRange:                  glm.Vec2(l.PointSizeRange),
		LineWidthRange:                  glm.Vec2(l.LineWidthRange),
	}
}

func queueProperties(q vk.QueueFamilyProperties) caps.QueueProperties {
	g := q.MinImageTransferGranularity
	return caps.QueueProperties{
		Flags:                       caps.QueueFlags(q.QueueFlags),
		Count:                       q.QueueCount,
		TimestampValidBits:          q.TimestampValidBits,
		MinImageTransferGranularity: [3]uint32{g.Width, g.Height, g.Depth},
	}
}
