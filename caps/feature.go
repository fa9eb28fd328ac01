// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps

// FeatureID identifies a device feature flag.
type FeatureID int

// Known features. New features are appended here and to featureTable.
const (
	FeatureRobustBufferAccess FeatureID = iota
	FeatureFullDrawIndexUint32
	FeatureImageCubeArray
	FeatureIndependentBlend
	FeatureGeometryShader
	FeatureTessellationShader
	FeatureSampleRateShading
	FeatureDualSrcBlend
	FeatureLogicOp
	FeatureMultiDrawIndirect
	FeatureDrawIndirectFirstInstance
	FeatureDepthClamp
	FeatureDepthBiasClamp
	FeatureFillModeNonSolid
	FeatureDepthBounds
	FeatureWideLines
	FeatureLargePoints
	FeatureAlphaToOne
	FeatureMultiViewport
	FeatureSamplerAnisotropy
	FeatureTextureCompressionBC
	FeatureOcclusionQueryPrecise
	FeaturePipelineStatisticsQuery
	FeatureFragmentStoresAndAtomics
	FeatureShaderClipDistance
	FeatureShaderCullDistance
	FeatureShaderFloat64
	FeatureShaderInt64
	FeatureShaderInt16
	FeatureSparseBinding
	FeatureShaderSampledImageArrayNonUniformIndexing
	FeatureDescriptorBindingSampledImageUpdateAfterBind
	FeatureDescriptorBindingPartiallyBound
	FeatureDescriptorBindingVariableDescriptorCount
	FeatureRuntimeDescriptorArray
	featureCount
)

func core(name string, field func(f *CoreFeatures) *bool) Entry {
	return boolField(name, func(c *Chain) *bool { return field(c.CoreFeatures()) })
}

func indexing(name string, field func(f *DescriptorIndexingFeatures) *bool) Entry {
	return boolField(name, func(c *Chain) *bool { return field(c.DescriptorIndexingFeatures()) })
}

var featureTable = [featureCount]Entry{
	FeatureRobustBufferAccess: core("robustBufferAccess", func(f *CoreFeatures) *bool { return &f.RobustBufferAccess }),
	FeatureFullDrawIndexUint32: core("fullDrawIndexUint32", func(f *CoreFeatures) *bool { return &f.FullDrawIndexUint32 }),
	FeatureImageCubeArray:      core("imageCubeArray", func(f *CoreFeatures) *bool { return &f.ImageCubeArray }),
	FeatureIndependentBlend:    core("independentBlend", func(f *CoreFeatures) *bool { return &f.IndependentBlend }),
	FeatureGeometryShader:      core("geometryShader", func(f *CoreFeatures) *bool { return &f.GeometryShader }),
	FeatureTessellationShader:  core("tessellationShader", func(f *CoreFeatures) *bool { return &f.TessellationShader }),
	FeatureSampleRateShading:   core("sampleRateShading", func(f *CoreFeatures) *bool { return &f.SampleRateShading }),
	FeatureDualSrcBlend:        core("dualSrcBlend", func(f *CoreFeatures) *bool { return &f.DualSrcBlend }),
	FeatureLogicOp:             core("logicOp", func(f *CoreFeatures) *bool { return &f.LogicOp }),
	FeatureMultiDrawIndirect:   core("multiDrawIndirect", func(f *CoreFeatures) *bool { return &f.MultiDrawIndirect }),
	FeatureDrawIndirectFirstInstance: core("drawIndirectFirstInstance", func(f *CoreFeatures) *bool {
		return &f.DrawIndirectFirstInstance
	}),
	FeatureDepthClamp:            core("depthClamp", func(f *CoreFeatures) *bool { return &f.DepthClamp }),
	FeatureDepthBiasClamp:        core("depthBiasClamp", func(f *CoreFeatures) *bool { return &f.DepthBiasClamp }),
	FeatureFillModeNonSolid:      core("fillModeNonSolid", func(f *CoreFeatures) *bool { return &f.FillModeNonSolid }),
	FeatureDepthBounds:           core("depthBounds", func(f *CoreFeatures) *bool { return &f.DepthBounds }),
	FeatureWideLines:             core("wideLines", func(f *CoreFeatures) *bool { return &f.WideLines }),
	FeatureLargePoints:           core("largePoints", func(f *CoreFeatures) *bool { return &f.LargePoints }),
	FeatureAlphaToOne:            core("alphaToOne", func(f *CoreFeatures) *bool { return &f.AlphaToOne }),
	FeatureMultiViewport:         core("multiViewport", func(f *CoreFeatures) *bool { return &f.MultiViewport }),
	FeatureSamplerAnisotropy:     core("samplerAnisotropy", func(f *CoreFeatures) *bool { return &f.SamplerAnisotropy }),
	FeatureTextureCompressionBC:  core("textureCompressionBC", func(f *CoreFeatures) *bool { return &f.TextureCompressionBC }),
	FeatureOcclusionQueryPrecise: core("occlusionQueryPrecise", func(f *CoreFeatures) *bool { return &f.OcclusionQueryPrecise }),
	FeaturePipelineStatisticsQuery: core("pipelineStatisticsQuery", func(f *CoreFeatures) *bool {
		return &f.PipelineStatisticsQuery
	}),
	FeatureFragmentStoresAndAtomics: core("fragmentStoresAndAtomics", func(f *CoreFeatures) *bool {
		return &f.FragmentStoresAndAtomics
	}),
	FeatureShaderClipDistance: core("shaderClipDistance", func(f *CoreFeatures) *bool { return &f.ShaderClipDistance }),
	FeatureShaderCullDistance: core("shaderCullDistance", func(f *CoreFeatures) *bool { return &f.ShaderCullDistance }),
	FeatureShaderFloat64:      core("shaderFloat64", func(f *CoreFeatures) *bool { return &f.ShaderFloat64 }),
	FeatureShaderInt64:        core("shaderInt64", func(f *CoreFeatures) *bool { return &f.ShaderInt64 }),
	FeatureShaderInt16:        core("shaderInt16", func(f *CoreFeatures) *bool { return &f.ShaderInt16 }),
	FeatureSparseBinding:      core("sparseBinding", func(f *CoreFeatures) *bool { return &f.SparseBinding }),

	FeatureShaderSampledImageArrayNonUniformIndexing: indexing("shaderSampledImageArrayNonUniformIndexing",
		func(f *DescriptorIndexingFeatures) *bool { return &f.ShaderSampledImageArrayNonUniformIndexing }),
	FeatureDescriptorBindingSampledImageUpdateAfterBind: indexing("descriptorBindingSampledImageUpdateAfterBind",
		func(f *DescriptorIndexingFeatures) *bool { return &f.DescriptorBindingSampledImageUpdateAfterBind }),
	FeatureDescriptorBindingPartiallyBound: indexing("descriptorBindingPartiallyBound",
		func(f *DescriptorIndexingFeatures) *bool { return &f.DescriptorBindingPartiallyBound }),
	FeatureDescriptorBindingVariableDescriptorCount: indexing("descriptorBindingVariableDescriptorCount",
		func(f *DescriptorIndexingFeatures) *bool { return &f.DescriptorBindingVariableDescriptorCount }),
	FeatureRuntimeDescriptorArray: indexing("runtimeDescriptorArray",
		func(f *DescriptorIndexingFeatures) *bool { return &f.RuntimeDescriptorArray }),
}

var featuresByName = indexNames(featureTable[:])

// Entry returns the table row for id.
func (id FeatureID) Entry() Entry {
	return featureTable[id]
}

// Block returns the chain block that holds the feature.
func (id FeatureID) Block() Block {
	if id >= FeatureShaderSampledImageArrayNonUniformIndexing {
		return BlockDescriptorIndexing
	}
	return BlockCoreFeatures
}

func (id FeatureID) String() string {
	if id >= 0 && id < featureCount {
		return featureTable[id].Name
	}
	return "unknown feature"
}

// LookupFeature resolves a feature by its name.
func LookupFeature(name string) (FeatureID, bool) {
	idx, ok := featuresByName[name]
	return FeatureID(idx), ok
}

// AllFeatures lists every feature in table order.
func AllFeatures() []FeatureID {
	ids := make([]FeatureID, featureCount)
	for i := range ids {
		ids[i] = FeatureID(i)
	}
	return ids
}

func indexNames(table []Entry) map[string]int {
	names := make(map[string]int, len(table))
	for idx, e := range table {
		if _, dup := names[e.Name]; dup || e.Name == "" {
			panic("caps: bad capability name " + e.Name)
		}
		names[e.Name] = idx
	}
	return names
}
