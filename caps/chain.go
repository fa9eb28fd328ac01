// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps

import (
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Block tags a group of capabilities that is stored together in a Chain.
type Block uint8

// Blocks a Chain can be composed of
const (
	BlockCoreFeatures Block = iota
	BlockDescriptorIndexing
	BlockDeviceProperties
	BlockLimits
	BlockQueueProperties
	blockCount
)

var blockNames = [blockCount]string{
	BlockCoreFeatures:       "core features",
	BlockDescriptorIndexing: "descriptor indexing features",
	BlockDeviceProperties:   "device properties",
	BlockLimits:             "limits",
	BlockQueueProperties:    "queue properties",
}

func (b Block) String() string {
	if b < blockCount {
		return blockNames[b]
	}
	return fmt.Sprintf("block(%d)", b)
}

// DeviceType is the kind of a physical device.
type DeviceType uint32

// Device types, numbered the same way the Vulkan API numbers them
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

// QueueFlags is the set of operations a queue family supports.
type QueueFlags uint32

// Queue capability bits, valued as in the Vulkan API
const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
	QueueProtected     QueueFlags = 0x10
)

// CoreFeatures holds the base device feature flags.
type CoreFeatures struct {
	RobustBufferAccess        bool
	FullDrawIndexUint32       bool
	ImageCubeArray            bool
	IndependentBlend          bool
	GeometryShader            bool
	TessellationShader        bool
	SampleRateShading         bool
	DualSrcBlend              bool
	LogicOp                   bool
	MultiDrawIndirect         bool
	DrawIndirectFirstInstance bool
	DepthClamp                bool
	DepthBiasClamp            bool
	FillModeNonSolid          bool
	DepthBounds               bool
	WideLines                 bool
	LargePoints               bool
	AlphaToOne                bool
	MultiViewport             bool
	SamplerAnisotropy         bool
	TextureCompressionBC      bool
	OcclusionQueryPrecise     bool
	PipelineStatisticsQuery   bool
	FragmentStoresAndAtomics  bool
	ShaderClipDistance        bool
	ShaderCullDistance        bool
	ShaderFloat64             bool
	ShaderInt64               bool
	ShaderInt16               bool
	SparseBinding             bool
}

// DescriptorIndexingFeatures holds the VK_EXT_descriptor_indexing feature flags.
type DescriptorIndexingFeatures struct {
	ShaderSampledImageArrayNonUniformIndexing    bool
	DescriptorBindingSampledImageUpdateAfterBind bool
	DescriptorBindingPartiallyBound              bool
	DescriptorBindingVariableDescriptorCount     bool
	RuntimeDescriptorArray                       bool
}

// DeviceProperties identifies a device and its driver.
type DeviceProperties struct {
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	DeviceType    DeviceType
	DeviceName    string
}

// Limits holds the numeric limits of a device.
type Limits struct {
	MaxImageDimension1D             uint32
	MaxImageDimension2D             uint32
	MaxImageDimension3D             uint32
	MaxImageDimensionCube           uint32
	MaxImageArrayLayers             uint32
	MaxUniformBufferRange           uint32
	MaxStorageBufferRange           uint32
	MaxPushConstantsSize            uint32
	MaxMemoryAllocationCount        uint32
	MaxSamplerAllocationCount       uint32
	MaxBoundDescriptorSets          uint32
	MaxPerStageDescriptorSamplers   uint32
	MaxVertexInputAttributes        uint32
	MaxComputeSharedMemorySize      uint32
	MaxComputeWorkGroupInvocations  uint32
	MaxViewports                    uint32
	MaxFramebufferWidth             uint32
	MaxFramebufferHeight            uint32
	MaxFramebufferLayers            uint32
	MaxColorAttachments             uint32
	BufferImageGranularity          uint64
	MinUniformBufferOffsetAlignment uint64
	MinStorageBufferOffsetAlignment uint64
	NonCoherentAtomSize             uint64
	MaxSamplerAnisotropy            float32
	TimestampPeriod                 float32
	MaxViewportDimensions           [2]uint32
	MaxComputeWorkGroupCount        [3]uint32
	MaxComputeWorkGroupSize         [3]uint32
	ViewportBoundsRange             glm.Vec2
	PointSizeRange                  glm.Vec2
	LineWidthRange                  glm.Vec2
}

// QueueProperties describes a single queue family.
type QueueProperties struct {
	Flags                       QueueFlags
	Count                       uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity [3]uint32
}

// Chain is a fixed aggregate of capability blocks. Which blocks exist
// is decided when the chain is created and never changes afterwards.
// Asking for a block that the chain was not created with panics.
type Chain struct {
	coreFeatures       *CoreFeatures
	descriptorIndexing *DescriptorIndexingFeatures
	deviceProperties   *DeviceProperties
	limits             *Limits
	queueProperties    *QueueProperties
}

// NewChain creates a chain holding zeroed blocks for each tag given.
func NewChain(blocks ...Block) *Chain {
	c := &Chain{}
	for _, b := range blocks {
		switch b {
		case BlockCoreFeatures:
			c.coreFeatures = &CoreFeatures{}
		case BlockDescriptorIndexing:
			c.descriptorIndexing = &DescriptorIndexingFeatures{}
		case BlockDeviceProperties:
			c.deviceProperties = &DeviceProperties{}
		case BlockLimits:
			c.limits = &Limits{}
		case BlockQueueProperties:
			c.queueProperties = &QueueProperties{}
		default:
			panic(fmt.Sprintf("caps: unknown %s", b))
		}
	}
	return c
}

// NewFeatureChain creates a chain with every feature block.
func NewFeatureChain() *Chain {
	return NewChain(BlockCoreFeatures, BlockDescriptorIndexing)
}

// NewPropertyChain creates a chain with every device property block.
func NewPropertyChain() *Chain {
	return NewChain(BlockDeviceProperties, BlockLimits)
}

// NewQueueChain creates a chain describing one queue family.
func NewQueueChain() *Chain {
	return NewChain(BlockQueueProperties)
}

// Has reports whether the chain was created with block b.
func (c *Chain) Has(b Block) bool {
	switch b {
	case BlockCoreFeatures:
		return c.coreFeatures != nil
	case BlockDescriptorIndexing:
		return c.descriptorIndexing != nil
	case BlockDeviceProperties:
		return c.deviceProperties != nil
	case BlockLimits:
		return c.limits != nil
	case BlockQueueProperties:
		return c.queueProperties != nil
	}
	return false
}

// Blocks lists the blocks present, in tag order.
func (c *Chain) Blocks() []Block {
	var blocks []Block
	for b := Block(0); b < blockCount; b++ {
		if c.Has(b) {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// CoreFeatures returns the base feature block.
func (c *Chain) CoreFeatures() *CoreFeatures {
	if c.coreFeatures == nil {
		absent(BlockCoreFeatures)
	}
	return c.coreFeatures
}

// DescriptorIndexingFeatures returns the descriptor indexing feature block.
func (c *Chain) DescriptorIndexingFeatures() *DescriptorIndexingFeatures {
	if c.descriptorIndexing == nil {
		absent(BlockDescriptorIndexing)
	}
	return c.descriptorIndexing
}

// DeviceProperties returns the identity block.
func (c *Chain) DeviceProperties() *DeviceProperties {
	if c.deviceProperties == nil {
		absent(BlockDeviceProperties)
	}
	return c.deviceProperties
}

// Limits returns the limits block.
func (c *Chain) Limits() *Limits {
	if c.limits == nil {
		absent(BlockLimits)
	}
	return c.limits
}

// QueueProperties returns the queue family block.
func (c *Chain) QueueProperties() *QueueProperties {
	if c.queueProperties == nil {
		absent(BlockQueueProperties)
	}
	return c.queueProperties
}

// Clone returns a deep copy that shares no storage with c.
func (c *Chain) Clone() *Chain {
	clone := &Chain{}
	if c.coreFeatures != nil {
		v := *c.coreFeatures
		clone.coreFeatures = &v
	}
	if c.descriptorIndexing != nil {
		v := *c.descriptorIndexing
		clone.descriptorIndexing = &v
	}
	if c.deviceProperties != nil {
		v := *c.deviceProperties
		clone.deviceProperties = &v
	}
	if c.limits != nil {
		v := *c.limits
		clone.limits = &v
	}
	if c.queueProperties != nil {
		v := *c.queueProperties
		clone.queueProperties = &v
	}
	return clone
}

func absent(b Block) {
	panic(fmt.Sprintf("caps: chain has no %s block", b))
}
