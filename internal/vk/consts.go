// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// StructureType mirrors VkStructureType — only the sType values vkrunner
// actually populates.
type StructureType uint32

const (
	StructureTypeApplicationInfo                   StructureType = 0
	StructureTypeInstanceCreateInfo                StructureType = 1
	StructureTypeDeviceQueueCreateInfo              StructureType = 2
	StructureTypeDeviceCreateInfo                   StructureType = 3
	StructureTypeSubmitInfo                         StructureType = 4
	StructureTypeMemoryAllocateInfo                 StructureType = 5
	StructureTypeMappedMemoryRange                  StructureType = 6
	StructureTypeFenceCreateInfo                    StructureType = 8
	StructureTypeBufferCreateInfo                   StructureType = 12
	StructureTypeBufferViewCreateInfo               StructureType = 13
	StructureTypeImageCreateInfo                    StructureType = 14
	StructureTypeImageViewCreateInfo                StructureType = 15
	StructureTypeShaderModuleCreateInfo              StructureType = 16
	StructureTypePipelineCacheCreateInfo             StructureType = 17
	StructureTypePipelineShaderStageCreateInfo       StructureType = 18
	StructureTypePipelineVertexInputStateCreateInfo  StructureType = 19
	StructureTypePipelineInputAssemblyStateCreateInfo StructureType = 20
	StructureTypePipelineViewportStateCreateInfo     StructureType = 22
	StructureTypePipelineRasterizationStateCreateInfo StructureType = 23
	StructureTypePipelineMultisampleStateCreateInfo  StructureType = 24
	StructureTypePipelineDepthStencilStateCreateInfo StructureType = 25
	StructureTypePipelineColorBlendStateCreateInfo   StructureType = 26
	StructureTypePipelineDynamicStateCreateInfo      StructureType = 27
	StructureTypeGraphicsPipelineCreateInfo          StructureType = 28
	StructureTypeComputePipelineCreateInfo           StructureType = 29
	StructureTypePipelineLayoutCreateInfo            StructureType = 30
	StructureTypeCommandPoolCreateInfo               StructureType = 39
	StructureTypeCommandBufferAllocateInfo           StructureType = 40
	StructureTypeCommandBufferBeginInfo              StructureType = 42
	StructureTypeRenderPassBeginInfo                 StructureType = 43
	StructureTypeBufferMemoryBarrier                 StructureType = 44
	StructureTypeImageMemoryBarrier                  StructureType = 45
	StructureTypeFramebufferCreateInfo               StructureType = 37
	StructureTypeRenderPassCreateInfo                StructureType = 38
	StructureTypeDescriptorSetLayoutCreateInfo       StructureType = 32
	StructureTypeDescriptorPoolCreateInfo            StructureType = 33
	StructureTypeDescriptorSetAllocateInfo           StructureType = 34
	StructureTypeWriteDescriptorSet                  StructureType = 35
	StructureTypePhysicalDeviceFeatures2             StructureType = 1000059000
)

// Format mirrors the VkFormat subset the format table cares about.
type Format uint32

const (
	FormatUndefined         Format = 0
	FormatR8Unorm           Format = 9
	FormatR8Snorm           Format = 10
	FormatR8Uint            Format = 13
	FormatR8Sint            Format = 14
	FormatR8G8Unorm         Format = 16
	FormatR8G8B8A8Unorm     Format = 37
	FormatR8G8B8A8Snorm     Format = 38
	FormatR8G8B8A8Uint      Format = 41
	FormatR8G8B8A8Sint      Format = 42
	FormatR8G8B8A8Srgb      Format = 43
	FormatB8G8R8A8Unorm     Format = 44
	FormatB8G8R8A8Srgb      Format = 50
	FormatR5G6B5UnormPack16 Format = 4
	FormatR16Sfloat         Format = 76
	FormatR16G16B16A16Sfloat Format = 97
	FormatR32Uint           Format = 98
	FormatR32Sint           Format = 99
	FormatR32Sfloat         Format = 100
	FormatR32G32Sfloat      Format = 103
	FormatR32G32B32Sfloat   Format = 106
	FormatR32G32B32A32Sfloat Format = 109
	FormatR64Sfloat         Format = 112
	FormatD16Unorm          Format = 124
	FormatD32Sfloat         Format = 126
	FormatS8Uint            Format = 127
	FormatD24UnormS8Uint    Format = 129
	FormatD32SfloatS8Uint   Format = 130
)

// ImageType / ImageViewType / ImageTiling / ImageLayout.
type (
	ImageType     uint32
	ImageViewType uint32
	ImageTiling   uint32
	ImageLayout   uint32
)

const (
	ImageType1D ImageType = 0
	ImageType2D ImageType = 1
	ImageType3D ImageType = 2
)

const (
	ImageViewType1D ImageViewType = 0
	ImageViewType2D ImageViewType = 1
)

const (
	ImageTilingOptimal ImageTiling = 0
	ImageTilingLinear  ImageTiling = 1
)

const (
	ImageLayoutUndefined                     ImageLayout = 0
	ImageLayoutGeneral                       ImageLayout = 1
	ImageLayoutColorAttachmentOptimal         ImageLayout = 2
	ImageLayoutDepthStencilAttachmentOptimal  ImageLayout = 3
	ImageLayoutTransferSrcOptimal             ImageLayout = 6
	ImageLayoutTransferDstOptimal             ImageLayout = 7
)

// SampleCountFlagBits.
type SampleCountFlagBits uint32

const SampleCount1Bit SampleCountFlagBits = 1

// ImageUsageFlags / ImageAspectFlags.
type (
	ImageUsageFlags  uint32
	ImageAspectFlags uint32
)

const (
	ImageUsageTransferSrcBit         ImageUsageFlags = 1 << 0
	ImageUsageTransferDstBit         ImageUsageFlags = 1 << 1
	ImageUsageColorAttachmentBit     ImageUsageFlags = 1 << 4
	ImageUsageDepthStencilAttachmentBit ImageUsageFlags = 1 << 5
)

const (
	ImageAspectColorBit   ImageAspectFlags = 1 << 0
	ImageAspectDepthBit   ImageAspectFlags = 1 << 1
	ImageAspectStencilBit ImageAspectFlags = 1 << 2
)

// BufferUsageFlags.
type BufferUsageFlags uint32

const (
	BufferUsageTransferSrcBit   BufferUsageFlags = 1 << 0
	BufferUsageTransferDstBit   BufferUsageFlags = 1 << 1
	BufferUsageUniformBufferBit BufferUsageFlags = 1 << 4
	BufferUsageStorageBufferBit BufferUsageFlags = 1 << 5
	BufferUsageIndexBufferBit   BufferUsageFlags = 1 << 6
	BufferUsageVertexBufferBit  BufferUsageFlags = 1 << 7
)

// SharingMode.
type SharingMode uint32

const SharingModeExclusive SharingMode = 0

// MemoryPropertyFlags / MemoryHeapFlags.
type (
	MemoryPropertyFlags uint32
	MemoryHeapFlags     uint32
)

const (
	MemoryPropertyDeviceLocalBit  MemoryPropertyFlags = 1 << 0
	MemoryPropertyHostVisibleBit  MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherentBit MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCachedBit   MemoryPropertyFlags = 1 << 3
)

// PipelineStageFlags / AccessFlags used in barriers.
type (
	PipelineStageFlags uint32
	AccessFlags        uint32
)

const (
	PipelineStageTopOfPipeBit            PipelineStageFlags = 1 << 0
	PipelineStageDrawIndirectBit         PipelineStageFlags = 1 << 1
	PipelineStageComputeShaderBit        PipelineStageFlags = 1 << 11
	PipelineStageTransferBit             PipelineStageFlags = 1 << 12
	PipelineStageColorAttachmentOutputBit PipelineStageFlags = 1 << 10
	PipelineStageAllCommandsBit          PipelineStageFlags = 1 << 16
	PipelineStageHostBit                 PipelineStageFlags = 1 << 14
)

const (
	AccessColorAttachmentWriteBit AccessFlags = 1 << 8
	AccessColorAttachmentReadBit  AccessFlags = 1 << 7
	AccessTransferReadBit         AccessFlags = 1 << 11
	AccessTransferWriteBit        AccessFlags = 1 << 12
	AccessHostReadBit             AccessFlags = 1 << 13
	AccessShaderWriteBit          AccessFlags = 1 << 6
)

// AttachmentLoadOp / AttachmentStoreOp.
type (
	AttachmentLoadOp  uint32
	AttachmentStoreOp uint32
)

const (
	AttachmentLoadOpLoad     AttachmentLoadOp = 0
	AttachmentLoadOpClear    AttachmentLoadOp = 1
	AttachmentLoadOpDontCare AttachmentLoadOp = 2
)

const (
	AttachmentStoreOpStore    AttachmentStoreOp = 0
	AttachmentStoreOpDontCare AttachmentStoreOp = 1
)

// FormatFeatureFlags, reported by vkGetPhysicalDeviceFormatProperties.
type FormatFeatureFlags uint32

const (
	FormatFeatureColorAttachmentBit FormatFeatureFlags = 1 << 7
	FormatFeatureBlitSrcBit         FormatFeatureFlags = 1 << 10
	FormatFeatureDepthStencilAttachmentBit FormatFeatureFlags = 1 << 9
)

// PipelineBindPoint.
type PipelineBindPoint uint32

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute  PipelineBindPoint = 1
)

// ShaderStageFlagBits / ShaderStageFlags.
type ShaderStageFlags uint32

const (
	ShaderStageVertexBit   ShaderStageFlags = 1 << 0
	ShaderStageFragmentBit ShaderStageFlags = 1 << 4
	ShaderStageComputeBit  ShaderStageFlags = 1 << 5
)

// DescriptorType.
type DescriptorType uint32

const (
	DescriptorTypeUniformBuffer DescriptorType = 6
	DescriptorTypeStorageBuffer DescriptorType = 7
)

// DescriptorPoolCreateFlags.
type DescriptorPoolCreateFlags uint32

const DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolCreateFlags = 1 << 0

// CommandPoolCreateFlags.
type CommandPoolCreateFlags uint32

const CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 1 << 1

// CommandBufferLevel / CommandBufferUsageFlags.
type (
	CommandBufferLevel      uint32
	CommandBufferUsageFlags uint32
)

const CommandBufferLevelPrimary CommandBufferLevel = 0

const CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = 1 << 0

// SubpassContents.
type SubpassContents uint32

const SubpassContentsInline SubpassContents = 0

// PrimitiveTopology.
type PrimitiveTopology uint32

const (
	PrimitiveTopologyPointList     PrimitiveTopology = 0
	PrimitiveTopologyLineList      PrimitiveTopology = 1
	PrimitiveTopologyLineStrip     PrimitiveTopology = 2
	PrimitiveTopologyTriangleList  PrimitiveTopology = 3
	PrimitiveTopologyTriangleStrip PrimitiveTopology = 4
	PrimitiveTopologyTriangleFan   PrimitiveTopology = 5
)

// PolygonMode / CullModeFlags / FrontFace.
type (
	PolygonMode    uint32
	CullModeFlags  uint32
	FrontFace      uint32
)

const PolygonModeFill PolygonMode = 0

const (
	CullModeNone      CullModeFlags = 0
	CullModeFrontBit  CullModeFlags = 1 << 0
	CullModeBackBit   CullModeFlags = 1 << 1
)

const (
	FrontFaceCounterClockwise FrontFace = 0
	FrontFaceClockwise        FrontFace = 1
)

// CompareOp.
type CompareOp uint32

const (
	CompareOpNever          CompareOp = 0
	CompareOpLess           CompareOp = 1
	CompareOpEqual          CompareOp = 2
	CompareOpLessOrEqual    CompareOp = 3
	CompareOpGreater        CompareOp = 4
	CompareOpNotEqual       CompareOp = 5
	CompareOpGreaterOrEqual CompareOp = 6
	CompareOpAlways         CompareOp = 7
)

// VertexInputRate.
type VertexInputRate uint32

const (
	VertexInputRateVertex   VertexInputRate = 0
	VertexInputRateInstance VertexInputRate = 1
)

// DynamicState.
type DynamicState uint32

const (
	DynamicStateViewport DynamicState = 0
	DynamicStateScissor  DynamicState = 1
)

// IndexType.
type IndexType uint32

const (
	IndexTypeUint16 IndexType = 0
	IndexTypeUint32 IndexType = 1
)

// ColorComponentFlags.
type ColorComponentFlags uint32

const (
	ColorComponentRBit ColorComponentFlags = 1 << 0
	ColorComponentGBit ColorComponentFlags = 1 << 1
	ColorComponentBBit ColorComponentFlags = 1 << 2
	ColorComponentABit ColorComponentFlags = 1 << 3
)

const ColorComponentAll = ColorComponentRBit | ColorComponentGBit | ColorComponentBBit | ColorComponentABit

// PipelineCreateFlags.
type PipelineCreateFlags uint32

const (
	PipelineCreateAllowDerivativesBit PipelineCreateFlags = 1 << 1
	PipelineCreateDerivativeBit       PipelineCreateFlags = 1 << 2
)

// QueueFlagBits.
type QueueFlags uint32

const (
	QueueGraphicsBit QueueFlags = 1 << 0
	QueueComputeBit  QueueFlags = 1 << 1
)

// PhysicalDeviceType.
type PhysicalDeviceType uint32

const (
	PhysicalDeviceTypeOther         PhysicalDeviceType = 0
	PhysicalDeviceTypeIntegratedGpu PhysicalDeviceType = 1
	PhysicalDeviceTypeDiscreteGpu   PhysicalDeviceType = 2
	PhysicalDeviceTypeVirtualGpu    PhysicalDeviceType = 3
	PhysicalDeviceTypeCpu           PhysicalDeviceType = 4
)

// MemoryMapFlags — always 0, kept for signature parity with vkMapMemory.
type MemoryMapFlags uint32

// MaxPhysicalDeviceNameSize mirrors VK_MAX_PHYSICAL_DEVICE_NAME_SIZE.
const MaxPhysicalDeviceNameSize = 256

// MaxMemoryTypes / MaxMemoryHeaps mirror the Vulkan spec limits.
const (
	MaxMemoryTypes = 32
	MaxMemoryHeaps = 16
)

// MaxExtensionNameSize mirrors VK_MAX_EXTENSION_NAME_SIZE.
const MaxExtensionNameSize = 256

// MakeAPIVersion builds a VK_MAKE_API_VERSION(variant, major, minor, patch) value.
func MakeAPIVersion(variant, major, minor, patch uint32) uint32 {
	return (variant << 29) | (major << 22) | (minor << 12) | patch
}
