// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Handles are opaque 64-bit values on every platform goffi targets here,
// matching VK_DEFINE_HANDLE/VK_DEFINE_NON_DISPATCHABLE_HANDLE.

type (
	Instance             uint64
	PhysicalDevice        uint64
	Device                uint64
	Queue                 uint64
	CommandPool           uint64
	CommandBuffer         uint64
	Buffer                uint64
	BufferView            uint64
	Image                 uint64
	ImageView             uint64
	DeviceMemory          uint64
	ShaderModule          uint64
	Pipeline              uint64
	PipelineCache         uint64
	PipelineLayout        uint64
	RenderPass            uint64
	Framebuffer           uint64
	DescriptorSetLayout   uint64
	DescriptorPool        uint64
	DescriptorSet         uint64
	Sampler               uint64
	Fence                 uint64
	Semaphore             uint64
	Event                 uint64
	QueryPool             uint64
)

// Result mirrors VkResult.
type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	EventSet                  Result = 3
	EventReset                Result = 4
	Incomplete                Result = 5
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
	ErrorFormatNotSupported   Result = -11
	ErrorFragmentedPool       Result = -12
	ErrorOutOfPoolMemory      Result = -1000069000
)

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorExtensionNotPresent:
		return "VK_ERROR_EXTENSION_NOT_PRESENT"
	case ErrorFeatureNotPresent:
		return "VK_ERROR_FEATURE_NOT_PRESENT"
	case ErrorIncompatibleDriver:
		return "VK_ERROR_INCOMPATIBLE_DRIVER"
	default:
		return "VK_ERROR(unknown)"
	}
}

// Bool32 mirrors VkBool32.
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)

// DeviceSize mirrors VkDeviceSize (always 64-bit, unlike size_t).
type DeviceSize uint64
