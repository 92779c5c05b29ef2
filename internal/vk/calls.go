// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// Each wrapper below follows the same shape: build an args[] array of
// pointers-to-storage (never pointers-to-value for pointer-typed
// parameters — see doc.go), call ffi.CallFunction against a prepared
// signature, and surface a non-Success VkResult as an error the caller
// can wrap with call-site context.

func resultErr(fn string, r Result) error {
	if r != Success {
		return fmt.Errorf("vk: %s returned %s (%d)", fn, r, int32(r))
	}
	return nil
}

func (c *Commands) CreateInstance(info *InstanceCreateInfo) (Instance, error) {
	var instance Instance
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&nullPtr),
		unsafe.Pointer(&instance),
	}
	var result Result
	ffi.CallFunction(&SigResultPtrHandleU32PtrPtr, c.createInstance, unsafe.Pointer(&result), args[:])
	return instance, resultErr("vkCreateInstance", result)
}

func (c *Commands) DestroyInstance(instance Instance) {
	var nullPtr unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandlePtr, c.destroyInstance, nil, args[:])
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, error) {
	var count uint32
	args := [3]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&count), nil}
	var result Result
	ffi.CallFunction(&SigResultHandlePtrPtr, c.enumeratePhysicalDevices, unsafe.Pointer(&result), args[:])
	if err := resultErr("vkEnumeratePhysicalDevices", result); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	devices := make([]PhysicalDevice, count)
	devPtr := unsafe.Pointer(&devices[0])
	args2 := [3]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&count), unsafe.Pointer(&devPtr)}
	ffi.CallFunction(&SigResultHandlePtrPtr, c.enumeratePhysicalDevices, unsafe.Pointer(&result), args2[:])
	return devices, resultErr("vkEnumeratePhysicalDevices", result)
}

// EnumerateDeviceExtensionProperties lists pd's supported extensions
// (always querying the implicit layer set, i.e. pLayerName == nullptr).
func (c *Commands) EnumerateDeviceExtensionProperties(pd PhysicalDevice) ([]ExtensionProperties, error) {
	var count uint32
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&nullPtr), unsafe.Pointer(&count), nil}
	var result Result
	ffi.CallFunction(&SigResultHandlePtrPtrPtr, c.enumerateDeviceExtensionProperties, unsafe.Pointer(&result), args[:])
	if err := resultErr("vkEnumerateDeviceExtensionProperties", result); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	props := make([]ExtensionProperties, count)
	propsPtr := unsafe.Pointer(&props[0])
	args2 := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&nullPtr), unsafe.Pointer(&count), unsafe.Pointer(&propsPtr)}
	ffi.CallFunction(&SigResultHandlePtrPtrPtr, c.enumerateDeviceExtensionProperties, unsafe.Pointer(&result), args2[:])
	return props, resultErr("vkEnumerateDeviceExtensionProperties", result)
}

func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice) PhysicalDeviceProperties {
	var props PhysicalDeviceProperties
	propsPtr := unsafe.Pointer(&props)
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&propsPtr)}
	ffi.CallFunction(&SigVoidHandlePtr, c.getPhysicalDeviceProperties, nil, args[:])
	return props
}

func (c *Commands) GetPhysicalDeviceFeatures(pd PhysicalDevice) PhysicalDeviceFeatures {
	var feats PhysicalDeviceFeatures
	featsPtr := unsafe.Pointer(&feats)
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&featsPtr)}
	ffi.CallFunction(&SigVoidHandlePtr, c.getPhysicalDeviceFeatures, nil, args[:])
	return feats
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice) []QueueFamilyProperties {
	var count uint32
	args := [3]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), nil}
	ffi.CallFunction(&SigVoidHandleU32PtrPtr, c.getPhysicalDeviceQueueFamilyProperties, nil, args[:])
	if count == 0 {
		return nil
	}
	out := make([]QueueFamilyProperties, count)
	outPtr := unsafe.Pointer(&out[0])
	args2 := [3]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), unsafe.Pointer(&outPtr)}
	ffi.CallFunction(&SigVoidHandleU32PtrPtr, c.getPhysicalDeviceQueueFamilyProperties, nil, args2[:])
	return out
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice) PhysicalDeviceMemoryProperties {
	var props PhysicalDeviceMemoryProperties
	propsPtr := unsafe.Pointer(&props)
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&propsPtr)}
	ffi.CallFunction(&SigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, nil, args[:])
	return props
}

func (c *Commands) GetPhysicalDeviceFormatProperties(pd PhysicalDevice, format Format) FormatProperties {
	var props FormatProperties
	propsPtr := unsafe.Pointer(&props)
	args := [3]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&format), unsafe.Pointer(&propsPtr)}
	ffi.CallFunction(&SigVoidHandlePtrPtr, c.getPhysicalDeviceFormatProperties, nil, args[:])
	return props
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo) (Device, error) {
	var device Device
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&device)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createDevice, unsafe.Pointer(&result), args[:])
	return device, resultErr("vkCreateDevice", result)
}

func (c *Commands) DestroyDevice(device Device) {
	var nullPtr unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandlePtr, c.destroyDevice, nil, args[:])
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32) Queue {
	var queue Queue
	queuePtr := unsafe.Pointer(&queue)
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&familyIndex), unsafe.Pointer(&queueIndex), unsafe.Pointer(&queuePtr)}
	ffi.CallFunction(&SigVoidHandleU32PtrPtr, c.getDeviceQueue, nil, args[:])
	return queue
}

func (c *Commands) DeviceWaitIdle(device Device) error {
	var result Result
	args := [1]unsafe.Pointer{unsafe.Pointer(&device)}
	ffi.CallFunction(&SigResultHandle, c.deviceWaitIdle, unsafe.Pointer(&result), args[:])
	return resultErr("vkDeviceWaitIdle", result)
}

func (c *Commands) QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) error {
	var submitPtr unsafe.Pointer
	if len(submits) > 0 {
		submitPtr = unsafe.Pointer(&submits[0])
	}
	count := uint32(len(submits))
	var result Result
	args := [4]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&count), unsafe.Pointer(&submitPtr), unsafe.Pointer(&fence)}
	ffi.CallFunction(&SigResultHandleU32PtrHandle, c.queueSubmit, unsafe.Pointer(&result), args[:])
	return resultErr("vkQueueSubmit", result)
}

func (c *Commands) QueueWaitIdle(queue Queue) error {
	var result Result
	args := [1]unsafe.Pointer{unsafe.Pointer(&queue)}
	ffi.CallFunction(&SigResultHandle, c.queueWaitIdle, unsafe.Pointer(&result), args[:])
	return resultErr("vkQueueWaitIdle", result)
}

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo) (CommandPool, error) {
	var pool CommandPool
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&pool)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createCommandPool, unsafe.Pointer(&result), args[:])
	return pool, resultErr("vkCreateCommandPool", result)
}

func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyCommandPool, nil, args[:])
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo) ([]CommandBuffer, error) {
	bufs := make([]CommandBuffer, info.CommandBufferCount)
	infoPtr := unsafe.Pointer(info)
	bufPtr := unsafe.Pointer(&bufs[0])
	var result Result
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&bufPtr)}
	ffi.CallFunction(&SigResultHandlePtrPtr, c.allocateCommandBuffers, unsafe.Pointer(&result), args[:])
	return bufs, resultErr("vkAllocateCommandBuffers", result)
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, bufs []CommandBuffer) {
	count := uint32(len(bufs))
	bufPtr := unsafe.Pointer(&bufs[0])
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&bufPtr)}
	ffi.CallFunction(&SigVoidHandleU32PtrPtrU64, c.freeCommandBuffers, nil, args[:])
}

func (c *Commands) BeginCommandBuffer(cmd CommandBuffer, info *CommandBufferBeginInfo) error {
	infoPtr := unsafe.Pointer(info)
	var result Result
	args := [2]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&infoPtr)}
	ffi.CallFunction(&SigResultHandlePtr, c.beginCommandBuffer, unsafe.Pointer(&result), args[:])
	return resultErr("vkBeginCommandBuffer", result)
}

func (c *Commands) EndCommandBuffer(cmd CommandBuffer) error {
	var result Result
	args := [1]unsafe.Pointer{unsafe.Pointer(&cmd)}
	ffi.CallFunction(&SigResultHandle, c.endCommandBuffer, unsafe.Pointer(&result), args[:])
	return resultErr("vkEndCommandBuffer", result)
}

func (c *Commands) ResetCommandBuffer(cmd CommandBuffer, flags uint32) error {
	var result Result
	args := [2]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&flags)}
	ffi.CallFunction(&SigResultHandleU32Handle, c.resetCommandBuffer, unsafe.Pointer(&result), args[:])
	return resultErr("vkResetCommandBuffer", result)
}

func (c *Commands) CreateFence(device Device, info *FenceCreateInfo) (Fence, error) {
	var fence Fence
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&fence)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createFence, unsafe.Pointer(&result), args[:])
	return fence, resultErr("vkCreateFence", result)
}

func (c *Commands) DestroyFence(device Device, fence Fence) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyFence, nil, args[:])
}

func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeout uint64) error {
	count := uint32(len(fences))
	fencePtr := unsafe.Pointer(&fences[0])
	var all Bool32
	if waitAll {
		all = True
	}
	var result Result
	args := [5]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fencePtr), unsafe.Pointer(&all), unsafe.Pointer(&timeout)}
	ffi.CallFunction(&SigResultHandleU64Bool32U64Ptr, c.waitForFences, unsafe.Pointer(&result), args[:])
	return resultErr("vkWaitForFences", result)
}

func (c *Commands) ResetFences(device Device, fences []Fence) error {
	count := uint32(len(fences))
	fencePtr := unsafe.Pointer(&fences[0])
	var result Result
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fencePtr)}
	ffi.CallFunction(&SigResultHandleU32Fences, c.resetFences, unsafe.Pointer(&result), args[:])
	return resultErr("vkResetFences", result)
}

func (c *Commands) CreateImage(device Device, info *ImageCreateInfo) (Image, error) {
	var img Image
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&img)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createImage, unsafe.Pointer(&result), args[:])
	return img, resultErr("vkCreateImage", result)
}

func (c *Commands) DestroyImage(device Device, img Image) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyImage, nil, args[:])
}

func (c *Commands) GetImageMemoryRequirements(device Device, img Image) MemoryRequirements {
	var req MemoryRequirements
	reqPtr := unsafe.Pointer(&req)
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&reqPtr)}
	ffi.CallFunction(&SigVoidHandlePtrPtr, c.getImageMemoryRequirements, nil, args[:])
	return req
}

func (c *Commands) BindImageMemory(device Device, img Image, mem DeviceMemory, offset DeviceSize) error {
	var result Result
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&mem), unsafe.Pointer(&offset)}
	ffi.CallFunction(&SigResultHandlePtrU32PtrPtr, c.bindImageMemory, unsafe.Pointer(&result), args[:])
	return resultErr("vkBindImageMemory", result)
}

func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo) (ImageView, error) {
	var view ImageView
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&view)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createImageView, unsafe.Pointer(&result), args[:])
	return view, resultErr("vkCreateImageView", result)
}

func (c *Commands) DestroyImageView(device Device, view ImageView) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&view), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyImageView, nil, args[:])
}

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo) (Buffer, error) {
	var buf Buffer
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&buf)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createBuffer, unsafe.Pointer(&result), args[:])
	return buf, resultErr("vkCreateBuffer", result)
}

func (c *Commands) DestroyBuffer(device Device, buf Buffer) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyBuffer, nil, args[:])
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buf Buffer) MemoryRequirements {
	var req MemoryRequirements
	reqPtr := unsafe.Pointer(&req)
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&reqPtr)}
	ffi.CallFunction(&SigVoidHandlePtrPtr, c.getBufferMemoryRequirements, nil, args[:])
	return req
}

func (c *Commands) BindBufferMemory(device Device, buf Buffer, mem DeviceMemory, offset DeviceSize) error {
	var result Result
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&mem), unsafe.Pointer(&offset)}
	ffi.CallFunction(&SigResultHandlePtrU32PtrPtr, c.bindBufferMemory, unsafe.Pointer(&result), args[:])
	return resultErr("vkBindBufferMemory", result)
}

func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo) (DeviceMemory, error) {
	var mem DeviceMemory
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&mem)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.allocateMemory, unsafe.Pointer(&result), args[:])
	return mem, resultErr("vkAllocateMemory", result)
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.freeMemory, nil, args[:])
}

// MapMemory returns a pointer to the mapped range. Callers build a Go
// slice header over it themselves (see internal/memutil), since the
// length is driven by the allocation, not by anything goffi tracks.
func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size DeviceSize) (unsafe.Pointer, error) {
	var flags uint32
	var data unsafe.Pointer
	dataPtr := unsafe.Pointer(&data)
	var result Result
	args := [6]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&flags), unsafe.Pointer(&dataPtr)}
	ffi.CallFunction(&SigResultHandleU64U64PtrPtr, c.mapMemory, unsafe.Pointer(&result), args[:])
	return data, resultErr("vkMapMemory", result)
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.unmapMemory, nil, args[:])
}

func (c *Commands) FlushMappedMemoryRanges(device Device, ranges []MappedMemoryRange) error {
	count := uint32(len(ranges))
	rangePtr := unsafe.Pointer(&ranges[0])
	var result Result
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&rangePtr)}
	ffi.CallFunction(&SigResultHandleU32Fences, c.flushMappedMemoryRanges, unsafe.Pointer(&result), args[:])
	return resultErr("vkFlushMappedMemoryRanges", result)
}

func (c *Commands) InvalidateMappedMemoryRanges(device Device, ranges []MappedMemoryRange) error {
	count := uint32(len(ranges))
	rangePtr := unsafe.Pointer(&ranges[0])
	var result Result
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&rangePtr)}
	ffi.CallFunction(&SigResultHandleU32Fences, c.invalidateMappedMemoryRanges, unsafe.Pointer(&result), args[:])
	return resultErr("vkInvalidateMappedMemoryRanges", result)
}

func (c *Commands) CreateRenderPass(device Device, info *RenderPassCreateInfo) (RenderPass, error) {
	var rp RenderPass
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&rp)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createRenderPass, unsafe.Pointer(&result), args[:])
	return rp, resultErr("vkCreateRenderPass", result)
}

func (c *Commands) DestroyRenderPass(device Device, rp RenderPass) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&rp), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyRenderPass, nil, args[:])
}

func (c *Commands) CreateFramebuffer(device Device, info *FramebufferCreateInfo) (Framebuffer, error) {
	var fb Framebuffer
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&fb)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createFramebuffer, unsafe.Pointer(&result), args[:])
	return fb, resultErr("vkCreateFramebuffer", result)
}

func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fb), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyFramebuffer, nil, args[:])
}

func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo) (ShaderModule, error) {
	var mod ShaderModule
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&mod)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createShaderModule, unsafe.Pointer(&result), args[:])
	return mod, resultErr("vkCreateShaderModule", result)
}

func (c *Commands) DestroyShaderModule(device Device, mod ShaderModule) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mod), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyShaderModule, nil, args[:])
}

func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, error) {
	var layout DescriptorSetLayout
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&layout)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createDescriptorSetLayout, unsafe.Pointer(&result), args[:])
	return layout, resultErr("vkCreateDescriptorSetLayout", result)
}

func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyDescriptorSetLayout, nil, args[:])
}

func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo) (DescriptorPool, error) {
	var pool DescriptorPool
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&pool)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createDescriptorPool, unsafe.Pointer(&result), args[:])
	return pool, resultErr("vkCreateDescriptorPool", result)
}

func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyDescriptorPool, nil, args[:])
}

func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo) ([]DescriptorSet, error) {
	sets := make([]DescriptorSet, info.DescriptorSetCount)
	infoPtr := unsafe.Pointer(info)
	setPtr := unsafe.Pointer(&sets[0])
	var result Result
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&setPtr)}
	ffi.CallFunction(&SigResultHandlePtrPtr, c.allocateDescriptorSets, unsafe.Pointer(&result), args[:])
	return sets, resultErr("vkAllocateDescriptorSets", result)
}

func (c *Commands) FreeDescriptorSets(device Device, pool DescriptorPool, sets []DescriptorSet) error {
	count := uint32(len(sets))
	setPtr := unsafe.Pointer(&sets[0])
	var result Result
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&setPtr)}
	ffi.CallFunction(&SigResultHandleU32PtrHandle, c.freeDescriptorSets, unsafe.Pointer(&result), args[:])
	return resultErr("vkFreeDescriptorSets", result)
}

func (c *Commands) UpdateDescriptorSets(device Device, writes []WriteDescriptorSet) {
	if len(writes) == 0 {
		return
	}
	writeCount := uint32(len(writes))
	writePtr := unsafe.Pointer(&writes[0])
	var copyCount uint32
	args := [5]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&writeCount), unsafe.Pointer(&writePtr), unsafe.Pointer(&copyCount), nil}
	ffi.CallFunction(&SigVoidHandleU32PtrPtrU64, c.updateDescriptorSets, nil, args[:])
}

func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo) (PipelineLayout, error) {
	var layout PipelineLayout
	infoPtr := unsafe.Pointer(info)
	var nullPtr unsafe.Pointer
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&layout)}
	var result Result
	ffi.CallFunction(&SigResultPtrPtrU32PtrPtr, c.createPipelineLayout, unsafe.Pointer(&result), args[:])
	return layout, resultErr("vkCreatePipelineLayout", result)
}

func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyPipelineLayout, nil, args[:])
}

func (c *Commands) CreateGraphicsPipelines(device Device, cache PipelineCache, infos []GraphicsPipelineCreateInfo) ([]Pipeline, error) {
	count := uint32(len(infos))
	infoPtr := unsafe.Pointer(&infos[0])
	pipelines := make([]Pipeline, count)
	pipePtr := unsafe.Pointer(&pipelines[0])
	var nullPtr unsafe.Pointer
	var result Result
	args := [6]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&pipePtr)}
	ffi.CallFunction(&SigResultHandlePtrU32PtrPtr, c.createGraphicsPipelines, unsafe.Pointer(&result), args[:])
	return pipelines, resultErr("vkCreateGraphicsPipelines", result)
}

func (c *Commands) CreateComputePipelines(device Device, cache PipelineCache, infos []ComputePipelineCreateInfo) ([]Pipeline, error) {
	count := uint32(len(infos))
	infoPtr := unsafe.Pointer(&infos[0])
	pipelines := make([]Pipeline, count)
	pipePtr := unsafe.Pointer(&pipelines[0])
	var nullPtr unsafe.Pointer
	var result Result
	args := [6]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count), unsafe.Pointer(&infoPtr), unsafe.Pointer(&nullPtr), unsafe.Pointer(&pipePtr)}
	ffi.CallFunction(&SigResultHandlePtrU32PtrPtr, c.createComputePipelines, unsafe.Pointer(&result), args[:])
	return pipelines, resultErr("vkCreateComputePipelines", result)
}

func (c *Commands) DestroyPipeline(device Device, pipeline Pipeline) {
	var nullPtr unsafe.Pointer
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pipeline), unsafe.Pointer(&nullPtr)}
	ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyPipeline, nil, args[:])
}

func (c *Commands) CmdBeginRenderPass(cmd CommandBuffer, info *RenderPassBeginInfo, contents SubpassContents) {
	infoPtr := unsafe.Pointer(info)
	args := [3]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&infoPtr), unsafe.Pointer(&contents)}
	ffi.CallFunction(&SigCmdVoidHandleU32Ptr, c.cmdBeginRenderPass, nil, args[:])
}

func (c *Commands) CmdEndRenderPass(cmd CommandBuffer) {
	args := [1]unsafe.Pointer{unsafe.Pointer(&cmd)}
	ffi.CallFunction(&SigCmdVoidHandle, c.cmdEndRenderPass, nil, args[:])
}

func (c *Commands) CmdBindPipeline(cmd CommandBuffer, bindPoint PipelineBindPoint, pipeline Pipeline) {
	args := [3]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline)}
	ffi.CallFunction(&SigCmdVoidHandleHandleU32, c.cmdBindPipeline, nil, args[:])
}

func (c *Commands) CmdBindDescriptorSets(cmd CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, first uint32, sets []DescriptorSet) {
	count := uint32(len(sets))
	setPtr := unsafe.Pointer(&sets[0])
	var dynCount uint32
	args := [8]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&bindPoint), unsafe.Pointer(&layout), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&setPtr), unsafe.Pointer(&dynCount), nil}
	ffi.CallFunction(&SigCmdBindDescriptorSets, c.cmdBindDescriptorSets, nil, args[:])
}

func (c *Commands) CmdBindVertexBuffers(cmd CommandBuffer, first uint32, buffers []Buffer, offsets []DeviceSize) {
	count := uint32(len(buffers))
	bufPtr := unsafe.Pointer(&buffers[0])
	offPtr := unsafe.Pointer(&offsets[0])
	args := [5]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&bufPtr), unsafe.Pointer(&offPtr)}
	ffi.CallFunction(&SigCmdBindVertexBuffers, c.cmdBindVertexBuffers, nil, args[:])
}

func (c *Commands) CmdBindIndexBuffer(cmd CommandBuffer, buf Buffer, offset DeviceSize, indexType IndexType) {
	args := [4]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&indexType)}
	ffi.CallFunction(&SigCmdBindIndexBuffer, c.cmdBindIndexBuffer, nil, args[:])
}

func (c *Commands) CmdDraw(cmd CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	args := [5]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&vertexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstVertex), unsafe.Pointer(&firstInstance)}
	ffi.CallFunction(&SigCmdDraw, c.cmdDraw, nil, args[:])
}

func (c *Commands) CmdDrawIndexed(cmd CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	args := [6]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&indexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstIndex), unsafe.Pointer(&vertexOffset), unsafe.Pointer(&firstInstance)}
	ffi.CallFunction(&SigCmdDrawIndexed, c.cmdDrawIndexed, nil, args[:])
}

func (c *Commands) CmdDispatch(cmd CommandBuffer, x, y, z uint32) {
	args := [4]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)}
	ffi.CallFunction(&SigCmdDispatch, c.cmdDispatch, nil, args[:])
}

func (c *Commands) CmdPushConstants(cmd CommandBuffer, layout PipelineLayout, stages ShaderStageFlags, offset, size uint32, data unsafe.Pointer) {
	args := [6]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&layout), unsafe.Pointer(&stages), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&data)}
	ffi.CallFunction(&SigCmdPushConstants, c.cmdPushConstants, nil, args[:])
}

func (c *Commands) CmdClearAttachments(cmd CommandBuffer, attachments []ClearAttachment, rects []ClearRect) {
	attCount := uint32(len(attachments))
	attPtr := unsafe.Pointer(&attachments[0])
	rectCount := uint32(len(rects))
	rectPtr := unsafe.Pointer(&rects[0])
	args := [5]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&attCount), unsafe.Pointer(&attPtr), unsafe.Pointer(&rectCount), unsafe.Pointer(&rectPtr)}
	ffi.CallFunction(&SigCmdClearAttachments, c.cmdClearAttachments, nil, args[:])
}

// PipelineBarrierArgs groups vkCmdPipelineBarrier's many slices so the
// call site doesn't need a ten-parameter function signature.
type PipelineBarrierArgs struct {
	SrcStage     PipelineStageFlags
	DstStage     PipelineStageFlags
	Memory       []MemoryBarrier
	BufferBarriers []BufferMemoryBarrier
	ImageBarriers  []ImageMemoryBarrier
}

func (c *Commands) CmdPipelineBarrier(cmd CommandBuffer, b PipelineBarrierArgs) {
	var depFlags uint32
	mCount := uint32(len(b.Memory))
	var mPtr unsafe.Pointer
	if mCount > 0 {
		mPtr = unsafe.Pointer(&b.Memory[0])
	}
	bCount := uint32(len(b.BufferBarriers))
	var bPtr unsafe.Pointer
	if bCount > 0 {
		bPtr = unsafe.Pointer(&b.BufferBarriers[0])
	}
	iCount := uint32(len(b.ImageBarriers))
	var iPtr unsafe.Pointer
	if iCount > 0 {
		iPtr = unsafe.Pointer(&b.ImageBarriers[0])
	}
	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cmd), unsafe.Pointer(&b.SrcStage), unsafe.Pointer(&b.DstStage), unsafe.Pointer(&depFlags),
		unsafe.Pointer(&mCount), unsafe.Pointer(&mPtr),
		unsafe.Pointer(&bCount), unsafe.Pointer(&bPtr),
		unsafe.Pointer(&iCount), unsafe.Pointer(&iPtr),
	}
	ffi.CallFunction(&SigCmdPipelineBarrier, c.cmdPipelineBarrier, nil, args[:])
}

func (c *Commands) CmdCopyImageToBuffer(cmd CommandBuffer, img Image, layout ImageLayout, buf Buffer, regions []BufferImageCopy) {
	count := uint32(len(regions))
	regionPtr := unsafe.Pointer(&regions[0])
	args := [6]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&img), unsafe.Pointer(&layout), unsafe.Pointer(&buf), unsafe.Pointer(&count), unsafe.Pointer(&regionPtr)}
	ffi.CallFunction(&SigCmdCopyImageToBuffer, c.cmdCopyImageToBuffer, nil, args[:])
}

func (c *Commands) CmdCopyBuffer(cmd CommandBuffer, src, dst Buffer, regions []BufferCopy) {
	count := uint32(len(regions))
	regionPtr := unsafe.Pointer(&regions[0])
	args := [5]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&count), unsafe.Pointer(&regionPtr)}
	ffi.CallFunction(&SigCmdCopyBuffer, c.cmdCopyBuffer, nil, args[:])
}

func (c *Commands) CmdSetViewport(cmd CommandBuffer, viewports []Viewport) {
	first := uint32(0)
	count := uint32(len(viewports))
	vpPtr := unsafe.Pointer(&viewports[0])
	args := [4]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&vpPtr)}
	ffi.CallFunction(&SigCmdSetViewport, c.cmdSetViewport, nil, args[:])
}

func (c *Commands) CmdSetScissor(cmd CommandBuffer, scissors []Rect2D) {
	first := uint32(0)
	count := uint32(len(scissors))
	scPtr := unsafe.Pointer(&scissors[0])
	args := [4]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&scPtr)}
	ffi.CallFunction(&SigCmdSetScissor, c.cmdSetScissor, nil, args[:])
}
