// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"
)

// Commands holds every Vulkan function pointer vkrunner calls, resolved in
// three stages matching Vulkan's own loader hierarchy: pre-instance
// (LoadGlobal), post-instance (LoadInstance), post-device (LoadDevice).
// There is no swapchain/surface stage because vkrunner is headless.
type Commands struct {
	// Global.
	createInstance unsafe.Pointer

	// Instance-level.
	destroyInstance                          unsafe.Pointer
	enumeratePhysicalDevices                 unsafe.Pointer
	enumerateDeviceExtensionProperties       unsafe.Pointer
	getPhysicalDeviceProperties              unsafe.Pointer
	getPhysicalDeviceFeatures                unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties   unsafe.Pointer
	getPhysicalDeviceMemoryProperties        unsafe.Pointer
	getPhysicalDeviceFormatProperties        unsafe.Pointer
	createDevice                             unsafe.Pointer

	// Device-level.
	destroyDevice                   unsafe.Pointer
	getDeviceQueue                  unsafe.Pointer
	deviceWaitIdle                  unsafe.Pointer
	queueSubmit                     unsafe.Pointer
	queueWaitIdle                   unsafe.Pointer
	createCommandPool               unsafe.Pointer
	destroyCommandPool               unsafe.Pointer
	allocateCommandBuffers           unsafe.Pointer
	freeCommandBuffers               unsafe.Pointer
	beginCommandBuffer               unsafe.Pointer
	endCommandBuffer                 unsafe.Pointer
	resetCommandBuffer               unsafe.Pointer
	createFence                      unsafe.Pointer
	destroyFence                     unsafe.Pointer
	waitForFences                    unsafe.Pointer
	resetFences                      unsafe.Pointer
	createImage                      unsafe.Pointer
	destroyImage                     unsafe.Pointer
	getImageMemoryRequirements       unsafe.Pointer
	bindImageMemory                  unsafe.Pointer
	createImageView                  unsafe.Pointer
	destroyImageView                 unsafe.Pointer
	createBuffer                     unsafe.Pointer
	destroyBuffer                    unsafe.Pointer
	getBufferMemoryRequirements      unsafe.Pointer
	bindBufferMemory                 unsafe.Pointer
	allocateMemory                   unsafe.Pointer
	freeMemory                       unsafe.Pointer
	mapMemory                        unsafe.Pointer
	unmapMemory                      unsafe.Pointer
	flushMappedMemoryRanges          unsafe.Pointer
	invalidateMappedMemoryRanges     unsafe.Pointer
	createRenderPass                 unsafe.Pointer
	destroyRenderPass                unsafe.Pointer
	createFramebuffer                unsafe.Pointer
	destroyFramebuffer               unsafe.Pointer
	createShaderModule               unsafe.Pointer
	destroyShaderModule              unsafe.Pointer
	createDescriptorSetLayout        unsafe.Pointer
	destroyDescriptorSetLayout       unsafe.Pointer
	createDescriptorPool             unsafe.Pointer
	destroyDescriptorPool            unsafe.Pointer
	allocateDescriptorSets           unsafe.Pointer
	freeDescriptorSets               unsafe.Pointer
	updateDescriptorSets             unsafe.Pointer
	createPipelineLayout             unsafe.Pointer
	destroyPipelineLayout            unsafe.Pointer
	createGraphicsPipelines          unsafe.Pointer
	createComputePipelines           unsafe.Pointer
	destroyPipeline                  unsafe.Pointer

	cmdBeginRenderPass      unsafe.Pointer
	cmdEndRenderPass        unsafe.Pointer
	cmdBindPipeline         unsafe.Pointer
	cmdBindDescriptorSets   unsafe.Pointer
	cmdBindVertexBuffers    unsafe.Pointer
	cmdBindIndexBuffer      unsafe.Pointer
	cmdDraw                 unsafe.Pointer
	cmdDrawIndexed          unsafe.Pointer
	cmdDispatch             unsafe.Pointer
	cmdPushConstants        unsafe.Pointer
	cmdClearAttachments     unsafe.Pointer
	cmdPipelineBarrier      unsafe.Pointer
	cmdCopyImageToBuffer    unsafe.Pointer
	cmdCopyBuffer           unsafe.Pointer
	cmdSetViewport          unsafe.Pointer
	cmdSetScissor           unsafe.Pointer
}

// NewCommands returns a zeroed dispatch table; call LoadGlobal, then
// LoadInstance, then LoadDevice to populate it.
func NewCommands() *Commands {
	return &Commands{}
}

type procEntry struct {
	name string
	ptr  *unsafe.Pointer
}

// LoadGlobal resolves the handful of functions callable before any
// VkInstance exists.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: vkCreateInstance not found in loader")
	}
	return nil
}

// LoadInstance resolves instance-level functions, including
// vkCreateDevice. It also arms vkGetDeviceProcAddr through the Intel
// workaround documented on SetDeviceProcAddr.
func (c *Commands) LoadInstance(instance Instance) error {
	SetDeviceProcAddr(instance)

	entries := []procEntry{
		{"vkDestroyInstance", &c.destroyInstance},
		{"vkEnumeratePhysicalDevices", &c.enumeratePhysicalDevices},
		{"vkEnumerateDeviceExtensionProperties", &c.enumerateDeviceExtensionProperties},
		{"vkGetPhysicalDeviceProperties", &c.getPhysicalDeviceProperties},
		{"vkGetPhysicalDeviceFeatures", &c.getPhysicalDeviceFeatures},
		{"vkGetPhysicalDeviceQueueFamilyProperties", &c.getPhysicalDeviceQueueFamilyProperties},
		{"vkGetPhysicalDeviceMemoryProperties", &c.getPhysicalDeviceMemoryProperties},
		{"vkGetPhysicalDeviceFormatProperties", &c.getPhysicalDeviceFormatProperties},
		{"vkCreateDevice", &c.createDevice},
	}

	for _, e := range entries {
		*e.ptr = GetInstanceProcAddr(instance, e.name)
		if *e.ptr == nil {
			return fmt.Errorf("vk: required instance function %s not found", e.name)
		}
	}
	return nil
}

// LoadDevice resolves every device-level and command-buffer-recording
// function vkrunner uses.
func (c *Commands) LoadDevice(device Device) error {
	entries := []procEntry{
		{"vkDestroyDevice", &c.destroyDevice},
		{"vkGetDeviceQueue", &c.getDeviceQueue},
		{"vkDeviceWaitIdle", &c.deviceWaitIdle},
		{"vkQueueSubmit", &c.queueSubmit},
		{"vkQueueWaitIdle", &c.queueWaitIdle},
		{"vkCreateCommandPool", &c.createCommandPool},
		{"vkDestroyCommandPool", &c.destroyCommandPool},
		{"vkAllocateCommandBuffers", &c.allocateCommandBuffers},
		{"vkFreeCommandBuffers", &c.freeCommandBuffers},
		{"vkBeginCommandBuffer", &c.beginCommandBuffer},
		{"vkEndCommandBuffer", &c.endCommandBuffer},
		{"vkResetCommandBuffer", &c.resetCommandBuffer},
		{"vkCreateFence", &c.createFence},
		{"vkDestroyFence", &c.destroyFence},
		{"vkWaitForFences", &c.waitForFences},
		{"vkResetFences", &c.resetFences},
		{"vkCreateImage", &c.createImage},
		{"vkDestroyImage", &c.destroyImage},
		{"vkGetImageMemoryRequirements", &c.getImageMemoryRequirements},
		{"vkBindImageMemory", &c.bindImageMemory},
		{"vkCreateImageView", &c.createImageView},
		{"vkDestroyImageView", &c.destroyImageView},
		{"vkCreateBuffer", &c.createBuffer},
		{"vkDestroyBuffer", &c.destroyBuffer},
		{"vkGetBufferMemoryRequirements", &c.getBufferMemoryRequirements},
		{"vkBindBufferMemory", &c.bindBufferMemory},
		{"vkAllocateMemory", &c.allocateMemory},
		{"vkFreeMemory", &c.freeMemory},
		{"vkMapMemory", &c.mapMemory},
		{"vkUnmapMemory", &c.unmapMemory},
		{"vkFlushMappedMemoryRanges", &c.flushMappedMemoryRanges},
		{"vkInvalidateMappedMemoryRanges", &c.invalidateMappedMemoryRanges},
		{"vkCreateRenderPass", &c.createRenderPass},
		{"vkDestroyRenderPass", &c.destroyRenderPass},
		{"vkCreateFramebuffer", &c.createFramebuffer},
		{"vkDestroyFramebuffer", &c.destroyFramebuffer},
		{"vkCreateShaderModule", &c.createShaderModule},
		{"vkDestroyShaderModule", &c.destroyShaderModule},
		{"vkCreateDescriptorSetLayout", &c.createDescriptorSetLayout},
		{"vkDestroyDescriptorSetLayout", &c.destroyDescriptorSetLayout},
		{"vkCreateDescriptorPool", &c.createDescriptorPool},
		{"vkDestroyDescriptorPool", &c.destroyDescriptorPool},
		{"vkAllocateDescriptorSets", &c.allocateDescriptorSets},
		{"vkFreeDescriptorSets", &c.freeDescriptorSets},
		{"vkUpdateDescriptorSets", &c.updateDescriptorSets},
		{"vkCreatePipelineLayout", &c.createPipelineLayout},
		{"vkDestroyPipelineLayout", &c.destroyPipelineLayout},
		{"vkCreateGraphicsPipelines", &c.createGraphicsPipelines},
		{"vkCreateComputePipelines", &c.createComputePipelines},
		{"vkDestroyPipeline", &c.destroyPipeline},
		{"vkCmdBeginRenderPass", &c.cmdBeginRenderPass},
		{"vkCmdEndRenderPass", &c.cmdEndRenderPass},
		{"vkCmdBindPipeline", &c.cmdBindPipeline},
		{"vkCmdBindDescriptorSets", &c.cmdBindDescriptorSets},
		{"vkCmdBindVertexBuffers", &c.cmdBindVertexBuffers},
		{"vkCmdBindIndexBuffer", &c.cmdBindIndexBuffer},
		{"vkCmdDraw", &c.cmdDraw},
		{"vkCmdDrawIndexed", &c.cmdDrawIndexed},
		{"vkCmdDispatch", &c.cmdDispatch},
		{"vkCmdPushConstants", &c.cmdPushConstants},
		{"vkCmdClearAttachments", &c.cmdClearAttachments},
		{"vkCmdPipelineBarrier", &c.cmdPipelineBarrier},
		{"vkCmdCopyImageToBuffer", &c.cmdCopyImageToBuffer},
		{"vkCmdCopyBuffer", &c.cmdCopyBuffer},
		{"vkCmdSetViewport", &c.cmdSetViewport},
		{"vkCmdSetScissor", &c.cmdSetScissor},
	}

	for _, e := range entries {
		*e.ptr = GetDeviceProcAddr(device, e.name)
		if *e.ptr == nil {
			return fmt.Errorf("vk: required device function %s not found", e.name)
		}
	}
	return nil
}
