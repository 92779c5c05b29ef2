// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vkcontext owns the Vulkan instance, physical device, logical
// device, queue, command pool, command buffer, and fence one test run
// executes against, built around a single graphics-capable queue instead
// of a swapchain-oriented multi-queue device.
package vkcontext

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

// ErrDeviceSelection is returned when no physical device satisfies the
// script's Requirements; callers map this to a Skip result rather than a
// Fail.
var ErrDeviceSelection = errors.New("vkcontext: no suitable device found")

// Context is the device-level state one script run executes against.
type Context struct {
	Commands *vk.Commands

	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device
	Queue          vk.Queue
	QueueFamily    uint32
	CommandPool    vk.CommandPool
	CommandBuffer  vk.CommandBuffer
	Fence          vk.Fence

	MemoryProperties vk.PhysicalDeviceMemoryProperties

	ownsInstance bool
	ownsDevice   bool

	featureChain uintptr
	logger       *slog.Logger
}

// Options configures Context creation. External-device mode is selected
// by providing ExternalDevice; otherwise Context creates and owns its own
// instance and device.
type Options struct {
	Requirements script.Requirements
	Logger       *slog.Logger

	// ExternalDevice, when non-nil, hands the context a caller-owned
	// physical device, queue family and logical device. The context
	// never destroys these.
	ExternalDevice *ExternalDevice

	// FeatureChain, when non-zero, is threaded into DeviceCreateInfo.Next
	// as the pNext chain for owned-device creation: a caller-built chain
	// of VkPhysicalDeviceFeatures2-style extension structs requesting
	// capabilities beyond the base VkPhysicalDeviceFeatures booleans a
	// script's "require feature" lines name.
	FeatureChain uintptr
}

// ExternalDevice describes a caller-provided device for external-device
// mode.
type ExternalDevice struct {
	PhysicalDevice vk.PhysicalDevice
	QueueFamily    uint32
	Device         vk.Device
	Commands       *vk.Commands
}

// New builds a Context per Options, owning the instance/device unless
// ExternalDevice is set.
func New(opts Options) (*Context, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.ExternalDevice != nil {
		return newExternal(opts)
	}
	return newOwned(opts, logger)
}

func newExternal(opts Options) (*Context, error) {
	ext := opts.ExternalDevice
	c := &Context{
		Commands:       ext.Commands,
		PhysicalDevice: ext.PhysicalDevice,
		Device:         ext.Device,
		QueueFamily:    ext.QueueFamily,
		logger:         opts.Logger,
	}
	c.MemoryProperties = c.Commands.GetPhysicalDeviceMemoryProperties(c.PhysicalDevice)
	c.Queue = c.Commands.GetDeviceQueue(c.Device, c.QueueFamily, 0)

	if err := c.createCommandResources(); err != nil {
		return nil, err
	}
	return c, nil
}

func newOwned(opts Options, logger *slog.Logger) (*Context, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vkcontext: %w", err)
	}

	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return nil, fmt.Errorf("vkcontext: %w", err)
	}

	appName := []byte("vkrunner\x00")
	major, minor := opts.Requirements.EffectiveAPIVersion()
	apiVersion := vk.MakeAPIVersion(0, major, minor, 0)
	appInfo := vk.ApplicationInfo{
		SType:            vk.StructureTypeApplicationInfo,
		PApplicationName: uintptr(unsafe.Pointer(&appName[0])),
		APIVersion:       apiVersion,
	}
	instanceInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: uintptr(unsafe.Pointer(&appInfo)),
	}

	instance, err := cmds.CreateInstance(&instanceInfo)
	if err != nil {
		return nil, fmt.Errorf("vkcontext: %w", err)
	}

	if err := cmds.LoadInstance(instance); err != nil {
		cmds.DestroyInstance(instance)
		return nil, fmt.Errorf("vkcontext: %w", err)
	}

	c := &Context{
		Commands:     cmds,
		Instance:     instance,
		ownsInstance: true,
		logger:       logger,
		featureChain: opts.FeatureChain,
	}

	pd, family, err := selectPhysicalDevice(cmds, instance, opts.Requirements, logger)
	if err != nil {
		cmds.DestroyInstance(instance)
		return nil, err
	}
	c.PhysicalDevice = pd
	c.QueueFamily = family
	c.MemoryProperties = cmds.GetPhysicalDeviceMemoryProperties(pd)

	if err := c.createLogicalDevice(opts.Requirements); err != nil {
		cmds.DestroyInstance(instance)
		return nil, err
	}
	c.ownsDevice = true

	if err := c.createCommandResources(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

// selectPhysicalDevice walks the instance's physical devices, picking the
// configured DeviceID if set, otherwise the first device that has a
// graphics-capable queue family with at least one queue and satisfies
// req's requested extensions and features.
func selectPhysicalDevice(cmds *vk.Commands, instance vk.Instance, req script.Requirements, logger *slog.Logger) (vk.PhysicalDevice, uint32, error) {
	devices, err := cmds.EnumeratePhysicalDevices(instance)
	if err != nil {
		return 0, 0, fmt.Errorf("vkcontext: %w", err)
	}
	if len(devices) == 0 {
		return 0, 0, ErrDeviceSelection
	}

	if req.DeviceID >= 0 {
		if req.DeviceID >= len(devices) {
			return 0, 0, fmt.Errorf("%w: device index %d out of range (%d available)", ErrDeviceSelection, req.DeviceID, len(devices))
		}
		pd := devices[req.DeviceID]
		family, ok := graphicsQueueFamily(cmds, pd)
		if !ok {
			return 0, 0, fmt.Errorf("%w: selected device has no graphics queue family", ErrDeviceSelection)
		}
		if !deviceSupportsRequirements(cmds, pd, req) {
			return 0, 0, fmt.Errorf("%w: selected device does not satisfy the requested extensions/features", ErrDeviceSelection)
		}
		return pd, family, nil
	}

	for _, pd := range devices {
		family, ok := graphicsQueueFamily(cmds, pd)
		if !ok {
			continue
		}
		if !deviceSupportsRequirements(cmds, pd, req) {
			continue
		}
		props := cmds.GetPhysicalDeviceProperties(pd)
		logger.Info("vkcontext: selected device", "name", cString(props.DeviceName[:]))
		return pd, family, nil
	}

	return 0, 0, ErrDeviceSelection
}

func graphicsQueueFamily(cmds *vk.Commands, pd vk.PhysicalDevice) (uint32, bool) {
	families := cmds.GetPhysicalDeviceQueueFamilyProperties(pd)
	for i, f := range families {
		if f.QueueFlags&vk.QueueGraphicsBit != 0 && f.QueueCount > 0 {
			return uint32(i), true
		}
	}
	return 0, false
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func (c *Context) createLogicalDevice(req script.Requirements) error {
	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: c.QueueFamily,
		QueueCount:       1,
		PQueuePriorities: uintptr(unsafe.Pointer(&priority)),
	}

	features, err := enabledFeatures(req)
	if err != nil {
		return fmt.Errorf("vkcontext: %w", err)
	}
	extensions := newCStringList(req.Extensions)

	deviceInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		Next:                    c.featureChain,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       uintptr(unsafe.Pointer(&queueInfo)),
		EnabledExtensionCount:   extensions.count(),
		PPEnabledExtensionNames: extensions.ptr(),
		PEnabledFeatures:        uintptr(unsafe.Pointer(&features)),
	}

	device, err := c.Commands.CreateDevice(c.PhysicalDevice, &deviceInfo)
	if err != nil {
		return fmt.Errorf("vkcontext: %w", err)
	}
	c.Device = device

	if err := c.Commands.LoadDevice(device); err != nil {
		c.Commands.DestroyDevice(device)
		return fmt.Errorf("vkcontext: %w", err)
	}

	c.Queue = c.Commands.GetDeviceQueue(device, c.QueueFamily, 0)
	return nil
}

func (c *Context) createCommandResources() error {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateResetCommandBufferBit,
		QueueFamilyIndex: c.QueueFamily,
	}
	pool, err := c.Commands.CreateCommandPool(c.Device, &poolInfo)
	if err != nil {
		return fmt.Errorf("vkcontext: %w", err)
	}
	c.CommandPool = pool

	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	bufs, err := c.Commands.AllocateCommandBuffers(c.Device, &allocInfo)
	if err != nil {
		return fmt.Errorf("vkcontext: %w", err)
	}
	c.CommandBuffer = bufs[0]

	fenceInfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	fence, err := c.Commands.CreateFence(c.Device, &fenceInfo)
	if err != nil {
		return fmt.Errorf("vkcontext: %w", err)
	}
	c.Fence = fence

	return nil
}

// ListDevices enumerates the instance's physical devices and their
// properties, for the CLI's device-listing subcommand. Requires an
// instance-owning Context (not external-device mode).
func (c *Context) ListDevices() ([]vk.PhysicalDeviceProperties, error) {
	if !c.ownsInstance {
		return nil, fmt.Errorf("vkcontext: ListDevices requires an owned instance")
	}
	devices, err := c.Commands.EnumeratePhysicalDevices(c.Instance)
	if err != nil {
		return nil, fmt.Errorf("vkcontext: %w", err)
	}
	out := make([]vk.PhysicalDeviceProperties, len(devices))
	for i, pd := range devices {
		out[i] = c.Commands.GetPhysicalDeviceProperties(pd)
	}
	return out, nil
}

// Close releases every resource this Context owns, in reverse creation
// order. It is a no-op in external-device mode beyond the command pool
// and fence, which the context always owns.
func (c *Context) Close() {
	if c.Fence != 0 {
		c.Commands.DestroyFence(c.Device, c.Fence)
	}
	if c.CommandPool != 0 {
		c.Commands.DestroyCommandPool(c.Device, c.CommandPool)
	}
	if c.ownsDevice {
		c.Commands.DestroyDevice(c.Device)
	}
	if c.ownsInstance {
		c.Commands.DestroyInstance(c.Instance)
	}
}
