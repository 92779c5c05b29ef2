// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package memutil selects Vulkan memory types and performs the
// allocate/bind/map bookkeeping every owner of device memory in vkrunner
// needs, plus the HOST_COHERENT flush/invalidate helpers that keep
// mapped writes visible to the device and readbacks visible to the host.
// Memory-type selection is a standalone function rather than a method on
// a long-lived allocator object, since vkrunner allocates a handful of
// long-lived resources per run rather than servicing an application's
// steady allocation traffic.
package memutil

import (
	"fmt"
	"os"
	"strings"
	"unsafe"

	"github.com/igalia/vkrunner/internal/vk"
)

// alwaysFlush mirrors VKRUNNER_ALWAYS_FLUSH_MEMORY: when true, Flush
// issues vkFlushMappedMemoryRanges even for HOST_COHERENT memory.
func alwaysFlush() bool {
	v := strings.ToLower(os.Getenv("VKRUNNER_ALWAYS_FLUSH_MEMORY"))
	switch v {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// FindMemoryType returns the index of the first memory type in props
// whose bit is set in typeBits and whose PropertyFlags is a superset of
// required, or ok=false if none qualifies.
func FindMemoryType(props vk.PhysicalDeviceMemoryProperties, typeBits uint32, required vk.MemoryPropertyFlags) (index uint32, ok bool) {
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if props.MemoryTypes[i].PropertyFlags&required == required {
			return i, true
		}
	}
	return 0, false
}

// IsCoherent reports whether the given memory type index carries
// HOST_COHERENT.
func IsCoherent(props vk.PhysicalDeviceMemoryProperties, typeIndex uint32) bool {
	return props.MemoryTypes[typeIndex].PropertyFlags&vk.MemoryPropertyHostCoherentBit != 0
}

// Flush is a no-op when the memory type is HOST_COHERENT (unless
// VKRUNNER_ALWAYS_FLUSH_MEMORY overrides that), otherwise it issues
// vkFlushMappedMemoryRanges over a single range.
func Flush(cmds *vk.Commands, device vk.Device, props vk.PhysicalDeviceMemoryProperties, typeIndex uint32, memory vk.DeviceMemory, offset, size vk.DeviceSize) error {
	if IsCoherent(props, typeIndex) && !alwaysFlush() {
		return nil
	}
	ranges := []vk.MappedMemoryRange{{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: memory,
		Offset: offset,
		Size:   size,
	}}
	if err := cmds.FlushMappedMemoryRanges(device, ranges); err != nil {
		return fmt.Errorf("memutil: flush failed: %w", err)
	}
	return nil
}

// Invalidate issues vkInvalidateMappedMemoryRanges unless the memory type
// is HOST_COHERENT.
func Invalidate(cmds *vk.Commands, device vk.Device, props vk.PhysicalDeviceMemoryProperties, typeIndex uint32, memory vk.DeviceMemory, offset, size vk.DeviceSize) error {
	if IsCoherent(props, typeIndex) {
		return nil
	}
	ranges := []vk.MappedMemoryRange{{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: memory,
		Offset: offset,
		Size:   size,
	}}
	if err := cmds.InvalidateMappedMemoryRanges(device, ranges); err != nil {
		return fmt.Errorf("memutil: invalidate failed: %w", err)
	}
	return nil
}

// Allocation is a bound (and, if requested, mapped) device memory block.
type Allocation struct {
	Memory     vk.DeviceMemory
	TypeIndex  uint32
	Size       vk.DeviceSize
	MappedData unsafe.Pointer // nil unless mapped
}

// AllocateForBuffer allocates and binds memory satisfying buf's
// requirements and the given property flags, mapping it immediately when
// hostVisible is true.
func AllocateForBuffer(cmds *vk.Commands, device vk.Device, props vk.PhysicalDeviceMemoryProperties, buf vk.Buffer, required vk.MemoryPropertyFlags, hostVisible bool) (Allocation, error) {
	req := cmds.GetBufferMemoryRequirements(device, buf)
	idx, ok := FindMemoryType(props, req.MemoryTypeBits, required)
	if !ok {
		return Allocation{}, fmt.Errorf("memutil: no memory type satisfies flags %#x for buffer", required)
	}

	mem, err := cmds.AllocateMemory(device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: idx,
	})
	if err != nil {
		return Allocation{}, fmt.Errorf("memutil: %w", err)
	}

	if err := cmds.BindBufferMemory(device, buf, mem, 0); err != nil {
		cmds.FreeMemory(device, mem)
		return Allocation{}, fmt.Errorf("memutil: %w", err)
	}

	a := Allocation{Memory: mem, TypeIndex: idx, Size: req.Size}
	if hostVisible {
		data, err := cmds.MapMemory(device, mem, 0, req.Size)
		if err != nil {
			cmds.FreeMemory(device, mem)
			return Allocation{}, fmt.Errorf("memutil: %w", err)
		}
		a.MappedData = data
	}
	return a, nil
}

// AllocateForImage allocates and binds memory satisfying img's
// requirements and the given property flags.
func AllocateForImage(cmds *vk.Commands, device vk.Device, props vk.PhysicalDeviceMemoryProperties, img vk.Image, required vk.MemoryPropertyFlags) (Allocation, error) {
	req := cmds.GetImageMemoryRequirements(device, img)
	idx, ok := FindMemoryType(props, req.MemoryTypeBits, required)
	if !ok {
		return Allocation{}, fmt.Errorf("memutil: no memory type satisfies flags %#x for image", required)
	}

	mem, err := cmds.AllocateMemory(device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: idx,
	})
	if err != nil {
		return Allocation{}, fmt.Errorf("memutil: %w", err)
	}

	if err := cmds.BindImageMemory(device, img, mem, 0); err != nil {
		cmds.FreeMemory(device, mem)
		return Allocation{}, fmt.Errorf("memutil: %w", err)
	}

	return Allocation{Memory: mem, TypeIndex: idx, Size: req.Size}, nil
}

// Bytes returns a Go byte slice viewing a's mapped memory. Panics if a is
// not mapped — callers control that invariant, it is not a runtime
// condition.
func (a Allocation) Bytes() []byte {
	if a.MappedData == nil {
		panic("memutil: Bytes called on an unmapped allocation")
	}
	return unsafe.Slice((*byte)(a.MappedData), int(a.Size))
}

// Free unmaps (if mapped) and frees the allocation.
func (a Allocation) Free(cmds *vk.Commands, device vk.Device) {
	if a.MappedData != nil {
		cmds.UnmapMemory(device, a.Memory)
	}
	cmds.FreeMemory(device, a.Memory)
}
