// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"unsafe"

	"github.com/igalia/vkrunner/internal/memutil"
	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

// TestBuffer is a host-mapped VkBuffer the engine owns for the lifetime
// of a run: a script-declared UBO/SSBO, or one of the engine's own
// transient vertex/index buffers.
type TestBuffer struct {
	Buffer  vk.Buffer
	Memory  memutil.Allocation
	Props   vk.PhysicalDeviceMemoryProperties
	DescSet int
	Binding int
	Kind    script.BufferKind
	Size    int

	IsCoherent   bool
	PendingWrite bool
}

// Bytes views the buffer's mapped memory.
func (tb *TestBuffer) Bytes() []byte { return tb.Memory.Bytes() }

// Write copies data into the buffer at offset and marks it pending a
// flush before the next draw or dispatch, or at the next command-buffer
// end.
func (tb *TestBuffer) Write(offset int, data []byte) {
	copy(tb.Bytes()[offset:], data)
	tb.PendingWrite = true
}

// Flush issues the coherence flush this buffer needs, unconditionally
// (the caller already checked PendingWrite).
func (tb *TestBuffer) Flush(cmds *vk.Commands, device vk.Device) error {
	return memutil.Flush(cmds, device, tb.Props, tb.Memory.TypeIndex, tb.Memory.Memory, 0, vk.DeviceSize(tb.Size))
}

// Close frees the buffer and its memory.
func (tb *TestBuffer) Close(cmds *vk.Commands, device vk.Device) {
	if tb.Buffer != 0 {
		cmds.DestroyBuffer(device, tb.Buffer)
	}
	tb.Memory.Free(cmds, device)
}

func allocateBuffer(cmds *vk.Commands, device vk.Device, props vk.PhysicalDeviceMemoryProperties, size int, usage vk.BufferUsageFlags) (*TestBuffer, error) {
	buf, err := cmds.CreateBuffer(device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	mem, err := memutil.AllocateForBuffer(cmds, device, props, buf, vk.MemoryPropertyHostVisibleBit, true)
	if err != nil {
		cmds.DestroyBuffer(device, buf)
		return nil, fmt.Errorf("engine: buffer allocation: %w", err)
	}

	return &TestBuffer{
		Buffer:     buf,
		Memory:     mem,
		Props:      props,
		Size:       size,
		IsCoherent: memutil.IsCoherent(props, mem.TypeIndex),
	}, nil
}

// allocateTestBuffers creates one TestBuffer per script.Buffer
// declaration. The new memory is not cleared: its contents are whatever
// the allocation holds until a SetBufferSubdata command writes it.
func (e *Engine) allocateTestBuffers() error {
	for _, b := range e.script.Buffers {
		usage := vk.BufferUsageUniformBufferBit
		if b.Kind == script.SSBO {
			usage = vk.BufferUsageStorageBufferBit
		}
		tb, err := allocateBuffer(e.cmds, e.ctx.Device, e.ctx.MemoryProperties, b.Size, usage)
		if err != nil {
			return err
		}
		tb.DescSet = b.DescSet
		tb.Binding = b.Binding
		tb.Kind = b.Kind
		e.testBuffers = append(e.testBuffers, tb)
	}
	return nil
}

func (e *Engine) findTestBuffer(descSet, binding int) *TestBuffer {
	for _, tb := range e.testBuffers {
		if tb.DescSet == descSet && tb.Binding == binding {
			return tb
		}
	}
	return nil
}

// allocateDescriptorSets allocates one set per descriptor-set-layout
// index the pipeline manager built, then writes every buffer into it
// with range = VK_WHOLE_SIZE.
func (e *Engine) allocateDescriptorSets() error {
	if len(e.pm.DescriptorSetLayouts) == 0 {
		return nil
	}

	sets, err := e.cmds.AllocateDescriptorSets(e.ctx.Device, &vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     e.pm.Pool,
		DescriptorSetCount: uint32(len(e.pm.DescriptorSetLayouts)),
		PSetLayouts:        uintptr(unsafe.Pointer(&e.pm.DescriptorSetLayouts[0])),
	})
	if err != nil {
		return fmt.Errorf("engine: descriptor set allocation: %w", err)
	}
	e.descriptorSets = sets

	var writes []vk.WriteDescriptorSet
	var infos []vk.DescriptorBufferInfo
	for _, tb := range e.testBuffers {
		infos = append(infos, vk.DescriptorBufferInfo{Buffer: tb.Buffer, Offset: 0, Range: wholeSize})
	}
	for i, tb := range e.testBuffers {
		dtype := vk.DescriptorTypeUniformBuffer
		if tb.Kind == script.SSBO {
			dtype = vk.DescriptorTypeStorageBuffer
		}
		writes = append(writes, vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sets[tb.DescSet],
			DstBinding:      uint32(tb.Binding),
			DescriptorCount: 1,
			DescriptorType:  dtype,
			PBufferInfo:     uintptr(unsafe.Pointer(&infos[i])),
		})
	}
	if len(writes) > 0 {
		e.cmds.UpdateDescriptorSets(e.ctx.Device, writes)
	}
	return nil
}

// wholeSize mirrors VK_WHOLE_SIZE.
const wholeSize = vk.DeviceSize(^uint64(0))
