// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Reusable CallInterface templates, named after the shape of the Vulkan
// function they describe rather than any single function, since most
// vkCreate*/vkDestroy*/vkCmd* entry points share one of a handful of
// calling shapes. WSI/swapchain shapes are intentionally absent: vkrunner
// never presents to a surface.
var (
	SigResultPtrHandleU32PtrPtr types.CallInterface // VkResult f(const T*, const VkAllocationCallbacks*, Handle*)
	SigResultHandlePtrPtrPtr    types.CallInterface // VkResult f(Handle, const T*, const VkAllocationCallbacks*, Handle*)
	SigVoidHandlePtr            types.CallInterface // void f(Handle, const VkAllocationCallbacks*)
	SigVoidHandleHandlePtr      types.CallInterface // void f(Handle, Handle, const VkAllocationCallbacks*)
	SigVoidHandle                types.CallInterface // void f(Handle)
	SigResultHandle              types.CallInterface // VkResult f(Handle)
	SigResultHandleU32PtrHandle  types.CallInterface // VkResult f(Handle, u32, const T*, Handle*)
	SigResultHandlePtrHandle     types.CallInterface // VkResult f(Handle, const T*, Handle*)
	SigResultHandleU32Handle     types.CallInterface // VkResult f(Handle, u32, Handle)
	SigVoidHandleU32PtrPtr       types.CallInterface // void f(Handle, u32, const T*, T*)
	SigVoidHandlePtrPtr          types.CallInterface // void f(Handle, const T*, T*)
	SigResultHandlePtrPtr        types.CallInterface // VkResult f(Handle, const T*, T*)
	SigResultHandlePtrU32PtrPtr  types.CallInterface // VkResult f(Handle, Handle, u32, const T*, Handle*)
	SigResultPtrPtrU32PtrPtr     types.CallInterface // VkResult f(Handle, Handle, u32, const T*, const alloc*, Handle*)
	SigVoidHandleU32PtrPtrU64    types.CallInterface // vkUpdateDescriptorSets(device, writeCount, writes, copyCount, copies)
	SigResultHandleU64U64PtrPtr  types.CallInterface // VkResult f(Handle, Handle, u64, u64, u32, T**) vkMapMemory-like
	SigVoidHandlePtrVoid         types.CallInterface // void f(Handle, ptr)
	SigResultHandlePtr           types.CallInterface // VkResult f(Handle, T*)
	SigResultHandleU32Ptr        types.CallInterface // VkResult f(Handle, u32*, T*)
	SigResultHandleU64Bool32U64Ptr types.CallInterface // VkResult f(Handle, u32, const T*, Bool32, u64) vkWaitForFences-like
	SigResultHandleU32Fences      types.CallInterface // VkResult f(Handle, u32, const T*)

	SigCmdVoidHandle              types.CallInterface // void f(cmdbuf)
	SigCmdVoidHandlePtr           types.CallInterface // void f(cmdbuf, ptr)
	SigCmdVoidHandleU32Ptr        types.CallInterface // void f(cmdbuf, subpassContents)
	SigCmdVoidHandleHandleU32     types.CallInterface // void f(cmdbuf, pipelineBindPoint, pipeline)
	SigCmdBindDescriptorSets      types.CallInterface // void f(cmdbuf, bindPoint, layout, first, count, sets, dynCount, dynOffsets)
	SigCmdBindVertexBuffers       types.CallInterface // void f(cmdbuf, first, count, buffers, offsets)
	SigCmdBindIndexBuffer         types.CallInterface // void f(cmdbuf, buffer, offset, indexType)
	SigCmdDraw                    types.CallInterface // void f(cmdbuf, u32,u32,u32,u32)
	SigCmdDrawIndexed              types.CallInterface // void f(cmdbuf, u32,u32,u32,i32,u32)
	SigCmdDispatch                types.CallInterface // void f(cmdbuf, u32,u32,u32)
	SigCmdPushConstants           types.CallInterface // void f(cmdbuf, layout, stageFlags, offset, size, ptr)
	SigCmdClearAttachments        types.CallInterface // void f(cmdbuf, count, attachments, count, rects)
	SigCmdPipelineBarrier         types.CallInterface // void f(cmdbuf, srcStage, dstStage, depFlags, mCount, mPtr, bCount, bPtr, iCount, iPtr)
	SigCmdCopyImageToBuffer       types.CallInterface // void f(cmdbuf, image, layout, buffer, count, regions)
	SigCmdCopyBuffer              types.CallInterface // void f(cmdbuf, src, dst, count, regions)
	SigCmdSetViewport             types.CallInterface // void f(cmdbuf, first, count, viewports)
	SigCmdSetScissor              types.CallInterface // void f(cmdbuf, first, count, scissors)
)

type sigSpec struct {
	name   string
	target *types.CallInterface
	ret    *types.TypeDescriptor
	args   []*types.TypeDescriptor
}

// InitSignatures prepares every CallInterface template used by Commands.
// It must run once, after the Vulkan loader library is open.
func InitSignatures() error {
	h := types.UInt64TypeDescriptor
	u32 := types.UInt32TypeDescriptor
	i32 := types.Int32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	p := types.PointerTypeDescriptor
	vresult := types.Int32TypeDescriptor
	void := types.VoidTypeDescriptor

	specs := []sigSpec{
		{"ResultPtrHandleU32PtrPtr", &SigResultPtrHandleU32PtrPtr, vresult, []*types.TypeDescriptor{p, p, p}},
		{"ResultHandlePtrPtrPtr", &SigResultHandlePtrPtrPtr, vresult, []*types.TypeDescriptor{h, p, p, p}},
		{"VoidHandlePtr", &SigVoidHandlePtr, void, []*types.TypeDescriptor{h, p}},
		{"VoidHandleHandlePtr", &SigVoidHandleHandlePtr, void, []*types.TypeDescriptor{h, h, p}},
		{"VoidHandle", &SigVoidHandle, void, []*types.TypeDescriptor{h}},
		{"ResultHandle", &SigResultHandle, vresult, []*types.TypeDescriptor{h}},
		{"ResultHandleU32PtrHandle", &SigResultHandleU32PtrHandle, vresult, []*types.TypeDescriptor{h, u32, p, p}},
		{"ResultHandlePtrHandle", &SigResultHandlePtrHandle, vresult, []*types.TypeDescriptor{h, p, p}},
		{"ResultHandleU32Handle", &SigResultHandleU32Handle, vresult, []*types.TypeDescriptor{h, u32, h}},
		{"VoidHandleU32PtrPtr", &SigVoidHandleU32PtrPtr, void, []*types.TypeDescriptor{h, u32, p, p}},
		{"VoidHandlePtrPtr", &SigVoidHandlePtrPtr, void, []*types.TypeDescriptor{h, p, p}},
		{"ResultHandlePtrPtr", &SigResultHandlePtrPtr, vresult, []*types.TypeDescriptor{h, p, p}},
		{"ResultHandlePtrU32PtrPtr", &SigResultHandlePtrU32PtrPtr, vresult, []*types.TypeDescriptor{h, h, u32, p, p}},
		{"ResultPtrPtrU32PtrPtr", &SigResultPtrPtrU32PtrPtr, vresult, []*types.TypeDescriptor{h, h, u32, p, p, p}},
		{"VoidHandleU32PtrPtrU64", &SigVoidHandleU32PtrPtrU64, void, []*types.TypeDescriptor{h, u32, p, u32, p}},
		{"ResultHandleU64U64PtrPtr", &SigResultHandleU64U64PtrPtr, vresult, []*types.TypeDescriptor{h, h, u64, u64, u32, p}},
		{"VoidHandlePtrVoid", &SigVoidHandlePtrVoid, void, []*types.TypeDescriptor{h, p}},
		{"ResultHandlePtr", &SigResultHandlePtr, vresult, []*types.TypeDescriptor{h, p}},
		{"ResultHandleU32Ptr", &SigResultHandleU32Ptr, vresult, []*types.TypeDescriptor{h, p, p}},
		{"ResultHandleU64Bool32U64Ptr", &SigResultHandleU64Bool32U64Ptr, vresult, []*types.TypeDescriptor{h, u32, p, u32, u64}},
		{"ResultHandleU32Fences", &SigResultHandleU32Fences, vresult, []*types.TypeDescriptor{h, u32, p}},

		{"CmdVoidHandle", &SigCmdVoidHandle, void, []*types.TypeDescriptor{h}},
		{"CmdVoidHandlePtr", &SigCmdVoidHandlePtr, void, []*types.TypeDescriptor{h, p}},
		{"CmdVoidHandleU32Ptr", &SigCmdVoidHandleU32Ptr, void, []*types.TypeDescriptor{h, p, u32}},
		{"CmdVoidHandleHandleU32", &SigCmdVoidHandleHandleU32, void, []*types.TypeDescriptor{h, u32, h}},
		{"CmdBindDescriptorSets", &SigCmdBindDescriptorSets, void, []*types.TypeDescriptor{h, u32, h, u32, u32, p, u32, p}},
		{"CmdBindVertexBuffers", &SigCmdBindVertexBuffers, void, []*types.TypeDescriptor{h, u32, u32, p, p}},
		{"CmdBindIndexBuffer", &SigCmdBindIndexBuffer, void, []*types.TypeDescriptor{h, h, u64, u32}},
		{"CmdDraw", &SigCmdDraw, void, []*types.TypeDescriptor{h, u32, u32, u32, u32}},
		{"CmdDrawIndexed", &SigCmdDrawIndexed, void, []*types.TypeDescriptor{h, u32, u32, u32, i32, u32}},
		{"CmdDispatch", &SigCmdDispatch, void, []*types.TypeDescriptor{h, u32, u32, u32}},
		{"CmdPushConstants", &SigCmdPushConstants, void, []*types.TypeDescriptor{h, h, u32, u32, u32, p}},
		{"CmdClearAttachments", &SigCmdClearAttachments, void, []*types.TypeDescriptor{h, u32, p, u32, p}},
		{"CmdPipelineBarrier", &SigCmdPipelineBarrier, void, []*types.TypeDescriptor{h, u32, u32, u32, u32, p, u32, p, u32, p}},
		{"CmdCopyImageToBuffer", &SigCmdCopyImageToBuffer, void, []*types.TypeDescriptor{h, h, u32, h, u32, p}},
		{"CmdCopyBuffer", &SigCmdCopyBuffer, void, []*types.TypeDescriptor{h, h, h, u32, p}},
		{"CmdSetViewport", &SigCmdSetViewport, void, []*types.TypeDescriptor{h, u32, u32, p}},
		{"CmdSetScissor", &SigCmdSetScissor, void, []*types.TypeDescriptor{h, u32, u32, p}},
	}

	for _, s := range specs {
		if err := ffi.PrepareCallInterface(s.target, types.DefaultCall, s.ret, s.args); err != nil {
			return fmt.Errorf("vk: failed to prepare %s signature: %w", s.name, err)
		}
	}

	return nil
}
