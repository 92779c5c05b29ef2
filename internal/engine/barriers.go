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

// endRenderPass ends the current render pass and copies the colour
// attachment into the linear readback buffer, bracketed by the image
// layout transitions the copy requires.
func (e *Engine) endRenderPass() error {
	e.cmds.CmdEndRenderPass(e.ctx.CommandBuffer)

	e.cmds.CmdPipelineBarrier(e.ctx.CommandBuffer, vk.PipelineBarrierArgs{
		SrcStage: vk.PipelineStageColorAttachmentOutputBit,
		DstStage: vk.PipelineStageTransferBit | vk.PipelineStageColorAttachmentOutputBit,
		ImageBarriers: []vk.ImageMemoryBarrier{{
			SType:         vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask: vk.AccessColorAttachmentWriteBit,
			DstAccessMask: vk.AccessTransferReadBit | vk.AccessColorAttachmentWriteBit | vk.AccessColorAttachmentReadBit,
			OldLayout:     vk.ImageLayoutColorAttachmentOptimal,
			NewLayout:     vk.ImageLayoutTransferSrcOptimal,
			Image:         e.win.ColorImage,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectColorBit,
				LevelCount: 1,
				LayerCount: 1,
			},
		}},
	})

	e.cmds.CmdCopyImageToBuffer(e.ctx.CommandBuffer, e.win.ColorImage, vk.ImageLayoutTransferSrcOptimal, e.win.Readback, []vk.BufferImageCopy{{
		BufferRowLength:   uint32(e.win.Config.Width),
		BufferImageHeight: uint32(e.win.Config.Height),
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectColorBit,
			LayerCount: 1,
		},
		ImageExtent: vk.Extent3D{
			Width:  uint32(e.win.Config.Width),
			Height: uint32(e.win.Config.Height),
			Depth:  1,
		},
	}})

	e.cmds.CmdPipelineBarrier(e.ctx.CommandBuffer, vk.PipelineBarrierArgs{
		SrcStage: vk.PipelineStageTransferBit,
		DstStage: vk.PipelineStageColorAttachmentOutputBit,
		ImageBarriers: []vk.ImageMemoryBarrier{{
			SType:         vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask: vk.AccessTransferReadBit,
			DstAccessMask: vk.AccessColorAttachmentWriteBit,
			OldLayout:     vk.ImageLayoutTransferSrcOptimal,
			NewLayout:     vk.ImageLayoutColorAttachmentOptimal,
			Image:         e.win.ColorImage,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectColorBit,
				LevelCount: 1,
				LayerCount: 1,
			},
		}},
	})

	e.cmds.CmdPipelineBarrier(e.ctx.CommandBuffer, vk.PipelineBarrierArgs{
		SrcStage: vk.PipelineStageTransferBit,
		DstStage: vk.PipelineStageHostBit,
		BufferBarriers: []vk.BufferMemoryBarrier{{
			SType:         vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask: vk.AccessTransferWriteBit,
			DstAccessMask: vk.AccessHostReadBit,
			Buffer:        e.win.Readback,
		}},
	})

	e.state = CommandBuffer
	return nil
}

// endCommandBuffer flushes every pending host write, emits the SSBO
// visibility barriers, submits, waits for the fence, then invalidates
// whatever non-coherent memory the host is about to read.
func (e *Engine) endCommandBuffer() error {
	for _, tb := range e.testBuffers {
		if !tb.PendingWrite {
			continue
		}
		if err := tb.Flush(e.cmds, e.ctx.Device); err != nil {
			return err
		}
		tb.PendingWrite = false
	}

	var ssboBarriers []vk.BufferMemoryBarrier
	for _, tb := range e.testBuffers {
		if tb.Kind != script.SSBO {
			continue
		}
		ssboBarriers = append(ssboBarriers, vk.BufferMemoryBarrier{
			SType:         vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask: vk.AccessShaderWriteBit,
			DstAccessMask: vk.AccessHostReadBit,
			Buffer:        tb.Buffer,
			Size:          vk.DeviceSize(tb.Size),
		})
	}
	if len(ssboBarriers) > 0 {
		e.cmds.CmdPipelineBarrier(e.ctx.CommandBuffer, vk.PipelineBarrierArgs{
			SrcStage:       vk.PipelineStageAllCommandsBit,
			DstStage:       vk.PipelineStageHostBit,
			BufferBarriers: ssboBarriers,
		})
	}

	if err := e.cmds.EndCommandBuffer(e.ctx.CommandBuffer); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.cmds.ResetFences(e.ctx.Device, []vk.Fence{e.ctx.Fence}); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	cmdBuf := e.ctx.CommandBuffer
	if err := e.cmds.QueueSubmit(e.ctx.Queue, []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    uintptr(unsafe.Pointer(&cmdBuf)),
	}}, e.ctx.Fence); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.cmds.WaitForFences(e.ctx.Device, []vk.Fence{e.ctx.Fence}, true, ^uint64(0)); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if !e.win.IsCoherent {
		if err := e.win.InvalidateReadback(); err != nil {
			return err
		}
	}
	for _, tb := range e.testBuffers {
		if tb.Kind == script.SSBO && !tb.IsCoherent {
			if err := memutil.Invalidate(e.cmds, e.ctx.Device, e.ctx.MemoryProperties, tb.Memory.TypeIndex, tb.Memory.Memory, 0, vk.DeviceSize(tb.Size)); err != nil {
				return err
			}
		}
	}

	e.state = Idle
	return nil
}
