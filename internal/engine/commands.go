// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"unsafe"

	"github.com/igalia/vkrunner/internal/box"
	"github.com/igalia/vkrunner/internal/format"
	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

// pushConstantStages is the stage mask every push constant range covers;
// it must match the range the pipeline layout was built with.
const pushConstantStages = vk.ShaderStageVertexBit | vk.ShaderStageFragmentBit | vk.ShaderStageComputeBit

func requiredState(cmd script.Command) State {
	switch cmd.Kind {
	case script.KindDrawRect, script.KindDrawArrays, script.KindClear:
		return RenderPass
	case script.KindDispatchCompute:
		return CommandBuffer
	case script.KindSetPushConstant:
		return CommandBuffer
	case script.KindProbeRect, script.KindProbeSsbo:
		return Idle
	default:
		return CommandBuffer
	}
}

// execCommand dispatches cmd to its handler, first walking the state
// machine to whatever level the command needs. SetPushConstant only
// forces a level when the engine is still Idle, and SetBufferSubdata
// never forces one; every other command's required state is absolute.
func (e *Engine) execCommand(cmd script.Command) bool {
	target := requiredState(cmd)
	switch cmd.Kind {
	case script.KindSetPushConstant:
		if e.state != Idle {
			target = e.state
		}
	case script.KindSetBufferSubdata:
		// A host-side mapped-memory write needs no particular recording
		// state, so it never forces a transition.
		target = e.state
	}
	if err := e.setState(target); err != nil {
		e.logf("%v", err)
		return false
	}

	switch cmd.Kind {
	case script.KindDrawRect:
		return e.execDrawRect(cmd.DrawRect)
	case script.KindDrawArrays:
		return e.execDrawArrays(cmd.DrawArrays)
	case script.KindDispatchCompute:
		return e.execDispatchCompute(cmd.DispatchCompute)
	case script.KindProbeRect:
		return e.execProbeRect(cmd.ProbeRect)
	case script.KindProbeSsbo:
		return e.execProbeSsbo(cmd.ProbeSsbo)
	case script.KindSetPushConstant:
		return e.execSetPushConstant(cmd.SetPushConstant)
	case script.KindSetBufferSubdata:
		return e.execSetBufferSubdata(cmd.SetBufferSubdata)
	case script.KindClear:
		return e.execClear(cmd.Clear)
	default:
		e.logf("unknown command kind %d", cmd.Kind)
		return false
	}
}

func (e *Engine) preDraw(key *script.PipelineKey) bool {
	p := e.pm.Find(key)
	if p == nil {
		e.logf("no pipeline built for command")
		return false
	}
	for _, tb := range e.testBuffers {
		if tb.PendingWrite {
			if err := tb.Flush(e.cmds, e.ctx.Device); err != nil {
				e.logf("%v", err)
				return false
			}
			tb.PendingWrite = false
		}
	}
	e.bindDescriptorSets()
	e.bindPipeline(p)
	return true
}

// execDrawRect draws a full-precision rectangle using a transient
// 4-vertex triangle-strip VBO built fresh from the command's corners.
func (e *Engine) execDrawRect(d *script.DrawRect) bool {
	if !e.preDraw(d.PipelineKey) {
		return false
	}

	x0, y0, x1, y1 := d.X, d.Y, d.X+d.W, d.Y+d.H
	verts := []float32{
		x0, y0, 0,
		x1, y0, 0,
		x0, y1, 0,
		x1, y1, 0,
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), len(verts)*4)

	if e.rectVBO == nil {
		tb, err := allocateBuffer(e.cmds, e.ctx.Device, e.ctx.MemoryProperties, len(data), vk.BufferUsageVertexBufferBit)
		if err != nil {
			e.logf("%v", err)
			return false
		}
		e.rectVBO = tb
	}
	copy(e.rectVBO.Bytes(), data)
	if err := e.rectVBO.Flush(e.cmds, e.ctx.Device); err != nil {
		e.logf("%v", err)
		return false
	}

	e.cmds.CmdBindVertexBuffers(e.ctx.CommandBuffer, 0, []vk.Buffer{e.rectVBO.Buffer}, []vk.DeviceSize{0})
	e.cmds.CmdDraw(e.ctx.CommandBuffer, 4, 1, 0, 0)
	return true
}

// execDrawArrays draws the script's own vertex (and optional index) data,
// lazily uploading it to a buffer the first time it's needed.
func (e *Engine) execDrawArrays(d *script.DrawArrays) bool {
	if !e.preDraw(d.PipelineKey) {
		return false
	}

	if e.vertexVBO == nil && len(e.script.VertexData) > 0 {
		tb, err := allocateBuffer(e.cmds, e.ctx.Device, e.ctx.MemoryProperties, len(e.script.VertexData), vk.BufferUsageVertexBufferBit)
		if err != nil {
			e.logf("%v", err)
			return false
		}
		copy(tb.Bytes(), e.script.VertexData)
		if err := tb.Flush(e.cmds, e.ctx.Device); err != nil {
			e.logf("%v", err)
			return false
		}
		e.vertexVBO = tb
	}
	if d.Indexed && e.indexVBO == nil && len(e.script.Indices) > 0 {
		data := unsafe.Slice((*byte)(unsafe.Pointer(&e.script.Indices[0])), len(e.script.Indices)*2)
		tb, err := allocateBuffer(e.cmds, e.ctx.Device, e.ctx.MemoryProperties, len(data), vk.BufferUsageIndexBufferBit)
		if err != nil {
			e.logf("%v", err)
			return false
		}
		copy(tb.Bytes(), data)
		if err := tb.Flush(e.cmds, e.ctx.Device); err != nil {
			e.logf("%v", err)
			return false
		}
		e.indexVBO = tb
	}

	if e.vertexVBO != nil {
		e.cmds.CmdBindVertexBuffers(e.ctx.CommandBuffer, 0, []vk.Buffer{e.vertexVBO.Buffer}, []vk.DeviceSize{0})
	}

	if d.Indexed {
		e.cmds.CmdBindIndexBuffer(e.ctx.CommandBuffer, e.indexVBO.Buffer, 0, vk.IndexTypeUint16)
		e.cmds.CmdDrawIndexed(e.ctx.CommandBuffer, d.VertexCount, d.InstanceCount, d.FirstVertex, 0, d.FirstInstance)
	} else {
		e.cmds.CmdDraw(e.ctx.CommandBuffer, d.VertexCount, d.InstanceCount, d.FirstVertex, d.FirstInstance)
	}
	return true
}

func (e *Engine) execDispatchCompute(d *script.DispatchCompute) bool {
	p := e.pm.Find(d.PipelineKey)
	if p == nil {
		e.logf("no pipeline built for compute dispatch")
		return false
	}
	for _, tb := range e.testBuffers {
		if tb.PendingWrite {
			if err := tb.Flush(e.cmds, e.ctx.Device); err != nil {
				e.logf("%v", err)
				return false
			}
			tb.PendingWrite = false
		}
	}
	e.bindDescriptorSets()
	e.bindPipeline(p)
	e.cmds.CmdDispatch(e.ctx.CommandBuffer, d.X, d.Y, d.Z)
	return true
}

func (e *Engine) execSetPushConstant(s *script.SetPushConstant) bool {
	e.cmds.CmdPushConstants(e.ctx.CommandBuffer, e.pm.Layout, pushConstantStages, uint32(s.Offset), uint32(len(s.Data)), unsafe.Pointer(&s.Data[0]))
	return true
}

// execSetBufferSubdata copies into a mapped buffer's host memory without
// flushing; the flush happens before the next draw or dispatch, or at the
// next command-buffer end, whichever comes first, so several subdata
// writes in a row only cost one flush.
func (e *Engine) execSetBufferSubdata(s *script.SetBufferSubdata) bool {
	tb := e.findTestBuffer(s.DescSet, s.Binding)
	if tb == nil {
		e.logf("no buffer declared at set %d binding %d", s.DescSet, s.Binding)
		return false
	}
	tb.Write(s.Offset, s.Data)
	return true
}

func (e *Engine) execClear(c *script.Clear) bool {
	attachments := []vk.ClearAttachment{{
		AspectMask:      vk.ImageAspectColorBit,
		ColorAttachment: 0,
		ClearValue:      vk.ClearValue{Color: vk.ClearColorValue{Float32: c.Color}},
	}}
	if c.HasDepth || c.HasStencil {
		aspect := vk.ImageAspectFlags(0)
		if c.HasDepth {
			aspect |= vk.ImageAspectDepthBit
		}
		if c.HasStencil {
			aspect |= vk.ImageAspectStencilBit
		}
		attachments = append(attachments, vk.ClearAttachment{
			AspectMask: aspect,
			ClearValue: vk.DepthStencilClearValue(c.Depth, c.Stencil),
		})
	}

	rects := []vk.ClearRect{{
		Rect:       vk.Rect2D{Extent: vk.Extent2D{Width: uint32(e.win.Config.Width), Height: uint32(e.win.Config.Height)}},
		LayerCount: 1,
	}}
	e.cmds.CmdClearAttachments(e.ctx.CommandBuffer, attachments, rects)
	return true
}

// execProbeRect decodes every pixel in the probed rectangle with the
// colour format's own unpacking rules and compares the leading
// NComponents against the expected colour within tolerance.
func (e *Engine) execProbeRect(p *script.ProbeRect) bool {
	f := e.win.Config.ColorFormat
	pixelSize := f.GetSize()
	readback := e.win.ReadbackBytes()
	stride := e.win.Stride

	for y := p.Y; y < p.Y+p.H; y++ {
		for x := p.X; x < p.X+p.W; x++ {
			offset := y*stride + x*pixelSize
			observed := f.LoadPixel(readback[offset : offset+pixelSize])
			for c := 0; c < p.NComponents; c++ {
				if abs(observed[c]-p.Color[c]) > p.Tolerance.Absolute {
					e.logf("Probe color at (%d,%d)\n  Expected: %s\n  Observed: %s",
						x, y, formatValues(p.Color[:p.NComponents]), formatValues(observed[:p.NComponents]))
					return false
				}
			}
		}
	}
	return true
}

// execProbeSsbo compares every value read back from an SSBO or UBO
// against the script's expected bytes: value_bytes holds n_values
// contiguous, tightly packed values of type/layout, while the buffer
// itself spaces them observed_stride apart (array_stride(type, layout)),
// so each value i is compared at offset+i*observed_stride against
// value_bytes[i*type_size:].
func (e *Engine) execProbeSsbo(p *script.ProbeSsbo) bool {
	tb := e.findTestBuffer(p.DescSet, p.Binding)
	if tb == nil {
		e.logf("no buffer declared at set %d binding %d", p.DescSet, p.Binding)
		return false
	}

	typeSize := box.Size(p.Type, p.Layout)
	if typeSize == 0 || len(p.ValueBytes)%typeSize != 0 {
		e.logf("probe value size %d is not a multiple of type size %d", len(p.ValueBytes), typeSize)
		return false
	}
	nValues := len(p.ValueBytes) / typeSize
	observedStride := box.ArrayStride(p.Type, p.Layout)

	data := tb.Bytes()
	ok := true
	for i := 0; i < nValues; i++ {
		observedOffset := p.Offset + i*observedStride
		if observedOffset+typeSize > len(data) {
			e.logf("probe offset %d out of range for buffer of size %d", observedOffset, tb.Size)
			return false
		}
		reference := p.ValueBytes[i*typeSize : (i+1)*typeSize]
		observed := data[observedOffset:]

		if !box.Compare(p.Comparison, p.Tolerance.Absolute, p.Type, p.Layout, reference, observed) {
			e.logf("Probe SSBO at set %d binding %d offset %d, value %d\n  Reference: %s\n  Observed: %s",
				p.DescSet, p.Binding, p.Offset, i,
				formatValues(box.Decode(p.Type, p.Layout, reference)),
				formatValues(box.Decode(p.Type, p.Layout, observed)))
			ok = false
		}
	}
	return ok
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func formatValues(c []float64) string {
	s := "("
	for i, v := range c {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%g", v)
	}
	return s + ")"
}
