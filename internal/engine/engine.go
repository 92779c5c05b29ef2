// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package engine drives one script run against a vkcontext.Context and
// window.Window: it owns the transient test buffers, walks the
// Idle/CommandBuffer/RenderPass state machine, executes each script
// command, and issues the barrier sequences that make the readback
// buffer and every SSBO visible to the host once the run finishes. The
// state machine generalises a simple "record once, submit once" command
// encoder into one that may open and close several render passes and
// command buffers while accumulating pass/fail diagnostics.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/igalia/vkrunner/internal/pipeline"
	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
	"github.com/igalia/vkrunner/internal/vkcontext"
	"github.com/igalia/vkrunner/internal/window"
)

// State is a level in the engine's command-recording state machine.
type State int

const (
	Idle State = iota
	CommandBuffer
	RenderPass
)

// InspectBuffer is one script-declared buffer's contents at run end.
type InspectBuffer struct {
	DescSet int
	Binding int
	Size    int
	Data    []byte
}

// InspectColorBuffer is the framebuffer's contents at run end.
type InspectColorBuffer struct {
	Width, Height, Stride int
	FormatName            string
	Data                  []byte
}

// InspectData is handed to the caller's inspect callback after a run
// completes, pointing into mapped memory that is only valid until Close.
type InspectData struct {
	Buffers     []InspectBuffer
	ColorBuffer InspectColorBuffer
}

// Engine executes one script's commands against one window.
type Engine struct {
	cmds   *vk.Commands
	ctx    *vkcontext.Context
	win    *window.Window
	pm     *pipeline.Manager
	script *script.Script
	logger *slog.Logger

	state       State
	usedFirstRenderPass bool

	boundPipeline         *pipeline.Pipeline
	uboDescriptorSetBound bool

	testBuffers    []*TestBuffer
	descriptorSets []vk.DescriptorSet

	rectVBO   *TestBuffer
	vertexVBO *TestBuffer
	indexVBO  *TestBuffer

	diagnostics []string
}

// New builds an Engine over an already-constructed Context/Window/
// pipeline Manager for s. It allocates descriptor sets and writes every
// script buffer into them but does not begin recording.
func New(ctx *vkcontext.Context, win *window.Window, pm *pipeline.Manager, s *script.Script, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		cmds:   ctx.Commands,
		ctx:    ctx,
		win:    win,
		pm:     pm,
		script: s,
		logger: logger,
	}

	if err := e.allocateTestBuffers(); err != nil {
		return nil, err
	}
	if err := e.allocateDescriptorSets(); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// Run executes every command in the script, accumulating diagnostics for
// every failure rather than stopping at the first one, then forces the
// engine back to Idle and returns the aggregate result.
func (e *Engine) Run() bool {
	ok := true

	for _, cmd := range e.script.Commands {
		if !e.execCommand(cmd) {
			ok = false
			e.diagnostics = append(e.diagnostics, fmt.Sprintf("Command failed at line %d", cmd.LineNum))
		}
	}

	if err := e.setState(Idle); err != nil {
		e.logf("forcing idle at run end: %v", err)
		ok = false
	}

	return ok
}

// Diagnostics returns every failure message accumulated during Run, in
// the order they occurred.
func (e *Engine) Diagnostics() []string {
	return e.diagnostics
}

// Inspect gathers the inspect callback's view of buffer and framebuffer
// state. Only valid to call once the engine has returned to Idle (i.e.
// after Run).
func (e *Engine) Inspect() InspectData {
	data := InspectData{ColorBuffer: InspectColorBuffer{
		Width:      e.win.Config.Width,
		Height:     e.win.Config.Height,
		Stride:     e.win.Stride,
		FormatName: e.win.Config.ColorFormat.Name,
		Data:       e.win.ReadbackBytes(),
	}}
	for _, tb := range e.testBuffers {
		data.Buffers = append(data.Buffers, InspectBuffer{
			DescSet: tb.DescSet,
			Binding: tb.Binding,
			Size:    tb.Size,
			Data:    tb.Bytes(),
		})
	}
	return data
}

func (e *Engine) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.diagnostics = append(e.diagnostics, msg)
	e.logger.Error("engine: " + msg)
}

// setState walks the state machine one level at a time toward target,
// entering/leaving render passes and command buffers as it goes.
func (e *Engine) setState(target State) error {
	for e.state < target {
		switch e.state {
		case Idle:
			if err := e.beginCommandBuffer(); err != nil {
				return err
			}
		case CommandBuffer:
			e.beginRenderPass()
		}
	}
	for e.state > target {
		switch e.state {
		case RenderPass:
			if err := e.endRenderPass(); err != nil {
				return err
			}
		case CommandBuffer:
			if err := e.endCommandBuffer(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) beginCommandBuffer() error {
	if err := e.cmds.ResetCommandBuffer(e.ctx.CommandBuffer, 0); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.cmds.BeginCommandBuffer(e.ctx.CommandBuffer, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageOneTimeSubmitBit,
	}); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.boundPipeline = nil
	e.uboDescriptorSetBound = false
	e.state = CommandBuffer
	return nil
}

func (e *Engine) beginRenderPass() {
	rp := e.win.RenderPassClear
	if e.usedFirstRenderPass {
		rp = e.win.RenderPassLoad
	}
	e.usedFirstRenderPass = true

	e.cmds.CmdBeginRenderPass(e.ctx.CommandBuffer, &vk.RenderPassBeginInfo{
		SType:      vk.StructureTypeRenderPassBeginInfo,
		RenderPass: rp,
		Framebuffer: e.win.Framebuffer,
		RenderArea: vk.Rect2D{Extent: vk.Extent2D{
			Width:  uint32(e.win.Config.Width),
			Height: uint32(e.win.Config.Height),
		}},
	}, vk.SubpassContentsInline)

	e.cmds.CmdSetViewport(e.ctx.CommandBuffer, []vk.Viewport{{
		Width: float32(e.win.Config.Width), Height: float32(e.win.Config.Height), MaxDepth: 1,
	}})
	e.cmds.CmdSetScissor(e.ctx.CommandBuffer, []vk.Rect2D{{
		Extent: vk.Extent2D{Width: uint32(e.win.Config.Width), Height: uint32(e.win.Config.Height)},
	}})

	e.state = RenderPass
}

// bindDescriptorSets binds every allocated descriptor set once per
// command buffer, to whichever bind points the script's pipelines use.
func (e *Engine) bindDescriptorSets() {
	if e.uboDescriptorSetBound || len(e.descriptorSets) == 0 {
		return
	}

	hasGraphics, hasCompute := false, false
	for _, key := range e.script.Pipelines {
		if key.Type == script.Compute {
			hasCompute = true
		} else {
			hasGraphics = true
		}
	}

	if hasGraphics {
		e.cmds.CmdBindDescriptorSets(e.ctx.CommandBuffer, vk.PipelineBindPointGraphics, e.pm.Layout, 0, e.descriptorSets)
	}
	if hasCompute {
		e.cmds.CmdBindDescriptorSets(e.ctx.CommandBuffer, vk.PipelineBindPointCompute, e.pm.Layout, 0, e.descriptorSets)
	}
	e.uboDescriptorSetBound = true
}

func (e *Engine) bindPipeline(p *pipeline.Pipeline) {
	if e.boundPipeline == p {
		return
	}
	bindPoint := vk.PipelineBindPointGraphics
	if p.Key.Type == script.Compute {
		bindPoint = vk.PipelineBindPointCompute
	}
	e.cmds.CmdBindPipeline(e.ctx.CommandBuffer, bindPoint, p.Handle)
	e.boundPipeline = p
}

// Close frees every resource the engine owns. Run should have already
// forced the state back to Idle; Close tolerates a non-Idle state by
// simply not emitting the commands that would otherwise flush it.
func (e *Engine) Close() {
	for _, tb := range e.testBuffers {
		tb.Close(e.cmds, e.ctx.Device)
	}
	for _, tb := range []*TestBuffer{e.rectVBO, e.vertexVBO, e.indexVBO} {
		if tb != nil {
			tb.Close(e.cmds, e.ctx.Device)
		}
	}
	if len(e.descriptorSets) > 0 && e.pm.Pool != 0 {
		e.cmds.FreeDescriptorSets(e.ctx.Device, e.pm.Pool, e.descriptorSets)
	}
}
