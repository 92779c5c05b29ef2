// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vkrunner embeds a Vulkan shader-test execution engine: parse a
// script, build the off-screen target and pipelines it needs, run its
// commands, and report pass/fail/skip plus a diagnostics trail. See
// internal/engine for the state machine that does the actual work; this
// package is the glue that wires vkcontext, window, pipeline, and engine
// together behind one call.
package vkrunner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/igalia/vkrunner/internal/engine"
	"github.com/igalia/vkrunner/internal/format"
	"github.com/igalia/vkrunner/internal/pipeline"
	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vbo"
	"github.com/igalia/vkrunner/internal/vkcontext"
	"github.com/igalia/vkrunner/internal/window"
)

const (
	defaultWidth       = 250
	defaultHeight      = 250
	defaultColorFormat = "B8G8R8A8_UNORM"
)

// InspectData is the framebuffer/buffer snapshot handed to
// Config.OnInspect once a run's commands have all executed.
type InspectData = engine.InspectData

// Config configures one Run/RunScript call. Every field is optional; the
// zero value runs at 250x250 against B8G8R8A8_UNORM with no depth/stencil
// attachment, logs through the package-level logger, and reports
// diagnostics only in the returned Result.
type Config struct {
	Width, Height      int
	ColorFormat        string // format.Format name, default "B8G8R8A8_UNORM"
	DepthStencilFormat string // format.Format name; empty means no depth/stencil attachment

	// ExternalDevice, when set, runs the script against a caller-owned
	// Vulkan device instead of creating vkrunner's own instance/device.
	ExternalDevice *vkcontext.ExternalDevice

	// DeviceID, when non-nil, overrides the script's own "require device"
	// selection with a specific physical device index.
	DeviceID *int

	// FeatureChain, when non-zero, is threaded into device creation as
	// the pNext chain: a caller-built chain of extension feature structs
	// (e.g. VkPhysicalDeviceFeatures2 plus extension-specific structs)
	// requesting capabilities beyond what a script's "require feature"
	// lines can name. Ignored in ExternalDevice mode.
	FeatureChain uintptr

	Logger *slog.Logger

	// OnError, if set, receives every diagnostic line once the run has
	// finished. The engine logs each line to Logger as it is produced
	// either way; when OnError is nil they are logged to Logger again.
	OnError func(message string)

	// OnInspect, if set, is called once after the run completes with a
	// view into the framebuffer and every declared buffer. The data it
	// points to is only valid for the duration of the call.
	OnInspect func(InspectData)
}

// Result is one script run's outcome.
type Result struct {
	Status      Status
	Diagnostics []string
}

// Run parses the script text read from r and executes it per cfg.
func Run(r io.Reader, cfg Config) (Result, error) {
	s, err := script.Parse(r)
	if err != nil {
		return Result{Status: StatusFail}, fmt.Errorf("%w: %v", ErrScriptParse, err)
	}
	return RunScript(s, cfg)
}

// RunScript executes an already-parsed script per cfg: it selects (or
// takes) a device, builds the off-screen window and pipelines the script
// needs, runs every command, and tears everything down before returning.
func RunScript(s *script.Script, cfg Config) (Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = Logger()
	}

	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}

	colorFormatName := cfg.ColorFormat
	if colorFormatName == "" {
		colorFormatName = defaultColorFormat
	}
	colorFormat, ok := format.LookupByName(colorFormatName)
	if !ok {
		return Result{Status: StatusFail}, fmt.Errorf("vkrunner: unknown color format %q", colorFormatName)
	}

	var depthFormat *format.Format
	if cfg.DepthStencilFormat != "" {
		depthFormat, ok = format.LookupByName(cfg.DepthStencilFormat)
		if !ok {
			return Result{Status: StatusFail}, fmt.Errorf("vkrunner: unknown depth/stencil format %q", cfg.DepthStencilFormat)
		}
	}

	requirements := s.Requirements
	if cfg.DeviceID != nil {
		requirements.DeviceID = *cfg.DeviceID
	}

	ctx, err := vkcontext.New(vkcontext.Options{
		Requirements:   requirements,
		Logger:         logger,
		ExternalDevice: cfg.ExternalDevice,
		FeatureChain:   cfg.FeatureChain,
	})
	if err != nil {
		if errors.Is(err, vkcontext.ErrDeviceSelection) {
			return Result{Status: StatusSkip}, nil
		}
		return Result{Status: StatusFail}, fmt.Errorf("%w: %v", ErrVulkan, err)
	}
	defer ctx.Close()

	win, err := window.New(ctx.Commands, ctx.Device, ctx.PhysicalDevice, ctx.MemoryProperties, window.Config{
		Width:        width,
		Height:       height,
		ColorFormat:  colorFormat,
		DepthStencil: depthFormat,
	})
	if err != nil {
		return Result{Status: StatusFail}, fmt.Errorf("%w: %v", ErrVulkan, err)
	}
	defer win.Close()

	pm, err := pipeline.NewManager(ctx.Commands, ctx.Device, s, buildVboLayout(s), win.RenderPassClear)
	if err != nil {
		return Result{Status: StatusFail}, fmt.Errorf("%w: %v", ErrVulkan, err)
	}
	defer pm.Close()

	eng, err := engine.New(ctx, win, pm, s, logger)
	if err != nil {
		return Result{Status: StatusFail}, fmt.Errorf("%w: %v", ErrVulkan, err)
	}
	defer eng.Close()

	pass := eng.Run()
	diagnostics := eng.Diagnostics()

	if cfg.OnError != nil {
		for _, d := range diagnostics {
			cfg.OnError(d)
		}
	} else {
		for _, d := range diagnostics {
			logger.Error(d)
		}
	}

	if cfg.OnInspect != nil {
		cfg.OnInspect(eng.Inspect())
	}

	status := StatusPass
	if !pass {
		status = StatusFail
	}
	return Result{Status: status, Diagnostics: diagnostics}, nil
}

// buildVboLayout turns the script's declared vertex attributes into the
// Vbo layout pipelines with a VertexData source bind to. Returns nil if
// the script declares none, which is the common case for Rectangle-only
// scripts.
func buildVboLayout(s *script.Script) *vbo.Vbo {
	if len(s.VertexAttribs) == 0 {
		return nil
	}
	attribs := make([]struct {
		Location uint32
		Format   *format.Format
	}, len(s.VertexAttribs))
	for i, a := range s.VertexAttribs {
		attribs[i].Location = a.Location
		attribs[i].Format = a.Format
	}
	v := vbo.Layout(attribs)
	v.RawBytes = s.VertexData
	v.NumRows = uint32(len(s.VertexData)) / v.Stride
	return v
}
