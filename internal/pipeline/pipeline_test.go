// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"testing"

	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

func TestPushConstantSizeCoversWidestWrite(t *testing.T) {
	s := &script.Script{
		Commands: []script.Command{
			{Kind: script.KindSetPushConstant, SetPushConstant: &script.SetPushConstant{Offset: 0, Data: make([]byte, 8)}},
			{Kind: script.KindSetPushConstant, SetPushConstant: &script.SetPushConstant{Offset: 16, Data: make([]byte, 4)}},
			{Kind: script.KindClear, Clear: &script.Clear{}},
		},
	}
	if got := pushConstantSize(s); got != 20 {
		t.Fatalf("expected push constant size 20, got %d", got)
	}
}

func TestVertexInputStateRectangleUsesSingleVec3Attribute(t *testing.T) {
	key := &script.PipelineKey{Source: script.SourceRectangle}
	bindings, attribs := vertexInputState(key, nil)
	if len(bindings) != 1 || bindings[0].Stride != 12 {
		t.Fatalf("expected one binding with stride 12, got %+v", bindings)
	}
	if len(attribs) != 1 || attribs[0].Format != vk.FormatR32G32B32Sfloat {
		t.Fatalf("expected one R32G32B32_SFLOAT attribute, got %+v", attribs)
	}
}

func TestSetDerivativeFlagsMarksFirstAndSubsequent(t *testing.T) {
	var flags vk.PipelineCreateFlags
	setDerivativeFlags(&flags, true)
	if flags&vk.PipelineCreateAllowDerivativesBit == 0 {
		t.Error("expected the first pipeline to get ALLOW_DERIVATIVES")
	}
	if flags&vk.PipelineCreateDerivativeBit != 0 {
		t.Error("did not expect the first pipeline to get DERIVATIVE")
	}

	flags = 0
	setDerivativeFlags(&flags, false)
	if flags&vk.PipelineCreateDerivativeBit == 0 {
		t.Error("expected a subsequent pipeline to get DERIVATIVE")
	}
	if flags&vk.PipelineCreateAllowDerivativesBit != 0 {
		t.Error("did not expect a subsequent pipeline to get ALLOW_DERIVATIVES")
	}
}

// TestManagerTracksFirstPipelinePerKindIndependently checks that the
// Manager keeps the first graphics and the first compute pipeline in
// separate fields: recording a compute pipeline as first leaves the
// graphics slot empty.
func TestManagerTracksFirstPipelinePerKindIndependently(t *testing.T) {
	m := &Manager{}

	if m.firstComputePipeline != 0 || m.firstGraphicsPipeline != 0 {
		t.Fatal("expected a fresh Manager to have no first pipeline of either kind")
	}

	m.firstComputePipeline = 7 // simulate a compute pipeline built first
	if m.firstGraphicsPipeline != 0 {
		t.Fatal("building a compute pipeline must not affect graphics-pipeline first-tracking")
	}
}
