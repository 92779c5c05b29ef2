// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package script holds the parsed representation of one vkrunner test
// script: the pipelines it needs, the buffers it declares, and the
// sequence of commands to run against them. The tagged-union shape here
// follows the same kind-field pattern used elsewhere in this repo for
// command and descriptor description types.
package script

import (
	"github.com/igalia/vkrunner/internal/box"
	"github.com/igalia/vkrunner/internal/format"
)

// BufferKind distinguishes a uniform buffer from a storage buffer.
type BufferKind int

const (
	UBO BufferKind = iota
	SSBO
)

// Buffer is one descriptor-backed buffer a script declares.
type Buffer struct {
	DescSet int
	Binding int
	Kind    BufferKind
	Size    int
}

// Source identifies where a pipeline's vertex input comes from.
type Source int

const (
	SourceRectangle Source = iota
	SourceVertexData
)

// PipelineType distinguishes a graphics pipeline from a compute pipeline.
type PipelineType int

const (
	Graphics PipelineType = iota
	Compute
)

// PipelineKey identifies one VkPipeline a script needs, keyed by its
// pipeline type, vertex source, topology, and per-stage shaders. Two
// commands sharing a PipelineKey share a VkPipeline.
type PipelineKey struct {
	Type      PipelineType
	Topology  uint32 // vk.PrimitiveTopology, graphics pipelines only
	Source    Source
	Shaders   map[Stage]string // stage -> GLSL source text
	ShaderBin map[Stage][]uint32
}

// Stage identifies a shader stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// Tolerance is a per-component comparison tolerance. Its zero value means
// an absolute tolerance of 0; DefaultTolerance returns the default
// absolute tolerance of 0.01.
type Tolerance struct {
	Absolute float64
}

func DefaultTolerance() Tolerance { return Tolerance{Absolute: 0.01} }

// Command is the tagged union of every runnable script command. Exactly
// one of the embedded payload fields is meaningful, selected by Kind.
type Command struct {
	Kind    CommandKind
	LineNum int

	DrawRect       *DrawRect
	DrawArrays     *DrawArrays
	DispatchCompute *DispatchCompute
	ProbeRect      *ProbeRect
	ProbeSsbo      *ProbeSsbo
	SetPushConstant *SetPushConstant
	SetBufferSubdata *SetBufferSubdata
	Clear          *Clear
}

// CommandKind selects which payload field of Command is populated.
type CommandKind int

const (
	KindDrawRect CommandKind = iota
	KindDrawArrays
	KindDispatchCompute
	KindProbeRect
	KindProbeSsbo
	KindSetPushConstant
	KindSetBufferSubdata
	KindClear
)

type DrawRect struct {
	X, Y, W, H float32
	PipelineKey *PipelineKey
}

type DrawArrays struct {
	Topology      uint32
	Indexed       bool
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
	PipelineKey   *PipelineKey
}

type DispatchCompute struct {
	X, Y, Z     uint32
	PipelineKey *PipelineKey
}

type ProbeRect struct {
	NComponents int
	X, Y, W, H  int
	Color       [4]float64
	Tolerance   Tolerance
}

type ProbeSsbo struct {
	DescSet    int
	Binding    int
	Comparison box.Comparison
	Offset     int
	Type       box.Type
	Layout     box.Layout
	ValueBytes []byte
	Tolerance  Tolerance
}

type SetPushConstant struct {
	Offset int
	Data   []byte
}

type SetBufferSubdata struct {
	DescSet int
	Binding int
	Offset  int
	Data    []byte
}

type Clear struct {
	Color        [4]float32
	HasDepth     bool
	Depth        float32
	HasStencil   bool
	Stencil      uint32
}

// Requirements describes the device capabilities a script needs in order
// to run, gathered from its "require" section.
type Requirements struct {
	APIVersionMajor, APIVersionMinor uint32
	Extensions                       []string
	Features                         []string
	DeviceID                         int // -1 means unset
}

// EffectiveAPIVersion returns the API version a script requested, or
// vkrunner's own default (Vulkan 1.1) if it named none.
func (r Requirements) EffectiveAPIVersion() (major, minor uint32) {
	if r.APIVersionMajor == 0 {
		return 1, 1
	}
	return r.APIVersionMajor, r.APIVersionMinor
}

// VertexAttribDecl is one attribute declared by a script's vertex data
// section, in declaration order. The engine feeds these through
// vbo.Layout to get per-attribute offsets and the row stride.
type VertexAttribDecl struct {
	Location uint32
	Format   *format.Format
}

// Script is the fully parsed test script: its device requirements, the
// buffers and pipelines it declares, and the commands to execute.
type Script struct {
	Requirements  Requirements
	Buffers       []Buffer
	Pipelines     []*PipelineKey
	Commands      []Command
	VertexAttribs []VertexAttribDecl
	VertexData    []byte
	VertexStride  int
	Indices       []uint16
}
