// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package script

import (
	"strings"
	"testing"
)

func TestParseClearAndProbe(t *testing.T) {
	src := `
# a comment
clear color 0.25 0.5 0.75 1.0
clear
probe rect rgba 0 0 4 4 0.25 0.5 0.75 1.0
`
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(s.Commands))
	}
	if s.Commands[0].Kind != KindClear {
		t.Fatalf("expected first command to be clear")
	}
	if s.Commands[0].Clear.Color[2] != 0.75 {
		t.Fatalf("expected clear color blue = 0.75, got %v", s.Commands[0].Clear.Color[2])
	}
	probe := s.Commands[2].ProbeRect
	if probe == nil || probe.NComponents != 4 || probe.W != 4 {
		t.Fatalf("unexpected probe command: %+v", probe)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse(strings.NewReader("bogus command"))
	if err == nil {
		t.Fatal("expected an error for an unrecognized command")
	}
}

func TestParseRequireDevice(t *testing.T) {
	s, err := Parse(strings.NewReader("require device 1\nclear\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Requirements.DeviceID != 1 {
		t.Fatalf("expected device id 1, got %d", s.Requirements.DeviceID)
	}
}

func TestParsePipelineWithShadersAndDrawRect(t *testing.T) {
	src := `
buffer ubo 0 0 16
pipeline graphics rect triangle_strip
shader vertex
#version 450
void main() {}
end shader
shader fragment
#version 450
void main() {}
end shader
end pipeline
draw rect 0 0 1 1
`
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Buffers) != 1 || s.Buffers[0].Kind != UBO || s.Buffers[0].Size != 16 {
		t.Fatalf("unexpected buffers: %+v", s.Buffers)
	}
	if len(s.Pipelines) != 1 || s.Pipelines[0].Topology != topologyByName["triangle_strip"] {
		t.Fatalf("unexpected pipelines: %+v", s.Pipelines)
	}
	if s.Pipelines[0].Shaders[StageVertex] == "" || s.Pipelines[0].Shaders[StageFragment] == "" {
		t.Fatalf("expected both shader stages to be populated: %+v", s.Pipelines[0].Shaders)
	}
	if len(s.Commands) != 1 || s.Commands[0].DrawRect.PipelineKey != s.Pipelines[0] {
		t.Fatalf("expected draw rect to reference the pipeline just declared")
	}
}

func TestParseVertexDataAndIndices(t *testing.T) {
	src := `
vertex data
0 R32G32B32_SFLOAT
end vertex data
vertices
0 0 0
1 0 0
0 1 0
end vertices
indices
0 1 2
end indices
`
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.VertexStride != 12 {
		t.Fatalf("expected stride 12, got %d", s.VertexStride)
	}
	if len(s.VertexData) != 3*12 {
		t.Fatalf("expected 3 rows of 12 bytes, got %d bytes", len(s.VertexData))
	}
	if len(s.Indices) != 3 {
		t.Fatalf("expected 3 indices, got %d", len(s.Indices))
	}
}

func TestParseProbeSsboAndSubdata(t *testing.T) {
	src := `
buffer ssbo 0 0 4
ssbo 0 0 subdata 0 7
probe ssbo 0 0 0 uint == 8
`
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(s.Commands))
	}
	subdata := s.Commands[0].SetBufferSubdata
	if subdata == nil || subdata.Offset != 0 {
		t.Fatalf("unexpected subdata command: %+v", subdata)
	}
	probe := s.Commands[1].ProbeSsbo
	if probe == nil || probe.DescSet != 0 || probe.Binding != 0 {
		t.Fatalf("unexpected probe ssbo target: %+v", probe)
	}
	if len(probe.ValueBytes) != 4 || probe.ValueBytes[0] != 8 {
		t.Fatalf("expected value bytes to encode uint32(8), got %v", probe.ValueBytes)
	}
}

func TestParseProbeSsboMultipleValues(t *testing.T) {
	src := `
buffer ssbo 0 0 16
probe ssbo 0 0 0 uint == 1 2 3
`
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	probe := s.Commands[0].ProbeSsbo
	if probe == nil {
		t.Fatalf("expected a probe ssbo command")
	}
	if len(probe.ValueBytes) != 12 {
		t.Fatalf("expected 3 packed uint32 values, got %d bytes", len(probe.ValueBytes))
	}
	for i, want := range []byte{1, 2, 3} {
		if probe.ValueBytes[i*4] != want {
			t.Errorf("value %d: got %v, want %d", i, probe.ValueBytes[i*4:i*4+4], want)
		}
	}
}

func TestParseProbeSsboRejectsPartialValueGroup(t *testing.T) {
	src := `
buffer ssbo 0 0 16
probe ssbo 0 0 0 vec2 == 1 2 3
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a value count that is not a multiple of the type's component count")
	}
}
