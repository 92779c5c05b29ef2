// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package script

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/igalia/vkrunner/internal/box"
	"github.com/igalia/vkrunner/internal/format"
)

// topologyByName maps a script's topology keyword to the
// vk.PrimitiveTopology numbering (kept in sync with internal/vk's
// consts.go by hand rather than importing vk here, so the script package
// stays free of any Vulkan dependency).
var topologyByName = map[string]uint32{
	"points":         0,
	"lines":          1,
	"line_strip":     2,
	"triangles":      3,
	"triangle_strip": 4,
	"triangle_fan":   5,
}

// blockKind tracks which multi-line block the scanner is currently
// inside; outside a block every line is a single self-contained command.
type blockKind int

const (
	blockNone blockKind = iota
	blockShader
	blockVertexData
	blockVertices
	blockIndices
)

// Parse reads a line-oriented test script. This is a minimal surface
// syntax supplementing the distilled command set — enough to drive the
// engine end to end, not a full reimplementation of any particular
// script dialect. Each recognised line becomes one Command; blank lines
// and lines starting with '#' are skipped.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{Requirements: Requirements{DeviceID: -1}}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	var currentPipeline *PipelineKey
	block := blockNone
	var shaderStage Stage
	var shaderLines []string
	var vertexFormats []*format.Format

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)

		switch block {
		case blockShader:
			if trimmed == "end shader" {
				if currentPipeline == nil {
					return nil, fmt.Errorf("script: line %d: shader block outside a pipeline", lineNum)
				}
				if currentPipeline.Shaders == nil {
					currentPipeline.Shaders = map[Stage]string{}
				}
				currentPipeline.Shaders[shaderStage] = strings.Join(shaderLines, "\n")
				block = blockNone
				continue
			}
			shaderLines = append(shaderLines, line)
			continue

		case blockVertexData:
			if trimmed == "end vertex data" {
				block = blockNone
				continue
			}
			fields := strings.Fields(trimmed)
			if len(fields) != 2 {
				return nil, fmt.Errorf("script: line %d: vertex data attribute expects location and format", lineNum)
			}
			loc, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("script: line %d: vertex data location: %w", lineNum, err)
			}
			f, ok := format.LookupByName(fields[1])
			if !ok {
				return nil, fmt.Errorf("script: line %d: unknown vertex attribute format %q", lineNum, fields[1])
			}
			s.VertexAttribs = append(s.VertexAttribs, VertexAttribDecl{Location: uint32(loc), Format: f})
			vertexFormats = append(vertexFormats, f)
			continue

		case blockVertices:
			if trimmed == "end vertices" {
				block = blockNone
				continue
			}
			if trimmed == "" {
				continue
			}
			row, err := encodeVertexRow(vertexFormats, strings.Fields(trimmed))
			if err != nil {
				return nil, fmt.Errorf("script: line %d: %w", lineNum, err)
			}
			s.VertexData = append(s.VertexData, row...)
			continue

		case blockIndices:
			if trimmed == "end indices" {
				block = blockNone
				continue
			}
			if trimmed == "" {
				continue
			}
			for _, f := range strings.Fields(trimmed) {
				v, err := strconv.Atoi(f)
				if err != nil {
					return nil, fmt.Errorf("script: line %d: index: %w", lineNum, err)
				}
				s.Indices = append(s.Indices, uint16(v))
			}
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)

		switch fields[0] {
		case "require":
			if err := parseRequire(&s.Requirements, fields[1:]); err != nil {
				return nil, fmt.Errorf("script: line %d: %w", lineNum, err)
			}

		case "buffer":
			if err := parseBuffer(s, fields[1:], lineNum); err != nil {
				return nil, err
			}

		case "pipeline":
			key, err := parsePipelineHeader(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			s.Pipelines = append(s.Pipelines, key)
			currentPipeline = key

		case "shader":
			if currentPipeline == nil {
				return nil, fmt.Errorf("script: line %d: shader block outside a pipeline", lineNum)
			}
			if len(fields) != 2 {
				return nil, fmt.Errorf("script: line %d: shader expects a stage", lineNum)
			}
			switch fields[1] {
			case "vertex":
				shaderStage = StageVertex
			case "fragment":
				shaderStage = StageFragment
			case "compute":
				shaderStage = StageCompute
			default:
				return nil, fmt.Errorf("script: line %d: unknown shader stage %q", lineNum, fields[1])
			}
			shaderLines = nil
			block = blockShader

		case "end":
			if len(fields) != 2 || fields[1] != "pipeline" {
				return nil, fmt.Errorf("script: line %d: unexpected %q", lineNum, trimmed)
			}
			// The pipeline just closed stays "current" so following draw
			// commands keep referencing it without restating it.

		case "vertex":
			if len(fields) != 2 || fields[1] != "data" {
				return nil, fmt.Errorf("script: line %d: unexpected %q", lineNum, trimmed)
			}
			vertexFormats = nil
			block = blockVertexData

		case "vertices":
			block = blockVertices

		case "indices":
			block = blockIndices

		case "clear":
			cmd, err := parseClear(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			s.Commands = append(s.Commands, cmd)

		case "draw":
			cmd, err := parseDraw(fields[1:], lineNum, currentPipeline)
			if err != nil {
				return nil, err
			}
			s.Commands = append(s.Commands, cmd)

		case "compute":
			cmd, err := parseCompute(fields[1:], lineNum, currentPipeline)
			if err != nil {
				return nil, err
			}
			s.Commands = append(s.Commands, cmd)

		case "probe":
			cmd, err := parseProbe(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			s.Commands = append(s.Commands, cmd)

		case "uniform":
			cmd, err := parsePushConstant(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			s.Commands = append(s.Commands, cmd)

		case "ssbo", "ubo":
			cmd, err := parseBufferSubdata(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			s.Commands = append(s.Commands, cmd)

		default:
			return nil, fmt.Errorf("script: line %d: unrecognized command %q", lineNum, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("script: read failed: %w", err)
	}
	if len(s.VertexAttribs) > 0 {
		stride := 0
		for _, a := range s.VertexAttribs {
			stride += a.Format.GetSize()
		}
		s.VertexStride = stride
	}
	return s, nil
}

func parseRequire(req *Requirements, fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("require: expected a capability name")
	}
	switch fields[0] {
	case "extension":
		req.Extensions = append(req.Extensions, fields[1:]...)
	case "feature":
		req.Features = append(req.Features, fields[1:]...)
	case "device":
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("require device: %w", err)
		}
		req.DeviceID = id
	default:
		return fmt.Errorf("require: unknown capability %q", fields[0])
	}
	return nil
}

// parseBuffer handles "buffer ubo|ssbo <desc_set> <binding> <size>".
func parseBuffer(s *Script, fields []string, lineNum int) error {
	if len(fields) != 4 {
		return fmt.Errorf("script: line %d: buffer expects kind, desc_set, binding, size", lineNum)
	}
	var kind BufferKind
	switch fields[0] {
	case "ubo":
		kind = UBO
	case "ssbo":
		kind = SSBO
	default:
		return fmt.Errorf("script: line %d: unknown buffer kind %q", lineNum, fields[0])
	}
	descSet, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("script: line %d: buffer desc_set: %w", lineNum, err)
	}
	binding, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("script: line %d: buffer binding: %w", lineNum, err)
	}
	size, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("script: line %d: buffer size: %w", lineNum, err)
	}
	s.Buffers = append(s.Buffers, Buffer{DescSet: descSet, Binding: binding, Kind: kind, Size: size})
	return nil
}

// parsePipelineHeader handles "pipeline graphics rect|vertexdata <topology>"
// and "pipeline compute".
func parsePipelineHeader(fields []string, lineNum int) (*PipelineKey, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("script: line %d: pipeline expects a type", lineNum)
	}
	switch fields[0] {
	case "compute":
		return &PipelineKey{Type: Compute}, nil
	case "graphics":
		if len(fields) != 3 {
			return nil, fmt.Errorf("script: line %d: pipeline graphics expects a source and topology", lineNum)
		}
		var source Source
		switch fields[1] {
		case "rect":
			source = SourceRectangle
		case "vertexdata":
			source = SourceVertexData
		default:
			return nil, fmt.Errorf("script: line %d: unknown pipeline vertex source %q", lineNum, fields[1])
		}
		topology, ok := topologyByName[fields[2]]
		if !ok {
			return nil, fmt.Errorf("script: line %d: unknown topology %q", lineNum, fields[2])
		}
		return &PipelineKey{Type: Graphics, Source: source, Topology: topology}, nil
	default:
		return nil, fmt.Errorf("script: line %d: unknown pipeline type %q", lineNum, fields[0])
	}
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseClear(fields []string, lineNum int) (Command, error) {
	c := &Clear{Color: [4]float32{0, 0, 0, 1}}
	if len(fields) > 0 && fields[0] == "color" {
		vals, err := parseFloats(fields[1:])
		if err != nil || len(vals) != 4 {
			return Command{}, fmt.Errorf("script: line %d: clear color expects 4 numbers", lineNum)
		}
		for i, v := range vals {
			c.Color[i] = float32(v)
		}
	}
	return Command{Kind: KindClear, LineNum: lineNum, Clear: c}, nil
}

func parseDraw(fields []string, lineNum int, pipeline *PipelineKey) (Command, error) {
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("script: line %d: draw requires a sub-command", lineNum)
	}
	switch fields[0] {
	case "rect":
		vals, err := parseFloats(fields[1:])
		if err != nil || len(vals) != 4 {
			return Command{}, fmt.Errorf("script: line %d: draw rect expects x y w h", lineNum)
		}
		return Command{
			Kind:    KindDrawRect,
			LineNum: lineNum,
			DrawRect: &DrawRect{
				X: float32(vals[0]), Y: float32(vals[1]),
				W: float32(vals[2]), H: float32(vals[3]),
				PipelineKey: pipeline,
			},
		}, nil
	case "arrays":
		indexed := false
		rest := fields[1:]
		if len(rest) > 0 && rest[0] == "indexed" {
			indexed = true
			rest = rest[1:]
		}
		if len(rest) < 1 {
			return Command{}, fmt.Errorf("script: line %d: draw arrays expects a vertex count", lineNum)
		}
		count, err := strconv.Atoi(rest[len(rest)-1])
		if err != nil {
			return Command{}, fmt.Errorf("script: line %d: draw arrays: %w", lineNum, err)
		}
		return Command{
			Kind:    KindDrawArrays,
			LineNum: lineNum,
			DrawArrays: &DrawArrays{
				Indexed:       indexed,
				VertexCount:   uint32(count),
				InstanceCount: 1,
				PipelineKey:   pipeline,
			},
		}, nil
	default:
		return Command{}, fmt.Errorf("script: line %d: unknown draw sub-command %q", lineNum, fields[0])
	}
}

func parseCompute(fields []string, lineNum int, pipeline *PipelineKey) (Command, error) {
	if len(fields) != 3 {
		return Command{}, fmt.Errorf("script: line %d: compute expects x y z", lineNum)
	}
	vals, err := parseFloats(fields)
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: compute: %w", lineNum, err)
	}
	return Command{
		Kind:    KindDispatchCompute,
		LineNum: lineNum,
		DispatchCompute: &DispatchCompute{
			X: uint32(vals[0]), Y: uint32(vals[1]), Z: uint32(vals[2]),
			PipelineKey: pipeline,
		},
	}, nil
}

func parseProbe(fields []string, lineNum int) (Command, error) {
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("script: line %d: probe expects a sub-command", lineNum)
	}
	switch fields[0] {
	case "rect":
		return parseProbeRect(fields[1:], lineNum)
	case "ssbo":
		return parseProbeSsbo(fields[1:], lineNum)
	default:
		return Command{}, fmt.Errorf("script: line %d: unknown probe sub-command %q", lineNum, fields[0])
	}
}

func parseProbeRect(fields []string, lineNum int) (Command, error) {
	n := 4
	switch fields[0] {
	case "rgba":
		n = 4
	case "rgb":
		n = 3
	default:
		return Command{}, fmt.Errorf("script: line %d: probe rect expects rgba or rgb", lineNum)
	}
	vals, err := parseFloats(fields[1:])
	if err != nil || len(vals) != 4+n {
		return Command{}, fmt.Errorf("script: line %d: probe rect expects x y w h then %d colour components", lineNum, n)
	}
	p := &ProbeRect{
		NComponents: n,
		X:           int(vals[0]), Y: int(vals[1]), W: int(vals[2]), H: int(vals[3]),
		Tolerance: DefaultTolerance(),
	}
	for i := 0; i < n; i++ {
		p.Color[i] = vals[4+i]
	}
	if n == 3 {
		p.Color[3] = 1
	}
	return Command{Kind: KindProbeRect, LineNum: lineNum, ProbeRect: p}, nil
}

// parseProbeSsbo handles "probe ssbo <desc_set> <binding> <offset> <type>
// <comparison> <value...>", e.g. "probe ssbo 0 0 0 uint == 8". value... may
// repeat in multiples of the type's component count to probe several
// contiguous array elements in one command, e.g. "probe ssbo 0 0 0 vec2 == 1
// 2 3 4" checks two consecutive vec2 elements.
func parseProbeSsbo(fields []string, lineNum int) (Command, error) {
	if len(fields) < 6 {
		return Command{}, fmt.Errorf("script: line %d: probe ssbo expects desc_set binding offset type comparison value", lineNum)
	}
	descSet, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: probe ssbo desc_set: %w", lineNum, err)
	}
	binding, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: probe ssbo binding: %w", lineNum, err)
	}
	offset, err := strconv.Atoi(fields[2])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: probe ssbo offset: %w", lineNum, err)
	}
	boxType, err := parseBoxTypeName(fields[3])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: %w", lineNum, err)
	}
	comparison, err := parseComparison(fields[4])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: %w", lineNum, err)
	}
	vals, err := parseFloats(fields[5:])
	if err != nil || len(vals) == 0 || len(vals)%boxType.N != 0 {
		return Command{}, fmt.Errorf("script: line %d: probe ssbo expects a multiple of %d value component(s)", lineNum, boxType.N)
	}
	data, err := encodeBoxValue(boxType, vals)
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: %w", lineNum, err)
	}

	return Command{
		Kind:    KindProbeSsbo,
		LineNum: lineNum,
		ProbeSsbo: &ProbeSsbo{
			DescSet: descSet, Binding: binding, Offset: offset,
			Type:       boxType,
			Layout:     box.Layout{Std: box.Std430, Major: box.ColumnMajor},
			Comparison: comparison,
			ValueBytes: data,
			Tolerance:  DefaultTolerance(),
		},
	}, nil
}

// parseBufferSubdata handles "ssbo|ubo <desc_set> <binding> subdata
// <offset> <floats...>". Which declared buffer this targets (and
// therefore whether it's a UBO or SSBO) is resolved by (desc_set,
// binding) at run time, not by this command itself.
func parseBufferSubdata(fields []string, lineNum int) (Command, error) {
	if len(fields) < 4 || fields[2] != "subdata" {
		return Command{}, fmt.Errorf("script: line %d: expected desc_set binding subdata offset values...", lineNum)
	}
	descSet, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: subdata desc_set: %w", lineNum, err)
	}
	binding, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: subdata binding: %w", lineNum, err)
	}
	offset, err := strconv.Atoi(fields[3])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: subdata offset: %w", lineNum, err)
	}
	vals, err := parseFloats(fields[4:])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: subdata values: %w", lineNum, err)
	}
	data := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		bits := float32ToLEBytes(float32(v))
		data = append(data, bits[:]...)
	}
	return Command{
		Kind:    KindSetBufferSubdata,
		LineNum: lineNum,
		SetBufferSubdata: &SetBufferSubdata{
			DescSet: descSet, Binding: binding, Offset: offset, Data: data,
		},
	}, nil
}

func parsePushConstant(fields []string, lineNum int) (Command, error) {
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("script: line %d: uniform expects an offset and data", lineNum)
	}
	offset, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: uniform offset: %w", lineNum, err)
	}
	vals, err := parseFloats(fields[1:])
	if err != nil {
		return Command{}, fmt.Errorf("script: line %d: uniform data: %w", lineNum, err)
	}
	data := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		bits := float32ToLEBytes(float32(v))
		data = append(data, bits[:]...)
	}
	return Command{
		Kind:    KindSetPushConstant,
		LineNum: lineNum,
		SetPushConstant: &SetPushConstant{
			Offset: offset,
			Data:   data,
		},
	}, nil
}

func float32ToLEBytes(f float32) [4]byte {
	bits := math.Float32bits(f)
	return [4]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
}

func float64ToLEBytes64(f float64) [8]byte {
	bits := math.Float64bits(f)
	var out [8]byte
	for i := 0; i < 8; i++ {
		out[i] = byte(bits >> (8 * i))
	}
	return out
}

func uint32ToLEBytes(v uint32) [4]byte {
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// parseBoxTypeName maps a probe's type keyword to a box.Type. Only
// scalars and vectors are supported; matrices are out of scope for the
// literal-valued probes this parser builds.
func parseBoxTypeName(name string) (box.Type, error) {
	switch name {
	case "int":
		return box.Type{Base: box.BaseInt32, N: 1}, nil
	case "uint":
		return box.Type{Base: box.BaseUint32, N: 1}, nil
	case "float":
		return box.Type{Base: box.BaseFloat32, N: 1}, nil
	case "double":
		return box.Type{Base: box.BaseFloat64, N: 1}, nil
	case "vec2":
		return box.Type{Base: box.BaseFloat32, N: 2}, nil
	case "vec3":
		return box.Type{Base: box.BaseFloat32, N: 3}, nil
	case "vec4":
		return box.Type{Base: box.BaseFloat32, N: 4}, nil
	case "ivec2":
		return box.Type{Base: box.BaseInt32, N: 2}, nil
	case "ivec3":
		return box.Type{Base: box.BaseInt32, N: 3}, nil
	case "ivec4":
		return box.Type{Base: box.BaseInt32, N: 4}, nil
	case "uvec2":
		return box.Type{Base: box.BaseUint32, N: 2}, nil
	case "uvec3":
		return box.Type{Base: box.BaseUint32, N: 3}, nil
	case "uvec4":
		return box.Type{Base: box.BaseUint32, N: 4}, nil
	default:
		return box.Type{}, fmt.Errorf("unknown probe type %q", name)
	}
}

func parseComparison(s string) (box.Comparison, error) {
	switch s {
	case "==":
		return box.Equal, nil
	case "~=":
		return box.FuzzyEqual, nil
	case "!=":
		return box.NotEqual, nil
	case "<":
		return box.Less, nil
	case "<=":
		return box.LessEqual, nil
	case ">":
		return box.Greater, nil
	case ">=":
		return box.GreaterEqual, nil
	default:
		return 0, fmt.Errorf("unknown comparison %q", s)
	}
}

// encodeBoxValue packs vals into raw bytes matching t's storage layout,
// tightly packed (no array-stride padding; ProbeSsbo reads exactly
// box.Size(t, layout) bytes' worth of meaningful data starting at offset).
func encodeBoxValue(t box.Type, vals []float64) ([]byte, error) {
	data := make([]byte, 0, t.N*8)
	for _, v := range vals {
		switch t.Base {
		case box.BaseFloat32:
			b := float32ToLEBytes(float32(v))
			data = append(data, b[:]...)
		case box.BaseFloat64:
			b := float64ToLEBytes64(v)
			data = append(data, b[:]...)
		case box.BaseInt32, box.BaseUint32:
			b := uint32ToLEBytes(uint32(int32(v)))
			data = append(data, b[:]...)
		default:
			return nil, fmt.Errorf("unsupported probe base type")
		}
	}
	return data, nil
}

// encodeVertexRow packs one row of whitespace-separated literal values
// into the byte layout vertexFormats describes, in declaration order.
// Only *_SFLOAT formats are supported since that covers every vertex
// attribute a hand-written script realistically declares (positions,
// colours, texcoords).
func encodeVertexRow(vertexFormats []*format.Format, fields []string) ([]byte, error) {
	var out []byte
	idx := 0
	for _, f := range vertexFormats {
		for _, p := range f.Parts {
			if p.Mode != format.ModeSFLOAT || p.Bits != 32 {
				return nil, fmt.Errorf("vertex data: only 32-bit float components are supported, format %s is not", f.Name)
			}
			if idx >= len(fields) {
				return nil, fmt.Errorf("vertex data: row has fewer values than the declared attributes need")
			}
			v, err := strconv.ParseFloat(fields[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex data: %w", err)
			}
			b := float32ToLEBytes(float32(v))
			out = append(out, b[:]...)
			idx++
		}
	}
	return out, nil
}
