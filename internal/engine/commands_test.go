// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"log/slog"
	"testing"
	"unsafe"

	"github.com/igalia/vkrunner/internal/box"
	"github.com/igalia/vkrunner/internal/memutil"
	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

// newMappedTestBuffer builds a TestBuffer backed by a plain Go byte slice
// rather than real device memory, so execProbeSsbo's read path can be
// exercised without a Vulkan instance.
func newMappedTestBuffer(descSet, binding int, data []byte) *TestBuffer {
	return &TestBuffer{
		DescSet: descSet,
		Binding: binding,
		Kind:    script.SSBO,
		Size:    len(data),
		Memory:  memutil.Allocation{MappedData: unsafe.Pointer(&data[0]), Size: vk.DeviceSize(len(data))},
	}
}

func TestRequiredStateRoutesDrawAndProbeCommands(t *testing.T) {
	cases := []struct {
		kind script.CommandKind
		want State
	}{
		{script.KindDrawRect, RenderPass},
		{script.KindDrawArrays, RenderPass},
		{script.KindClear, RenderPass},
		{script.KindDispatchCompute, CommandBuffer},
		{script.KindSetPushConstant, CommandBuffer},
		{script.KindProbeRect, Idle},
		{script.KindProbeSsbo, Idle},
	}
	for _, c := range cases {
		if got := requiredState(script.Command{Kind: c.kind}); got != c.want {
			t.Errorf("requiredState(%v) = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestFormatValuesRendersLeadingComponents(t *testing.T) {
	got := formatValues([]float64{1, 0.5, 0})
	want := "(1, 0.5, 0)"
	if got != want {
		t.Errorf("formatValues = %q, want %q", got, want)
	}
}

func TestAbs(t *testing.T) {
	if abs(-3.5) != 3.5 || abs(2.0) != 2.0 {
		t.Error("abs did not return the magnitude")
	}
}

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestExecProbeSsboChecksEveryContiguousValue(t *testing.T) {
	uintType := box.Type{Base: box.BaseUint32, N: 1}
	layout := box.Layout{Std: box.Std430, Major: box.ColumnMajor}

	observed := append(append(le32(1), le32(2)...), le32(3)...)
	buf := newMappedTestBuffer(0, 0, observed)
	e := &Engine{testBuffers: []*TestBuffer{buf}, logger: slog.Default()}

	reference := append(append(le32(1), le32(2)...), le32(3)...)
	ok := e.execProbeSsbo(&script.ProbeSsbo{
		DescSet: 0, Binding: 0, Offset: 0,
		Type: uintType, Layout: layout,
		Comparison: box.Equal,
		ValueBytes: reference,
	})
	if !ok {
		t.Fatalf("expected a match across all 3 values, diagnostics: %v", e.diagnostics)
	}
}

func TestExecProbeSsboReportsEveryMismatchingValue(t *testing.T) {
	uintType := box.Type{Base: box.BaseUint32, N: 1}
	layout := box.Layout{Std: box.Std430, Major: box.ColumnMajor}

	observed := append(append(le32(1), le32(99)...), le32(3)...)
	buf := newMappedTestBuffer(0, 0, observed)
	e := &Engine{testBuffers: []*TestBuffer{buf}, logger: slog.Default()}

	reference := append(append(le32(1), le32(2)...), le32(3)...)
	ok := e.execProbeSsbo(&script.ProbeSsbo{
		DescSet: 0, Binding: 0, Offset: 0,
		Type: uintType, Layout: layout,
		Comparison: box.Equal,
		ValueBytes: reference,
	})
	if ok {
		t.Fatal("expected the mismatch at value index 1 to fail the probe")
	}
	if len(e.diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic for the one mismatching value, got %v", e.diagnostics)
	}
}
