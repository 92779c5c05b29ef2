// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vbo

import (
	"testing"

	"github.com/igalia/vkrunner/internal/format"
)

func TestLayoutPacksLeftToRight(t *testing.T) {
	posFmt, _ := format.LookupByName("R32G32B32_SFLOAT")
	colFmt, _ := format.LookupByName("R8G8B8A8_UNORM")

	v := Layout([]struct {
		Location uint32
		Format   *format.Format
	}{
		{0, posFmt},
		{1, colFmt},
	})

	if v.Attribs[0].Offset != 0 {
		t.Fatalf("expected position at offset 0, got %d", v.Attribs[0].Offset)
	}
	if v.Attribs[1].Offset != 12 {
		t.Fatalf("expected colour at offset 12, got %d", v.Attribs[1].Offset)
	}
	if v.Stride != 16 {
		t.Fatalf("expected stride 16, got %d", v.Stride)
	}
}

func TestAllocateMatchesStrideTimesRows(t *testing.T) {
	f, _ := format.LookupByName("R32_SFLOAT")
	v := Layout([]struct {
		Location uint32
		Format   *format.Format
	}{{0, f}})

	v.Allocate(10)
	if len(v.RawBytes) != int(v.Stride)*10 {
		t.Fatalf("expected %d bytes, got %d", v.Stride*10, len(v.RawBytes))
	}
}
