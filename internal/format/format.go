// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package format decodes the pixel formats vkrunner reads back from the
// framebuffer and writes into vertex/uniform data, covering the subset of
// VkFormat a shader test script can name.
package format

import (
	"fmt"
	"strings"

	"github.com/igalia/vkrunner/internal/vk"
)

// Mode is the numeric representation a format component is stored in.
type Mode int

const (
	ModeUNORM Mode = iota
	ModeSNORM
	ModeUINT
	ModeSINT
	ModeUSCALED
	ModeSSCALED
	ModeUFLOAT
	ModeSFLOAT
	ModeSRGB
)

// Part describes one component of a format (e.g. the R in R8G8B8A8).
type Part struct {
	Bits int
	Mode Mode
}

// Format is one entry of the format table: a Vulkan format together with
// its decode metadata.
type Format struct {
	Name       string
	VkFormat   vk.Format
	Packed     bool
	PackedSize int // bits, only meaningful when Packed
	Parts      []Part
}

// GetSize returns the format's size in bytes.
func (f *Format) GetSize() int {
	if f.Packed {
		return f.PackedSize / 8
	}
	bits := 0
	for _, p := range f.Parts {
		bits += p.Bits
	}
	return bits / 8
}

var table = buildTable()

func buildTable() []*Format {
	return []*Format{
		{Name: "R8_UNORM", VkFormat: vk.FormatR8Unorm, Parts: []Part{{8, ModeUNORM}}},
		{Name: "R8_SNORM", VkFormat: vk.FormatR8Snorm, Parts: []Part{{8, ModeSNORM}}},
		{Name: "R8_UINT", VkFormat: vk.FormatR8Uint, Parts: []Part{{8, ModeUINT}}},
		{Name: "R8_SINT", VkFormat: vk.FormatR8Sint, Parts: []Part{{8, ModeSINT}}},
		{Name: "R8G8_UNORM", VkFormat: vk.FormatR8G8Unorm, Parts: []Part{{8, ModeUNORM}, {8, ModeUNORM}}},
		{Name: "R8G8B8A8_UNORM", VkFormat: vk.FormatR8G8B8A8Unorm, Parts: []Part{{8, ModeUNORM}, {8, ModeUNORM}, {8, ModeUNORM}, {8, ModeUNORM}}},
		{Name: "R8G8B8A8_SNORM", VkFormat: vk.FormatR8G8B8A8Snorm, Parts: []Part{{8, ModeSNORM}, {8, ModeSNORM}, {8, ModeSNORM}, {8, ModeSNORM}}},
		{Name: "R8G8B8A8_UINT", VkFormat: vk.FormatR8G8B8A8Uint, Parts: []Part{{8, ModeUINT}, {8, ModeUINT}, {8, ModeUINT}, {8, ModeUINT}}},
		{Name: "R8G8B8A8_SINT", VkFormat: vk.FormatR8G8B8A8Sint, Parts: []Part{{8, ModeSINT}, {8, ModeSINT}, {8, ModeSINT}, {8, ModeSINT}}},
		{Name: "R8G8B8A8_SRGB", VkFormat: vk.FormatR8G8B8A8Srgb, Parts: []Part{{8, ModeSRGB}, {8, ModeSRGB}, {8, ModeSRGB}, {8, ModeSRGB}}},
		{Name: "B8G8R8A8_UNORM", VkFormat: vk.FormatB8G8R8A8Unorm, Parts: []Part{{8, ModeUNORM}, {8, ModeUNORM}, {8, ModeUNORM}, {8, ModeUNORM}}},
		{Name: "B8G8R8A8_SRGB", VkFormat: vk.FormatB8G8R8A8Srgb, Parts: []Part{{8, ModeSRGB}, {8, ModeSRGB}, {8, ModeSRGB}, {8, ModeSRGB}}},
		{Name: "R5G6B5_UNORM_PACK16", VkFormat: vk.FormatR5G6B5UnormPack16, Packed: true, PackedSize: 16, Parts: []Part{{5, ModeUNORM}, {6, ModeUNORM}, {5, ModeUNORM}}},
		{Name: "R16_SFLOAT", VkFormat: vk.FormatR16Sfloat, Parts: []Part{{16, ModeSFLOAT}}},
		{Name: "R16G16B16A16_SFLOAT", VkFormat: vk.FormatR16G16B16A16Sfloat, Parts: []Part{{16, ModeSFLOAT}, {16, ModeSFLOAT}, {16, ModeSFLOAT}, {16, ModeSFLOAT}}},
		{Name: "R32_UINT", VkFormat: vk.FormatR32Uint, Parts: []Part{{32, ModeUINT}}},
		{Name: "R32_SINT", VkFormat: vk.FormatR32Sint, Parts: []Part{{32, ModeSINT}}},
		{Name: "R32_SFLOAT", VkFormat: vk.FormatR32Sfloat, Parts: []Part{{32, ModeSFLOAT}}},
		{Name: "R32G32_SFLOAT", VkFormat: vk.FormatR32G32Sfloat, Parts: []Part{{32, ModeSFLOAT}, {32, ModeSFLOAT}}},
		{Name: "R32G32B32_SFLOAT", VkFormat: vk.FormatR32G32B32Sfloat, Parts: []Part{{32, ModeSFLOAT}, {32, ModeSFLOAT}, {32, ModeSFLOAT}}},
		{Name: "R32G32B32A32_SFLOAT", VkFormat: vk.FormatR32G32B32A32Sfloat, Parts: []Part{{32, ModeSFLOAT}, {32, ModeSFLOAT}, {32, ModeSFLOAT}, {32, ModeSFLOAT}}},
		{Name: "R64_SFLOAT", VkFormat: vk.FormatR64Sfloat, Parts: []Part{{64, ModeSFLOAT}}},
		{Name: "D16_UNORM", VkFormat: vk.FormatD16Unorm, Parts: []Part{{16, ModeUNORM}}},
		{Name: "D32_SFLOAT", VkFormat: vk.FormatD32Sfloat, Parts: []Part{{32, ModeSFLOAT}}},
		{Name: "S8_UINT", VkFormat: vk.FormatS8Uint, Parts: []Part{{8, ModeUINT}}},
		{Name: "D24_UNORM_S8_UINT", VkFormat: vk.FormatD24UnormS8Uint, Packed: true, PackedSize: 32, Parts: []Part{{24, ModeUNORM}, {8, ModeUINT}}},
		{Name: "D32_SFLOAT_S8_UINT", VkFormat: vk.FormatD32SfloatS8Uint, Parts: []Part{{32, ModeSFLOAT}, {8, ModeUINT}}},
	}
}

// LookupByName finds a format by its canonical name, case-insensitively.
func LookupByName(name string) (*Format, bool) {
	for _, f := range table {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return nil, false
}

// LookupByVk finds a format by its VkFormat value.
func LookupByVk(vf vk.Format) (*Format, bool) {
	for _, f := range table {
		if f.VkFormat == vf {
			return f, true
		}
	}
	return nil, false
}

// LookupByDetails finds an unpacked format whose parts are all bitSize bits
// wide, all in mode, with exactly nComponents of them. Parts carry no
// component letter, so the order is not checked: the first table entry
// that matches is returned, which can be a B,G,R,A or depth/stencil format
// (e.g. D16_UNORM for one 16-bit UNORM component).
func LookupByDetails(bitSize int, mode Mode, nComponents int) (*Format, bool) {
	for _, f := range table {
		if f.Packed || len(f.Parts) != nComponents {
			continue
		}
		matches := true
		for _, p := range f.Parts {
			if p.Bits != bitSize || p.Mode != mode {
				matches = false
				break
			}
		}
		if matches {
			return f, true
		}
	}
	return nil, false
}

func fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf("format: "+format, args...))
}
