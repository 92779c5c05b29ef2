// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vbo lays out vertex attribute data the way a VkPipelineVertexInputState
// binding does: attributes packed left to right, each aligned to its own
// component width, with the row stride rounded up to the widest attribute.
package vbo

import "github.com/igalia/vkrunner/internal/format"

// Attribute describes one vertex attribute within a row.
type Attribute struct {
	Location uint32
	Format   *format.Format
	Offset   uint32
}

// Vbo is a host-side vertex buffer: raw row-major bytes plus the attribute
// layout describing how to interpret each row.
type Vbo struct {
	RawBytes []byte
	Stride   uint32
	NumRows  uint32
	Attribs  []Attribute
}

// componentAlignment returns max(component_bits)/8 for a format, the unit
// an attribute of that format must be aligned to within a row.
func componentAlignment(f *format.Format) uint32 {
	maxBits := 0
	for _, p := range f.Parts {
		if p.Bits > maxBits {
			maxBits = p.Bits
		}
	}
	return uint32(maxBits / 8)
}

func alignUp(offset, alignment uint32) uint32 {
	if alignment == 0 {
		return offset
	}
	return (offset + alignment - 1) / alignment * alignment
}

// Layout computes attribute offsets and row stride for a set of attributes
// given in declaration order, laying them out left to right. It does not
// touch RawBytes; callers populate the buffer afterwards once NumRows is
// known.
func Layout(attribs []struct {
	Location uint32
	Format   *format.Format
}) *Vbo {
	v := &Vbo{}
	offset := uint32(0)
	maxAlign := uint32(1)

	for _, a := range attribs {
		align := componentAlignment(a.Format)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		v.Attribs = append(v.Attribs, Attribute{
			Location: a.Location,
			Format:   a.Format,
			Offset:   offset,
		})
		offset += uint32(a.Format.GetSize())
	}

	v.Stride = alignUp(offset, maxAlign)
	return v
}

// Allocate sizes RawBytes for numRows rows at the Vbo's current stride.
func (v *Vbo) Allocate(numRows uint32) {
	v.NumRows = numRows
	v.RawBytes = make([]byte, v.Stride*numRows)
}

// Row returns the byte slice for row i.
func (v *Vbo) Row(i uint32) []byte {
	start := i * v.Stride
	return v.RawBytes[start : start+v.Stride]
}
