// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByName(t *testing.T) {
	f, ok := LookupByName("r8g8b8a8_unorm")
	require.True(t, ok)
	assert.Equal(t, "R8G8B8A8_UNORM", f.Name)

	_, ok = LookupByName("not_a_format")
	assert.False(t, ok)
}

func TestLookupByDetails(t *testing.T) {
	f, ok := LookupByDetails(32, ModeSFLOAT, 3)
	require.True(t, ok)
	assert.Equal(t, "R32G32B32_SFLOAT", f.Name)
}

func TestGetSize(t *testing.T) {
	f, _ := LookupByName("R8G8B8A8_UNORM")
	assert.Equal(t, 4, f.GetSize())

	packed, _ := LookupByName("R5G6B5_UNORM_PACK16")
	assert.Equal(t, 2, packed.GetSize())
}

func TestLoadPixelUnorm(t *testing.T) {
	f, _ := LookupByName("R8G8B8A8_UNORM")
	px := f.LoadPixel([]byte{255, 128, 0, 255})
	assert.InDelta(t, 1.0, px[0], 1e-9)
	assert.InDelta(t, 128.0/255.0, px[1], 1e-9)
	assert.InDelta(t, 0.0, px[2], 1e-9)
	assert.InDelta(t, 1.0, px[3], 1e-9)
}

func TestLoadPixelSnorm(t *testing.T) {
	f, _ := LookupByName("R8G8B8A8_SNORM")
	px := f.LoadPixel([]byte{0x81, 0x7f, 0x00, 0x7f})
	assert.InDelta(t, -1.0, px[0], 1e-9)
	assert.InDelta(t, 1.0, px[1], 1e-9)
}

func TestLoadPixelPacked(t *testing.T) {
	f, _ := LookupByName("R5G6B5_UNORM_PACK16")
	// All bits set: R=0x1f, G=0x3f, B=0x1f, little-endian word 0xffff.
	px := f.LoadPixel([]byte{0xff, 0xff})
	assert.InDelta(t, 1.0, px[0], 1e-9)
	assert.InDelta(t, 1.0, px[1], 1e-9)
	assert.InDelta(t, 1.0, px[2], 1e-9)
	assert.InDelta(t, 1.0, px[3], 1e-9)
}

func TestLoadPixelSFloatHalf(t *testing.T) {
	f, _ := LookupByName("R16_SFLOAT")
	// 0x3C00 is 1.0 in binary16.
	px := f.LoadPixel([]byte{0x00, 0x3c})
	assert.InDelta(t, 1.0, px[0], 1e-6)
}

func TestLoadPixelMissingChannelsDefault(t *testing.T) {
	f, _ := LookupByName("R32_SFLOAT")
	px := f.LoadPixel([]byte{0, 0, 0, 0})
	assert.Equal(t, 0.0, px[1])
	assert.Equal(t, 0.0, px[2])
	assert.Equal(t, 1.0, px[3])
}
