// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package box

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixStrideStd140IsMultipleOf16(t *testing.T) {
	mat3 := Type{Base: BaseFloat32, N: 3, MatrixColumns: 3}
	stride := MatrixStride(mat3, Layout{Std: Std140, Major: ColumnMajor})
	assert.Zero(t, stride%16)
}

func TestArrayStrideAtLeastSize(t *testing.T) {
	vec3 := Type{Base: BaseFloat32, N: 3}
	for _, std := range []Std{Std140, Std430} {
		l := Layout{Std: std, Major: ColumnMajor}
		require.GreaterOrEqual(t, ArrayStride(vec3, l), Size(vec3, l))
	}
}

func TestBaseAlignmentVec3UsesVec4(t *testing.T) {
	vec3 := Type{Base: BaseFloat32, N: 3}
	vec4 := Type{Base: BaseFloat32, N: 4}
	l := Layout{Std: Std430, Major: ColumnMajor}
	assert.Equal(t, BaseAlignment(vec4, l), BaseAlignment(vec3, l))
}

func TestCompareFuzzyEqualRespectsTolerance(t *testing.T) {
	f32 := Type{Base: BaseFloat32, N: 1}
	a := make([]byte, 4)
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(a, math.Float32bits(1.0))
	binary.LittleEndian.PutUint32(b, math.Float32bits(1.005))

	l := Layout{Std: Std430, Major: ColumnMajor}
	assert.True(t, Compare(FuzzyEqual, 0.01, f32, l, a, b))
	assert.False(t, Compare(FuzzyEqual, 0.001, f32, l, a, b))
}

func TestCompareIntegerIgnoresTolerance(t *testing.T) {
	u32 := Type{Base: BaseUint32, N: 1}
	a := make([]byte, 4)
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(a, 8)
	binary.LittleEndian.PutUint32(b, 9)

	l := Layout{Std: Std430, Major: ColumnMajor}
	assert.False(t, Compare(FuzzyEqual, 100, u32, l, a, b))
}

func TestForEachComponentMatrixColumnMajor(t *testing.T) {
	mat2 := Type{Base: BaseFloat32, N: 2, MatrixColumns: 2}
	l := Layout{Std: Std430, Major: ColumnMajor}
	var offsets []int
	ForEachComponent(mat2, l, func(c Component) {
		offsets = append(offsets, c.Offset)
	})
	require.Len(t, offsets, 4)
	assert.Equal(t, 0, offsets[0])
}

func TestDecodeReturnsEveryComponentWidenedToFloat64(t *testing.T) {
	vec2 := Type{Base: BaseFloat32, N: 2}
	l := Layout{Std: Std430, Major: ColumnMajor}
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(-2))

	assert.Equal(t, []float64{1.5, -2}, Decode(vec2, l, data))
}
