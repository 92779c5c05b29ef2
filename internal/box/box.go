// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package box implements std140/std430 GLSL buffer layout math and the
// tolerance-aware scalar comparisons probe commands use to judge SSBO and
// UBO contents against expected values.
package box

import "math"

// BaseType is the scalar storage type underlying a BoxType.
type BaseType int

const (
	BaseInt8 BaseType = iota
	BaseInt16
	BaseInt32
	BaseInt64
	BaseUint8
	BaseUint16
	BaseUint32
	BaseUint64
	BaseFloat16
	BaseFloat32
	BaseFloat64
)

// baseSize returns the storage size in bytes of one scalar of the base type.
func (b BaseType) baseSize() int {
	switch b {
	case BaseInt8, BaseUint8:
		return 1
	case BaseInt16, BaseUint16, BaseFloat16:
		return 2
	case BaseInt32, BaseUint32, BaseFloat32:
		return 4
	case BaseInt64, BaseUint64, BaseFloat64:
		return 8
	default:
		panic("box: unknown base type")
	}
}

// Type describes a scalar/vector/matrix box type: an n-component vector
// (or scalar when N==1) or, when MatrixColumns>1, a matrix of
// MatrixColumns columns each with N rows.
type Type struct {
	Base          BaseType
	N             int // components per column (1 for scalar, 2-4 for vector/matrix rows)
	MatrixColumns int // 0 for scalar/vector, >=2 for matrix
}

// Std is the buffer layout standard.
type Std int

const (
	Std140 Std = iota
	Std430
)

// Major is the matrix/array traversal order. The layout functions in this
// package do not consult it: every matrix is laid out and walked
// column-major.
type Major int

const (
	ColumnMajor Major = iota
	RowMajor
)

// Layout pairs a layout standard with a traversal order.
type Layout struct {
	Std   Std
	Major Major
}

// alignedComponentCount returns n, except that a 3-component row aligns as
// if it had 4 components.
func alignedComponentCount(n int) int {
	if n == 3 {
		return 4
	}
	return n
}

// BaseAlignment returns the alignment, in bytes, of one column of t
// under layout l.
func BaseAlignment(t Type, l Layout) int {
	compSize := t.Base.baseSize()
	n := alignedComponentCount(t.N)
	alignment := compSize * n

	if t.MatrixColumns > 0 && l.Std == Std140 {
		if alignment < 16 {
			alignment = 16
		}
	}
	return alignment
}

// MatrixStride returns the stride, in bytes, between consecutive
// columns of a matrix type; Layout.Major is not consulted. std140 rounds
// this up to a multiple of 16; std430 does not.
func MatrixStride(t Type, l Layout) int {
	align := BaseAlignment(t, l)
	if l.Std == Std140 {
		return roundUp(align, 16)
	}
	return align
}

func roundUp(v, multiple int) int {
	return (v + multiple - 1) / multiple * multiple
}

// majorCount returns the number of matrix columns t has, or 1 for
// scalar/vector types.
func majorCount(t Type) int {
	if t.MatrixColumns == 0 {
		return 1
	}
	return t.MatrixColumns
}

// Size returns the total size, in bytes, that one instance of t occupies
// under layout l, not including array-stride padding.
func Size(t Type, l Layout) int {
	if t.MatrixColumns == 0 {
		return t.Base.baseSize() * t.N
	}
	stride := MatrixStride(t, l)
	baseSize := t.Base.baseSize() * t.N
	return (majorCount(t)-1)*stride + baseSize
}

// ArrayStride returns the stride between consecutive array elements of t.
// For matrices this is the matrix stride times the number of
// columns; for non-matrix types under std140, array elements are
// rounded up to a 16-byte alignment.
func ArrayStride(t Type, l Layout) int {
	if t.MatrixColumns > 0 {
		return MatrixStride(t, l) * majorCount(t)
	}
	size := Size(t, l)
	if l.Std == Std140 {
		return roundUp(size, 16)
	}
	return size
}

// Component is one scalar slot visited by ForEachComponent: its byte
// offset from the start of the value and its base type.
type Component struct {
	Offset int
	Base   BaseType
}

// ForEachComponent visits every scalar component of t laid out under l,
// invoking cb with each component's offset and base type. Matrices are
// always walked column-by-column; l.Major is not consulted, so RowMajor
// layouts are not handled. Non-matrix vectors are walked component by
// component.
func ForEachComponent(t Type, l Layout, cb func(Component)) {
	compSize := t.Base.baseSize()

	if t.MatrixColumns == 0 {
		for i := 0; i < t.N; i++ {
			cb(Component{Offset: i * compSize, Base: t.Base})
		}
		return
	}

	stride := MatrixStride(t, l)
	for col := 0; col < majorCount(t); col++ {
		colOffset := col * stride
		for row := 0; row < t.N; row++ {
			cb(Component{Offset: colOffset + row*compSize, Base: t.Base})
		}
	}
}

// Comparison is the relational operator a probe uses to judge observed
// data against an expected value.
type Comparison int

const (
	Equal Comparison = iota
	FuzzyEqual
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

func asDouble(base BaseType, bytes []byte, offset int) float64 {
	switch base {
	case BaseInt8:
		return float64(int8(bytes[offset]))
	case BaseUint8:
		return float64(bytes[offset])
	case BaseInt16:
		return float64(int16(readLE(bytes, offset, 2)))
	case BaseUint16:
		return float64(readLE(bytes, offset, 2))
	case BaseInt32:
		return float64(int32(readLE(bytes, offset, 4)))
	case BaseUint32:
		return float64(readLE(bytes, offset, 4))
	case BaseInt64:
		return float64(int64(readLE(bytes, offset, 8)))
	case BaseUint64:
		return float64(readLE(bytes, offset, 8))
	case BaseFloat16:
		return decodeHalf(uint16(readLE(bytes, offset, 2)))
	case BaseFloat32:
		return float64(math.Float32frombits(uint32(readLE(bytes, offset, 4))))
	case BaseFloat64:
		return math.Float64frombits(readLE(bytes, offset, 8))
	default:
		panic("box: unknown base type")
	}
}

func readLE(data []byte, offset, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(data[offset+i]) << uint(8*i)
	}
	return v
}

func isIntegerBase(b BaseType) bool {
	switch b {
	case BaseFloat16, BaseFloat32, BaseFloat64:
		return false
	default:
		return true
	}
}

func decodeHalf(bits uint16) float64 {
	sign := bits >> 15
	exponent := (bits >> 10) & 0x1f
	mantissa := bits & 0x3ff

	var magnitude float64
	switch {
	case exponent == 0x1f:
		if mantissa == 0 {
			magnitude = math.Inf(1)
		} else {
			magnitude = math.NaN()
		}
	case exponent == 0:
		magnitude = math.Ldexp(float64(mantissa), -24)
	default:
		magnitude = math.Ldexp(float64(mantissa)+1024, int(exponent)-25)
	}
	if sign != 0 {
		return -magnitude
	}
	return magnitude
}

// Decode returns every scalar component of t laid out at bytes, in
// ForEachComponent order, widened to float64. Used to render mismatch
// diagnostics rather than for comparison itself.
func Decode(t Type, l Layout, bytes []byte) []float64 {
	var values []float64
	ForEachComponent(t, l, func(c Component) {
		values = append(values, asDouble(c.Base, bytes, c.Offset))
	})
	return values
}

// Compare evaluates comparison component-wise over t laid out at aBytes
// and bBytes, returning true only if every component satisfies it.
// Integer base types ignore tolerance even under FuzzyEqual.
func Compare(comparison Comparison, tolerance float64, t Type, l Layout, aBytes, bBytes []byte) bool {
	result := true
	ForEachComponent(t, l, func(c Component) {
		a := asDouble(c.Base, aBytes, c.Offset)
		b := asDouble(c.Base, bBytes, c.Offset)

		var ok bool
		switch comparison {
		case Equal:
			ok = a == b
		case FuzzyEqual:
			if isIntegerBase(c.Base) {
				ok = a == b
			} else {
				ok = math.Abs(a-b) <= tolerance
			}
		case NotEqual:
			ok = a != b
		case Less:
			ok = a < b
		case LessEqual:
			ok = a <= b
		case Greater:
			ok = a > b
		case GreaterEqual:
			ok = a >= b
		default:
			panic("box: unknown comparison")
		}
		if !ok {
			result = false
		}
	})
	return result
}
