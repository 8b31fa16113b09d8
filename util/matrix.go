package util

import (
	"golang.org/x/exp/constraints"
)

// Matrix is a 2D view over a flat slice. Coefficient planes and image
// channels are stored this way so row passes can hand out contiguous rows
// while column passes index with explicit (y,x) arithmetic in one place.
type Matrix[T constraints.Float | constraints.Integer] struct {
	Width  int
	Height int
	Data   []T
}

// NewMatrix creates a zeroed height x width matrix.
func NewMatrix[T constraints.Float | constraints.Integer](height, width int) *Matrix[T] {
	return &Matrix[T]{Width: width, Height: height, Data: make([]T, width*height)}
}

// NewMatrixFromData wraps an existing flat slice of len width*height.
func NewMatrixFromData[T constraints.Float | constraints.Integer](height, width int, data []T) *Matrix[T] {
	return &Matrix[T]{Width: width, Height: height, Data: data}
}

func (m *Matrix[T]) Get(y, x int) T {
	return m.Data[y*m.Width+x]
}

func (m *Matrix[T]) Set(y, x int, value T) {
	m.Data[y*m.Width+x] = value
}

// Row returns the y-th row as a shared sub-slice.
func (m *Matrix[T]) Row(y int) []T {
	return m.Data[y*m.Width : (y+1)*m.Width]
}

// Column copies the x-th column into dst, which must have len Height.
func (m *Matrix[T]) Column(x int, dst []T) {
	for y := 0; y < m.Height; y++ {
		dst[y] = m.Data[y*m.Width+x]
	}
}

// SetColumn writes src, of len Height, into the x-th column.
func (m *Matrix[T]) SetColumn(x int, src []T) {
	for y := 0; y < m.Height; y++ {
		m.Data[y*m.Width+x] = src[y]
	}
}

// Clamp limits v to [lo,hi].
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
