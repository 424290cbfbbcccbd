// Package array holds loaded numeric arrays and reads them from .npy files.
package array

import (
	"fmt"
	"math"
	"strings"
)

// Array is an n-dimensional numeric buffer in row-major order.
// Values are widened to float64 on load; DType keeps the on-disk type name.
type Array struct {
	Shape []int
	DType string
	Data  []float64
}

// New builds an Array from a shape and row-major data.
func New(shape []int, data []float64) (*Array, error) {
	n := elems(shape)
	if n != len(data) {
		return nil, fmt.Errorf("shape %v needs %d values, got %d", shape, n, len(data))
	}
	s := append([]int(nil), shape...)
	return &Array{Shape: s, DType: "float64", Data: data}, nil
}

func elems(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func (a *Array) NDim() int { return len(a.Shape) }
func (a *Array) Len() int  { return len(a.Data) }

// Rows and Cols describe a 2-D array; both are zero for any other rank.
func (a *Array) Rows() int {
	if a.NDim() != 2 {
		return 0
	}
	return a.Shape[0]
}

func (a *Array) Cols() int {
	if a.NDim() != 2 {
		return 0
	}
	return a.Shape[1]
}

// Dims returns Rows and Cols.
func (a *Array) Dims() (r, c int) { return a.Rows(), a.Cols() }

// At returns element (i, j) of a 2-D array.
func (a *Array) At(i, j int) float64 {
	return a.Data[i*a.Shape[1]+j]
}

// Row returns row i of a 2-D array. The slice aliases the array data.
func (a *Array) Row(i int) []float64 {
	c := a.Shape[1]
	return a.Data[i*c : (i+1)*c : (i+1)*c]
}

// Col returns a copy of column j of a 2-D array.
func (a *Array) Col(j int) []float64 {
	r, c := a.Shape[0], a.Shape[1]
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = a.Data[i*c+j]
	}
	return out
}

// Range returns the finite min and max. ok is false when no value is finite.
func (a *Array) Range() (lo, hi float64, ok bool) {
	return Range(a.Data)
}

// Range returns the finite min and max of vs.
func Range(vs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// ShapeString renders the shape and dtype the way numpy prints them,
// e.g. "(3, 4) float64" or "(5,) int32".
func (a *Array) ShapeString() string {
	parts := make([]string, len(a.Shape))
	for i, d := range a.Shape {
		parts[i] = fmt.Sprint(d)
	}
	s := strings.Join(parts, ", ")
	if len(a.Shape) == 1 {
		s += ","
	}
	return "(" + s + ") " + a.DType
}
