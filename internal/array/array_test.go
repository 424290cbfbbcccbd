package array

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sbinet/npyio/npy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func writeNPY(t *testing.T, dir, name string, val interface{}) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npy.Write(f, val))
	return p
}

// writeRaw writes a version 1.0 file by hand so tests can cover layouts
// npy.Write does not produce (rank 3, Fortran order).
func writeRaw(t *testing.T, dir, name, descr string, fortran bool, shape []int, data interface{}) string {
	t.Helper()
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	tuple := "(" + strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}
	tuple += ")"
	order := "False"
	if fortran {
		order = "True"
	}
	hdr := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", descr, order, tuple)
	// magic(6) + version(2) + len(2) + header + '\n' padded to 64
	total := 10 + len(hdr) + 1
	pad := (64 - total%64) % 64
	hdr += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(hdr))))
	buf.WriteString(hdr)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, data))

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

func TestLoadOneDimensional(t *testing.T) {
	dir := t.TempDir()
	p := writeNPY(t, dir, "line.npy", []float64{1, 2, 3, 5})

	a, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, a.Shape)
	assert.Equal(t, "float64", a.DType)
	assert.Equal(t, []float64{1, 2, 3, 5}, a.Data)
	assert.Equal(t, 1, a.NDim())
	assert.Equal(t, "(4,) float64", a.ShapeString())
}

func TestLoadMatrix(t *testing.T) {
	dir := t.TempDir()
	m := mat.NewDense(2, 3, []float64{0, 1, 2, 10, 11, 12})
	p := writeNPY(t, dir, "m.npy", m)

	a, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, a.Shape)
	assert.Equal(t, 2, a.Rows())
	assert.Equal(t, 3, a.Cols())
	assert.Equal(t, 11.0, a.At(1, 1))
	assert.Equal(t, []float64{10, 11, 12}, a.Row(1))
	assert.Equal(t, []float64{2, 12}, a.Col(2))
	assert.Equal(t, "(2, 3) float64", a.ShapeString())
}

func TestLoadIntegerTypes(t *testing.T) {
	dir := t.TempDir()
	p := writeRaw(t, dir, "i.npy", "<i4", false, []int{3}, []int32{-1, 0, 7})

	a, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "int32", a.DType)
	assert.Equal(t, []float64{-1, 0, 7}, a.Data)

	p = writeRaw(t, dir, "u.npy", "|u1", false, []int{2, 2}, []uint8{1, 2, 3, 255})
	a, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "uint8", a.DType)
	assert.Equal(t, 255.0, a.At(1, 1))
}

func TestLoadFortranOrder(t *testing.T) {
	dir := t.TempDir()
	// logical matrix [[1 2 3] [4 5 6]] stored column by column
	p := writeRaw(t, dir, "f.npy", "<f8", true, []int{2, 3}, []float64{1, 4, 2, 5, 3, 6})

	a, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Data)
}

func TestLoadRankThree(t *testing.T) {
	dir := t.TempDir()
	data := make([]float64, 2*2*2)
	for i := range data {
		data[i] = float64(i)
	}
	p := writeRaw(t, dir, "cube.npy", "<f8", false, []int{2, 2, 2}, data)

	a, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 3, a.NDim())
	assert.Equal(t, 0, a.Rows())
	assert.Equal(t, "(2, 2, 2) float64", a.ShapeString())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.npy"))
		require.Error(t, err)
		assert.Equal(t, NotFound, KindOf(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(dir)
		assert.Equal(t, Unreadable, KindOf(err))
	})

	t.Run("garbage", func(t *testing.T) {
		p := filepath.Join(dir, "junk.npy")
		require.NoError(t, os.WriteFile(p, []byte("definitely not numpy"), 0644))
		_, err := Load(p)
		assert.Equal(t, BadFormat, KindOf(err))
	})

	t.Run("truncated", func(t *testing.T) {
		p := writeNPY(t, dir, "full.npy", []float64{1, 2, 3, 4, 5, 6, 7, 8})
		raw, err := os.ReadFile(p)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(p, raw[:len(raw)-20], 0644))
		_, err = Load(p)
		assert.Equal(t, BadFormat, KindOf(err))
	})

	t.Run("unsupported_dtype", func(t *testing.T) {
		p := writeRaw(t, dir, "c.npy", "<c16", false, []int{1}, []float64{1, 2})
		_, err := Load(p)
		require.Error(t, err)
		assert.Contains(t, []ErrorKind{UnsupportedType, BadFormat}, KindOf(err))
	})
}

func TestTypeCode(t *testing.T) {
	assert.Equal(t, "f8", typeCode("<f8"))
	assert.Equal(t, "i4", typeCode(">i4"))
	assert.Equal(t, "b1", typeCode("|b1"))
	assert.Equal(t, "u2", typeCode("u2"))
	_, ok := dtypes[typeCode("<c16")]
	assert.False(t, ok)
}

func TestRange(t *testing.T) {
	lo, hi, ok := Range([]float64{3, math.NaN(), -2, math.Inf(1), 8})
	require.True(t, ok)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 8.0, hi)

	_, _, ok = Range([]float64{math.NaN()})
	assert.False(t, ok)
	_, _, ok = Range(nil)
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	a, err := New([]int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4.0, a.At(1, 1))

	_, err = New([]int{3}, []float64{1})
	assert.Error(t, err)
}
