package array

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/sbinet/npyio/npy"
)

// ErrorKind classifies a load failure.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	NotFound
	Unreadable
	BadFormat
	UnsupportedType
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Unreadable:
		return "unreadable"
	case BadFormat:
		return "bad format"
	case UnsupportedType:
		return "unsupported type"
	}
	return "unknown"
}

// LoadError reports why a file could not be loaded.
type LoadError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

// KindOf returns the kind of a load error, or Unknown.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return Unknown
}

// dtypes maps the numpy type code (without byte order) to its name.
var dtypes = map[string]string{
	"b1": "bool",
	"i1": "int8",
	"i2": "int16",
	"i4": "int32",
	"i8": "int64",
	"u1": "uint8",
	"u2": "uint16",
	"u4": "uint32",
	"u8": "uint64",
	"f4": "float32",
	"f8": "float64",
}

// typeCode strips the byte-order mark from a descr such as "<f8".
func typeCode(descr string) string {
	if len(descr) > 0 {
		switch descr[0] {
		case '<', '>', '|', '=':
			return descr[1:]
		}
	}
	return descr
}

// Load reads a .npy file.
func Load(path string) (*Array, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Kind: NotFound, Err: err}
		}
		return nil, &LoadError{Path: path, Kind: Unreadable, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Kind: Unreadable, Err: errors.New("is a directory")}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: Unreadable, Err: err}
	}
	defer f.Close()

	r, err := npy.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, &LoadError{Path: path, Kind: BadFormat, Err: err}
	}
	descr := r.Header.Descr
	code := typeCode(descr.Type)
	name, ok := dtypes[code]
	if !ok {
		return nil, &LoadError{Path: path, Kind: UnsupportedType, Err: fmt.Errorf("dtype %q", descr.Type)}
	}
	shape := append([]int(nil), descr.Shape...)
	data, err := readValues(r, code, elems(shape))
	if err != nil {
		return nil, &LoadError{Path: path, Kind: BadFormat, Err: err}
	}
	if descr.Fortran && len(shape) > 1 {
		data = fortranToC(data, shape)
	}
	return &Array{Shape: shape, DType: name, Data: data}, nil
}

type widenable interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32
}

func readAs[T widenable](r *npy.Reader, n int) ([]float64, error) {
	v := make([]T, n)
	if err := r.Read(&v); err != nil {
		return nil, err
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out, nil
}

func readValues(r *npy.Reader, code string, n int) ([]float64, error) {
	switch code {
	case "f8":
		v := make([]float64, n)
		if err := r.Read(&v); err != nil {
			return nil, err
		}
		return v, nil
	case "f4":
		return readAs[float32](r, n)
	case "i1":
		return readAs[int8](r, n)
	case "i2":
		return readAs[int16](r, n)
	case "i4":
		return readAs[int32](r, n)
	case "i8":
		return readAs[int64](r, n)
	case "u1":
		return readAs[uint8](r, n)
	case "u2":
		return readAs[uint16](r, n)
	case "u4":
		return readAs[uint32](r, n)
	case "u8":
		return readAs[uint64](r, n)
	case "b1":
		v := make([]bool, n)
		if err := r.Read(&v); err != nil {
			return nil, err
		}
		out := make([]float64, len(v))
		for i, b := range v {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("dtype code %q", code)
}

// fortranToC reorders column-major data into row-major order.
func fortranToC(src []float64, shape []int) []float64 {
	n := len(shape)
	// strides of the source (first axis fastest)
	fstride := make([]int, n)
	s := 1
	for k := 0; k < n; k++ {
		fstride[k] = s
		s *= shape[k]
	}
	dst := make([]float64, len(src))
	idx := make([]int, n)
	for i := range dst {
		off := 0
		for k := 0; k < n; k++ {
			off += idx[k] * fstride[k]
		}
		dst[i] = src[off]
		// advance the row-major index, last axis fastest
		for k := n - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
		}
	}
	return dst
}
