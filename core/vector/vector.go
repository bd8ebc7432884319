package vector

import (
	"github.com/pkg/errors"
)

// DefaultMaxDimension is the largest dimension accepted unless configured otherwise.
const DefaultMaxDimension = 75

type Label int

const (
	Unset    Label = 0
	Positive Label = 1
	Negative Label = -1
)

func (l Label) Valid() bool {
	return l == Positive || l == Negative
}

// Vector is a point of a fixed-dimension real space together with its label.
type Vector struct {
	coords []float64
	Label  Label
}

// New returns the zero vector of the given dimension. The dimension must be in [1, max].
func New(dimension, max int) (*Vector, error) {
	if err := CheckDimension(dimension, max); err != nil {
		return nil, err
	}
	return &Vector{coords: make([]float64, dimension)}, nil
}

// FromSlice builds a vector that owns a copy of coords.
func FromSlice(coords []float64, max int) (*Vector, error) {
	v, err := New(len(coords), max)
	if err != nil {
		return nil, err
	}
	copy(v.coords, coords)
	return v, nil
}

func CheckDimension(dimension, max int) error {
	if max < 1 {
		return errors.Errorf("max dimension %d is not positive", max)
	}
	if dimension < 1 || dimension > max {
		return errors.Errorf("dimension %d out of range [1, %d]", dimension, max)
	}
	return nil
}

func (v *Vector) Dim() int {
	return len(v.coords)
}

func (v *Vector) At(i int) float64 {
	return v.coords[i]
}

func (v *Vector) Set(i int, x float64) {
	v.coords[i] = x
}

// Coords returns a copy of the coordinates.
func (v *Vector) Coords() []float64 {
	c := make([]float64, len(v.coords))
	copy(c, v.coords)
	return c
}

func (v *Vector) Clone() *Vector {
	return &Vector{coords: v.Coords(), Label: v.Label}
}

// Reset zeroes the coordinates and clears the label.
func (v *Vector) Reset() {
	for i := range v.coords {
		v.coords[i] = 0
	}
	v.Label = Unset
}
