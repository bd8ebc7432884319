package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVec(t *testing.T, coords ...float64) *Vector {
	v, err := FromSlice(coords, DefaultMaxDimension)
	require.NoError(t, err)
	return v
}

func TestNew(t *testing.T) {
	v, err := New(3, DefaultMaxDimension)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Dim())
	assert.Equal(t, []float64{0, 0, 0}, v.Coords())
	assert.Equal(t, Unset, v.Label)

	_, err = New(0, DefaultMaxDimension)
	assert.Error(t, err)
	_, err = New(DefaultMaxDimension+1, DefaultMaxDimension)
	assert.Error(t, err)
	_, err = New(DefaultMaxDimension, DefaultMaxDimension)
	assert.NoError(t, err)
	_, err = New(1, 0)
	assert.Error(t, err)
}

func TestCoordsIsCopy(t *testing.T) {
	v := mustVec(t, 1, 2)
	c := v.Coords()
	c[0] = 100
	assert.Equal(t, 1.0, v.At(0))

	w := v.Clone()
	w.Set(1, 7)
	assert.Equal(t, 2.0, v.At(1))
}

func TestReset(t *testing.T) {
	v := mustVec(t, 1, 2)
	v.Label = Positive
	v.Reset()
	assert.Equal(t, []float64{0, 0}, v.Coords())
	assert.Equal(t, Unset, v.Label)
}

func TestLabelValid(t *testing.T) {
	assert.True(t, Positive.Valid())
	assert.True(t, Negative.Valid())
	assert.False(t, Unset.Valid())
	assert.False(t, Label(2).Valid())
}

func TestInnerProductSymmetric(t *testing.T) {
	a := mustVec(t, 1, -2, 3.5)
	b := mustVec(t, 4, 0.5, -1)
	assert.Equal(t, InnerProduct(a, b), InnerProduct(b, a))
	assert.Equal(t, 4-1-3.5, InnerProduct(a, b))
}

func TestScalarMultiply(t *testing.T) {
	v := mustVec(t, 1, -2, 3)
	ScalarMultiply(v, 1)
	assert.Equal(t, []float64{1, -2, 3}, v.Coords())

	ScalarMultiply(v, -1)
	assert.Equal(t, []float64{-1, 2, -3}, v.Coords())
}

func TestAddVectors(t *testing.T) {
	a := mustVec(t, 1, 2)
	b := mustVec(t, 10, 20)
	c := mustVec(t, 100, 200)

	ab := a.Clone()
	AddVectors(ab, b)
	ba := b.Clone()
	AddVectors(ba, a)
	assert.Equal(t, ab.Coords(), ba.Coords())

	// (a+b)+c == a+(b+c)
	left := ab.Clone()
	AddVectors(left, c)
	bc := b.Clone()
	AddVectors(bc, c)
	right := a.Clone()
	AddVectors(right, bc)
	assert.Equal(t, left.Coords(), right.Coords())
	assert.Equal(t, []float64{111, 222}, left.Coords())

	// b is untouched
	assert.Equal(t, []float64{10, 20}, b.Coords())
}

func TestDimensionMismatchPanics(t *testing.T) {
	a := mustVec(t, 1, 2)
	b := mustVec(t, 1, 2, 3)
	assert.Panics(t, func() { InnerProduct(a, b) })
	assert.Panics(t, func() { AddVectors(a, b) })
}
