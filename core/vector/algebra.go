package vector

import (
	"gonum.org/v1/gonum/floats"
)

// InnerProduct returns the sum of v1[i]*v2[i] over the dimension.
// It panics if the dimensions differ.
func InnerProduct(v1, v2 *Vector) float64 {
	return floats.Dot(v1.coords, v2.coords)
}

// ScalarMultiply multiplies every coordinate of v by scalar, in place.
func ScalarMultiply(v *Vector, scalar float64) {
	floats.Scale(scalar, v.coords)
}

// AddVectors adds v2 into v1, in place. It panics if the dimensions differ.
func AddVectors(v1, v2 *Vector) {
	floats.Add(v1.coords, v2.coords)
}
