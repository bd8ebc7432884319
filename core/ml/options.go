package ml

import (
	"math"

	"github.com/pkg/errors"

	"linesep/core/vector"
)

// DefaultEpsilon is the smallest inner product classified as positive.
const DefaultEpsilon = 0.00001

// Options holds the decision rule shared by Trainer and Classifier:
// an inner product p is Positive when p >= Epsilon and Negative otherwise.
type Options struct {
	Epsilon  float64
	Positive vector.Label
	Negative vector.Label
}

func DefaultOptions() Options {
	return Options{
		Epsilon:  DefaultEpsilon,
		Positive: vector.Positive,
		Negative: vector.Negative,
	}
}

func (o Options) Validate() error {
	if math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) {
		return errors.Errorf("epsilon %v is not finite", o.Epsilon)
	}
	if !o.Positive.Valid() || !o.Negative.Valid() || o.Positive == o.Negative {
		return errors.Errorf("labels %d/%d must be distinct values of 1 and -1", o.Positive, o.Negative)
	}
	return nil
}

// Decide maps an inner product to a label.
func (o Options) Decide(product float64) vector.Label {
	if product < o.Epsilon {
		return o.Negative
	}
	return o.Positive
}
