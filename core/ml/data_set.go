package ml

import (
	"github.com/pkg/errors"

	"linesep/core/vector"
)

// RecordSource yields vectors of a fixed dimension until parser.ErrNoRecord.
type RecordSource interface {
	Next(dimension int) (*vector.Vector, error)
}

// LabelSink consumes computed labels in input order.
type LabelSink interface {
	Emit(label vector.Label) error
}

// SampleSet is an in-memory training set kept in insertion order.
type SampleSet struct {
	dim  int
	data []*vector.Vector
}

func NewSampleSet(dimension int) *SampleSet {
	return &SampleSet{dim: dimension}
}

// Add appends a labeled sample. The vector is not copied.
func (ss *SampleSet) Add(x *vector.Vector) error {
	if x.Dim() != ss.dim {
		return errors.Errorf("sample dimension %d, set dimension %d", x.Dim(), ss.dim)
	}
	if !x.Label.Valid() {
		return errors.Wrapf(ErrMissingLabel, "sample %d", len(ss.data))
	}
	ss.data = append(ss.data, x)
	return nil
}

func (ss *SampleSet) Len() int {
	return len(ss.data)
}

func (ss *SampleSet) Dim() int {
	return ss.dim
}

func (ss *SampleSet) At(i int) *vector.Vector {
	return ss.data[i]
}
