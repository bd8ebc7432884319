package ml

import (
	"github.com/pkg/errors"

	"linesep/common"
	"linesep/core/parser"
	"linesep/core/vector"
)

type Classifier struct {
	sep  *Separator
	opts Options
	log  common.Logger
}

func NewClassifier(sep *Separator, opts Options, log common.Logger) (*Classifier, error) {
	if sep == nil {
		return nil, errors.New("nil separator")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{sep: sep, opts: opts, log: log}, nil
}

// Classify labels v by the sign of its inner product with the separator,
// replacing any label v already had.
func (c *Classifier) Classify(v *vector.Vector) vector.Label {
	v.Label = c.opts.Decide(c.sep.InnerProduct(v))
	return v.Label
}

// Run classifies every remaining record of src and emits the labels in order.
// It returns the number of vectors classified.
func (c *Classifier) Run(src RecordSource, sink LabelSink) (int, error) {
	n := 0
	for {
		v, err := src.Next(c.sep.Dim())
		if errors.Is(err, parser.ErrNoRecord) {
			break
		}
		if err != nil {
			return n, errors.Wrapf(err, "vector %d", n+1)
		}
		if v.Dim() != c.sep.Dim() {
			return n, errors.Errorf("vector %d has dimension %d, want %d", n+1, v.Dim(), c.sep.Dim())
		}
		if err := sink.Emit(c.Classify(v)); err != nil {
			return n, errors.Wrapf(err, "emit label %d", n+1)
		}
		n++
	}
	if c.log != nil {
		c.log.Infof("classified %d vectors", n)
	}
	return n, nil
}
