package ml

import (
	"github.com/pkg/errors"

	"linesep/common"
	"linesep/core/parser"
	"linesep/core/vector"
)

var (
	ErrMissingLabel = errors.New("training vector has no 1/-1 label")
	ErrFrozen       = errors.New("separator is frozen")
)

// Separator is a trained weight vector. It is read-only.
type Separator struct {
	w *vector.Vector
}

func (s *Separator) Dim() int {
	return s.w.Dim()
}

// Coordinates returns a copy of the weights.
func (s *Separator) Coordinates() []float64 {
	return s.w.Coords()
}

func (s *Separator) InnerProduct(x *vector.Vector) float64 {
	return vector.InnerProduct(s.w, x)
}

type Stats struct {
	Seen    int // training vectors consumed
	Updates int // vectors that changed the separator

	// Truncated is set when the input ended before the announced count.
	Truncated bool
}

// Trainer runs one pass of the perceptron rule: for each training vector x
// with label y, predict with the current separator and, on a mistake, add y*x.
// Order matters, there are no epochs.
type Trainer struct {
	dim    int
	opts   Options
	w      *vector.Vector
	stats  Stats
	frozen bool
	log    common.Logger
}

func NewTrainer(dimension int, opts Options, log common.Logger) (*Trainer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	// the separator is only bounded by its input vectors
	w, err := vector.New(dimension, dimension)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		dim:  dimension,
		opts: opts,
		w:    w,
		log:  log,
	}, nil
}

// Step applies the update rule for one labeled vector. x is not modified.
func (t *Trainer) Step(x *vector.Vector) (bool, error) {
	if t.frozen {
		return false, ErrFrozen
	}
	if x.Dim() != t.dim {
		return false, errors.Errorf("training vector dimension %d, want %d", x.Dim(), t.dim)
	}
	if !x.Label.Valid() {
		return false, errors.Wrapf(ErrMissingLabel, "training vector %d", t.stats.Seen+1)
	}
	t.stats.Seen++

	product := vector.InnerProduct(t.w, x)
	predicted := t.opts.Decide(product)
	if predicted == x.Label {
		return false, nil
	}

	update := x.Clone()
	vector.ScalarMultiply(update, float64(x.Label))
	vector.AddVectors(t.w, update)
	t.stats.Updates++
	if t.log != nil {
		t.log.Debugf("vector %d: product %g predicted %d, label %d, separator now %v",
			t.stats.Seen, product, predicted, x.Label, t.w.Coords())
	}
	return true, nil
}

// Train consumes count records from src. If src runs out early, training
// stops there and Stats.Truncated is set. Updates made before an error are kept.
func (t *Trainer) Train(src RecordSource, count int) (*Separator, Stats, error) {
	if count < 0 {
		return nil, t.stats, errors.Errorf("negative training count %d", count)
	}
	for i := 0; i < count; i++ {
		x, err := src.Next(t.dim)
		if errors.Is(err, parser.ErrNoRecord) {
			t.stats.Truncated = true
			if t.log != nil {
				t.log.Warnf("input ended after %d of %d training vectors", i, count)
			}
			break
		}
		if err != nil {
			return nil, t.stats, errors.Wrapf(err, "training vector %d", i+1)
		}
		if _, err := t.Step(x); err != nil {
			return nil, t.stats, err
		}
	}
	return t.finish(), t.stats, nil
}

// TrainSet runs the same single pass over an in-memory set, in insertion order.
func (t *Trainer) TrainSet(ss *SampleSet) (*Separator, Stats, error) {
	if ss.Dim() != t.dim {
		return nil, t.stats, errors.Errorf("set dimension %d, want %d", ss.Dim(), t.dim)
	}
	for i := 0; i < ss.Len(); i++ {
		if _, err := t.Step(ss.At(i)); err != nil {
			return nil, t.stats, err
		}
	}
	return t.finish(), t.stats, nil
}

func (t *Trainer) finish() *Separator {
	sep := t.Separator()
	if t.log != nil {
		t.log.Infof("trained on %d vectors, %d updates, separator %v",
			t.stats.Seen, t.stats.Updates, sep.Coordinates())
	}
	return sep
}

// Separator freezes the trainer and returns the current weights.
func (t *Trainer) Separator() *Separator {
	t.frozen = true
	return &Separator{w: t.w}
}

func (t *Trainer) Stats() Stats {
	return t.stats
}
