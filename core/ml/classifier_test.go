package ml

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linesep/core/vector"
	"linesep/test/mock"
)

func trainedClassifier(t *testing.T, opts Options, samples ...*vector.Vector) *Classifier {
	tr, err := NewTrainer(samples[0].Dim(), opts, nil)
	require.NoError(t, err)
	sep, _, err := tr.Train(mock.NewSource(samples...), len(samples))
	require.NoError(t, err)
	c, err := NewClassifier(sep, opts, mock.GetMockLogger("classifier"))
	require.NoError(t, err)
	return c
}

func TestNewClassifierRejects(t *testing.T) {
	_, err := NewClassifier(nil, DefaultOptions(), nil)
	assert.Error(t, err)

	tr, _ := newTrainer(t, 1)
	_, err = NewClassifier(tr.Separator(), Options{Epsilon: 1}, nil)
	assert.Error(t, err)
}

func TestClassifyOverwritesLabel(t *testing.T) {
	c := trainedClassifier(t, DefaultOptions(), mock.Labeled(PN, 1, 0))
	v := mock.Labeled(PN, -3, 7)
	assert.Equal(t, NN, c.Classify(v))
	assert.Equal(t, NN, v.Label)
}

func TestClassifyEpsilonBoundary(t *testing.T) {
	opts := DefaultOptions()
	opts.Epsilon = 0.25
	// separator (1)
	c := trainedClassifier(t, opts, mock.Labeled(PN, 1))

	assert.Equal(t, PN, c.Classify(mock.Unlabeled(0.25)))
	assert.Equal(t, NN, c.Classify(mock.Unlabeled(0.125)))
	assert.Equal(t, NN, c.Classify(mock.Unlabeled(0)))
}

func TestRunEmitsInOrder(t *testing.T) {
	c := trainedClassifier(t, DefaultOptions(), mock.Labeled(PN, 1, 0))
	src := mock.NewSource(
		mock.Unlabeled(1, 0),
		mock.Unlabeled(-1, 0),
		mock.Labeled(NN, 2, 9),
		mock.Unlabeled(0, 5),
	)
	sink := &mock.Sink{}

	n, err := c.Run(src, sink)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []vector.Label{PN, NN, PN, NN}, sink.Labels)
}

func TestRunEmpty(t *testing.T) {
	c := trainedClassifier(t, DefaultOptions(), mock.Labeled(PN, 1))
	sink := &mock.Sink{}
	n, err := c.Run(mock.NewSource(), sink)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, sink.Labels)
}

func TestRunStopsOnSourceError(t *testing.T) {
	c := trainedClassifier(t, DefaultOptions(), mock.Labeled(PN, 1))
	src := mock.NewSource(mock.Unlabeled(1))
	src.Err = io.ErrClosedPipe
	sink := &mock.Sink{}

	n, err := c.Run(src, sink)
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
	assert.Equal(t, 1, n)
	assert.Equal(t, []vector.Label{PN}, sink.Labels)
}

func TestRunStopsOnSinkError(t *testing.T) {
	c := trainedClassifier(t, DefaultOptions(), mock.Labeled(PN, 1))
	src := mock.NewSource(mock.Unlabeled(1), mock.Unlabeled(2), mock.Unlabeled(3))
	sink := &mock.Sink{FailAfter: 2}

	n, err := c.Run(src, sink)
	assert.Error(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, sink.Labels, 2)
}
