package mock

import (
	"fmt"

	"linesep/core/parser"
	"linesep/core/vector"
)

// MockLog keeps every message so tests can assert on warnings.
type MockLog struct {
	Name     string
	Messages []string
	Warnings []string
}

func (l *MockLog) record(msg string) {
	l.Messages = append(l.Messages, msg)
}

func (l *MockLog) Debug(args ...interface{}) {
	l.record(fmt.Sprint(args...))
}
func (l *MockLog) Debugf(format string, args ...interface{}) {
	l.record(fmt.Sprintf(format, args...))
}

func (l *MockLog) Info(args ...interface{}) {
	l.record(fmt.Sprint(args...))
}

func (l *MockLog) Infof(format string, args ...interface{}) {
	l.record(fmt.Sprintf(format, args...))
}

func (l *MockLog) Warn(args ...interface{}) {
	msg := fmt.Sprint(args...)
	l.record(msg)
	l.Warnings = append(l.Warnings, msg)
}

func (l *MockLog) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.record(msg)
	l.Warnings = append(l.Warnings, msg)
}

func (l *MockLog) Error(args ...interface{}) {
	l.record(fmt.Sprint(args...))
}

func (l *MockLog) Errorf(format string, args ...interface{}) {
	l.record(fmt.Sprintf(format, args...))
}

func GetMockLogger(name string) *MockLog {
	return &MockLog{Name: name}
}

// Source hands out prepared vectors in order, then parser.ErrNoRecord.
type Source struct {
	Vectors []*vector.Vector

	// Err, when set, is returned once the vectors run out instead of ErrNoRecord.
	Err  error
	next int
}

func NewSource(vs ...*vector.Vector) *Source {
	return &Source{Vectors: vs}
}

func (s *Source) Next(dimension int) (*vector.Vector, error) {
	if s.next >= len(s.Vectors) {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, parser.ErrNoRecord
	}
	v := s.Vectors[s.next]
	s.next++
	if v.Dim() != dimension {
		return nil, fmt.Errorf("mock source: vector %d has dimension %d, want %d", s.next-1, v.Dim(), dimension)
	}
	return v, nil
}

// Consumed returns how many vectors were handed out.
func (s *Source) Consumed() int {
	return s.next
}

// Sink records emitted labels.
type Sink struct {
	Labels []vector.Label

	// FailAfter makes Emit fail once this many labels were recorded; 0 disables it.
	FailAfter int
}

func (s *Sink) Emit(l vector.Label) error {
	if s.FailAfter > 0 && len(s.Labels) >= s.FailAfter {
		return fmt.Errorf("mock sink: full after %d labels", s.FailAfter)
	}
	s.Labels = append(s.Labels, l)
	return nil
}

// Labeled builds a labeled vector, panicking on a bad dimension.
func Labeled(label vector.Label, coords ...float64) *vector.Vector {
	v, err := vector.FromSlice(coords, vector.DefaultMaxDimension)
	if err != nil {
		panic(err)
	}
	v.Label = label
	return v
}

func Unlabeled(coords ...float64) *vector.Vector {
	return Labeled(vector.Unset, coords...)
}
