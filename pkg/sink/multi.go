package sink

import (
	"context"
	"errors"
)

// WriteObserver is told about every table write a Multi performs.
type WriteObserver func(sink string, t Table, err error)

// Multi fans each table out to several sinks in order.
type Multi struct {
	sinks    []Sink
	observer WriteObserver
}

// NewMulti combines sinks. Nil entries are skipped.
func NewMulti(sinks ...Sink) *Multi {
	m := &Multi{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Observe registers fn to be called after each per-sink write.
func (m *Multi) Observe(fn WriteObserver) {
	m.observer = fn
}

// Name returns "multi".
func (m *Multi) Name() string { return "multi" }

// Sinks returns the wrapped sinks in write order.
func (m *Multi) Sinks() []Sink {
	return append([]Sink(nil), m.sinks...)
}

// Write passes t to every sink and stops at the first failure.
func (m *Multi) Write(ctx context.Context, t Table) error {
	for _, s := range m.sinks {
		err := s.Write(ctx, t)
		if m.observer != nil {
			m.observer(s.Name(), t, err)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
