// Package store implements the in-memory metric store: named, labeled gauge
// series written by the collector plus monotonic counters, readable as a
// consistent snapshot by the exposition server.
package store

import (
	"sort"
	"strings"
	"sync"
)

// Labels is the label set attached to a gauge series.
type Labels map[string]string

// Series is one published metric series: a name, its labels, and the
// current value. Counters appear as Series with nil Labels.
type Series struct {
	Name   string
	Labels Labels
	Value  float64
}

// key returns the canonical identity of the series: the name followed by
// labels sorted by label name.
func (s Series) key() string {
	var b strings.Builder
	b.WriteString(s.Name)
	names := make([]string, 0, len(s.Labels))
	for name := range s.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte('\x00')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(s.Labels[name])
	}
	return b.String()
}

// Store holds the currently published metric values. The collector is the
// only writer; the exposition server reads concurrently. A reader never
// observes a torn series: it sees the value from before or after any single
// write, per-series.
type Store struct {
	mu       sync.RWMutex
	gauges   map[string]Series
	counters map[string]uint64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		gauges:   make(map[string]Series),
		counters: make(map[string]uint64),
	}
}

// SetGauge replaces the value of the (name, labels) series, creating it if
// it does not exist. The labels map is copied; the caller may reuse it.
func (s *Store) SetGauge(name string, labels Labels, value float64) {
	copied := make(Labels, len(labels))
	for k, v := range labels {
		copied[k] = v
	}
	series := Series{Name: name, Labels: copied, Value: value}

	s.mu.Lock()
	s.gauges[series.key()] = series
	s.mu.Unlock()
}

// Gauge returns the current value of the (name, labels) series and whether
// it is present.
func (s *Store) Gauge(name string, labels Labels) (float64, bool) {
	k := Series{Name: name, Labels: labels}.key()

	s.mu.RLock()
	defer s.mu.RUnlock()
	series, ok := s.gauges[k]
	return series.Value, ok
}

// IncCounter adds one to the named counter, creating it at 1 if absent.
// Counters only ever increase.
func (s *Store) IncCounter(name string) {
	s.mu.Lock()
	s.counters[name]++
	s.mu.Unlock()
}

// Counter returns the current value of the named counter, zero if absent.
func (s *Store) Counter(name string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[name]
}

// Snapshot returns a point-in-time copy of every published series, sorted
// by name and then by canonical label order. Counters are included with
// nil Labels.
func (s *Store) Snapshot() []Series {
	s.mu.RLock()
	out := make([]Series, 0, len(s.gauges)+len(s.counters))
	for _, series := range s.gauges {
		out = append(out, series)
	}
	for name, v := range s.counters {
		out = append(out, Series{Name: name, Value: float64(v)})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].key() < out[j].key()
	})
	return out
}
