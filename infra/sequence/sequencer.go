package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic ids. The book owns one instance per
// counter (logical timestamps, order id numbering); there is no package
// state.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer that will issue start+1 first.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next value in the sequence.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued value.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
