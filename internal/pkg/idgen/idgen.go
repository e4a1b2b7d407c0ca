package idgen

import "sync/atomic"

// Sequence hands out monotonically increasing int64 ids, starting at 1.
// Each Sequence owns its own counter; there is no process-wide state.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
