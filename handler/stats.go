package handler

import (
	"sync/atomic"
)

// Stats tracks handler statistics
type Stats struct {
	sink string
	// ProcessedTotal counts entries written successfully
	ProcessedTotal uint64
	// FilteredTotal counts entries rejected by the handler's threshold
	FilteredTotal uint64
	// FailedTotal counts entries whose write returned an error
	FailedTotal uint64
}

// NewStats creates a new Stats instance for the named sink kind
func NewStats(sink string) *Stats {
	return &Stats{sink: sink}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementFiltered atomically increments the filtered counter
func (s *Stats) IncrementFiltered() {
	atomic.AddUint64(&s.FilteredTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// Record counts the outcome of a single write
func (s *Stats) Record(err error) {
	if err != nil {
		s.IncrementFailed()
		return
	}
	s.IncrementProcessed()
}

// Snapshot is a point-in-time copy of a handler's counters
type Snapshot struct {
	Sink           string
	ProcessedTotal uint64
	FilteredTotal  uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Sink:           s.sink,
		ProcessedTotal: atomic.LoadUint64(&s.ProcessedTotal),
		FilteredTotal:  atomic.LoadUint64(&s.FilteredTotal),
		FailedTotal:    atomic.LoadUint64(&s.FailedTotal),
	}
}
