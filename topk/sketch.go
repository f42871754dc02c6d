// Package topk wraps a sliding top-k sketch for tracking the heaviest
// hitters among client IPs.
package topk

import (
	"sync"

	"github.com/keilerkonzept/topk/sliding"
)

// An item is flagged once its windowed count crosses this share of the
// window capacity.
const thresholdPercent = 80

// Sketch provides thread-safe access to a sliding sketch and manages ticking.
type Sketch struct {
	mu        sync.Mutex
	sketch    *sliding.Sketch
	tickSize  uint64 // requests per tick
	tickReq   uint64 // requests processed since last tick
	threshold uint32
}

// New creates a sliding top-k sketch. tickSize is how many observations
// trigger a window tick and a heavy hitter check.
func New(k, windowSize, width, depth int, tickSize uint64) *Sketch {
	if tickSize == 0 {
		tickSize = 1000
	}

	instance := sliding.New(k, windowSize,
		sliding.WithWidth(width),
		sliding.WithDepth(depth),
	)

	windowCapacity := uint64(windowSize) * tickSize
	return &Sketch{
		sketch:    instance,
		tickSize:  tickSize,
		threshold: uint32((windowCapacity * thresholdPercent) / 100),
	}
}

// Observe counts one occurrence of item. Every tickSize observations the
// window advances and the items whose windowed count exceeds the threshold
// are returned. A nil result means no check happened this call.
func (s *Sketch) Observe(item string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sketch.Incr(item)
	s.tickReq++

	if s.tickReq < s.tickSize {
		return nil
	}

	s.sketch.Tick()
	s.tickReq = 0

	var overThreshold []string
	for _, entry := range s.sketch.SortedSlice() {
		if entry.Count <= s.threshold {
			break // sorted, nothing further can qualify
		}
		overThreshold = append(overThreshold, entry.Item)
	}
	return overThreshold
}
