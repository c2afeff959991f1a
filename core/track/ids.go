package track

import "sync/atomic"

// IDAllocator hands out strictly increasing unique ids for tracks. The zero
// value is ready to use. Ids are never reused or reset for the lifetime of
// the allocator.
type IDAllocator struct {
	last atomic.Int64
}

// Next returns the next unique id.
func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}

// defaultIDs backs every track constructed without an explicit allocator.
// Tests that need deterministic ids inject their own.
var defaultIDs IDAllocator
