package dfu

import (
	"math/bits"
	"sync/atomic"
)

// MaxSlots is the hard ceiling on concurrently tracked devices.
const MaxSlots = 64

// Slots hands out device indices from a single atomic bitmap. An index
// stays unique for as long as it is held and becomes reusable once
// released.
type Slots struct {
	bitmap uint64
	max    int
}

func NewSlots(max int) *Slots {
	if max < 1 {
		max = 1
	}
	if max > MaxSlots {
		max = MaxSlots
	}
	return &Slots{max: max}
}

func (s *Slots) Acquire() (int, error) {
	for {
		current := atomic.LoadUint64(&s.bitmap)
		index := bits.TrailingZeros64(^current)
		if index >= s.max {
			return -1, ErrTooManyDevices
		}
		next := current | uint64(1)<<uint(index)
		if atomic.CompareAndSwapUint64(&s.bitmap, current, next) {
			return index, nil
		}
	}
}

func (s *Slots) Release(index int) {
	if index < 0 || index >= s.max {
		return
	}
	mask := ^(uint64(1) << uint(index))
	for {
		current := atomic.LoadUint64(&s.bitmap)
		if atomic.CompareAndSwapUint64(&s.bitmap, current, current&mask) {
			return
		}
	}
}

func (s *Slots) InUse() int {
	return bits.OnesCount64(atomic.LoadUint64(&s.bitmap))
}

func (s *Slots) Capacity() int {
	return s.max
}
