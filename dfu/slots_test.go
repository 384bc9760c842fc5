package dfu

import (
	"errors"
	"sync"
	"testing"
)

func TestSlotsAcquireRelease(t *testing.T) {
	slots := NewSlots(4)
	seen := map[int]bool{}
	for i := 0; i < 4; i++ {
		index, err := slots.Acquire()
		if err != nil {
			t.Fatal(err)
		}
		if index < 0 || index >= 4 {
			t.Fatal("index out of range:", index)
		}
		if seen[index] {
			t.Fatal("duplicate live index:", index)
		}
		seen[index] = true
	}
	if slots.InUse() != 4 {
		t.Fatal("unexpected live count:", slots.InUse())
	}
	if _, err := slots.Acquire(); !errors.Is(err, ErrTooManyDevices) {
		t.Fatal("expected a full allocator, got", err)
	}
	if slots.InUse() != 4 {
		t.Fatal("failed acquire changed the live count")
	}
	slots.Release(2)
	if slots.InUse() != 3 {
		t.Fatal("release not reflected")
	}
	index, err := slots.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if index != 2 {
		t.Fatal("expected the freed index back, got", index)
	}
}

func TestSlotsUniqueAfterOutOfOrderRelease(t *testing.T) {
	slots := NewSlots(8)
	first, _ := slots.Acquire()
	second, _ := slots.Acquire()
	third, _ := slots.Acquire()
	slots.Release(first)
	replacement, err := slots.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if replacement == second || replacement == third {
		t.Fatal("replacement collides with a live index:", replacement)
	}
}

func TestSlotsConcurrentAcquire(t *testing.T) {
	slots := NewSlots(16)
	var wg sync.WaitGroup
	indices := make(chan int, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if index, err := slots.Acquire(); err == nil {
				indices <- index
			}
		}()
	}
	wg.Wait()
	close(indices)
	seen := map[int]bool{}
	for index := range indices {
		if seen[index] {
			t.Fatal("duplicate index handed out concurrently:", index)
		}
		seen[index] = true
	}
	if len(seen) != 16 {
		t.Fatal("expected every slot handed out, got", len(seen))
	}
}

func TestSlotsCapacityClamp(t *testing.T) {
	if NewSlots(100).Capacity() != MaxSlots {
		t.Fatal("capacity not clamped to the bitmap width")
	}
	if NewSlots(0).Capacity() != 1 {
		t.Fatal("zero capacity not raised to one")
	}
	if NewSlots(8).Capacity() != 8 {
		t.Fatal("capacity altered")
	}
}

func TestSlotsReleaseOutOfRange(t *testing.T) {
	slots := NewSlots(2)
	if _, err := slots.Acquire(); err != nil {
		t.Fatal(err)
	}
	slots.Release(-1)
	slots.Release(7)
	if slots.InUse() != 1 {
		t.Fatal("out of range release changed the bitmap")
	}
}
