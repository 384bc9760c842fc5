package dfu

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var errSimCancelled = errors.New("transfer cancelled")

// simHost drives the engine without hardware. A negative delay holds the
// transfer until it is cancelled.
type simHost struct {
	mtx          sync.Mutex
	name         string
	number       int
	allocErr     error
	reject       error
	delay        time.Duration
	status       error
	count        int
	response     []byte
	cancelLag    time.Duration
	cancelStatus error
	allocs       int
	closes       int
	submits      int
	cancels      int
	lastSetup    SetupPacket
}

func newSimHost() *simHost {
	return &simHost{name: "001:004:0", cancelStatus: errSimCancelled}
}

func (h *simHost) String() string {
	return h.name
}

func (h *simHost) InterfaceNumber() int {
	return h.number
}

func (h *simHost) DMACapable() bool {
	return true
}

func (h *simHost) AllocTransfer() (Transfer, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if h.allocErr != nil {
		return nil, h.allocErr
	}
	h.allocs++
	return &simTransfer{host: h}, nil
}

func (h *simHost) last() SetupPacket {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return h.lastSetup
}

func (h *simHost) counts() (allocs, closes, submits, cancels int) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return h.allocs, h.closes, h.submits, h.cancels
}

type simTransfer struct {
	host  *simHost
	mtx   sync.Mutex
	done  func(error, int)
	timer *time.Timer
}

func (t *simTransfer) Submit(setup SetupPacket, data []byte, done func(status error, count int)) error {
	h := t.host
	h.mtx.Lock()
	h.lastSetup = setup
	if h.reject != nil {
		err := h.reject
		h.mtx.Unlock()
		return err
	}
	h.submits++
	delay, status, count, response := h.delay, h.status, h.count, h.response
	h.mtx.Unlock()
	t.mtx.Lock()
	t.done = done
	t.timer = nil
	t.mtx.Unlock()
	if delay < 0 {
		return nil
	}
	timer := time.AfterFunc(delay, func() {
		if copied := copy(data, response); copied > 0 {
			count = copied
		}
		done(status, count)
	})
	t.mtx.Lock()
	t.timer = timer
	t.mtx.Unlock()
	return nil
}

func (t *simTransfer) Cancel() {
	h := t.host
	h.mtx.Lock()
	h.cancels++
	lag, status := h.cancelLag, h.cancelStatus
	h.mtx.Unlock()
	t.mtx.Lock()
	done := t.done
	timer := t.timer
	t.done = nil
	t.mtx.Unlock()
	if timer != nil && !timer.Stop() {
		return
	}
	if done == nil {
		return
	}
	time.AfterFunc(lag, func() {
		done(status, 0)
	})
}

func (t *simTransfer) Close() {
	h := t.host
	h.mtx.Lock()
	h.closes++
	h.mtx.Unlock()
}

func simDescriptor() []byte {
	return []byte{9, 0x21, 0x0d, 0xff, 0x00, 0x00, 0x04, 0x10, 0x01}
}

func newSimDevice(t *testing.T, host *simHost, urbTimeout time.Duration) (*Pool, *Device) {
	t.Helper()
	pool := NewPool(8, urbTimeout, 2000*time.Millisecond)
	dev, err := pool.Prepare(host, simDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	return pool, dev
}
