package usbhost

import (
	"errors"
	"sync"

	"github.com/fernandosanchezjr/gousbdfu/dfu"
	"github.com/google/gousb"
)

var (
	ErrTransferBusy   = errors.New("transfer busy")
	ErrTransferClosed = errors.New("transfer closed")
)

// controlTransfer runs each accepted submission as one synchronous
// control request on its own goroutine and fires the completion callback
// exactly once when it returns.
type controlTransfer struct {
	device *gousb.Device
	mtx    sync.Mutex
	busy   bool
	closed bool
}

func (t *controlTransfer) Submit(setup dfu.SetupPacket, data []byte, done func(status error, count int)) error {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.closed {
		return ErrTransferClosed
	}
	if t.busy {
		return ErrTransferBusy
	}
	t.busy = true
	go t.run(setup, data, done)
	return nil
}

func (t *controlTransfer) run(setup dfu.SetupPacket, data []byte, done func(status error, count int)) {
	count, err := t.device.Control(setup.RequestType, uint8(setup.Request), setup.Value, setup.Index, data)
	t.mtx.Lock()
	t.busy = false
	t.mtx.Unlock()
	if count < 0 {
		count = 0
	}
	done(err, count)
}

// Cancel leans on the transport bound: the synchronous control path
// cannot be aborted mid-flight, but the device's control timeout limits
// every request, so the pending callback always fires.
func (t *controlTransfer) Cancel() {}

func (t *controlTransfer) Close() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.closed = true
}
