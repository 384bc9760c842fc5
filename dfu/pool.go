package dfu

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Pool tracks the DFU devices currently prepared, keyed by the host
// interface identity. The URB and detach timeouts are shared by every
// device in the pool and may be changed while devices are live.
type Pool struct {
	urbTimeout    int64
	detachTimeout int64

	mtx     sync.Mutex
	devices map[string]*Device
	slots   *Slots
}

func NewPool(maxDevices int, urbTimeout, detachTimeout time.Duration) *Pool {
	p := &Pool{
		devices: map[string]*Device{},
		slots:   NewSlots(maxDevices),
	}
	p.SetTimeouts(urbTimeout, detachTimeout)
	return p
}

func (p *Pool) SetTimeouts(urbTimeout, detachTimeout time.Duration) {
	atomic.StoreInt64(&p.urbTimeout, int64(urbTimeout))
	atomic.StoreInt64(&p.detachTimeout, int64(detachTimeout))
}

func (p *Pool) URBTimeout() time.Duration {
	return time.Duration(atomic.LoadInt64(&p.urbTimeout))
}

func (p *Pool) DetachLimit() time.Duration {
	return time.Duration(atomic.LoadInt64(&p.detachTimeout))
}

// Prepare validates the functional descriptor, takes a slot and
// registers a device record for the interface. A rejected descriptor or
// a full pool leaves no state behind.
func (p *Pool) Prepare(hi HostInterface, raw []byte) (*Device, error) {
	descriptor, err := ParseFunctionalDescriptor(raw)
	if err != nil {
		return nil, err
	}
	index, err := p.slots.Acquire()
	if err != nil {
		return nil, err
	}
	dev := &Device{
		Index:         index,
		Attributes:    descriptor.Attributes,
		DetachTimeout: descriptor.DetachTimeout,
		TransferSize:  descriptor.TransferSize,
		Version:       descriptor.Version,
		Interface:     hi.InterfaceNumber(),
		DMACapable:    hi.DMACapable(),
		hi:            hi,
		pool:          p,
		log: log.WithFields(log.Fields{
			"device": hi.String(),
			"slot":   index,
		}),
	}
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.devices[hi.String()] = dev
	return dev, nil
}

// Cleanup drops the device record and frees its slot. Call exactly once
// per successful Prepare.
func (p *Pool) Cleanup(dev *Device) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	delete(p.devices, dev.hi.String())
	p.slots.Release(dev.Index)
	dev.Index = -1
}

func (p *Pool) Lookup(key string) *Device {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.devices[key]
}

func (p *Pool) InUse(key string) bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	_, found := p.devices[key]
	return found
}

func (p *Pool) Devices() []*Device {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	var found []*Device
	for _, dev := range p.devices {
		found = append(found, dev)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].Index < found[j].Index
	})
	return found
}

func (p *Pool) Count() int {
	return p.slots.InUse()
}
