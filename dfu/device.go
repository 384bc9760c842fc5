package dfu

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Device is the per-interface record kept while a DFU runtime interface
// is tracked. Lock serializes command sequences issued against the
// device; the engine itself never takes it.
type Device struct {
	Index         int
	Attributes    Attributes
	DetachTimeout uint16
	TransferSize  uint16
	Version       uint16
	Interface     int
	DMACapable    bool
	Lock          sync.Mutex

	hi   HostInterface
	pool *Pool
	log  *log.Entry
}

func (d *Device) String() string {
	return d.hi.String()
}

func (d *Device) WillDetach() bool {
	return d.Attributes&AttrWillDetach != 0
}

func (d *Device) Show() string {
	return fmt.Sprintf("Attribute: %#02x Timeout: %d Transfer Size: %d\n",
		uint8(d.Attributes), d.DetachTimeout, d.TransferSize)
}

// Store accepts the one-character detach command. Anything else is
// rejected without touching the device.
func (d *Device) Store(cmd string) error {
	if strings.TrimSuffix(cmd, "\n") != "-" {
		return ErrInvalidCommand
	}
	ctrl := &Control{}
	return d.Detach(ctrl)
}
