package usbhost

import (
	"fmt"

	"github.com/fernandosanchezjr/gousbdfu/dfu"
	"github.com/google/gousb"
)

const requestGetDescriptor = 0x06

// Interface is one claimed DFU runtime interface.
type Interface struct {
	Bus     int
	Address int
	Number  int
	Device  *gousb.Device
	Config  *gousb.Config
	Iface   *gousb.Interface

	descriptor []byte
}

func (i *Interface) claim(s setting) error {
	if err := i.Device.SetAutoDetach(true); err != nil {
		return err
	}
	config, err := i.Device.Config(s.configNumber)
	if err != nil {
		return err
	}
	i.Config = config
	iface, err := i.Config.Interface(s.number, s.alternate)
	if err != nil {
		return err
	}
	i.Iface = iface
	return i.readDescriptor()
}

// readDescriptor fetches the class-specific functional descriptor from
// the interface. The descriptor bytes stay raw here; validation happens
// when the device record is prepared.
func (i *Interface) readDescriptor() error {
	buffer := make([]byte, dfu.FunctionalDescriptorLength)
	count, err := i.Device.Control(
		gousb.ControlIn|gousb.ControlInterface,
		requestGetDescriptor,
		uint16(dfu.FunctionalDescriptorType)<<8,
		uint16(i.Number),
		buffer,
	)
	if err != nil {
		return fmt.Errorf("functional descriptor: %w", err)
	}
	i.descriptor = buffer[:count]
	return nil
}

func (i *Interface) String() string {
	return fmt.Sprintf("%03d:%03d:%d", i.Bus, i.Address, i.Number)
}

func (i *Interface) InterfaceNumber() int {
	return i.Number
}

// DMACapable reports whether transfer buffers can be mapped for the
// controller. Control buffers live in host memory with libusb, so the
// answer stays yes.
func (i *Interface) DMACapable() bool {
	return true
}

func (i *Interface) Descriptor() []byte {
	return i.descriptor
}

func (i *Interface) AllocTransfer() (dfu.Transfer, error) {
	return &controlTransfer{device: i.Device}, nil
}

func (i *Interface) Close() error {
	var err error
	if i.Iface != nil {
		i.Iface.Close()
		i.Iface = nil
	}
	if i.Config != nil {
		err = i.Config.Close()
		i.Config = nil
		if err != nil {
			return err
		}
	}
	if i.Device != nil {
		err = i.Device.Close()
		i.Device = nil
		if err != nil {
			return err
		}
	}
	i.Bus = -1
	i.Address = -1
	return nil
}
