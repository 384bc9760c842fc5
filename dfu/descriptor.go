package dfu

import (
	"encoding/binary"
	"fmt"
)

const (
	FunctionalDescriptorType   = 0x21
	FunctionalDescriptorLength = 9
)

// FunctionalDescriptor is the DFU functional descriptor appended to the
// interface descriptor of a DFU-capable interface.
type FunctionalDescriptor struct {
	Attributes    Attributes
	DetachTimeout uint16
	TransferSize  uint16
	Version       uint16
}

func ParseFunctionalDescriptor(raw []byte) (FunctionalDescriptor, error) {
	var fd FunctionalDescriptor
	if len(raw) == 0 {
		return fd, fmt.Errorf("%w: descriptor missing", ErrInvalidDescriptor)
	}
	if len(raw) != FunctionalDescriptorLength {
		return fd, fmt.Errorf("%w: length %d", ErrInvalidDescriptor, len(raw))
	}
	if raw[1] != FunctionalDescriptorType {
		return fd, fmt.Errorf("%w: descriptor type %#02x", ErrInvalidDescriptor, raw[1])
	}
	fd.Attributes = Attributes(raw[2])
	fd.DetachTimeout = binary.LittleEndian.Uint16(raw[3:5])
	fd.TransferSize = binary.LittleEndian.Uint16(raw[5:7])
	fd.Version = binary.LittleEndian.Uint16(raw[7:9])
	return fd, nil
}

func (fd FunctionalDescriptor) WillDetach() bool {
	return fd.Attributes&AttrWillDetach != 0
}
