package dfu

import "encoding/binary"

const statusLength = 6

// SetupPacket is the 8-byte setup stage of a control transfer. Multi-byte
// fields are little-endian on the wire.
type SetupPacket struct {
	RequestType uint8
	Request     Request
	Value       uint16
	Index       uint16
	Length      uint16
}

func (sp SetupPacket) Bytes() []byte {
	var raw [8]byte
	raw[0] = sp.RequestType
	raw[1] = uint8(sp.Request)
	binary.LittleEndian.PutUint16(raw[2:4], sp.Value)
	binary.LittleEndian.PutUint16(raw[4:6], sp.Index)
	binary.LittleEndian.PutUint16(raw[6:8], sp.Length)
	return raw[:]
}

func (sp SetupPacket) In() bool {
	return sp.RequestType&0x80 != 0
}

type completion struct {
	status error
	count  int
}

// Control carries one DFU request through the transfer engine. A Control
// must not be shared between concurrent submissions.
//
// Transfer may be set to a caller-owned handle to reuse across requests;
// when nil the engine allocates one per submission and closes it before
// returning.
type Control struct {
	Setup    SetupPacket
	Data     []byte
	Transfer Transfer

	status    error
	count     int
	statusBuf [statusLength]byte
	stateBuf  [1]byte
}

// Status returns the terminal status of the last submission, or
// ErrIncomplete while a submission is in flight.
func (c *Control) Status() error {
	return c.status
}

// Count returns the number of bytes moved by the last submission.
func (c *Control) Count() int {
	return c.count
}

// StatusBlock returns the raw 6-byte DFU_GETSTATUS response buffer.
func (c *Control) StatusBlock() []byte {
	return c.statusBuf[:]
}
