package dfu

import "time"

// DeviceStatus is the decoded DFU_GETSTATUS block. PollTimeout is the
// minimum time the host should wait before the next status request.
type DeviceStatus struct {
	Code        StatusCode
	PollTimeout time.Duration
	State       State
	Detail      uint8
}

func decodeStatus(raw []byte) DeviceStatus {
	poll := uint32(raw[1]) | uint32(raw[2])<<8 | uint32(raw[3])<<16
	return DeviceStatus{
		Code:        StatusCode(raw[0]),
		PollTimeout: time.Duration(poll) * time.Millisecond,
		State:       State(raw[4]),
		Detail:      raw[5],
	}
}

func (d *Device) setup(requestType uint8, request Request, value, length uint16) SetupPacket {
	return SetupPacket{
		RequestType: requestType,
		Request:     request,
		Value:       value,
		Index:       uint16(d.Interface),
		Length:      length,
	}
}

// Detach asks the device to enter DFU mode. The detach window sent down
// is the device's own limit capped by the configured maximum. Devices
// without the will-detach attribute switch only after an external reset.
func (d *Device) Detach(ctrl *Control) error {
	value := d.DetachTimeout
	if limit := uint64(d.pool.DetachLimit() / time.Millisecond); uint64(value) > limit {
		value = uint16(limit)
	}
	ctrl.Setup = d.setup(hostToDevice, RequestDetach, value, 0)
	ctrl.Data = nil
	if err := d.Submit(ctrl); err != nil {
		return err
	}
	if !d.WillDetach() {
		d.log.Info("Device needs reset to switch to DFU mode")
	}
	return nil
}

// GetStatus reads and decodes the 6-byte status block. The raw bytes
// remain available through ctrl.StatusBlock.
func (d *Device) GetStatus(ctrl *Control) (DeviceStatus, error) {
	ctrl.Setup = d.setup(deviceToHost, RequestGetStatus, 0, statusLength)
	ctrl.Data = ctrl.statusBuf[:]
	if err := d.Submit(ctrl); err != nil {
		return DeviceStatus{}, err
	}
	return decodeStatus(ctrl.statusBuf[:]), nil
}

// GetState reads the current interface state.
func (d *Device) GetState(ctrl *Control) (State, error) {
	ctrl.Setup = d.setup(deviceToHost, RequestGetState, 0, 1)
	ctrl.Data = ctrl.stateBuf[:]
	if err := d.Submit(ctrl); err != nil {
		return 0, err
	}
	return State(ctrl.stateBuf[0]), nil
}

// ClearStatus moves the device out of the error state.
func (d *Device) ClearStatus(ctrl *Control) error {
	ctrl.Setup = d.setup(hostToDevice, RequestClrStatus, 0, 0)
	ctrl.Data = nil
	return d.Submit(ctrl)
}

// Abort returns the device to idle. Abort failures are recovery noise
// and stay out of the logs.
func (d *Device) Abort(ctrl *Control) error {
	ctrl.Setup = d.setup(hostToDevice, RequestAbort, 0, 0)
	ctrl.Data = nil
	return d.Submit(ctrl)
}
