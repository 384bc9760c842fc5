package monitor

import (
	"errors"
	"fmt"

	"github.com/fernandosanchezjr/gousbdfu/dfu"
	"github.com/fernandosanchezjr/gousbdfu/journal"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownDevice = errors.New("unknown device")

// Switch drives a tracked runtime interface into DFU mode. Interfaces
// reporting a DFU-mode state are settled instead: dfuERROR is cleared,
// an interrupted transfer is aborted.
func (m *Monitor) Switch(key string) error {
	dev := m.Pool.Lookup(key)
	if dev == nil {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, key)
	}
	dev.Lock.Lock()
	defer dev.Lock.Unlock()
	ctrl := &dfu.Control{}
	state, err := dev.GetState(ctrl)
	if err != nil {
		return err
	}
	switch state {
	case dfu.AppIdle:
	case dfu.AppDetach:
		log.WithField("device", key).Info("Detach already pending")
		return nil
	case dfu.DfuError:
		// Only DFU_CLRSTATUS leaves dfuERROR.
		if err := dev.ClearStatus(ctrl); err != nil {
			return err
		}
		log.WithField("device", key).Info("Cleared error state, device already in DFU mode")
		return nil
	case dfu.DfuIdle:
		log.WithField("device", key).Info("Device already in DFU mode")
		return nil
	default:
		if err := dev.Abort(ctrl); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"device": key,
			"state":  state,
		}).Info("Aborted stale transfer, device already in DFU mode")
		return nil
	}
	status, err := dev.GetStatus(ctrl)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"device": key,
		"status": status.Code,
		"state":  status.State,
	}).Info("Switching to DFU mode")
	if err := dev.Detach(ctrl); err != nil {
		return err
	}
	m.record(key, journal.Switch, dev, state.String())
	if !dev.WillDetach() && m.Resetter != nil {
		m.Resetter.Pulse()
	}
	return nil
}
