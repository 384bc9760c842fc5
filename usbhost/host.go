package usbhost

import (
	"fmt"
	"time"

	"github.com/fernandosanchezjr/gousbdfu/dfu"
	"github.com/google/gousb"
	log "github.com/sirupsen/logrus"
)

// Runtime DFU interfaces carry the application-specific class with the
// DFU subclass; protocol 1 is runtime mode, protocol 2 is DFU mode.
const (
	dfuClass        = 0xfe
	dfuSubClass     = 0x01
	runtimeProtocol = 0x01
)

type Host struct {
	ctx            *gousb.Context
	controlTimeout time.Duration
}

func NewHost(controlTimeout time.Duration) *Host {
	return &Host{
		ctx:            gousb.NewContext(),
		controlTimeout: controlTimeout,
	}
}

func (h *Host) Close() error {
	return h.ctx.Close()
}

type setting struct {
	configNumber int
	number       int
	alternate    int
}

func findRuntimeSetting(desc *gousb.DeviceDesc) (setting, bool) {
	for _, cfg := range desc.Configs {
		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				if alt.Class == dfuClass && alt.SubClass == dfuSubClass &&
					alt.Protocol == runtimeProtocol {
					return setting{cfg.Number, alt.Number, alt.Alternate}, true
				}
			}
		}
	}
	return setting{}, false
}

func portKey(desc *gousb.DeviceDesc, number int) string {
	return fmt.Sprintf("%03d:%03d:%d", desc.Bus, desc.Address, number)
}

// Scan claims every DFU runtime interface the pool does not already
// track and reports the key of each one currently on the bus, so the
// caller can spot removals.
func (h *Host) Scan(pool *dfu.Pool) (found []dfu.Port, present []string, err error) {
	devs, openErr := h.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		s, ok := findRuntimeSetting(desc)
		if !ok {
			return false
		}
		present = append(present, portKey(desc, s.number))
		return !pool.InUse(portKey(desc, s.number))
	})
	if openErr != nil {
		log.WithError(openErr).Warnln("Device enumeration")
	}
	for _, dev := range devs {
		s, ok := findRuntimeSetting(dev.Desc)
		if !ok {
			_ = dev.Close()
			continue
		}
		if h.controlTimeout > 0 {
			dev.ControlTimeout = h.controlTimeout
		}
		intf := &Interface{
			Bus:     dev.Desc.Bus,
			Address: dev.Desc.Address,
			Number:  s.number,
			Device:  dev,
		}
		if claimErr := intf.claim(s); claimErr != nil {
			log.WithFields(log.Fields{
				"device": intf.String(),
				"error":  claimErr,
			}).Warnln("Error claiming DFU interface")
			_ = intf.Close()
			continue
		}
		found = append(found, intf)
	}
	return found, present, nil
}
