package power

import (
	"time"

	"github.com/fernandosanchezjr/gousbdfu/config"
	log "github.com/sirupsen/logrus"
	rpio "github.com/stianeikeland/go-rpio/v4"
)

// Resetter pulses a GPIO line to power-cycle the hub port of a device
// that cannot detach on its own. A disabled resetter is a no-op, so
// callers can hold one unconditionally.
type Resetter struct {
	enabled bool
	pin     rpio.Pin
	high    bool
	pulse   time.Duration
	open    bool
}

func NewResetter(pc config.PowerControl) *Resetter {
	return &Resetter{
		enabled: pc.Enabled,
		pin:     rpio.Pin(pc.Pin),
		high:    pc.High,
		pulse:   time.Duration(pc.PulseMs) * time.Millisecond,
	}
}

func (r *Resetter) Open() error {
	if !r.enabled {
		return nil
	}
	if err := rpio.Open(); err != nil {
		return err
	}
	r.open = true
	r.pin.Output()
	r.idle()
	return nil
}

func (r *Resetter) idle() {
	if r.high {
		r.pin.Low()
	} else {
		r.pin.High()
	}
}

func (r *Resetter) active() {
	if r.high {
		r.pin.High()
	} else {
		r.pin.Low()
	}
}

// Pulse drives the line to its active level for the configured width.
func (r *Resetter) Pulse() {
	if !r.open {
		return
	}
	log.WithFields(log.Fields{
		"pin":   r.pin,
		"pulse": r.pulse,
	}).Info("Power cycling port")
	r.active()
	time.Sleep(r.pulse)
	r.idle()
}

func (r *Resetter) Close() error {
	if !r.open {
		return nil
	}
	r.idle()
	r.open = false
	return rpio.Close()
}
