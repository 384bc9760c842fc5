package config

import (
	"time"

	"github.com/fernandosanchezjr/gousbdfu/dfu"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultMaxDevices    = 8
	DefaultURBTimeout    = 200
	DefaultDetachTimeout = 2000
	DefaultScanInterval  = 10
	DefaultPowerPulse    = 250
)

// Config holds the process-wide settings. Timeout fields are in
// milliseconds, ScanInterval in seconds. URBTimeout and DetachTimeout may
// be re-applied to a live pool when the config file changes.
type Config struct {
	MaxDevices    int          `yaml:"maxDevices,omitempty"`
	URBTimeout    int          `yaml:"urbTimeout,omitempty"`
	DetachTimeout int          `yaml:"detachTimeout,omitempty"`
	ScanInterval  int          `yaml:"scanInterval,omitempty"`
	Journal       bool         `yaml:"journal,omitempty"`
	PowerControl  PowerControl `yaml:"powerControl,omitempty"`
}

func Default() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

func (c *Config) Normalize() {
	if c.MaxDevices == 0 {
		c.MaxDevices = DefaultMaxDevices
	}
	if c.MaxDevices < 1 {
		c.MaxDevices = 1
	}
	if c.MaxDevices > dfu.MaxSlots {
		log.WithField("maxDevices", c.MaxDevices).Warnln("Clamping device limit to", dfu.MaxSlots)
		c.MaxDevices = dfu.MaxSlots
	}
	if c.URBTimeout <= 0 {
		c.URBTimeout = DefaultURBTimeout
	}
	if c.DetachTimeout <= 0 {
		c.DetachTimeout = DefaultDetachTimeout
	}
	if c.DetachTimeout > 0xffff {
		c.DetachTimeout = 0xffff
	}
	if c.ScanInterval <= 0 {
		c.ScanInterval = DefaultScanInterval
	}
	if c.PowerControl.PulseMs <= 0 {
		c.PowerControl.PulseMs = DefaultPowerPulse
	}
}

func (c *Config) Timeouts() (urbTimeout, detachTimeout time.Duration) {
	return time.Duration(c.URBTimeout) * time.Millisecond,
		time.Duration(c.DetachTimeout) * time.Millisecond
}

func (c *Config) ScanPeriod() time.Duration {
	return time.Duration(c.ScanInterval) * time.Second
}
