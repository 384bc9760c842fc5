package config

// PowerControl configures the optional GPIO line wired to the supply of
// a hub port. Devices that cannot detach on their own get power-cycled
// through it after the detach request.
type PowerControl struct {
	Enabled bool `yaml:"enabled,omitempty"`
	Pin     int  `yaml:"pin,omitempty"`
	High    bool `yaml:"high,omitempty"`
	PulseMs int  `yaml:"pulseMs,omitempty"`
}
