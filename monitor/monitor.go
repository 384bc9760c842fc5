package monitor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fernandosanchezjr/gousbdfu/config"
	"github.com/fernandosanchezjr/gousbdfu/dfu"
	"github.com/fernandosanchezjr/gousbdfu/journal"
	"github.com/fernandosanchezjr/gousbdfu/power"
	log "github.com/sirupsen/logrus"
)

// Monitor reconciles the device pool with the bus: it prepares records
// for runtime DFU interfaces as they appear and cleans them up as they
// vanish. Journal and Resetter are optional.
type Monitor struct {
	Config   *config.Config
	Pool     *dfu.Pool
	Scanner  dfu.Scanner
	Journal  *journal.Journal
	Resetter *power.Resetter
	ports    map[string]dfu.Port
	scanQuit chan struct{}
	wg       sync.WaitGroup
}

func NewMonitor(cfg *config.Config, pool *dfu.Pool, scanner dfu.Scanner) *Monitor {
	return &Monitor{
		Config:   cfg,
		Pool:     pool,
		Scanner:  scanner,
		ports:    map[string]dfu.Port{},
		scanQuit: make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	m.wg.Add(1)
	m.Scan()
	go m.scanLoop()
}

func (m *Monitor) Stop() {
	close(m.scanQuit)
	m.wg.Wait()
}

func (m *Monitor) scanLoop() {
	scanTicker := time.NewTicker(m.Config.ScanPeriod())
	for {
		select {
		case <-m.scanQuit:
			scanTicker.Stop()
			m.Close()
			m.wg.Done()
			return
		case <-scanTicker.C:
			m.Scan()
		}
	}
}

// Scan runs one reconciliation pass.
func (m *Monitor) Scan() {
	found, present, err := m.Scanner.Scan(m.Pool)
	if err != nil {
		log.WithError(err).Warnln("Bus scan")
		return
	}
	presentKeys := map[string]bool{}
	for _, key := range present {
		presentKeys[key] = true
	}
	for key, port := range m.ports {
		if !presentKeys[key] {
			m.drop(key, port)
		}
	}
	for _, port := range found {
		m.attach(port)
	}
}

// Close drops every tracked device.
func (m *Monitor) Close() {
	for key, port := range m.ports {
		m.drop(key, port)
	}
}

func (m *Monitor) attach(port dfu.Port) {
	dev, err := m.Pool.Prepare(port, port.Descriptor())
	if err != nil {
		log.WithFields(log.Fields{
			"device": port.String(),
			"error":  err,
		}).Warnln("Error preparing DFU device")
		_ = port.Close()
		return
	}
	m.ports[port.String()] = port
	log.WithFields(log.Fields{
		"device": dev.String(),
		"slot":   dev.Index,
	}).Info("DFU device attached")
	m.record(dev.String(), journal.Attach, dev, "")
}

func (m *Monitor) drop(key string, port dfu.Port) {
	if dev := m.Pool.Lookup(key); dev != nil {
		m.record(key, journal.Detach, dev, "")
		m.Pool.Cleanup(dev)
	}
	delete(m.ports, key)
	_ = port.Close()
	log.WithField("device", key).Info("DFU device detached")
}

func (m *Monitor) record(key, kind string, dev *dfu.Device, detail string) {
	if m.Journal == nil {
		return
	}
	event := journal.Event{
		Kind:          kind,
		Attributes:    uint8(dev.Attributes),
		DetachTimeout: dev.DetachTimeout,
		TransferSize:  dev.TransferSize,
		Detail:        detail,
	}
	if err := m.Journal.Record(key, event); err != nil {
		log.WithError(err).Warnln("Journal write")
	}
}

// List renders one line per tracked device.
func (m *Monitor) List() []string {
	var lines []string
	for _, dev := range m.Pool.Devices() {
		window := time.Duration(dev.DetachTimeout) * time.Millisecond
		lines = append(lines, fmt.Sprintf("%s [slot %d] %s (%s blocks, %s window)",
			dev, dev.Index, strings.TrimSuffix(dev.Show(), "\n"),
			humanize.IBytes(uint64(dev.TransferSize)), window))
	}
	return lines
}
