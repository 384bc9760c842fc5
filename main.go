package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/fernandosanchezjr/gousbdfu/config"
	"github.com/fernandosanchezjr/gousbdfu/dfu"
	"github.com/fernandosanchezjr/gousbdfu/journal"
	"github.com/fernandosanchezjr/gousbdfu/logging"
	"github.com/fernandosanchezjr/gousbdfu/monitor"
	"github.com/fernandosanchezjr/gousbdfu/power"
	"github.com/fernandosanchezjr/gousbdfu/usbhost"
	"github.com/fernandosanchezjr/gousbdfu/utils"
	log "github.com/sirupsen/logrus"
)

var cpuProfile bool
var tracing bool
var listDevices bool
var switchDevice string
var showHistory string

func init() {
	flag.BoolVar(&cpuProfile, "cpu-profile", cpuProfile, "enable cpu profiling")
	flag.BoolVar(&tracing, "trace", tracing, "enable tracing")
	flag.BoolVar(&listDevices, "list", listDevices, "list DFU runtime devices and exit")
	flag.StringVar(&switchDevice, "switch", switchDevice,
		"switch a device (bus:address:interface) to DFU mode and exit")
	flag.StringVar(&showHistory, "history", showHistory, "print the journal of a device and exit")
}

func printHistory(key string) {
	j, err := journal.Open(journal.GetJournalPath())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = j.Close()
	}()
	events, err := j.Events(key)
	if err != nil {
		log.Fatal(err)
	}
	for _, event := range events {
		line := fmt.Sprintf("%s %s attributes %#02x timeout %d transfer size %d",
			event.Time.Format(time.RFC3339), event.Kind, event.Attributes,
			event.DetachTimeout, event.TransferSize)
		if event.Detail != "" {
			line += " (" + event.Detail + ")"
		}
		fmt.Println(line)
	}
}

func main() {
	flag.Parse()
	logging.SetupLogger()
	if cpuProfile {
		f, err := os.Create("gousbdfu.prof")
		if err != nil {
			panic(err)
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}
	if tracing {
		f, err := os.Create("gousbdfu.trace")
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"maxDevices":    cfg.MaxDevices,
		"urbTimeout":    cfg.URBTimeout,
		"detachTimeout": cfg.DetachTimeout,
	}).Info("Starting")
	if showHistory != "" {
		printHistory(showHistory)
		return
	}
	urbTimeout, detachTimeout := cfg.Timeouts()
	pool := dfu.NewPool(cfg.MaxDevices, urbTimeout, detachTimeout)
	host := usbhost.NewHost(urbTimeout)
	defer func() {
		_ = host.Close()
	}()
	mon := monitor.NewMonitor(cfg, pool, host)
	if cfg.Journal {
		if j, journalErr := journal.Open(journal.GetJournalPath()); journalErr != nil {
			log.WithError(journalErr).Warnln("Journal disabled")
		} else {
			mon.Journal = j
			defer func() {
				_ = j.Close()
			}()
		}
	}
	resetter := power.NewResetter(cfg.PowerControl)
	if resetErr := resetter.Open(); resetErr != nil {
		log.WithError(resetErr).Warnln("Power control disabled")
	} else {
		mon.Resetter = resetter
		defer func() {
			_ = resetter.Close()
		}()
	}
	switch {
	case listDevices:
		mon.Scan()
		for _, line := range mon.List() {
			fmt.Println(line)
		}
		mon.Close()
	case switchDevice != "":
		mon.Scan()
		switchErr := mon.Switch(switchDevice)
		mon.Close()
		if switchErr != nil {
			log.WithError(switchErr).Fatal("Switch failed")
		}
	default:
		mon.Start()
		watcher, watchErr := utils.NewFileWatcher(config.Path(), func() {
			newCfg, loadErr := config.LoadConfig()
			if loadErr != nil {
				log.WithError(loadErr).Warnln("Config reload failed")
				return
			}
			pool.SetTimeouts(newCfg.Timeouts())
			log.WithFields(log.Fields{
				"urbTimeout":    newCfg.URBTimeout,
				"detachTimeout": newCfg.DetachTimeout,
			}).Info("Timeouts updated")
		})
		if watchErr != nil {
			log.WithError(watchErr).Warnln("Config watcher disabled")
		} else {
			defer func() {
				_ = watcher.Close()
			}()
		}
		utils.Wait()
		mon.Stop()
	}
}
