package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"vitalsim/internal/config"
	"vitalsim/internal/sim"
)

// newWriters sets up vitals writers based on flags and env vars. It returns
// the writer and a cleanup function to close any resources.
func newWriters(cfg *config.MonitorConfig, registry *prometheus.Registry, printOnly, tui bool, logFile string) (sim.VitalsWriter, func(), error) {
	cleanup := func() {}

	base, baseCleanup, err := baseWriter(cfg, printOnly, tui)
	if err != nil {
		return nil, nil, err
	}

	writers := []sim.VitalsWriter{base}
	if registry != nil {
		writers = append(writers, sim.NewPromWriter(registry))
	}
	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile)
		if err != nil {
			baseCleanup()
			return nil, nil, err
		}
		writers = append(writers, fw)
		cleanup = func() {
			fw.Close()
			baseCleanup()
		}
	} else {
		cleanup = baseCleanup
	}

	if len(writers) == 1 {
		return base, cleanup, nil
	}
	return sim.NewMultiWriter(writers...), cleanup, nil
}

// baseWriter chooses the primary writer: TUI, GreptimeDB, or STDOUT.
func baseWriter(cfg *config.MonitorConfig, printOnly, tui bool) (sim.VitalsWriter, func(), error) {
	if tui {
		w := sim.NewTUIWriter(cfg)
		return w, func() { w.Close() }, nil
	}

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" && !printOnly {
		w, err := sim.NewGreptimeDBWriter(endpoint, "public")
		if err != nil {
			return nil, nil, err
		}
		return w, func() {}, nil
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return sim.NewColorStdoutWriter(cfg), func() {}, nil
	}
	return sim.NewStdoutWriter(), func() {}, nil
}
