// ColorStdoutWriter prints human-friendly, colorized vitals to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"vitalsim/internal/config"
	"vitalsim/internal/risk"
	"vitalsim/internal/vitals"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints vitals rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.MonitorConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.MonitorConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Monitor Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Heart Rate Baseline:\t%.0f BPM\n", w.cfg.Patient.HeartRateBaseline)
	fmt.Fprintf(tw, "SpO2 Baseline:\t%.1f %%\n", w.cfg.Patient.SpO2Baseline)
	fmt.Fprintf(tw, "BP Systolic:\t%.0f mmHg\n", w.cfg.Patient.BPSystolic)
	fmt.Fprintf(tw, "Deterioration Onset:\ttick %d\n", w.cfg.Deterioration.OnsetTick)
	fmt.Fprintf(tw, "Heart Rate Ramp:\t%.1f BPM/tick\n", w.cfg.Deterioration.HeartRateRamp)
	fmt.Fprintf(tw, "SpO2 Ramp:\t%.2f %%/tick\n", w.cfg.Deterioration.SpO2Ramp)
	tw.Flush()
	fmt.Fprintln(w.out)
}

// Write outputs a single vitals row in colorized format.
func (w *ColorStdoutWriter) Write(row vitals.VitalsRow) error {
	w.once.Do(w.printOverview)

	statusColor := colorGreen
	switch risk.Status(row.Status) {
	case risk.StatusCritical:
		statusColor = colorRed
	case risk.StatusModerate:
		statusColor = colorYellow
	}
	phaseColor := colorGreen
	if row.Phase == vitals.PhaseDegrading {
		phaseColor = colorRed
	}

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%smonitor=%s%s ", colorBlue, row.MonitorID, colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorGray, row.Tick, colorReset)
	fmt.Fprintf(w.out, "%sphase=%s%s ", phaseColor, row.Phase, colorReset)
	fmt.Fprintf(w.out, "%shr=%.1f%s ", colorGreen, row.HeartRate, colorReset)
	fmt.Fprintf(w.out, "%sbp=%.0f%s ", colorYellow, row.BPSystolic, colorReset)
	fmt.Fprintf(w.out, "%sspo2=%.1f%s ", colorCyan, row.SpO2, colorReset)
	fmt.Fprintf(w.out, "%sscore=%d%s ", colorMagenta, row.Score, colorReset)
	fmt.Fprintf(w.out, "%sstatus=%s%s", statusColor, row.Status, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteBatch outputs multiple vitals rows.
func (w *ColorStdoutWriter) WriteBatch(rows []vitals.VitalsRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
