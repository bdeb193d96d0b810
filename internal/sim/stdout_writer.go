// Writer implementation printing vitals to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"vitalsim/internal/vitals"
)

// StdoutWriter prints vitals rows as JSON lines.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// Write outputs a single vitals row.
func (w *StdoutWriter) Write(row vitals.VitalsRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteBatch outputs multiple vitals rows.
func (w *StdoutWriter) WriteBatch(rows []vitals.VitalsRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
