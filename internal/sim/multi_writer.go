package sim

import "vitalsim/internal/vitals"

// MultiWriter fans vitals rows out to several writers. Write errors are
// collected; the last one is returned so every writer still sees the row.
type MultiWriter struct {
	writers []VitalsWriter
}

// NewMultiWriter creates a MultiWriter over the given writers.
func NewMultiWriter(writers ...VitalsWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write fans out a single vitals row.
func (m *MultiWriter) Write(row vitals.VitalsRow) error {
	var last error
	for _, w := range m.writers {
		if err := w.Write(row); err != nil {
			last = err
		}
	}
	return last
}

// WriteBatch fans out multiple vitals rows, using batch mode where a writer
// supports it.
func (m *MultiWriter) WriteBatch(rows []vitals.VitalsRow) error {
	var last error
	for _, w := range m.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				last = err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				last = err
			}
		}
	}
	return last
}
