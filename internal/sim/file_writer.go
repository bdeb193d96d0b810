package sim

import (
	"encoding/json"
	"os"

	"vitalsim/internal/vitals"
)

// FileWriter writes vitals rows to a JSONL file.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates a FileWriter recording to path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write logs a single vitals row.
func (f *FileWriter) Write(row vitals.VitalsRow) error {
	return f.enc.Encode(row)
}

// WriteBatch logs multiple vitals rows.
func (f *FileWriter) WriteBatch(rows []vitals.VitalsRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}
